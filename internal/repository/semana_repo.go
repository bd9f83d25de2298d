package repository

import (
	"context"

	"mireparto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SemanaRepository stores one weekly ledger per user.
type SemanaRepository interface {
	Obtener(ctx context.Context, usuarioID uuid.UUID) (*model.Semana, error)
	// Guardar inserts or overwrites the user's ledger.
	Guardar(ctx context.Context, s *model.Semana) error
	Eliminar(ctx context.Context, usuarioID uuid.UUID) error
}

type semanaRepo struct{ db *gorm.DB }

func NewSemanaRepository(db *gorm.DB) SemanaRepository { return &semanaRepo{db: db} }

func (r *semanaRepo) Obtener(ctx context.Context, usuarioID uuid.UUID) (*model.Semana, error) {
	var s model.Semana
	if err := r.db.WithContext(ctx).First(&s, "usuario_id = ?", usuarioID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *semanaRepo) Guardar(ctx context.Context, s *model.Semana) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *semanaRepo) Eliminar(ctx context.Context, usuarioID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("usuario_id = ?", usuarioID).Delete(&model.Semana{}).Error
}

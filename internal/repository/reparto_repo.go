package repository

import (
	"context"

	"mireparto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RepartoRepository persists delivery batches, newest day first.
type RepartoRepository interface {
	Crear(ctx context.Context, r *model.Reparto) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Reparto, error)
	Listar(ctx context.Context) ([]model.Reparto, error)
	Actualizar(ctx context.Context, r *model.Reparto) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type repartoRepo struct{ db *gorm.DB }

func NewRepartoRepository(db *gorm.DB) RepartoRepository { return &repartoRepo{db: db} }

func (r *repartoRepo) Crear(ctx context.Context, rep *model.Reparto) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *repartoRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Reparto, error) {
	var rep model.Reparto
	if err := r.db.WithContext(ctx).First(&rep, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *repartoRepo) Listar(ctx context.Context) ([]model.Reparto, error) {
	var list []model.Reparto
	err := r.db.WithContext(ctx).Order("fecha desc").Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *repartoRepo) Actualizar(ctx context.Context, rep *model.Reparto) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *repartoRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return eliminar(r.db.WithContext(ctx), &model.Reparto{}, id)
}

// eliminar hard-deletes one row and reports gorm.ErrRecordNotFound when
// nothing matched.
func eliminar(db *gorm.DB, m any, id uuid.UUID) error {
	res := db.Where("id = ?", id).Delete(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

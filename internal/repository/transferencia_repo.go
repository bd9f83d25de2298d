package repository

import (
	"context"

	"mireparto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransferenciaRepository interface {
	Crear(ctx context.Context, t *model.TransferenciaCliente) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.TransferenciaCliente, error)
	Listar(ctx context.Context) ([]model.TransferenciaCliente, error)
	Reemplazar(ctx context.Context, t *model.TransferenciaCliente) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type transferenciaRepo struct{ db *gorm.DB }

func NewTransferenciaRepository(db *gorm.DB) TransferenciaRepository {
	return &transferenciaRepo{db: db}
}

func (r *transferenciaRepo) Crear(ctx context.Context, t *model.TransferenciaCliente) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transferenciaRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.TransferenciaCliente, error) {
	var t model.TransferenciaCliente
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transferenciaRepo) Listar(ctx context.Context) ([]model.TransferenciaCliente, error) {
	var list []model.TransferenciaCliente
	err := r.db.WithContext(ctx).Order("cliente asc").Find(&list).Error
	return list, err
}

func (r *transferenciaRepo) Reemplazar(ctx context.Context, t *model.TransferenciaCliente) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *transferenciaRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return eliminar(r.db.WithContext(ctx), &model.TransferenciaCliente{}, id)
}

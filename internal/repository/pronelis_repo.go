package repository

import (
	"context"

	"mireparto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PronelisRepository interface {
	Crear(ctx context.Context, p *model.Pronelis) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Pronelis, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.Pronelis, error)
	Listar(ctx context.Context) ([]model.Pronelis, error)
	Actualizar(ctx context.Context, p *model.Pronelis) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type pronelisRepo struct{ db *gorm.DB }

func NewPronelisRepository(db *gorm.DB) PronelisRepository { return &pronelisRepo{db: db} }

func (r *pronelisRepo) Crear(ctx context.Context, p *model.Pronelis) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pronelisRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Pronelis, error) {
	var p model.Pronelis
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pronelisRepo) ObtenerPorNombre(ctx context.Context, nombre string) (*model.Pronelis, error) {
	var p model.Pronelis
	err := r.db.WithContext(ctx).Where("lower(nombre) = lower(?)", nombre).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pronelisRepo) Listar(ctx context.Context) ([]model.Pronelis, error) {
	var list []model.Pronelis
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *pronelisRepo) Actualizar(ctx context.Context, p *model.Pronelis) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *pronelisRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return eliminar(r.db.WithContext(ctx), &model.Pronelis{}, id)
}

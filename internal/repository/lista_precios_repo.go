package repository

import (
	"context"

	"mireparto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListaPreciosRepository interface {
	Crear(ctx context.Context, l *model.ListaPrecios) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.ListaPrecios, error)
	Listar(ctx context.Context) ([]model.ListaPrecios, error)
	// ListarPorPaquete returns the lists of one package, newest first.
	ListarPorPaquete(ctx context.Context, paquete string) ([]model.ListaPrecios, error)
	Actualizar(ctx context.Context, l *model.ListaPrecios) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type listaPreciosRepo struct{ db *gorm.DB }

func NewListaPreciosRepository(db *gorm.DB) ListaPreciosRepository {
	return &listaPreciosRepo{db: db}
}

func (r *listaPreciosRepo) Crear(ctx context.Context, l *model.ListaPrecios) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *listaPreciosRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.ListaPrecios, error) {
	var l model.ListaPrecios
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *listaPreciosRepo) Listar(ctx context.Context) ([]model.ListaPrecios, error) {
	var list []model.ListaPrecios
	err := r.db.WithContext(ctx).Order("fecha desc").Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *listaPreciosRepo) ListarPorPaquete(ctx context.Context, paquete string) ([]model.ListaPrecios, error) {
	var list []model.ListaPrecios
	err := r.db.WithContext(ctx).
		Where("lower(paquete) = lower(?)", paquete).
		Order("fecha desc").Order("created_at desc").
		Find(&list).Error
	return list, err
}

func (r *listaPreciosRepo) Actualizar(ctx context.Context, l *model.ListaPrecios) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *listaPreciosRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return eliminar(r.db.WithContext(ctx), &model.ListaPrecios{}, id)
}

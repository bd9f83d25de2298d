package repository

import (
	"context"

	"mireparto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaldoClienteRepository interface {
	Crear(ctx context.Context, s *model.SaldoCliente) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.SaldoCliente, error)
	Listar(ctx context.Context) ([]model.SaldoCliente, error)
	Reemplazar(ctx context.Context, s *model.SaldoCliente) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type saldoClienteRepo struct{ db *gorm.DB }

func NewSaldoClienteRepository(db *gorm.DB) SaldoClienteRepository {
	return &saldoClienteRepo{db: db}
}

func (r *saldoClienteRepo) Crear(ctx context.Context, s *model.SaldoCliente) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saldoClienteRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.SaldoCliente, error) {
	var s model.SaldoCliente
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saldoClienteRepo) Listar(ctx context.Context) ([]model.SaldoCliente, error) {
	var list []model.SaldoCliente
	err := r.db.WithContext(ctx).Order("cliente asc").Order("fecha desc").Find(&list).Error
	return list, err
}

// Reemplazar overwrites every column; snapshots have no partial updates.
func (r *saldoClienteRepo) Reemplazar(ctx context.Context, s *model.SaldoCliente) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *saldoClienteRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return eliminar(r.db.WithContext(ctx), &model.SaldoCliente{}, id)
}

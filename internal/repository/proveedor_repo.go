package repository

import (
	"context"

	"mireparto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorRepository interface {
	Create(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Proveedor, error)
	List(ctx context.Context) ([]model.Proveedor, error)
	// Patch updates only the given columns.
	Patch(ctx context.Context, id uuid.UUID, campos map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proveedorRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Proveedor, error) {
	var list []model.Proveedor
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *proveedorRepo) List(ctx context.Context) ([]model.Proveedor, error) {
	var proveedores []model.Proveedor
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) Patch(ctx context.Context, id uuid.UUID, campos map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("id = ?", id).Updates(campos)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *proveedorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return eliminar(r.db.WithContext(ctx), &model.Proveedor{}, id)
}

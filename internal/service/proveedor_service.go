package service

import (
	"context"

	"mireparto/internal/dto"
	"mireparto/internal/model"
	"mireparto/internal/realtime"
	"mireparto/internal/repository"
	"mireparto/internal/sanitize"

	"github.com/google/uuid"
)

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo     repository.ProveedorRepository
	notifier realtime.Notifier
}

func NewProveedorService(repo repository.ProveedorRepository, notifier realtime.Notifier) ProveedorService {
	return &proveedorService{repo: repo, notifier: notifier}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	nombre := sanitize.Text(req.Nombre)
	if nombre == "" {
		return nil, invalido("Ingrese el nombre del proveedor")
	}
	p := &model.Proveedor{Nombre: nombre, Contacto: sanitize.Ptr(req.Contacto)}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	publicar(ctx, s.notifier, realtime.Proveedores)
	return proveedorToResponse(p), nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err)
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProveedorResponse, len(list))
	for i := range list {
		resp[i] = *proveedorToResponse(&list[i])
	}
	return resp, nil
}

// Actualizar writes only the fields present in the request. An empty
// contacto clears it.
func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	campos := map[string]any{}
	if req.Nombre != nil {
		nombre := sanitize.Text(*req.Nombre)
		if nombre == "" {
			return nil, invalido("Ingrese el nombre del proveedor")
		}
		campos["nombre"] = nombre
	}
	if req.Contacto != nil {
		campos["contacto"] = sanitize.Ptr(req.Contacto)
	}
	if len(campos) > 0 {
		if err := s.repo.Patch(ctx, id, campos); err != nil {
			return nil, noEncontrado(err)
		}
		publicar(ctx, s.notifier, realtime.Proveedores)
	}
	return s.ObtenerPorID(ctx, id)
}

func (s *proveedorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return noEncontrado(err)
	}
	publicar(ctx, s.notifier, realtime.Proveedores)
	return nil
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{ID: p.ID, Nombre: p.Nombre, Contacto: p.Contacto, CreatedAt: p.CreatedAt}
}

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

type PronelisService interface {
	Crear(ctx context.Context, req dto.PronelisRequest) (*dto.PronelisResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PronelisResponse, error)
	Listar(ctx context.Context) ([]dto.PronelisResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.PronelisRequest) (*dto.PronelisResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type pronelisService struct {
	repo     repository.PronelisRepository
	notifier realtime.Notifier
}

func NewPronelisService(repo repository.PronelisRepository, notifier realtime.Notifier) PronelisService {
	return &pronelisService{repo: repo, notifier: notifier}
}

func (s *pronelisService) Crear(ctx context.Context, req dto.PronelisRequest) (*dto.PronelisResponse, error) {
	nombre, productos, err := limpiarPronelis(req)
	if err != nil {
		return nil, err
	}
	p := &model.Pronelis{Nombre: nombre, Productos: productos}
	if err := s.repo.Crear(ctx, p); err != nil {
		return nil, err
	}
	publicar(ctx, s.notifier, realtime.Pronelis)
	return pronelisToResponse(p), nil
}

func (s *pronelisService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PronelisResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err)
	}
	return pronelisToResponse(p), nil
}

func (s *pronelisService) Listar(ctx context.Context) ([]dto.PronelisResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PronelisResponse, len(list))
	for i := range list {
		resp[i] = *pronelisToResponse(&list[i])
	}
	return resp, nil
}

func (s *pronelisService) Actualizar(ctx context.Context, id uuid.UUID, req dto.PronelisRequest) (*dto.PronelisResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err)
	}
	nombre, productos, err := limpiarPronelis(req)
	if err != nil {
		return nil, err
	}
	p.Nombre = nombre
	p.Productos = productos
	if err := s.repo.Actualizar(ctx, p); err != nil {
		return nil, err
	}
	publicar(ctx, s.notifier, realtime.Pronelis)
	return pronelisToResponse(p), nil
}

func (s *pronelisService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Eliminar(ctx, id); err != nil {
		return noEncontrado(err)
	}
	publicar(ctx, s.notifier, realtime.Pronelis)
	return nil
}

// limpiarPronelis drops blank slots and keeps the order of the rest.
func limpiarPronelis(req dto.PronelisRequest) (string, []string, error) {
	nombre := sanitize.Text(req.Nombre)
	if nombre == "" {
		return "", nil, invalido("Ingrese el nombre del paquete")
	}
	productos := make([]string, 0, len(req.Productos))
	for _, p := range req.Productos {
		if p = sanitize.Text(p); p != "" {
			productos = append(productos, p)
		}
	}
	if len(productos) == 0 {
		return "", nil, invalido("Ingrese al menos un producto")
	}
	return nombre, productos, nil
}

func pronelisToResponse(p *model.Pronelis) *dto.PronelisResponse {
	productos := p.Productos
	if productos == nil {
		productos = []string{}
	}
	return &dto.PronelisResponse{ID: p.ID, Nombre: p.Nombre, Productos: productos}
}

package service

import (
	"context"

	"mireparto/internal/balance"
	"mireparto/internal/dto"
	"mireparto/internal/infra"
	"mireparto/internal/model"
	"mireparto/internal/realtime"
	"mireparto/internal/repository"
	"mireparto/internal/sanitize"

	"github.com/google/uuid"
)

type TransferenciaService interface {
	Calcular(ctx context.Context, req dto.TransferenciaRequest) (*dto.CalculoTransferenciaResponse, error)
	Crear(ctx context.Context, req dto.TransferenciaRequest) (*dto.TransferenciaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.TransferenciaResponse, error)
	Listar(ctx context.Context) ([]dto.TransferenciaResponse, error)
	Reemplazar(ctx context.Context, id uuid.UUID, req dto.TransferenciaRequest) (*dto.TransferenciaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	PDF(ctx context.Context, id uuid.UUID) ([]byte, string, error)
}

type transferenciaService struct {
	repo     repository.TransferenciaRepository
	notifier realtime.Notifier
}

func NewTransferenciaService(repo repository.TransferenciaRepository, notifier realtime.Notifier) TransferenciaService {
	return &transferenciaService{repo: repo, notifier: notifier}
}

func (s *transferenciaService) Calcular(_ context.Context, req dto.TransferenciaRequest) (*dto.CalculoTransferenciaResponse, error) {
	cliente := sanitize.Text(req.Cliente)
	if cliente == "" {
		return nil, invalido("Ingrese el nombre del cliente")
	}
	r := balance.CalcularTransferencias(balance.FiltrarValidos(req.Transferencias), balance.FiltrarValidos(req.Boletas))
	return &dto.CalculoTransferenciaResponse{
		Cliente:               cliente,
		ResumenTransferencias: r,
		Mensaje:               balance.MensajeTransferencia(cliente, r.SaldoFinal),
	}, nil
}

func (s *transferenciaService) Crear(ctx context.Context, req dto.TransferenciaRequest) (*dto.TransferenciaResponse, error) {
	t, err := armarTransferencia(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Crear(ctx, t); err != nil {
		return nil, err
	}
	publicar(ctx, s.notifier, realtime.Transferencias)
	return transferenciaToResponse(t), nil
}

func (s *transferenciaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.TransferenciaResponse, error) {
	t, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err)
	}
	return transferenciaToResponse(t), nil
}

func (s *transferenciaService) Listar(ctx context.Context) ([]dto.TransferenciaResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TransferenciaResponse, len(list))
	for i := range list {
		resp[i] = *transferenciaToResponse(&list[i])
	}
	return resp, nil
}

func (s *transferenciaService) Reemplazar(ctx context.Context, id uuid.UUID, req dto.TransferenciaRequest) (*dto.TransferenciaResponse, error) {
	existing, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err)
	}
	t, err := armarTransferencia(req)
	if err != nil {
		return nil, err
	}
	t.Documento = existing.Documento
	if err := s.repo.Reemplazar(ctx, t); err != nil {
		return nil, err
	}
	publicar(ctx, s.notifier, realtime.Transferencias)
	return transferenciaToResponse(t), nil
}

func (s *transferenciaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Eliminar(ctx, id); err != nil {
		return noEncontrado(err)
	}
	publicar(ctx, s.notifier, realtime.Transferencias)
	return nil
}

func (s *transferenciaService) PDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	t, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, "", noEncontrado(err)
	}
	data, err := infra.TransferenciaPDF(t)
	if err != nil {
		return nil, "", err
	}
	return data, infra.NombreArchivo("transferencias", t.Cliente), nil
}

func armarTransferencia(req dto.TransferenciaRequest) (*model.TransferenciaCliente, error) {
	cliente := sanitize.Text(req.Cliente)
	if cliente == "" {
		return nil, invalido("Ingrese el nombre del cliente")
	}
	transf := balance.FiltrarValidos(req.Transferencias)
	boletas := balance.FiltrarValidos(req.Boletas)
	if len(transf)+len(boletas) == 0 {
		return nil, invalido("Ingrese al menos una transferencia o boleta")
	}
	t := &model.TransferenciaCliente{Cliente: cliente, Transferencias: transf, Boletas: boletas}
	t.AplicarResumen(balance.CalcularTransferencias(transf, boletas))
	return t, nil
}

func transferenciaToResponse(t *model.TransferenciaCliente) *dto.TransferenciaResponse {
	return &dto.TransferenciaResponse{
		ID:                  t.ID,
		Cliente:             t.Cliente,
		Transferencias:      orEmpty(t.Transferencias),
		Boletas:             orEmpty(t.Boletas),
		TotalTransferencias: t.TotalTransferencias,
		TotalBoletas:        t.TotalBoletas,
		SaldoFinal:          t.SaldoFinal,
		Mensaje:             t.Mensaje,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

package service

import (
	"context"
	"os"
	"strings"
	"time"

	"mireparto/internal/balance"
	"mireparto/internal/dto"
	"mireparto/internal/format"
	"mireparto/internal/infra"
	"mireparto/internal/model"
	"mireparto/internal/realtime"
	"mireparto/internal/repository"
	"mireparto/internal/sanitize"
	"mireparto/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EmailQueue accepts email jobs. worker.Dispatcher implements it.
type EmailQueue interface {
	EnqueueEmail(ctx context.Context, payload worker.EmailJobPayload) error
}

type SaldoClienteService interface {
	Calcular(ctx context.Context, req dto.SaldoClienteRequest) (*dto.CalculoSaldoResponse, error)
	Crear(ctx context.Context, req dto.SaldoClienteRequest) (*dto.SaldoClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.SaldoClienteResponse, error)
	Listar(ctx context.Context) ([]dto.SaldoClienteResponse, error)
	Reemplazar(ctx context.Context, id uuid.UUID, req dto.SaldoClienteRequest) (*dto.SaldoClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	PDF(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	Enviar(ctx context.Context, id uuid.UUID, req dto.EnviarSaldoRequest) (*dto.EnvioResponse, error)
}

type saldoClienteService struct {
	repo       repository.SaldoClienteRepository
	notifier   realtime.Notifier
	queue      EmailQueue
	pdfStorage string
	loc        *time.Location
}

func NewSaldoClienteService(
	repo repository.SaldoClienteRepository,
	notifier realtime.Notifier,
	queue EmailQueue,
	pdfStorage string,
	loc *time.Location,
) SaldoClienteService {
	if loc == nil {
		loc = time.Local
	}
	return &saldoClienteService{repo: repo, notifier: notifier, queue: queue, pdfStorage: pdfStorage, loc: loc}
}

// Calcular runs "Calcular Saldo" over the rows that would be saved. Nothing
// is saved, so empty lists are allowed here.
func (s *saldoClienteService) Calcular(_ context.Context, req dto.SaldoClienteRequest) (*dto.CalculoSaldoResponse, error) {
	cliente := sanitize.Text(req.Cliente)
	if cliente == "" {
		return nil, invalido("Ingrese el nombre del cliente")
	}
	r := balance.CalcularCliente(req.Categorias.Filtrar())
	return &dto.CalculoSaldoResponse{
		Cliente:        cliente,
		ResumenCliente: r,
		Mensaje:        balance.MensajeCliente(cliente, r.FinalBalance),
	}, nil
}

func (s *saldoClienteService) Crear(ctx context.Context, req dto.SaldoClienteRequest) (*dto.SaldoClienteResponse, error) {
	snap, err := s.armar(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Crear(ctx, snap); err != nil {
		return nil, err
	}
	publicar(ctx, s.notifier, realtime.SaldosClientes)
	return saldoToResponse(snap), nil
}

func (s *saldoClienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.SaldoClienteResponse, error) {
	snap, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err)
	}
	return saldoToResponse(snap), nil
}

func (s *saldoClienteService) Listar(ctx context.Context) ([]dto.SaldoClienteResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SaldoClienteResponse, len(list))
	for i := range list {
		resp[i] = *saldoToResponse(&list[i])
	}
	return resp, nil
}

// Reemplazar overwrites every field of the snapshot. There are no partial
// updates.
func (s *saldoClienteService) Reemplazar(ctx context.Context, id uuid.UUID, req dto.SaldoClienteRequest) (*dto.SaldoClienteResponse, error) {
	existing, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err)
	}
	snap, err := s.armar(req)
	if err != nil {
		return nil, err
	}
	snap.Documento = existing.Documento
	if err := s.repo.Reemplazar(ctx, snap); err != nil {
		return nil, err
	}
	publicar(ctx, s.notifier, realtime.SaldosClientes)
	return saldoToResponse(snap), nil
}

func (s *saldoClienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Eliminar(ctx, id); err != nil {
		return noEncontrado(err)
	}
	publicar(ctx, s.notifier, realtime.SaldosClientes)
	return nil
}

func (s *saldoClienteService) PDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	snap, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, "", noEncontrado(err)
	}
	data, err := infra.SaldoClientePDF(snap)
	if err != nil {
		return nil, "", err
	}
	return data, infra.NombreArchivo("saldo", snap.Cliente), nil
}

// Enviar stores the PDF and queues an email carrying it.
func (s *saldoClienteService) Enviar(ctx context.Context, id uuid.UUID, req dto.EnviarSaldoRequest) (*dto.EnvioResponse, error) {
	snap, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err)
	}
	data, err := infra.SaldoClientePDF(snap)
	if err != nil {
		return nil, err
	}
	nombre := strings.TrimSuffix(infra.NombreArchivo("saldo", snap.Cliente), ".pdf") + "_" + snap.ID.String() + ".pdf"
	path, err := infra.GuardarPDF(s.pdfStorage, nombre, data)
	if err != nil {
		return nil, err
	}
	err = s.queue.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: req.Email,
		Subject: "Saldo de " + snap.Cliente,
		Body:    snap.Mensaje + "\n\nSe adjunta el detalle del saldo.",
		PDFPath: path,
	})
	if err != nil {
		// nothing will ever pick the file up
		if rmErr := os.Remove(path); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", path).Msg("saldo: removing unsent pdf")
		}
		return nil, err
	}
	return &dto.EnvioResponse{Encolado: true, Email: req.Email}, nil
}

// armar filters out blank rows and computes the totals that get persisted.
func (s *saldoClienteService) armar(req dto.SaldoClienteRequest) (*model.SaldoCliente, error) {
	cliente := sanitize.Text(req.Cliente)
	if cliente == "" {
		return nil, invalido("Ingrese el nombre del cliente")
	}
	cats := req.Categorias.Filtrar()
	if cats.Vacia() {
		return nil, invalido("Ingrese al menos una boleta o un pago")
	}
	fecha := strings.TrimSpace(req.Fecha)
	if fecha == "" {
		fecha = format.LocalDateString(s.loc)
	}
	snap := &model.SaldoCliente{Cliente: cliente, Fecha: fecha, Categorias: cats}
	snap.AplicarResumen(balance.CalcularCliente(cats))
	return snap, nil
}

func saldoToResponse(s *model.SaldoCliente) *dto.SaldoClienteResponse {
	return &dto.SaldoClienteResponse{
		ID:           s.ID,
		Cliente:      s.Cliente,
		Fecha:        s.Fecha,
		FechaDisplay: format.FormatDateSafe(s.Fecha),
		Categorias:   conListas(s.Categorias),
		ResumenCliente: balance.ResumenCliente{
			TotalBoletas:        s.TotalBoletas,
			TotalVentas:         s.TotalVentas,
			TotalPlataFavor:     s.TotalPlataFavor,
			TotalEfectivo:       s.TotalEfectivo,
			TotalCheques:        s.TotalCheques,
			TotalTransferencias: s.TotalTransferencias,
			TotalIngresos:       s.TotalIngresos,
			FinalBalance:        s.FinalBalance,
		},
		Mensaje:   s.Mensaje,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// conListas turns nil lists into empty ones so clients always get arrays.
func conListas(c balance.Categorias) balance.Categorias {
	return balance.Categorias{
		Boletas:        orEmpty(c.Boletas),
		Ventas:         orEmpty(c.Ventas),
		PlataFavor:     orEmpty(c.PlataFavor),
		Efectivo:       orEmpty(c.Efectivo),
		Cheques:        orEmpty(c.Cheques),
		Transferencias: orEmpty(c.Transferencias),
	}
}

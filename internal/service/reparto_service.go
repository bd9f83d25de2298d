package service

import (
	"context"
	"strings"
	"time"

	"mireparto/internal/dto"
	"mireparto/internal/format"
	"mireparto/internal/infra"
	"mireparto/internal/model"
	"mireparto/internal/realtime"
	"mireparto/internal/repository"
	"mireparto/internal/sanitize"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RepartoService interface {
	Crear(ctx context.Context, req dto.GuardarRepartoRequest) (*dto.RepartoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.RepartoResponse, error)
	Listar(ctx context.Context) ([]dto.RepartoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarRepartoRequest) (*dto.RepartoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	AlternarPago(ctx context.Context, id uuid.UUID, idx int) (*dto.RepartoResponse, error)
	RegistrarPago(ctx context.Context, id uuid.UUID, idx int, req dto.RegistrarPagoRequest) (*dto.RepartoResponse, error)
	ActualizarImporte(ctx context.Context, id uuid.UUID, idx int, req dto.ActualizarImporteRequest) (*dto.RepartoResponse, error)
	PDF(ctx context.Context, id uuid.UUID) ([]byte, string, error)
}

type repartoService struct {
	repo     repository.RepartoRepository
	notifier realtime.Notifier
	loc      *time.Location
}

func NewRepartoService(repo repository.RepartoRepository, notifier realtime.Notifier, loc *time.Location) RepartoService {
	if loc == nil {
		loc = time.Local
	}
	return &repartoService{repo: repo, notifier: notifier, loc: loc}
}

func (s *repartoService) Crear(ctx context.Context, req dto.GuardarRepartoRequest) (*dto.RepartoResponse, error) {
	r, err := s.armar(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Crear(ctx, r); err != nil {
		return nil, err
	}
	publicar(ctx, s.notifier, realtime.Repartos)
	return repartoToResponse(r), nil
}

func (s *repartoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.RepartoResponse, error) {
	r, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err)
	}
	return repartoToResponse(r), nil
}

func (s *repartoService) Listar(ctx context.Context) ([]dto.RepartoResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RepartoResponse, len(list))
	for i := range list {
		resp[i] = *repartoToResponse(&list[i])
	}
	return resp, nil
}

func (s *repartoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarRepartoRequest) (*dto.RepartoResponse, error) {
	existing, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err)
	}
	r, err := s.armar(req)
	if err != nil {
		return nil, err
	}
	existing.Fecha = r.Fecha
	existing.Clientes = r.Clientes
	existing.Recalcular()
	if err := s.repo.Actualizar(ctx, existing); err != nil {
		return nil, err
	}
	publicar(ctx, s.notifier, realtime.Repartos)
	return repartoToResponse(existing), nil
}

func (s *repartoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Eliminar(ctx, id); err != nil {
		return noEncontrado(err)
	}
	publicar(ctx, s.notifier, realtime.Repartos)
	return nil
}

// AlternarPago is the single click on the payment cell.
func (s *repartoService) AlternarPago(ctx context.Context, id uuid.UUID, idx int) (*dto.RepartoResponse, error) {
	return s.mutarCargo(ctx, id, idx, func(c *model.CargoCliente) error {
		c.Toggle()
		return nil
	})
}

// RegistrarPago commits the inline payment edit. Non-numeric or negative
// amounts leave the charge untouched.
func (s *repartoService) RegistrarPago(ctx context.Context, id uuid.UUID, idx int, req dto.RegistrarPagoRequest) (*dto.RepartoResponse, error) {
	monto, ok := req.Monto.Numeric()
	if !ok {
		return nil, invalido("Ingrese un monto válido")
	}
	if monto.IsNegative() {
		return nil, invalido("El monto no puede ser negativo")
	}
	return s.mutarCargo(ctx, id, idx, func(c *model.CargoCliente) error {
		return c.RegistrarPago(monto)
	})
}

// ActualizarImporte edits the bill amount; payment and status stay as they were.
func (s *repartoService) ActualizarImporte(ctx context.Context, id uuid.UUID, idx int, req dto.ActualizarImporteRequest) (*dto.RepartoResponse, error) {
	importe, ok := req.Importe.Numeric()
	if !ok || !importe.IsPositive() {
		return nil, invalido("Ingrese un importe mayor a cero")
	}
	return s.mutarCargo(ctx, id, idx, func(c *model.CargoCliente) error {
		c.SetImporte(importe)
		return nil
	})
}

func (s *repartoService) PDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	r, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, "", noEncontrado(err)
	}
	data, err := infra.RepartoPDF(r)
	if err != nil {
		return nil, "", err
	}
	return data, infra.NombreArchivo("reparto", r.Fecha), nil
}

func (s *repartoService) mutarCargo(ctx context.Context, id uuid.UUID, idx int, fn func(*model.CargoCliente) error) (*dto.RepartoResponse, error) {
	r, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err)
	}
	if idx < 0 || idx >= len(r.Clientes) {
		return nil, ErrNoEncontrado
	}
	if err := fn(&r.Clientes[idx]); err != nil {
		return nil, invalido(err.Error())
	}
	r.Recalcular()
	if err := s.repo.Actualizar(ctx, r); err != nil {
		return nil, err
	}
	publicar(ctx, s.notifier, realtime.Repartos)
	return repartoToResponse(r), nil
}

// armar keeps the rows with a client name and a positive amount. A payment
// sent with the row derives its status; otherwise the row starts pending.
func (s *repartoService) armar(req dto.GuardarRepartoRequest) (*model.Reparto, error) {
	fecha := strings.TrimSpace(req.Fecha)
	if fecha == "" {
		fecha = format.LocalDateString(s.loc)
	}

	clientes := make([]model.CargoCliente, 0, len(req.Clientes))
	for _, in := range req.Clientes {
		nombre := sanitize.Text(in.Cliente)
		importe := in.Importe.Value()
		if nombre == "" || !importe.IsPositive() {
			continue
		}
		c := model.CargoCliente{
			Cliente:     nombre,
			Importe:     importe,
			Estado:      model.EstadoPendiente,
			MontoPagado: decimal.Zero,
			Direccion:   sanitize.Text(in.Direccion),
		}
		if pagado := in.MontoPagado.Value(); pagado.IsPositive() {
			c.MontoPagado = pagado
			c.Estado = model.EstadoPara(pagado, importe)
		} else if model.EstadoPago(in.Estado) == model.EstadoPagado {
			c.Toggle()
		}
		clientes = append(clientes, c)
	}
	if len(clientes) == 0 {
		return nil, invalido("Ingrese al menos un cliente")
	}

	r := &model.Reparto{Fecha: fecha, Clientes: clientes}
	r.Recalcular()
	return r, nil
}

func repartoToResponse(r *model.Reparto) *dto.RepartoResponse {
	clientes := r.Clientes
	if clientes == nil {
		clientes = []model.CargoCliente{}
	}
	cobrado := r.TotalCobrado()
	return &dto.RepartoResponse{
		ID:             r.ID,
		Fecha:          r.Fecha,
		FechaDisplay:   format.FormatDateSafe(r.Fecha),
		Clientes:       clientes,
		Total:          r.Total,
		Cantidad:       r.Cantidad,
		TotalCobrado:   cobrado,
		TotalPendiente: r.Total.Sub(cobrado),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

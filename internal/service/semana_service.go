package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"mireparto/internal/dto"
	"mireparto/internal/format"
	"mireparto/internal/infra"
	"mireparto/internal/model"
	"mireparto/internal/repository"
	"mireparto/internal/sanitize"

	"github.com/google/uuid"
)

// Listas the weekly ledger accepts entries for.
const (
	ListaMercaderia = "mercaderia"
	ListaEmbutidos  = "embutidos"
	ListaEmpleados  = "empleados"
	ListaAdelantos  = "adelantos"
	ListaGastos     = "gastos"
	ListaCuentas    = "cuentas"
)

type SemanaService interface {
	Obtener(ctx context.Context, usuarioID uuid.UUID) (*dto.SemanaResponse, error)
	Reemplazar(ctx context.Context, usuarioID uuid.UUID, req dto.SemanaRequest) (*dto.SemanaResponse, error)
	Agregar(ctx context.Context, usuarioID uuid.UUID, lista string, entrada json.RawMessage) (*dto.SemanaResponse, error)
	Eliminar(ctx context.Context, usuarioID uuid.UUID) error
	Resumen(ctx context.Context, usuarioID uuid.UUID) (*dto.ResumenSemanaResponse, error)
	XLSX(ctx context.Context, usuarioID uuid.UUID) ([]byte, string, error)
}

type semanaService struct {
	repo repository.SemanaRepository
	loc  *time.Location
}

func NewSemanaService(repo repository.SemanaRepository, loc *time.Location) SemanaService {
	if loc == nil {
		loc = time.Local
	}
	return &semanaService{repo: repo, loc: loc}
}

// Obtener returns the user's ledger, or an unsaved empty week starting today.
func (s *semanaService) Obtener(ctx context.Context, usuarioID uuid.UUID) (*dto.SemanaResponse, error) {
	sem, err := s.cargar(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return semanaToResponse(sem), nil
}

func (s *semanaService) Reemplazar(ctx context.Context, usuarioID uuid.UUID, req dto.SemanaRequest) (*dto.SemanaResponse, error) {
	sem, err := s.cargar(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if f := strings.TrimSpace(req.FechaInicio); f != "" {
		sem.FechaInicio = f
	}
	sem.Mercaderia = req.Mercaderia
	sem.Embutidos = req.Embutidos
	sem.Empleados = req.Empleados
	sem.Adelantos = req.Adelantos
	sem.Gastos = req.Gastos
	sem.Cuentas = req.Cuentas
	limpiarSemana(sem)
	if err := s.repo.Guardar(ctx, sem); err != nil {
		return nil, err
	}
	return semanaToResponse(sem), nil
}

// Agregar appends one entry to the named list.
func (s *semanaService) Agregar(ctx context.Context, usuarioID uuid.UUID, lista string, entrada json.RawMessage) (*dto.SemanaResponse, error) {
	sem, err := s.cargar(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if err := agregarEntrada(sem, lista, entrada); err != nil {
		return nil, err
	}
	if err := s.repo.Guardar(ctx, sem); err != nil {
		return nil, err
	}
	return semanaToResponse(sem), nil
}

// Eliminar starts the week over.
func (s *semanaService) Eliminar(ctx context.Context, usuarioID uuid.UUID) error {
	if err := s.repo.Eliminar(ctx, usuarioID); err != nil {
		return noEncontrado(err)
	}
	return nil
}

func (s *semanaService) Resumen(ctx context.Context, usuarioID uuid.UUID) (*dto.ResumenSemanaResponse, error) {
	sem, err := s.cargar(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenSemanaResponse{FechaInicio: sem.FechaInicio, ResumenSemana: sem.Resumen()}, nil
}

func (s *semanaService) XLSX(ctx context.Context, usuarioID uuid.UUID) ([]byte, string, error) {
	sem, err := s.cargar(ctx, usuarioID)
	if err != nil {
		return nil, "", err
	}
	data, err := infra.ExportarSemanaXLSX(sem)
	if err != nil {
		return nil, "", err
	}
	return data, "semana_" + sem.FechaInicio + ".xlsx", nil
}

func (s *semanaService) cargar(ctx context.Context, usuarioID uuid.UUID) (*model.Semana, error) {
	sem, err := s.repo.Obtener(ctx, usuarioID)
	if err == nil {
		return sem, nil
	}
	if errors.Is(noEncontrado(err), ErrNoEncontrado) {
		return &model.Semana{UsuarioID: usuarioID, FechaInicio: format.LocalDateString(s.loc)}, nil
	}
	return nil, err
}

func agregarEntrada(sem *model.Semana, lista string, raw json.RawMessage) error {
	switch lista {
	case ListaMercaderia:
		var e model.EntradaMercaderia
		if err := decodificar(raw, &e); err != nil {
			return err
		}
		limpiarMercaderia(&e)
		if e.Proveedor == "" || len(e.Cortes) == 0 {
			return invalido("Ingrese el proveedor y al menos un corte")
		}
		sem.Mercaderia = append(sem.Mercaderia, e)
	case ListaEmbutidos:
		var e model.EntradaEmbutidos
		if err := decodificar(raw, &e); err != nil {
			return err
		}
		limpiarPesadas(e.Tipos)
		if len(e.Tipos) == 0 {
			return invalido("Ingrese al menos un tipo de embutido")
		}
		sem.Embutidos = append(sem.Embutidos, e)
	case ListaEmpleados:
		var e model.Empleado
		if err := decodificar(raw, &e); err != nil {
			return err
		}
		e.Nombre = sanitize.Text(e.Nombre)
		if e.Nombre == "" {
			return invalido("Ingrese el nombre del empleado")
		}
		sem.Empleados = append(sem.Empleados, e)
	case ListaAdelantos:
		var e model.Adelanto
		if err := decodificar(raw, &e); err != nil {
			return err
		}
		limpiarAdelanto(&e)
		if e.Empleado == "" || !e.Monto.Value().IsPositive() {
			return invalido("Ingrese el empleado y un monto mayor a cero")
		}
		sem.Adelantos = append(sem.Adelantos, e)
	case ListaGastos:
		var e model.Gasto
		if err := decodificar(raw, &e); err != nil {
			return err
		}
		e.Descripcion = sanitize.Text(e.Descripcion)
		if e.Descripcion == "" || !e.Monto.Value().IsPositive() {
			return invalido("Ingrese la descripción y un monto mayor a cero")
		}
		sem.Gastos = append(sem.Gastos, e)
	case ListaCuentas:
		var e model.CuentaCliente
		if err := decodificar(raw, &e); err != nil {
			return err
		}
		e.Nombre = sanitize.Text(e.Nombre)
		if e.Nombre == "" {
			return invalido("Ingrese el nombre del cliente")
		}
		sem.Cuentas = append(sem.Cuentas, e)
	default:
		return ErrNoEncontrado
	}
	return nil
}

// limpiarSemana strips markup from every free-text field of the ledger.
func limpiarSemana(sem *model.Semana) {
	for i := range sem.Mercaderia {
		limpiarMercaderia(&sem.Mercaderia[i])
	}
	for i := range sem.Embutidos {
		limpiarPesadas(sem.Embutidos[i].Tipos)
	}
	for i := range sem.Empleados {
		sem.Empleados[i].Nombre = sanitize.Text(sem.Empleados[i].Nombre)
	}
	for i := range sem.Adelantos {
		limpiarAdelanto(&sem.Adelantos[i])
	}
	for i := range sem.Gastos {
		sem.Gastos[i].Descripcion = sanitize.Text(sem.Gastos[i].Descripcion)
	}
	for i := range sem.Cuentas {
		sem.Cuentas[i].Nombre = sanitize.Text(sem.Cuentas[i].Nombre)
	}
}

func limpiarMercaderia(e *model.EntradaMercaderia) {
	e.Proveedor = sanitize.Text(e.Proveedor)
	limpiarPesadas(e.Cortes)
}

func limpiarAdelanto(e *model.Adelanto) {
	e.Empleado = sanitize.Text(e.Empleado)
	e.Descripcion = sanitize.Text(e.Descripcion)
}

func limpiarPesadas(ps []model.Pesada) {
	for i := range ps {
		ps[i].Nombre = sanitize.Text(ps[i].Nombre)
	}
}

func decodificar(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return invalido("Formato de entrada inválido")
	}
	return nil
}

func semanaToResponse(s *model.Semana) *dto.SemanaResponse {
	return &dto.SemanaResponse{
		UsuarioID:   s.UsuarioID,
		FechaInicio: s.FechaInicio,
		Mercaderia:  orEmpty(s.Mercaderia),
		Embutidos:   orEmpty(s.Embutidos),
		Empleados:   orEmpty(s.Empleados),
		Adelantos:   orEmpty(s.Adelantos),
		Gastos:      orEmpty(s.Gastos),
		Cuentas:     orEmpty(s.Cuentas),
		UpdatedAt:   s.UpdatedAt,
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

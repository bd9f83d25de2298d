package dto

import (
	"time"

	"mireparto/internal/format"
	"mireparto/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CargoClienteInput struct {
	Cliente     string        `json:"cliente"`
	Importe     format.Amount `json:"importe"`
	Estado      string        `json:"estado"       validate:"omitempty,oneof=pending partial paid"`
	MontoPagado format.Amount `json:"monto_pagado"`
	Direccion   string        `json:"direccion"`
}

// GuardarRepartoRequest creates or replaces a delivery batch. Rows without
// a client name or with a non-positive amount are dropped.
type GuardarRepartoRequest struct {
	Fecha    string              `json:"fecha"    validate:"omitempty,datetime=2006-01-02"`
	Clientes []CargoClienteInput `json:"clientes" validate:"dive"`
}

type RegistrarPagoRequest struct {
	Monto format.Amount `json:"monto"`
}

type ActualizarImporteRequest struct {
	Importe format.Amount `json:"importe"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RepartoResponse struct {
	ID             uuid.UUID            `json:"id"`
	Fecha          string               `json:"fecha"`
	FechaDisplay   string               `json:"fecha_display"`
	Clientes       []model.CargoCliente `json:"clientes"`
	Total          decimal.Decimal      `json:"total"`
	Cantidad       int                  `json:"cantidad"`
	TotalCobrado   decimal.Decimal      `json:"total_cobrado"`
	TotalPendiente decimal.Decimal      `json:"total_pendiente"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

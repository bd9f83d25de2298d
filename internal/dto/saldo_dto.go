package dto

import (
	"time"

	"mireparto/internal/balance"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SaldoClienteRequest is the whole client account form. Category lists are
// flattened into the body as the page sends them.
type SaldoClienteRequest struct {
	Cliente string `json:"cliente" validate:"required,max=150"`
	Fecha   string `json:"fecha"   validate:"omitempty,datetime=2006-01-02"`
	balance.Categorias
}

type TransferenciaRequest struct {
	Cliente        string               `json:"cliente"        validate:"required,max=150"`
	Transferencias []balance.Movimiento `json:"transferencias"`
	Boletas        []balance.Movimiento `json:"boletas"`
}

type EnviarSaldoRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// CalculoSaldoResponse answers "Calcular Saldo" without saving anything.
type CalculoSaldoResponse struct {
	Cliente string `json:"cliente"`
	balance.ResumenCliente
	Mensaje string `json:"mensaje"`
}

type SaldoClienteResponse struct {
	ID           uuid.UUID `json:"id"`
	Cliente      string    `json:"cliente"`
	Fecha        string    `json:"fecha"`
	FechaDisplay string    `json:"fecha_display"`
	balance.Categorias
	balance.ResumenCliente
	Mensaje   string    `json:"mensaje"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CalculoTransferenciaResponse struct {
	Cliente string `json:"cliente"`
	balance.ResumenTransferencias
	Mensaje string `json:"mensaje"`
}

type TransferenciaResponse struct {
	ID                  uuid.UUID            `json:"id"`
	Cliente             string               `json:"cliente"`
	Transferencias      []balance.Movimiento `json:"transferencias"`
	Boletas             []balance.Movimiento `json:"boletas"`
	TotalTransferencias decimal.Decimal      `json:"total_transferencias"`
	TotalBoletas        decimal.Decimal      `json:"total_boletas"`
	SaldoFinal          decimal.Decimal      `json:"saldo_final"`
	Mensaje             string               `json:"mensaje"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

type EnvioResponse struct {
	Encolado bool   `json:"encolado"`
	Email    string `json:"email"`
}

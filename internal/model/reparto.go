package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

// EstadoPago is the payment status of one client charge.
type EstadoPago string

const (
	EstadoPendiente EstadoPago = "pending"
	EstadoParcial   EstadoPago = "partial"
	EstadoPagado    EstadoPago = "paid"
)

var ErrMontoNegativo = errors.New("el monto pagado no puede ser negativo")

// EstadoPara derives the status for a payment of monto against importe.
// Overpayment counts as paid and is not clamped.
func EstadoPara(monto, importe decimal.Decimal) EstadoPago {
	switch {
	case monto.GreaterThanOrEqual(importe):
		return EstadoPagado
	case monto.IsPositive():
		return EstadoParcial
	default:
		return EstadoPendiente
	}
}

// CargoCliente is one client's line in a delivery batch.
// Estado is only derived when the payment changes. Editing Importe leaves
// Estado and MontoPagado as they were.
type CargoCliente struct {
	Cliente     string          `json:"cliente"`
	Importe     decimal.Decimal `json:"importe"`
	Estado      EstadoPago      `json:"estado"`
	MontoPagado decimal.Decimal `json:"monto_pagado"`
	Direccion   string          `json:"direccion,omitempty"`
}

// Toggle flips between pending and paid. A partial payment toggles to paid.
func (c *CargoCliente) Toggle() {
	if c.Estado == EstadoPagado {
		c.Estado = EstadoPendiente
		c.MontoPagado = decimal.Zero
		return
	}
	c.Estado = EstadoPagado
	c.MontoPagado = c.Importe
}

// RegistrarPago commits an edited payment amount.
func (c *CargoCliente) RegistrarPago(monto decimal.Decimal) error {
	if monto.IsNegative() {
		return ErrMontoNegativo
	}
	c.MontoPagado = monto
	c.Estado = EstadoPara(monto, c.Importe)
	return nil
}

// SetImporte changes the bill amount only.
func (c *CargoCliente) SetImporte(importe decimal.Decimal) {
	c.Importe = importe
}

// Reparto is the delivery batch of one calendar day.
type Reparto struct {
	Documento
	Fecha    string          `gorm:"type:varchar(10);index;not null"`
	Clientes []CargoCliente  `gorm:"type:jsonb;serializer:json"`
	Total    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Cantidad int             `gorm:"not null;default:0"`
}

// Recalcular refreshes Total and Cantidad from the client lines.
func (r *Reparto) Recalcular() {
	total := decimal.Zero
	for _, c := range r.Clientes {
		total = total.Add(c.Importe)
	}
	r.Total = total
	r.Cantidad = len(r.Clientes)
}

// TotalCobrado sums what was actually paid.
func (r Reparto) TotalCobrado() decimal.Decimal {
	cobrado := decimal.Zero
	for _, c := range r.Clientes {
		cobrado = cobrado.Add(c.MontoPagado)
	}
	return cobrado
}

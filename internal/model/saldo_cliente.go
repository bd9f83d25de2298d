package model

import (
	"mireparto/internal/balance"

	"github.com/shopspring/decimal"
)

// SaldoCliente is a saved client account snapshot. It is replaced
// wholesale on edit.
type SaldoCliente struct {
	Documento
	Cliente    string             `gorm:"index;not null"`
	Fecha      string             `gorm:"type:varchar(10);index"`
	Categorias balance.Categorias `gorm:"type:jsonb;serializer:json"`

	TotalBoletas        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalVentas         decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalPlataFavor     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalEfectivo       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalCheques        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalTransferencias decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalIngresos       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	FinalBalance        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Mensaje             string
}

func (SaldoCliente) TableName() string { return "saldos_clientes" }

// AplicarResumen copies computed totals onto the snapshot.
func (s *SaldoCliente) AplicarResumen(r balance.ResumenCliente) {
	s.TotalBoletas = r.TotalBoletas
	s.TotalVentas = r.TotalVentas
	s.TotalPlataFavor = r.TotalPlataFavor
	s.TotalEfectivo = r.TotalEfectivo
	s.TotalCheques = r.TotalCheques
	s.TotalTransferencias = r.TotalTransferencias
	s.TotalIngresos = r.TotalIngresos
	s.FinalBalance = r.FinalBalance
	s.Mensaje = balance.MensajeCliente(s.Cliente, r.FinalBalance)
}

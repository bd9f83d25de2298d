package model

import (
	"mireparto/internal/balance"

	"github.com/shopspring/decimal"
)

// TransferenciaCliente tracks transfers received from a client against the
// goods owed to them. SaldoFinal > 0 means the operator owes the client.
type TransferenciaCliente struct {
	Documento
	Cliente        string               `gorm:"index;not null"`
	Transferencias []balance.Movimiento `gorm:"type:jsonb;serializer:json"`
	Boletas        []balance.Movimiento `gorm:"type:jsonb;serializer:json"`

	TotalTransferencias decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalBoletas        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	SaldoFinal          decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Mensaje             string
}

func (TransferenciaCliente) TableName() string { return "transferencias_clientes" }

func (t *TransferenciaCliente) AplicarResumen(r balance.ResumenTransferencias) {
	t.TotalTransferencias = r.TotalTransferencias
	t.TotalBoletas = r.TotalBoletas
	t.SaldoFinal = r.SaldoFinal
	t.Mensaje = balance.MensajeTransferencia(t.Cliente, r.SaldoFinal)
}

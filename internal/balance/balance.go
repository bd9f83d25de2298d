// Package balance reconciles a client's transaction lists into one signed
// amount. Two sign conventions coexist:
//
//   - client account (SaldoClientes): FinalBalance = ingresos − boletas,
//     and a negative result reads "Tú le debes … a <cliente>".
//   - transfer relationship (Transferencias): SaldoFinal = transferencias −
//     boletas, and a positive result reads "Le debes … a <cliente>".
//
// Unreadable amounts count as zero. Nothing here touches storage.
package balance

import (
	"fmt"

	"mireparto/internal/format"

	"github.com/shopspring/decimal"
)

// Sumar adds every row's amount. Blank or unreadable amounts add 0.
func Sumar(items []Movimiento) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Monto.Value())
	}
	return total
}

// Categorias are the lists entered on the client account page. Boletas are
// the only debit; every other list is money received from or credited to
// the client.
type Categorias struct {
	Boletas        []Movimiento `json:"boletas"`
	Ventas         []Movimiento `json:"ventas"`
	PlataFavor     []Movimiento `json:"plata_favor"`
	Efectivo       []Movimiento `json:"efectivo"`
	Cheques        []Movimiento `json:"cheques"`
	Transferencias []Movimiento `json:"transferencias"`
}

// Filtrar returns a copy holding only the rows worth persisting.
func (c Categorias) Filtrar() Categorias {
	return Categorias{
		Boletas:        FiltrarValidos(c.Boletas),
		Ventas:         FiltrarValidos(c.Ventas),
		PlataFavor:     FiltrarValidos(c.PlataFavor),
		Efectivo:       FiltrarValidos(c.Efectivo),
		Cheques:        FiltrarValidos(c.Cheques),
		Transferencias: FiltrarValidos(c.Transferencias),
	}
}

// Vacia reports whether every list is empty.
func (c Categorias) Vacia() bool {
	return len(c.Boletas)+len(c.Ventas)+len(c.PlataFavor)+
		len(c.Efectivo)+len(c.Cheques)+len(c.Transferencias) == 0
}

// ResumenCliente holds the per-category subtotals of a client account.
type ResumenCliente struct {
	TotalBoletas        decimal.Decimal `json:"total_boletas"`
	TotalVentas         decimal.Decimal `json:"total_ventas"`
	TotalPlataFavor     decimal.Decimal `json:"total_plata_favor"`
	TotalEfectivo       decimal.Decimal `json:"total_efectivo"`
	TotalCheques        decimal.Decimal `json:"total_cheques"`
	TotalTransferencias decimal.Decimal `json:"total_transferencias"`
	TotalIngresos       decimal.Decimal `json:"total_ingresos"`
	FinalBalance        decimal.Decimal `json:"final_balance"`
}

// CalcularCliente computes the client account summary. Empty lists sum to 0.
func CalcularCliente(c Categorias) ResumenCliente {
	r := ResumenCliente{
		TotalBoletas:        Sumar(c.Boletas),
		TotalVentas:         Sumar(c.Ventas),
		TotalPlataFavor:     Sumar(c.PlataFavor),
		TotalEfectivo:       Sumar(c.Efectivo),
		TotalCheques:        Sumar(c.Cheques),
		TotalTransferencias: Sumar(c.Transferencias),
	}
	r.TotalIngresos = r.TotalVentas.
		Add(r.TotalPlataFavor).
		Add(r.TotalEfectivo).
		Add(r.TotalCheques).
		Add(r.TotalTransferencias)
	r.FinalBalance = r.TotalIngresos.Sub(r.TotalBoletas)
	return r
}

// ResumenTransferencias is the transfer relationship summary.
type ResumenTransferencias struct {
	TotalTransferencias decimal.Decimal `json:"total_transferencias"`
	TotalBoletas        decimal.Decimal `json:"total_boletas"`
	SaldoFinal          decimal.Decimal `json:"saldo_final"`
}

// CalcularTransferencias computes saldoFinal = Σ transferencias − Σ boletas.
func CalcularTransferencias(transferencias, boletas []Movimiento) ResumenTransferencias {
	r := ResumenTransferencias{
		TotalTransferencias: Sumar(transferencias),
		TotalBoletas:        Sumar(boletas),
	}
	r.SaldoFinal = r.TotalTransferencias.Sub(r.TotalBoletas)
	return r
}

// MensajeCliente describes a client account FinalBalance as the page shows it.
func MensajeCliente(cliente string, finalBalance decimal.Decimal) string {
	monto := format.FormatCurrency(finalBalance.Abs())
	switch {
	case finalBalance.IsNegative():
		return fmt.Sprintf("Tú le debes %s a %s", monto, cliente)
	case finalBalance.IsPositive():
		return fmt.Sprintf("%s te debe %s", cliente, monto)
	default:
		return "No hay saldo pendiente con " + cliente
	}
}

// MensajeTransferencia describes a transfer SaldoFinal. Positive means the
// operator owes the client.
func MensajeTransferencia(cliente string, saldoFinal decimal.Decimal) string {
	monto := format.FormatCurrency(saldoFinal.Abs())
	switch {
	case saldoFinal.IsPositive():
		return fmt.Sprintf("Le debes %s a %s", monto, cliente)
	case saldoFinal.IsNegative():
		return fmt.Sprintf("%s te debe %s", cliente, monto)
	default:
		return "No hay saldo pendiente con " + cliente
	}
}

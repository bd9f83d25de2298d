package infra

// Printable documents.
// Every amount goes through format.FormatCurrency and every date through
// format.FormatDateSafe so the paper copy matches the screen.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mireparto/internal/balance"
	"mireparto/internal/format"
	"mireparto/internal/model"

	"github.com/go-pdf/fpdf"
)

const (
	margen   = 15.0
	altoFila = 7.0
)

var etiquetasEstado = map[model.EstadoPago]string{
	model.EstadoPendiente: "Pendiente",
	model.EstadoParcial:   "Parcial",
	model.EstadoPagado:    "Pagado",
}

// documento wraps an A4 page with the UTF-8 to cp1252 translator the core
// fonts need for accents and "ñ".
type documento struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	ancho float64
}

func nuevoDocumento(titulo, subtitulo string) *documento {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margen, margen, margen)
	pdf.SetAutoPageBreak(true, margen)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	d := &documento{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), ancho: pageW - 2*margen}

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(d.ancho, 9, d.tr(titulo), "", 1, "C", false, 0, "")
	if subtitulo != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(d.ancho, 6, d.tr(subtitulo), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
	return d
}

func (d *documento) encabezado(cols []float64, titulos []string, aligns []string) {
	d.pdf.SetFont("Helvetica", "B", 9)
	d.pdf.SetFillColor(230, 230, 230)
	for i, t := range titulos {
		d.pdf.CellFormat(cols[i], altoFila, d.tr(t), "1", 0, aligns[i], true, 0, "")
	}
	d.pdf.Ln(-1)
	d.pdf.SetFont("Helvetica", "", 9)
}

func (d *documento) fila(cols []float64, valores []string, aligns []string) {
	for i, v := range valores {
		d.pdf.CellFormat(cols[i], altoFila, d.tr(v), "1", 0, aligns[i], false, 0, "")
	}
	d.pdf.Ln(-1)
}

func (d *documento) total(etiqueta, valor string) {
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(d.ancho*0.7, altoFila, d.tr(etiqueta), "", 0, "R", false, 0, "")
	d.pdf.CellFormat(d.ancho*0.3, altoFila, d.tr(valor), "", 1, "R", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 9)
}

func (d *documento) mensaje(texto string) {
	d.pdf.Ln(4)
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.MultiCell(d.ancho, 7, d.tr(texto), "1", "C", false)
}

func (d *documento) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: output: %w", err)
	}
	return buf.Bytes(), nil
}

// RepartoPDF renders the delivery batch of one day with each client's status.
func RepartoPDF(r *model.Reparto) ([]byte, error) {
	d := nuevoDocumento("Reparto", format.FormatDateSafe(r.Fecha))

	cols := []float64{d.ancho * 0.34, d.ancho * 0.22, d.ancho * 0.2, d.ancho * 0.24}
	aligns := []string{"L", "R", "C", "R"}
	d.encabezado(cols, []string{"Cliente", "Importe", "Estado", "Pagado"}, aligns)
	for _, c := range r.Clientes {
		d.fila(cols, []string{
			c.Cliente,
			format.FormatCurrency(c.Importe),
			etiquetasEstado[c.Estado],
			format.FormatCurrency(c.MontoPagado),
		}, aligns)
	}

	d.pdf.Ln(3)
	cobrado := r.TotalCobrado()
	d.total(fmt.Sprintf("Total (%d clientes):", r.Cantidad), format.FormatCurrency(r.Total))
	d.total("Cobrado:", format.FormatCurrency(cobrado))
	d.total("Pendiente:", format.FormatCurrency(r.Total.Sub(cobrado)))
	return d.bytes()
}

func (d *documento) seccionMovimientos(titulo string, items []balance.Movimiento) {
	if len(items) == 0 {
		return
	}
	d.pdf.SetFont("Helvetica", "B", 11)
	d.pdf.CellFormat(d.ancho, 8, d.tr(titulo), "", 1, "L", false, 0, "")

	cols := []float64{d.ancho * 0.25, d.ancho * 0.5, d.ancho * 0.25}
	aligns := []string{"C", "L", "R"}
	d.encabezado(cols, []string{"Fecha", "Descripción", "Monto"}, aligns)
	for _, it := range items {
		d.fila(cols, []string{
			format.FormatDateSafe(it.Fecha),
			it.Descripcion,
			format.FormatCurrency(it.Monto.Value()),
		}, aligns)
	}
	d.total("Subtotal:", format.FormatCurrency(balance.Sumar(items)))
	d.pdf.Ln(2)
}

// SaldoClientePDF renders a client account snapshot.
func SaldoClientePDF(s *model.SaldoCliente) ([]byte, error) {
	sub := s.Cliente
	if s.Fecha != "" {
		sub += " - " + format.FormatDateSafe(s.Fecha)
	}
	d := nuevoDocumento("Saldo de cliente", sub)

	d.seccionMovimientos("Boletas", s.Categorias.Boletas)
	d.seccionMovimientos("Ventas", s.Categorias.Ventas)
	d.seccionMovimientos("Plata a favor", s.Categorias.PlataFavor)
	d.seccionMovimientos("Efectivo", s.Categorias.Efectivo)
	d.seccionMovimientos("Cheques", s.Categorias.Cheques)
	d.seccionMovimientos("Transferencias", s.Categorias.Transferencias)

	d.total("Total boletas:", format.FormatCurrency(s.TotalBoletas))
	d.total("Total ingresos:", format.FormatCurrency(s.TotalIngresos))
	d.total("Saldo final:", format.FormatCurrency(s.FinalBalance))
	d.mensaje(s.Mensaje)
	return d.bytes()
}

// TransferenciaPDF renders a transfer relationship snapshot.
func TransferenciaPDF(t *model.TransferenciaCliente) ([]byte, error) {
	d := nuevoDocumento("Transferencias", t.Cliente)

	d.seccionMovimientos("Transferencias", t.Transferencias)
	d.seccionMovimientos("Boletas", t.Boletas)

	d.total("Total transferencias:", format.FormatCurrency(t.TotalTransferencias))
	d.total("Total boletas:", format.FormatCurrency(t.TotalBoletas))
	d.total("Saldo final:", format.FormatCurrency(t.SaldoFinal))
	d.mensaje(t.Mensaje)
	return d.bytes()
}

// GuardarPDF writes data under storagePath (created if needed) and returns
// the file path.
func GuardarPDF(storagePath, fileName string, data []byte) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, filepath.Base(fileName))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// NombreArchivo builds a safe download name such as "saldo_juan_perez.pdf".
func NombreArchivo(prefijo, nombre string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(nombre)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '/':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return prefijo + ".pdf"
	}
	return prefijo + "_" + b.String() + ".pdf"
}

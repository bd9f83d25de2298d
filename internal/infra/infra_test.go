package infra

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"mireparto/internal/balance"
	"mireparto/internal/format"
	"mireparto/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func planilla(t *testing.T, filas [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, fila := range filas {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		fila := fila
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &fila))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestLeerPreciosXLSX_ConEncabezado(t *testing.T) {
	buf := planilla(t, [][]any{
		{"Producto", "Precio"},
		{"Asado", 4000.5},
		{"Vacío", "5.200,00"},
		{"", 100},
		{"Matambre", "consultar"},
	})

	p, err := LeerPreciosXLSX(buf)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", p.Hoja)
	require.Len(t, p.Filas, 2)
	assert.Equal(t, "Asado", p.Filas[0].Producto)
	assert.True(t, p.Filas[0].Precio.Equal(decimal.RequireFromString("4000.5")), "got %s", p.Filas[0].Precio)
	assert.True(t, p.Filas[1].Precio.Equal(decimal.NewFromInt(5200)))
	assert.Equal(t, 4, p.Leidas)
	assert.Equal(t, 2, p.Omitidas)
}

func TestLeerPreciosXLSX_SinEncabezado(t *testing.T) {
	p, err := LeerPreciosXLSX(planilla(t, [][]any{{"Pollo", 1800}, {"Cerdo", 2900}}))
	require.NoError(t, err)
	require.Len(t, p.Filas, 2)
	assert.True(t, p.Filas[1].Precio.Equal(decimal.NewFromInt(2900)))
}

func TestLeerPreciosXLSX_Invalido(t *testing.T) {
	_, err := LeerPreciosXLSX(bytes.NewBufferString("no soy un xlsx"))
	assert.Error(t, err)
}

func TestExportarSemanaXLSX(t *testing.T) {
	s := &model.Semana{
		FechaInicio: "2024-03-04",
		Mercaderia: []model.EntradaMercaderia{{Dia: "lunes", Proveedor: "Sur",
			Cortes: []model.Pesada{{Nombre: "Asado", Kg: format.AmountOf(10), Precio: format.AmountOf(4000)}}}},
		Empleados: []model.Empleado{{Nombre: "Luis", Sueldo: format.AmountOf(1000)}},
		Gastos:    []model.Gasto{{Fecha: "2024-03-05", Descripcion: "Nafta", Monto: format.AmountOf("500")}},
	}

	data, err := ExportarSemanaXLSX(s)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Resumen", "Mercadería", "Embutidos", "Empleados", "Adelantos", "Gastos", "Cuentas"}, f.GetSheetList())

	desde, err := f.GetCellValue("Resumen", "B1")
	require.NoError(t, err)
	assert.Equal(t, "04/03/2024", desde)

	rows, err := f.GetRows("Mercadería")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Asado", rows[1][2])
	assert.Equal(t, "40000", rows[1][5])
}

func TestPDFs(t *testing.T) {
	rep := &model.Reparto{Fecha: "2024-03-05", Clientes: []model.CargoCliente{
		{Cliente: "Almacén Ñandú", Importe: decimal.NewFromInt(1000), Estado: model.EstadoParcial, MontoPagado: decimal.NewFromInt(400)},
	}}
	rep.Recalcular()
	data, err := RepartoPDF(rep)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	saldo := &model.SaldoCliente{Cliente: "Juan", Fecha: "2024-03-05", Categorias: balance.Categorias{
		Boletas: []balance.Movimiento{{Fecha: "2024-03-01", Monto: format.AmountOf("1.000,00"), Descripcion: "boleta 1"}},
	}}
	saldo.AplicarResumen(balance.CalcularCliente(saldo.Categorias))
	data, err = SaldoClientePDF(saldo)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	tr := &model.TransferenciaCliente{Cliente: "Juan"}
	tr.AplicarResumen(balance.CalcularTransferencias(nil, nil))
	data, err = TransferenciaPDF(tr)
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := GuardarPDF(filepath.Join(dir, "pdfs"), "../"+NombreArchivo("transferencia", "Juan"), data)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pdfs", "transferencia_juan.pdf"), path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNombreArchivo(t *testing.T) {
	assert.Equal(t, "saldo_juan_perez.pdf", NombreArchivo("saldo", " Juan Perez "))
	assert.Equal(t, "reparto_2024_03_05.pdf", NombreArchivo("reparto", "2024-03-05"))
	assert.Equal(t, "saldo.pdf", NombreArchivo("saldo", "<>"))
}

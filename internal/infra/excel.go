package infra

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"mireparto/internal/format"
	"mireparto/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var ErrPlanillaVacia = errors.New("la planilla no tiene filas")

// FilaPrecio is one product row read from a spreadsheet.
type FilaPrecio struct {
	Producto string
	Precio   decimal.Decimal
}

type PlanillaPrecios struct {
	Hoja     string
	Filas    []FilaPrecio
	Leidas   int
	Omitidas int
}

// LeerPreciosXLSX reads the first sheet: column A is the product, column B
// the price. A first row whose price cell is not a number is taken as a
// header. Rows with no product or an unreadable price are skipped.
func LeerPreciosXLSX(r io.Reader) (*PlanillaPrecios, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: abrir: %w", err)
	}
	defer f.Close()

	hojas := f.GetSheetList()
	if len(hojas) == 0 {
		return nil, ErrPlanillaVacia
	}
	hoja := hojas[0]

	rows, err := f.GetRows(hoja, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("excel: leer %s: %w", hoja, err)
	}
	if len(rows) == 0 {
		return nil, ErrPlanillaVacia
	}

	out := &PlanillaPrecios{Hoja: hoja}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		out.Leidas++
		producto := strings.TrimSpace(row[0])
		var celda string
		if len(row) > 1 {
			celda = row[1]
		}
		precio, ok := leerPrecio(f, hoja, i, celda)
		if i == 0 && !ok {
			// header row
			out.Leidas--
			continue
		}
		if producto == "" || !ok {
			out.Omitidas++
			continue
		}
		out.Filas = append(out.Filas, FilaPrecio{Producto: producto, Precio: precio})
	}
	return out, nil
}

// leerPrecio reads numeric cells as plain numbers and text cells with the
// es-AR rules users type them in ("4.000,50").
func leerPrecio(f *excelize.File, hoja string, fila int, celda string) (decimal.Decimal, bool) {
	celda = strings.TrimSpace(celda)
	if celda == "" {
		return decimal.Zero, false
	}
	axis, err := excelize.CoordinatesToCellName(2, fila+1)
	if err != nil {
		return decimal.Zero, false
	}
	tipo, _ := f.GetCellType(hoja, axis)
	if tipo == excelize.CellTypeSharedString || tipo == excelize.CellTypeInlineString {
		return format.ParseCurrencyStrict(celda)
	}
	if d, err := decimal.NewFromString(celda); err == nil {
		return d, true
	}
	return format.ParseCurrencyStrict(celda)
}

// ExportarSemanaXLSX writes the weekly ledger, one sheet per list plus a
// summary sheet.
func ExportarSemanaXLSX(s *model.Semana) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	r := s.Resumen()
	if err := f.SetSheetName("Sheet1", "Resumen"); err != nil {
		return nil, err
	}
	resumen := [][]any{
		{"Semana desde", format.FormatDateSafe(s.FechaInicio)},
		{"Mercadería", r.TotalMercaderia.InexactFloat64()},
		{"Embutidos", r.TotalEmbutidos.InexactFloat64()},
		{"Sueldos", r.TotalSueldos.InexactFloat64()},
		{"Adelantos", r.TotalAdelantos.InexactFloat64()},
		{"Gastos", r.TotalGastos.InexactFloat64()},
		{"Cuentas de clientes", r.TotalCuentas.InexactFloat64()},
		{"Total egresos", r.TotalEgresos.InexactFloat64()},
	}
	if err := escribirFilas(f, "Resumen", nil, resumen); err != nil {
		return nil, err
	}

	var mercaderia [][]any
	for _, m := range s.Mercaderia {
		for _, c := range m.Cortes {
			mercaderia = append(mercaderia, []any{m.Dia, m.Proveedor, c.Nombre,
				c.Kg.Value().InexactFloat64(), c.Precio.Value().InexactFloat64(), c.Subtotal().InexactFloat64()})
		}
	}
	var embutidos [][]any
	for _, e := range s.Embutidos {
		for _, t := range e.Tipos {
			embutidos = append(embutidos, []any{e.Dia, t.Nombre,
				t.Kg.Value().InexactFloat64(), t.Precio.Value().InexactFloat64(), t.Subtotal().InexactFloat64()})
		}
	}
	var empleados [][]any
	for _, e := range r.Empleados {
		empleados = append(empleados, []any{e.Nombre, e.Sueldo.InexactFloat64(),
			e.Adelantos.InexactFloat64(), e.Saldo.InexactFloat64()})
	}
	var adelantos [][]any
	for _, a := range s.Adelantos {
		adelantos = append(adelantos, []any{a.Empleado, a.Dia, a.Monto.Value().InexactFloat64(), a.Descripcion})
	}
	var gastos [][]any
	for _, g := range s.Gastos {
		gastos = append(gastos, []any{format.FormatDateSafe(g.Fecha), g.Descripcion, g.Monto.Value().InexactFloat64()})
	}
	var cuentas [][]any
	for _, c := range s.Cuentas {
		for _, cargo := range c.Cargos {
			cuentas = append(cuentas, []any{c.Nombre, cargo.Dia, cargo.Monto.Value().InexactFloat64()})
		}
	}

	hojas := []struct {
		nombre  string
		titulos []any
		filas   [][]any
	}{
		{"Mercadería", []any{"Día", "Proveedor", "Corte", "Kg", "Precio", "Subtotal"}, mercaderia},
		{"Embutidos", []any{"Día", "Tipo", "Kg", "Precio", "Subtotal"}, embutidos},
		{"Empleados", []any{"Nombre", "Sueldo", "Adelantos", "Saldo"}, empleados},
		{"Adelantos", []any{"Empleado", "Día", "Monto", "Descripción"}, adelantos},
		{"Gastos", []any{"Fecha", "Descripción", "Monto"}, gastos},
		{"Cuentas", []any{"Cliente", "Día", "Monto"}, cuentas},
	}
	for _, h := range hojas {
		if _, err := f.NewSheet(h.nombre); err != nil {
			return nil, err
		}
		if err := escribirFilas(f, h.nombre, h.titulos, h.filas); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func escribirFilas(f *excelize.File, hoja string, titulos []any, filas [][]any) error {
	n := 1
	if titulos != nil {
		if err := f.SetSheetRow(hoja, "A1", &titulos); err != nil {
			return err
		}
		n++
	}
	for _, fila := range filas {
		cell, err := excelize.CoordinatesToCellName(1, n)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(hoja, cell, &fila); err != nil {
			return err
		}
		n++
	}
	return nil
}

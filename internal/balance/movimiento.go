package balance

import (
	"encoding/json"
	"strings"

	"mireparto/internal/format"
)

// Movimiento is one row of a category list: a boleta, a cash payment, a
// cheque, a transfer. Pages disagree on field names, so both the Spanish
// and the English spellings are accepted when decoding.
type Movimiento struct {
	Fecha       string        `json:"fecha,omitempty"`
	Monto       format.Amount `json:"monto"`
	Descripcion string        `json:"descripcion,omitempty"`
}

type movimientoJSON struct {
	Fecha       string        `json:"fecha"`
	Date        string        `json:"date"`
	Monto       format.Amount `json:"monto"`
	Amount      format.Amount `json:"amount"`
	Descripcion string        `json:"descripcion"`
	Description string        `json:"description"`
}

func (m *Movimiento) UnmarshalJSON(data []byte) error {
	var raw movimientoJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Fecha = firstNonEmpty(raw.Fecha, raw.Date)
	m.Monto = raw.Monto
	if m.Monto.IsBlank() {
		m.Monto = raw.Amount
	}
	m.Descripcion = firstNonEmpty(raw.Descripcion, raw.Description)
	return nil
}

// Vacio reports whether the row should not be persisted: the amount is
// blank, unreadable, zero or negative.
func (m Movimiento) Vacio() bool { return !m.Monto.Value().IsPositive() }

// FiltrarValidos drops the rows without a positive amount.
func FiltrarValidos(items []Movimiento) []Movimiento {
	out := make([]Movimiento, 0, len(items))
	for _, it := range items {
		if it.Vacio() {
			continue
		}
		it.Fecha = strings.TrimSpace(it.Fecha)
		it.Descripcion = strings.TrimSpace(it.Descripcion)
		out = append(out, it)
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

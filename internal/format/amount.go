package format

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount keeps an amount exactly as the form sent it: a JSON number, the
// text the user typed, or nothing. Its numeric value is only computed on
// demand, so "1.000,00" and 1000 are both read correctly.
type Amount struct {
	raw any // nil | json.Number | string
}

// AmountOf wraps a number or a typed string.
func AmountOf(v any) Amount {
	switch x := v.(type) {
	case float64, float32, int, int32, int64:
		return Amount{raw: json.Number(toNumber(x).String())}
	case decimal.Decimal:
		return Amount{raw: json.Number(x.String())}
	case json.Number, string, nil:
		return Amount{raw: x}
	default:
		return Amount{}
	}
}

// Value parses the amount with ParseCurrencyValue rules.
func (a Amount) Value() decimal.Decimal {
	switch v := a.raw.(type) {
	case json.Number:
		return toNumber(v)
	case string:
		return ParseCurrencyValue(v)
	default:
		return decimal.Zero
	}
}

// Numeric is Value with ParseCurrencyStrict rules.
func (a Amount) Numeric() (decimal.Decimal, bool) {
	switch v := a.raw.(type) {
	case json.Number:
		return ParseCurrencyStrict(v)
	case string:
		return ParseCurrencyStrict(v)
	default:
		return decimal.Zero, false
	}
}

// IsBlank reports whether nothing was entered.
func (a Amount) IsBlank() bool {
	switch v := a.raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	switch v := a.raw.(type) {
	case json.Number:
		return []byte(v), nil
	case string:
		return json.Marshal(v)
	default:
		return []byte("null"), nil
	}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case json.Number, string:
		a.raw = x
	default:
		// booleans, objects and arrays carry no amount
		a.raw = nil
	}
	return nil
}

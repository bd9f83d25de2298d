// Package format holds the es-AR money and date helpers shared by every page.
// Amount parsing never fails: anything that cannot be read as a number is zero.
package format

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	currencySymbol     = "$"
	thousandsSeparator = "."
	decimalSeparator   = ","
)

// maxExponent bounds the decimal exponent kept from parsed text.
const maxExponent = 30

// leadingNumber matches the longest numeric prefix a browser's parseFloat accepts.
var leadingNumber = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// FormatCurrency renders value as es-AR pesos, e.g. 1234.5 -> "$1.234,50".
// Strings are read as plain numbers; unreadable input renders as "$0,00".
func FormatCurrency(value any) string {
	d := toNumber(value).Round(2)
	if d.IsNegative() {
		return "-" + currencySymbol + groupDigits(d.Abs())
	}
	return currencySymbol + groupDigits(d)
}

// FormatCurrencyNoSymbol is FormatCurrency without the "$", used to prefill
// editable amount fields so ParseCurrencyValue can read them back.
func FormatCurrencyNoSymbol(value any) string {
	d := toNumber(value).Round(2)
	if d.IsNegative() {
		return "-" + groupDigits(d.Abs())
	}
	return groupDigits(d)
}

// ParseCurrencyValue reads an amount typed in es-AR notation ("$1.234,56").
// nil is 0, numbers are taken as they are, strings lose "$" and the "."
// thousands separator and use "," as the decimal point. Anything else is 0.
func ParseCurrencyValue(input any) decimal.Decimal {
	switch v := input.(type) {
	case nil:
		return decimal.Zero
	case string:
		s := strings.ReplaceAll(v, currencySymbol, "")
		s = strings.ReplaceAll(s, thousandsSeparator, "")
		s = strings.ReplaceAll(s, decimalSeparator, ".")
		return parseFloatPrefix(strings.TrimSpace(s))
	case Amount:
		return v.Value()
	case *Amount:
		if v == nil {
			return decimal.Zero
		}
		return v.Value()
	default:
		return toNumber(v)
	}
}

// ParseCurrencyStrict reads input like ParseCurrencyValue but reports false
// when the text is blank, not entirely a number, or not finite. It is used
// where an unreadable edit must leave the value untouched.
func ParseCurrencyStrict(input any) (decimal.Decimal, bool) {
	switch v := input.(type) {
	case nil:
		return decimal.Zero, false
	case string:
		s := strings.ReplaceAll(v, currencySymbol, "")
		s = strings.ReplaceAll(s, thousandsSeparator, "")
		s = strings.ReplaceAll(s, decimalSeparator, ".")
		return parseWhole(strings.TrimSpace(s))
	case json.Number:
		return parseWhole(strings.TrimSpace(string(v)))
	case Amount:
		return v.Numeric()
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	case int, int32, int64, decimal.Decimal:
		return toNumber(v), true
	default:
		return decimal.Zero, false
	}
}

func parseWhole(s string) (decimal.Decimal, bool) {
	m := leadingNumber.FindString(s)
	if m == "" || m != s || strings.Contains(m, "Infinity") {
		return decimal.Zero, false
	}
	d := parseFloatPrefix(m)
	if d.IsZero() && strings.ContainsAny(m, "eE") {
		// overflowing exponents read as zero in parseFloatPrefix
		if f, err := strconv.ParseFloat(m, 64); err != nil || math.IsInf(f, 0) {
			return decimal.Zero, false
		}
	}
	return d, true
}

// toNumber coerces numbers and plain numeric strings; it never applies the
// es-AR separator rules.
func toNumber(value any) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero
		}
		return *v
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case json.Number:
		return parseFloatPrefix(strings.TrimSpace(string(v)))
	case string:
		return parseFloatPrefix(strings.TrimSpace(v))
	case Amount:
		return v.Value()
	default:
		return decimal.Zero
	}
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// parseFloatPrefix keeps the leading number of s and drops the rest, so
// "12abc" is 12 and "abc" is 0. Infinite results are treated as 0.
func parseFloatPrefix(s string) decimal.Decimal {
	m := leadingNumber.FindString(s)
	if m == "" {
		return decimal.Zero
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(m, "+"))
	if err != nil || d.Exponent() < -maxExponent || d.Exponent() > maxExponent {
		// the float64 reading keeps the exponent small enough for Round and StringFixed
		return decimal.NewFromFloat(f)
	}
	return d
}

// groupDigits renders a non-negative amount with two decimals and es-AR separators.
func groupDigits(d decimal.Decimal) string {
	parts := strings.SplitN(d.StringFixed(2), ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousandsSeparator)
		}
		b.WriteRune(c)
	}
	b.WriteString(decimalSeparator)
	b.WriteString(decPart)
	return b.String()
}

// internal/workers/spreadsheet/build-invoice-xlsx/coerce.go
package buildinvoicexlsx

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"sheetsmith/internal/models"
)

var priceNumeral = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

// FormatDescription joins the trimmed sku and description, skipping empty parts.
func FormatDescription(sku, desc string) string {
	parts := make([]string, 0, 2)
	for _, s := range []string{sku, desc} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, DescriptionSeparator)
}

// CoerceQuantity converts a quantity to a number. Null, empty strings and text that
// does not parse as a finite number do not coerce.
func CoerceQuantity(v models.Value) (decimal.Decimal, bool) {
	if v.IsBlank() {
		return decimal.Zero, false
	}
	switch v.Kind {
	case models.KindNumber:
		return finiteDecimal(v.Num)
	case models.KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return decimal.Zero, false
		}
		return finiteDecimal(f)
	default:
		return decimal.Zero, false
	}
}

// CoercePrice converts a unit price to a number. Strings coerce only when, after
// removing commas and any rune of symbols, the trimmed text is a plain non-negative
// decimal numeral.
func CoercePrice(v models.Value, symbols string) (decimal.Decimal, bool) {
	switch v.Kind {
	case models.KindNumber:
		if v.Num < 0 {
			return decimal.Zero, false
		}
		return finiteDecimal(v.Num)
	case models.KindString:
		s := stripPrice(v.Str, symbols)
		if !priceNumeral.MatchString(s) {
			return decimal.Zero, false
		}
		if strings.HasPrefix(s, ".") {
			s = "0" + s
		}
		d, err := decimal.NewFromString(strings.TrimSuffix(s, "."))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// ComputeAmount returns qty × price when both coerce and the raw price otherwise.
func ComputeAmount(qty, price models.Value, symbols string) models.Value {
	amount, ok := computeAmount(qty, price, symbols)
	if !ok {
		return price
	}
	return amount
}

func computeAmount(qty, price models.Value, symbols string) (models.Value, bool) {
	q, ok := CoerceQuantity(qty)
	if !ok {
		return price, false
	}
	p, ok := CoercePrice(price, symbols)
	if !ok {
		return price, false
	}
	return models.Number(q.Mul(p).InexactFloat64()), true
}

func stripPrice(s, symbols string) string {
	s = strings.Map(func(r rune) rune {
		if r == ',' || strings.ContainsRune(symbols, r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func finiteDecimal(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// internal/workers/spreadsheet/build-invoice-xlsx/coerce_test.go
package buildinvoicexlsx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sheetsmith/internal/models"
)

func TestFormatDescription(t *testing.T) {
	tests := []struct {
		sku, desc, expected string
	}{
		{"A1", "Widget", "A1 — Widget"},
		{"  A1 ", " Widget  ", "A1 — Widget"},
		{"", "Widget", "Widget"},
		{"A1", "", "A1"},
		{"   ", "\t", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDescription(tt.sku, tt.desc))
		})
	}
}

func TestCoerceQuantity(t *testing.T) {
	tests := []struct {
		name     string
		value    models.Value
		ok       bool
		expected string
	}{
		{"integer number", models.Number(3), true, "3"},
		{"fraction", models.Number(0.5), true, "0.5"},
		{"negative", models.Number(-2), true, "-2"},
		{"numeric string", models.String(" 4 "), true, "4"},
		{"exponent string", models.String("1e2"), true, "100"},
		{"null", models.Null(), false, ""},
		{"empty string", models.String(""), false, ""},
		{"blank string", models.String("   "), false, ""},
		{"text", models.String("two"), false, ""},
		{"infinity text", models.String("inf"), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := CoerceQuantity(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, d.String())
			}
		})
	}
}

func TestCoercePrice(t *testing.T) {
	tests := []struct {
		name     string
		value    models.Value
		ok       bool
		expected string
	}{
		{"number", models.Number(12.5), true, "12.5"},
		{"zero", models.Number(0), true, "0"},
		{"negative number", models.Number(-1), false, ""},
		{"plain string", models.String("12.50"), true, "12.5"},
		{"currency symbol", models.String("£12.50"), true, "12.5"},
		{"thousands separator", models.String("£1,250.00"), true, "1250"},
		{"padded", models.String("  £ 7 "), true, "7"},
		{"trailing point", models.String("12."), true, "12"},
		{"leading point", models.String(".5"), true, "0.5"},
		{"negative string", models.String("-5"), false, ""},
		{"two points", models.String("1.2.3"), false, ""},
		{"other currency", models.String("$5"), false, ""},
		{"text", models.String("n/a"), false, ""},
		{"exponent", models.String("1e3"), false, ""},
		{"only symbol", models.String("£"), false, ""},
		{"empty", models.String(""), false, ""},
		{"null", models.Null(), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := CoercePrice(tt.value, "£")
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, d.String())
			}
		})
	}
}

func TestCoercePrice_ConfiguredSymbols(t *testing.T) {
	d, ok := CoercePrice(models.String("$1,000.25"), "£$€")
	assert.True(t, ok)
	assert.Equal(t, "1000.25", d.String())

	_, ok = CoercePrice(models.String("$5"), "")
	assert.False(t, ok)
}

func TestComputeAmount(t *testing.T) {
	tests := []struct {
		name     string
		qty      models.Value
		price    models.Value
		expected models.Value
	}{
		{"number times symbol price", models.Number(3), models.String("£12.50"), models.Number(37.5)},
		{"string quantity", models.String("2"), models.Number(9.99), models.Number(19.98)},
		{"decimal exactness", models.Number(3), models.String("0.1"), models.Number(0.3)},
		{"text price echoed", models.Number(2), models.String("n/a"), models.String("n/a")},
		{"null quantity echoes price", models.Null(), models.Number(10), models.Number(10)},
		{"empty quantity echoes price", models.String(""), models.String("£5"), models.String("£5")},
		{"null price echoed", models.Number(1), models.Null(), models.Null()},
		{"subtotal row", models.Null(), models.String("Subtotal"), models.String("Subtotal")},
		{"negative price echoed", models.Number(2), models.Number(-3), models.Number(-3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeAmount(tt.qty, tt.price, "£"))
		})
	}
}

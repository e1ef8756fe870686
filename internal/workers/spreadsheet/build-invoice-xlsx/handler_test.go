// internal/workers/spreadsheet/build-invoice-xlsx/handler_test.go
package buildinvoicexlsx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apihttp "sheetsmith/internal/common/http"
	"sheetsmith/internal/common/logger"
	"sheetsmith/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(DefaultConfig(), logger.NewTestLogger(t), nil)
}

func createTestInvoice() models.InvoicePayload {
	p := models.NewInvoicePayload()
	p.InvoiceNumber = "INV-7"
	p.IssueDate = "2025-01-31"
	p.DocumentLabel = "Invoice"
	p.PurchaseOrderNumber = "PO-FALLBACK"
	p.ProjectName = "Kitchen refit"
	p.ClientContact = "Sam"
	p.Customer = map[string]string{"name": "Acme Ltd", "address": "1 High St", "email": "ap@acme.test"}
	p.Meta = map[string]string{"currency": "GBP"}
	p.Items = []models.LineItem{
		{SKU: "A1", Description: "Widget", Quantity: models.Number(3), UnitPrice: models.String("£12.50")},
		{Description: "Consulting", Quantity: models.Number(2), UnitPrice: models.String("n/a")},
		{Description: "Subtotal", Quantity: models.Null(), UnitPrice: models.Number(10)},
	}
	return p
}

func openWorkbook(t *testing.T, content []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(SheetName, cell)
	require.NoError(t, err)
	return v
}

func cellBorders(t *testing.T, f *excelize.File, cell string) []excelize.Border {
	t.Helper()
	idx, err := f.GetCellStyle(SheetName, cell)
	require.NoError(t, err)
	style, err := f.GetStyle(idx)
	require.NoError(t, err)
	return style.Border
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Layout(t *testing.T) {
	h := createTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{Invoice: createTestInvoice()})
	require.NoError(t, err)

	assert.Equal(t, "INV-7.xlsx", output.Filename)
	assert.Equal(t, 3, output.ItemRows)
	assert.Equal(t, PaddedUntilRow, output.FooterRow)
	assert.Equal(t, 1, output.ComputedAmounts)

	f := openWorkbook(t, output.Content)
	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	t.Run("header block", func(t *testing.T) {
		expected := map[string]string{
			"A1": "Invoice",
			"A3": "Project: Kitchen refit",
			"A4": "Customer: Acme Ltd",
			"A5": "Address: 1 High St",
			"A6": "Contact: Sam",
			"A7": "Email: ap@acme.test",
			"E3": "Quote No: INV-7",
			"E4": "Date: 2025-01-31",
			"E5": "PO: PO-FALLBACK",
			"E6": "Currency: GBP",
		}
		for cell, text := range expected {
			assert.Equal(t, text, cellValue(t, f, cell), cell)
		}
	})

	t.Run("column widths", func(t *testing.T) {
		for _, cw := range ColumnWidths {
			width, err := f.GetColWidth(SheetName, cw.Column)
			require.NoError(t, err)
			assert.Equal(t, cw.Width, width, cw.Column)
		}
	})

	t.Run("table header", func(t *testing.T) {
		for i, label := range TableHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, TableHeaderRow)
			assert.Equal(t, label, cellValue(t, f, cell))
			assert.Len(t, cellBorders(t, f, cell), 4, cell)
		}
	})

	t.Run("item rows", func(t *testing.T) {
		assert.Equal(t, "1", cellValue(t, f, "A11"))
		assert.Equal(t, "A1 — Widget", cellValue(t, f, "B11"))
		assert.Equal(t, "3", cellValue(t, f, "C11"))
		assert.Equal(t, "£12.50", cellValue(t, f, "D11"))
		assert.Equal(t, "37.5", cellValue(t, f, "E11"))

		assert.Equal(t, "Consulting", cellValue(t, f, "B12"))
		assert.Equal(t, "n/a", cellValue(t, f, "E12"))

		assert.Equal(t, "", cellValue(t, f, "C13"))
		assert.Equal(t, "10", cellValue(t, f, "E13"))
	})

	t.Run("amount cell types", func(t *testing.T) {
		typ, err := f.GetCellType(SheetName, "E11")
		require.NoError(t, err)
		assert.NotEqual(t, excelize.CellTypeSharedString, typ)
		assert.NotEqual(t, excelize.CellTypeInlineString, typ)
	})

	t.Run("description wraps", func(t *testing.T) {
		idx, err := f.GetCellStyle(SheetName, "B11")
		require.NoError(t, err)
		style, err := f.GetStyle(idx)
		require.NoError(t, err)
		require.NotNil(t, style.Alignment)
		assert.True(t, style.Alignment.WrapText)
		assert.Equal(t, "top", style.Alignment.Vertical)
	})

	t.Run("borders", func(t *testing.T) {
		for _, cell := range []string{"A11", "E13", "A14", "C50", "E89"} {
			borders := cellBorders(t, f, cell)
			require.Len(t, borders, 4, cell)
			for _, b := range borders {
				assert.Equal(t, 1, b.Style, cell)
				assert.Contains(t, strings.ToUpper(b.Color), BorderColor, cell)
			}
		}
	})

	t.Run("footer", func(t *testing.T) {
		assert.Equal(t, FooterVATLabel, cellValue(t, f, "D90"))
		assert.Equal(t, FooterTotalLabel, cellValue(t, f, "D91"))
	})
}

func TestHandler_Execute_Defaults(t *testing.T) {
	h := createTestHandler(t)

	payload, err := models.DecodeInvoicePayload([]byte(`{}`))
	require.NoError(t, err)

	output, err := h.Execute(context.Background(), &Input{Invoice: payload})
	require.NoError(t, err)

	assert.Equal(t, "Invoice.xlsx", output.Filename)
	assert.Equal(t, 0, output.ItemRows)
	assert.Equal(t, PaddedUntilRow, output.FooterRow)

	f := openWorkbook(t, output.Content)
	assert.Equal(t, "Quote", cellValue(t, f, "A1"))
	assert.Equal(t, "Project: ", cellValue(t, f, "A3"))
	assert.Equal(t, "Quote No: Invoice", cellValue(t, f, "E3"))
	assert.Equal(t, "PO: ", cellValue(t, f, "E5"))
	assert.Len(t, cellBorders(t, f, "A11"), 4)
	assert.Equal(t, FooterVATLabel, cellValue(t, f, "D90"))
}

func TestHandler_Execute_MetaPOWins(t *testing.T) {
	h := createTestHandler(t)
	invoice := createTestInvoice()
	invoice.Meta["po"] = "PO-META"

	output, err := h.Execute(context.Background(), &Input{Invoice: invoice})
	require.NoError(t, err)

	f := openWorkbook(t, output.Content)
	assert.Equal(t, "PO: PO-META", cellValue(t, f, "E5"))
}

func TestHandler_Execute_OverflowPushesFooter(t *testing.T) {
	h := createTestHandler(t)
	invoice := models.NewInvoicePayload()
	for i := 0; i < 85; i++ {
		invoice.Items = append(invoice.Items, models.LineItem{
			Description: fmt.Sprintf("line %d", i+1),
			Quantity:    models.Number(1),
			UnitPrice:   models.Number(2),
		})
	}

	output, err := h.Execute(context.Background(), &Input{Invoice: invoice})
	require.NoError(t, err)

	assert.Equal(t, FirstItemRow+85, output.FooterRow)

	f := openWorkbook(t, output.Content)
	assert.Equal(t, "line 85", cellValue(t, f, "B95"))
	assert.Equal(t, FooterVATLabel, cellValue(t, f, "D96"))
	assert.Equal(t, FooterTotalLabel, cellValue(t, f, "D97"))
}

func TestHandler_Execute_Deterministic(t *testing.T) {
	h := createTestHandler(t)
	input := &Input{Invoice: createTestInvoice()}

	first, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first.Content, second.Content))
}

func TestHandler_Execute_CancelledContext(t *testing.T) {
	h := createTestHandler(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Execute(ctx, &Input{Invoice: createTestInvoice()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RENDER_FAILED")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "INV-7.xlsx", Filename("INV-7"))
	assert.Equal(t, "Invoice.xlsx", Filename(""))
}

func TestFooterStartRow(t *testing.T) {
	assert.Equal(t, PaddedUntilRow, FooterStartRow(0))
	assert.Equal(t, PaddedUntilRow, FooterStartRow(PaddedUntilRow-FirstItemRow))
	assert.Equal(t, PaddedUntilRow+1, FooterStartRow(PaddedUntilRow-FirstItemRow+1))
}

// ==========================
// HTTP Tests
// ==========================

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name         string
		contentType  string
		body         string
		expectStatus int
		expectCode   string
	}{
		{
			name:         "valid invoice",
			contentType:  "application/json",
			body:         `{"invoice_number":"INV-7","items":[{"sku":"A1","desc":"Widget","qty":3,"price":"£12.50"}]}`,
			expectStatus: http.StatusOK,
		},
		{
			name:         "no content type",
			body:         `{}`,
			expectStatus: http.StatusOK,
		},
		{
			name:         "malformed json",
			contentType:  "application/json",
			body:         `{"items": [`,
			expectStatus: http.StatusBadRequest,
			expectCode:   "INVALID_PAYLOAD",
		},
		{
			name:         "boolean quantity",
			contentType:  "application/json",
			body:         `{"items":[{"qty":true,"price":1}]}`,
			expectStatus: http.StatusBadRequest,
			expectCode:   "SCHEMA_VALIDATION_FAILED",
		},
		{
			name:         "items not an array",
			contentType:  "application/json",
			body:         `{"items":"nope"}`,
			expectStatus: http.StatusBadRequest,
			expectCode:   "SCHEMA_VALIDATION_FAILED",
		},
		{
			name:         "form body",
			contentType:  "application/x-www-form-urlencoded",
			body:         `a=b`,
			expectStatus: http.StatusUnsupportedMediaType,
			expectCode:   "UNSUPPORTED_MEDIA_TYPE",
		},
	}

	h := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, Route, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()

			h.Handle(rec, req)

			assert.Equal(t, tt.expectStatus, rec.Code)
			if tt.expectCode == "" {
				assert.Equal(t, apihttp.XLSXContentType, rec.Header().Get("Content-Type"))
				assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), `attachment; filename="`))
				openWorkbook(t, rec.Body.Bytes())
				return
			}

			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectCode, resp.Error.Code)
		})
	}
}

func TestHandler_Handle_Filename(t *testing.T) {
	h := createTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, Route, strings.NewReader(`{"invoice_number":"INV-7"}`))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="INV-7.xlsx"`, rec.Header().Get("Content-Disposition"))
}

func TestHandler_Handle_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	h := NewHandler(cfg, logger.NewTestLogger(t), nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, Route, strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ==========================
// Validation Schema Tests
// ==========================

func TestGetInputSchema(t *testing.T) {
	schema := GetInputSchema()

	assert.Equal(t, "object", schema.Type)
	assert.Empty(t, schema.Required)

	items, exists := schema.Properties["items"]
	require.True(t, exists)
	assert.Equal(t, "array", items.Type)
	require.NotNil(t, items.Items)
	assert.Equal(t, []string{"number", "string", "null"}, items.Items.Properties["qty"].Type)
	assert.Equal(t, []string{"number", "string", "null"}, items.Items.Properties["price"].Type)
}

func TestTaskType(t *testing.T) {
	assert.Equal(t, "build-invoice-xlsx", TaskType)
	assert.Equal(t, strings.ToLower(TaskType), TaskType)
}

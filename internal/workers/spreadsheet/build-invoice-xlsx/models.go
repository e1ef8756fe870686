// internal/workers/spreadsheet/build-invoice-xlsx/models.go
package buildinvoicexlsx

import "sheetsmith/internal/models"

type Input struct {
	Invoice models.InvoicePayload
}

type Output struct {
	Filename string
	Content  []byte
	// ItemRows is the number of line item rows written below the table header.
	ItemRows int
	// FooterRow is the row holding the VAT label; Total is on the row after it.
	FooterRow int
	// ComputedAmounts counts items whose amount was calculated rather than echoed.
	ComputedAmounts int
}

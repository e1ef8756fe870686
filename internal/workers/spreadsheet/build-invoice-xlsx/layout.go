// internal/workers/spreadsheet/build-invoice-xlsx/layout.go
package buildinvoicexlsx

// Fixed positions of the invoice sheet. Rows are 1-based.
const (
	SheetName = "Quote"

	TableHeaderRow = 10
	FirstItemRow   = TableHeaderRow + 1
	// Item rows and blank bordered rows fill the table up to, but not including, this row.
	PaddedUntilRow = 90

	ColIndex       = 1
	ColDescription = 2
	ColQuantity    = 3
	ColUnitPrice   = 4
	ColAmount      = 5

	FirstTableColumn = ColIndex
	LastTableColumn  = ColAmount

	DescriptionSeparator = " — "

	FooterVATLabel   = "VAT @ 20%"
	FooterTotalLabel = "Total"
	FooterColumn     = ColUnitPrice

	BorderColor = "AAAAAA"
)

// ColumnWidth is the width of one table column.
type ColumnWidth struct {
	Column string
	Width  float64
}

var ColumnWidths = []ColumnWidth{
	{Column: "A", Width: 6},
	{Column: "B", Width: 50},
	{Column: "C", Width: 12},
	{Column: "D", Width: 16},
	{Column: "E", Width: 16},
}

var TableHeaders = []string{"#", "Description", "Qty", "Unit Price", "Amount"}

// HeaderCell is one labelled cell of the block above the table.
type HeaderCell struct {
	Cell  string
	Label string
}

var (
	HeaderDocumentLabel = HeaderCell{Cell: "A1"}
	HeaderProject       = HeaderCell{Cell: "A3", Label: "Project: "}
	HeaderCustomer      = HeaderCell{Cell: "A4", Label: "Customer: "}
	HeaderAddress       = HeaderCell{Cell: "A5", Label: "Address: "}
	HeaderContact       = HeaderCell{Cell: "A6", Label: "Contact: "}
	HeaderEmail         = HeaderCell{Cell: "A7", Label: "Email: "}
	HeaderQuoteNumber   = HeaderCell{Cell: "E3", Label: "Quote No: "}
	HeaderDate          = HeaderCell{Cell: "E4", Label: "Date: "}
	HeaderPO            = HeaderCell{Cell: "E5", Label: "PO: "}
	HeaderCurrency      = HeaderCell{Cell: "E6", Label: "Currency: "}
)

// Text renders the cell with value appended to its label.
func (h HeaderCell) Text(value string) string {
	return h.Label + value
}

// FooterStartRow returns the row of the VAT label for an invoice with itemCount items.
// Invoices with more items than fit above PaddedUntilRow push the footer down.
func FooterStartRow(itemCount int) int {
	row := FirstItemRow + itemCount
	if row < PaddedUntilRow {
		row = PaddedUntilRow
	}
	return row
}

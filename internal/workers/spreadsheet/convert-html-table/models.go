// internal/workers/spreadsheet/convert-html-table/models.go
package converthtmltable

type Input struct {
	HTML string
}

type Output struct {
	Filename string
	Content  []byte
	Table    *Table
}

// Table is a parsed HTML table with spans expanded and rows padded to Width.
type Table struct {
	// Found is false when the document had no table; the other fields are then empty.
	Found bool
	// Header holds the header rows. It has exactly one row when InferredHeader is set.
	Header [][]string
	// InferredHeader is set when the table had no header row and column indexes
	// were used as labels.
	InferredHeader bool
	Rows           [][]string
	Width          int
}

// RowCount is the number of sheet rows the table occupies.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Header) + len(t.Rows)
}

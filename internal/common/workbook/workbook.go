// Package workbook holds the excelize plumbing shared by the spreadsheet renderers.
package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet every new excelize workbook starts with.
const DefaultSheet = "Sheet1"

// fixedTimestamp is written as the creation and modification time so identical
// input yields identical bytes.
const fixedTimestamp = "2006-09-16T00:00:00Z"

// New returns an empty workbook with pinned document properties.
func New(creator string) (*excelize.File, error) {
	f := excelize.NewFile()
	err := f.SetDocProps(&excelize.DocProperties{
		Creator:        creator,
		LastModifiedBy: creator,
		Created:        fixedTimestamp,
		Modified:       fixedTimestamp,
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("set document properties: %w", err)
	}
	return f, nil
}

// Bytes serializes f.
func Bytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ThinBorder returns a thin border of color on all four sides.
func ThinBorder(color string) []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, side := range sides {
		borders = append(borders, excelize.Border{Type: side, Color: color, Style: 1})
	}
	return borders
}

// Writer writes cells to one sheet and keeps the first error, so a render can be
// expressed as a flat sequence of writes checked once at the end.
type Writer struct {
	f     *excelize.File
	sheet string
	cells int
	err   error
}

func NewWriter(f *excelize.File, sheet string) *Writer {
	return &Writer{f: f, sheet: sheet}
}

// Set writes value at (col, row). A nil value leaves the cell untouched.
func (w *Writer) Set(col, row int, value interface{}) {
	if w.err != nil || value == nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.SetCell(cell, value)
}

// SetCell writes value at a named cell such as "A1".
func (w *Writer) SetCell(cell string, value interface{}) {
	if w.err != nil || value == nil {
		return
	}
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		w.err = fmt.Errorf("write %s!%s: %w", w.sheet, cell, err)
		return
	}
	w.cells++
}

// Style applies styleID to the rectangle spanning the two corners.
func (w *Writer) Style(fromCol, fromRow, toCol, toRow, styleID int) {
	if w.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		w.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellStyle(w.sheet, from, to, styleID); err != nil {
		w.err = fmt.Errorf("style %s!%s:%s: %w", w.sheet, from, to, err)
	}
}

// ColWidth sets the width of one column.
func (w *Writer) ColWidth(col string, width float64) {
	if w.err != nil {
		return
	}
	if err := w.f.SetColWidth(w.sheet, col, col, width); err != nil {
		w.err = fmt.Errorf("width of column %s: %w", col, err)
	}
}

// Cells returns the number of cells written so far.
func (w *Writer) Cells() int { return w.cells }

func (w *Writer) Err() error { return w.err }

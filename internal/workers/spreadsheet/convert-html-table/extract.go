// internal/workers/spreadsheet/convert-html-table/extract.go
package converthtmltable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxSpan bounds colspan and rowspan so a hostile attribute cannot blow up the sheet.
const maxSpan = 1000

type rawCell struct {
	text    string
	header  bool
	colspan int
	rowspan int
}

type rawRow []rawCell

func (r rawRow) allHeader() bool {
	if len(r) == 0 {
		return false
	}
	for _, c := range r {
		if !c.header {
			return false
		}
	}
	return true
}

// ExtractFirstTable parses html and returns its first table in document order.
// A document without a table yields a Table with Found unset.
func ExtractFirstTable(html string) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	removeHidden(doc.Selection)

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return &Table{}, nil
	}

	var headRows, bodyRows, footRows []rawRow
	table.Children().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "thead":
			headRows = append(headRows, sectionRows(child)...)
		case "tbody":
			bodyRows = append(bodyRows, sectionRows(child)...)
		case "tfoot":
			footRows = append(footRows, sectionRows(child)...)
		case "tr":
			bodyRows = append(bodyRows, parseRow(child))
		}
	})

	if len(headRows) == 0 {
		for len(bodyRows) > 0 && bodyRows[0].allHeader() {
			headRows = append(headRows, bodyRows[0])
			bodyRows = bodyRows[1:]
		}
	}

	header := dropEmpty(expandSpans(headRows))
	rows := dropEmpty(append(expandSpans(bodyRows), expandSpans(footRows)...))

	t := &Table{Found: true, Header: header, Rows: rows}
	for _, r := range append(append([][]string{}, header...), rows...) {
		if len(r) > t.Width {
			t.Width = len(r)
		}
	}
	pad(t.Header, t.Width)
	pad(t.Rows, t.Width)

	switch {
	case len(t.Header) == 0 && t.Width > 0:
		labels := make([]string, t.Width)
		for i := range labels {
			labels[i] = strconv.Itoa(i)
		}
		t.Header = [][]string{labels}
		t.InferredHeader = true
	case len(t.Header) == 1:
		t.Header[0] = normalizeLabels(t.Header[0])
	}
	return t, nil
}

func removeHidden(s *goquery.Selection) {
	s.Find("[style]").Each(func(_ int, el *goquery.Selection) {
		style, _ := el.Attr("style")
		style = strings.ToLower(strings.Join(strings.Fields(style), ""))
		if strings.Contains(style, "display:none") {
			el.Remove()
		}
	})
}

func sectionRows(section *goquery.Selection) []rawRow {
	var rows []rawRow
	section.ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
		rows = append(rows, parseRow(tr))
	})
	return rows
}

func parseRow(tr *goquery.Selection) rawRow {
	var row rawRow
	tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
		row = append(row, rawCell{
			text:    cellText(cell),
			header:  goquery.NodeName(cell) == "th",
			colspan: spanAttr(cell, "colspan"),
			rowspan: spanAttr(cell, "rowspan"),
		})
	})
	return row
}

func cellText(cell *goquery.Selection) string {
	return strings.Join(strings.Fields(cell.Text()), " ")
}

func spanAttr(cell *goquery.Selection, name string) int {
	raw, ok := cell.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxSpan {
		return maxSpan
	}
	return n
}

type carried struct {
	col  int
	text string
	left int
}

// expandSpans repeats spanned cell text into every grid position it covers.
// Cells carried down by rowspan are placed before any new cell starting at or after
// their column.
func expandSpans(rows []rawRow) [][]string {
	var (
		out       [][]string
		remainder []carried
	)

	emit := func(row *[]string, next *[]carried, c carried, index int) {
		*row = append(*row, c.text)
		if c.left > 1 {
			*next = append(*next, carried{col: index, text: c.text, left: c.left - 1})
		}
	}

	for _, tr := range rows {
		var (
			row   []string
			next  []carried
			index int
		)
		for _, cell := range tr {
			for len(remainder) > 0 && remainder[0].col <= index {
				emit(&row, &next, remainder[0], index)
				remainder = remainder[1:]
				index++
			}
			for k := 0; k < cell.colspan; k++ {
				emit(&row, &next, carried{text: cell.text, left: cell.rowspan}, index)
				index++
			}
		}
		for _, c := range remainder {
			emit(&row, &next, c, index)
			index++
		}
		out = append(out, row)
		remainder = next
	}

	for len(remainder) > 0 {
		var (
			row  []string
			next []carried
		)
		for i, c := range remainder {
			emit(&row, &next, c, i)
		}
		out = append(out, row)
		remainder = next
	}
	return out
}

func dropEmpty(rows [][]string) [][]string {
	out := rows[:0]
	for _, r := range rows {
		for _, v := range r {
			if v != "" {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func pad(rows [][]string, width int) {
	for i, r := range rows {
		for len(r) < width {
			r = append(r, "")
		}
		rows[i] = r
	}
}

// normalizeLabels names blank header cells "Unnamed: i" and suffixes repeated labels
// with ".1", ".2" and so on.
func normalizeLabels(labels []string) []string {
	out := make([]string, len(labels))
	seen := make(map[string]int, len(labels))
	for i, label := range labels {
		if label == "" {
			label = "Unnamed: " + strconv.Itoa(i)
		}
		name := label
		for seen[name] > 0 {
			name = label + "." + strconv.Itoa(seen[label])
			seen[label]++
		}
		seen[name]++
		out[i] = name
	}
	return out
}

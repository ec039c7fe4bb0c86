// Package table renders fixed-width text tables with per-column alignment.
package table

import (
	"strings"
	"unicode/utf8"
)

// Alignment selects which side of a cell receives padding.
type Alignment int

const (
	Left Alignment = iota
	Right
)

// Column is one table column.
type Column struct {
	Name  string
	Align Alignment
}

// Table accumulates rows for rendering.
type Table struct {
	columns []Column
	rows    [][]string
}

// New creates a Table with the given columns.
//
// Precondition: at least one column.
func New(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Render returns the header and rows as "| a | b |" lines joined by newlines,
// with no trailing newline. Every column is as wide as its widest cell.
func (t *Table) Render() string {
	widths := make([]int, len(t.columns))
	header := make([]string, len(t.columns))
	for i, c := range t.columns {
		header[i] = c.Name
		widths[i] = utf8.RuneCountInString(c.Name)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	lines := make([]string, 0, len(t.rows)+1)
	lines = append(lines, t.renderRow(header, widths))
	for _, row := range t.rows {
		lines = append(lines, t.renderRow(row, widths))
	}
	return strings.Join(lines, "\n")
}

func (t *Table) renderRow(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteString("|")
	for i, cell := range cells {
		pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
		b.WriteString(" ")
		if t.columns[i].Align == Right {
			b.WriteString(pad)
		}
		b.WriteString(cell)
		if t.columns[i].Align == Left {
			b.WriteString(pad)
		}
		b.WriteString(" |")
	}
	return b.String()
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// DefaultMaxCellWidth bounds cell width unless a table overrides it.
const DefaultMaxCellWidth = 50

const cellEllipsis = "..."

// Table collects rows and renders them as aligned columns separated by two
// spaces. Widths are measured on visible characters, so styled cells align.
type Table struct {
	headers []string
	rows    [][]string

	// MaxCellWidth truncates longer cells with an ellipsis. Zero disables
	// truncation.
	MaxCellWidth int
}

// NewTable returns a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, MaxCellWidth: DefaultMaxCellWidth}
}

// AddRow appends a row. Missing trailing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows, excluding the header.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table. The last column is never padded.
func (t *Table) String() string {
	columns := len(t.headers)
	for _, row := range t.rows {
		columns = max(columns, len(row))
	}
	if columns == 0 {
		return ""
	}

	header := t.normalizeRow(t.headers, columns)
	rows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		rows[i] = t.normalizeRow(row, columns)
	}

	widths := make([]int, columns)
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	writeRow := func(row []string, style func(string) string) {
		for i, cell := range row {
			padding := widths[i] - lipgloss.Width(cell)
			b.WriteString(style(cell))
			if i == len(row)-1 {
				break
			}
			b.WriteString(strings.Repeat(" ", padding+2))
		}
		b.WriteByte('\n')
	}

	if len(t.headers) > 0 {
		writeRow(header, Header)
	}
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}

func (t *Table) normalizeRow(row []string, columns int) []string {
	out := make([]string, columns)
	for i := range out {
		if i < len(row) {
			out[i] = t.truncate(normalizeCell(row[i]))
		}
	}
	return out
}

func (t *Table) truncate(cell string) string {
	if t.MaxCellWidth <= 0 || lipgloss.Width(cell) <= t.MaxCellWidth {
		return cell
	}
	return truncate.StringWithTail(cell, uint(t.MaxCellWidth), cellEllipsis)
}

func normalizeCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}

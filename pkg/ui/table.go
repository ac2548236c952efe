package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn represents a column in the table
type TableColumn struct {
	Header string
	Width  int    // Minimum width
	Align  string // "left", "right", "center"
}

// Table is a plain text table with a styled header and zebra rows
type Table struct {
	Columns []TableColumn
	Rows    [][]string
}

// NewTable creates a new table with specified columns
func NewTable(columns []TableColumn) *Table {
	return &Table{
		Columns: columns,
		Rows:    [][]string{},
	}
}

// AddRow adds a row to the table. Missing cells render empty.
func (t *Table) AddRow(cells []string) {
	t.Rows = append(t.Rows, cells)
}

// Render renders the table as a string
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	widths := t.widths()
	var b strings.Builder

	header := make([]string, len(t.Columns))
	rule := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = pad(col.Header, widths[i], "left")
		rule[i] = strings.Repeat("─", widths[i])
	}
	b.WriteString(StyleTableHeader.Render(strings.Join(header, "  ")) + "\n")
	b.WriteString(StyleTableBorder.Render(strings.Join(rule, "  ")) + "\n")

	for idx, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = pad(cell, widths[i], col.Align)
		}

		style := StyleTableRow
		if idx%2 == 1 {
			style = StyleTableRowAlt
		}
		b.WriteString(style.Render(strings.Join(cells, "  ")) + "\n")
	}

	return b.String()
}

// widths is the max of each column's minimum, header and cell widths
func (t *Table) widths() []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = max(col.Width, lipgloss.Width(col.Header))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

func pad(s string, width int, align string) string {
	pos := lipgloss.Left
	switch align {
	case "right":
		pos = lipgloss.Right
	case "center":
		pos = lipgloss.Center
	}
	return lipgloss.PlaceHorizontal(width, pos, s)
}

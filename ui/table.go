package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Table renders rows under headers with a rounded border. The border uses
// the ui_border element and the headers ui_column_header.
func (o *Output) Table(headers []string, rows [][]string) string {
	border := o.Element("ui_border")
	header := o.Element("ui_column_header").Padding(0, 1)
	cell := o.r.NewStyle().Inherit(cellStyle)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	return t.String()
}

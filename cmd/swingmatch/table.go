package main

import (
	"io"
	"os"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// renderTable lays rows out under headers in a rounded box. Columns whose
// zero-based index appears in numeric are right-aligned. Short rows are
// padded with blanks.
func renderTable(headers []string, rows [][]string, numeric ...int) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(headers, len(headers)))
	for _, row := range rows {
		tw.AppendRow(toRow(row, len(headers)))
	}

	configs := make([]table.ColumnConfig, len(headers))
	for i := range headers {
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}
		if slices.Contains(numeric, i) {
			configs[i].Align = text.AlignRight
		}
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func toRow(cells []string, width int) table.Row {
	row := make(table.Row, width)
	for i := range row {
		row[i] = ""
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	return row
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// similarityBands maps a lower bound to the colour used for scores at or
// above it, best band first.
var similarityBands = []struct {
	min    float64
	colors text.Colors
}{
	{85, text.Colors{text.FgGreen, text.Bold}},
	{60, text.Colors{text.FgYellow}},
	{0, text.Colors{text.FgRed}},
}

// formatSimilarity renders a percentage, coloured by band on terminals.
func formatSimilarity(w io.Writer, similarity float64) string {
	label := formatPercent(similarity)
	if !isTerminal(w) {
		return label
	}
	for _, band := range similarityBands {
		if similarity >= band.min {
			return band.colors.Sprint(label)
		}
	}
	return label
}

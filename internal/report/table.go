package report

import (
	"slices"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"sublint/internal/lint"
)

// Table renders rows under headers in the rounded style. Columns listed in
// rightAligned (1-based) are right aligned; short rows are padded.
func Table(headers []string, rows [][]string, rightAligned ...int) string {
	if len(headers) == 0 {
		return ""
	}
	tw := newWriter()

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, len(headers))
	for i := range configs {
		align := text.AlignLeft
		if slices.Contains(rightAligned, i+1) {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

// SummaryTable renders per-check result counts in order, followed by a
// breakdown by severity. Checks without results are listed with zero.
func SummaryTable(order []string, summary lint.Summary) string {
	tw := newWriter()
	tw.AppendHeader(table.Row{"Check", "Results"})

	total := 0
	for _, name := range order {
		count := summary.ByCheck[name]
		total += count
		tw.AppendRow(table.Row{name, strconv.Itoa(count)})
	}
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"warnings", strconv.Itoa(summary.Warnings)})
	tw.AppendRow(table.Row{"info", strconv.Itoa(summary.Info)})
	tw.AppendRow(table.Row{"debug", strconv.Itoa(summary.Debug)})
	tw.AppendFooter(table.Row{"Total", strconv.Itoa(total)})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func newWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

package render

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"loadmaster/internal/manifest"
)

// memberTable lays out section members in the form's column order. Headers
// keep their printed casing.
func memberTable(members []manifest.Member, style table.Style) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(style)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(memberHeaders))
	for i, title := range memberHeaders {
		header[i] = title
	}
	tw.AppendHeader(header)

	for _, member := range members {
		cells := memberRow(member)
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		tw.AppendRow(row)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	return tw
}

package commands

import (
	"fighterdata/internal/collector"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func printSummary(title string, s collector.Summary) {
	t := newTable()
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Processed", "Added", "Updated", "With history", "Skipped", "Failed", "Total"})
	t.AppendRow(table.Row{s.Processed, s.Added, s.Updated, s.WithHistory, s.Skipped, s.Failed, s.Total})
	t.Render()
}

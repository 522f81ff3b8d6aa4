// Package report renders assurance results, decision records and
// operation summaries as markdown and ASCII text.
package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newTable returns a go-pretty writer with the given header.
func newTable(cols ...string) table.Writer {
	w := table.NewWriter()
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	w.AppendHeader(row)
	return w
}

// alignRight right-aligns the given 1-based columns.
func alignRight(w table.Writer, cols ...int) {
	cfgs := make([]table.ColumnConfig, len(cols))
	for i, n := range cols {
		cfgs[i] = table.ColumnConfig{Number: n, Align: text.AlignRight}
	}
	w.SetColumnConfigs(cfgs)
}

// score renders a reliability value with two decimals.
func score(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

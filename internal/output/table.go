package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// Table renders rows as an aligned text table for human consumption.
func Table(w io.Writer, headers []string, rows [][]string) error {
	t := tablewriter.NewWriter(w)
	hdr := make([]any, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	t.Header(hdr...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		if err := t.Append(cells...); err != nil {
			return err
		}
	}
	return t.Render()
}

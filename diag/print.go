package diag

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// PrintTable renders diagnostics as a table, grounded on the teacher's
// core/util.go PrintState register/buffer dump — the same
// "go-pretty table over a slice of structured records" idiom, applied
// to diagnostics instead of register files.
func PrintTable(w io.Writer, diags []Diagnostic) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Severity", "Code", "Domain", "Target", "Message"})

	for _, d := range diags {
		t.AppendRow(table.Row{
			string(d.Severity),
			string(d.Code),
			string(d.Domain),
			d.PrimaryTarget.String(),
			d.Message,
		})
	}

	t.Render()
}

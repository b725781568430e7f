package management

import (
	"io"
	"text/tabwriter"

	"github.com/cheynewallace/tabby"
)

// Render writes the report to w as an aligned two column table.
func (r *Report) Render(w io.Writer) {
	table := tabby.NewCustom(tabwriter.NewWriter(w, 0, 0, 2, ' ', 0))
	table.AddHeader("STAT", "VALUE")

	table.AddLine("pool", r.Stats.ID)
	if r.Stats.Name != "" {
		table.AddLine("name", r.Stats.Name)
	}
	table.AddLine("workers", r.Stats.Size)
	table.AddLine("submitted", r.Stats.Submitted)
	table.AddLine("completed", r.Stats.Completed)
	table.AddLine("panicked", r.Stats.Panicked)
	table.AddLine("average runtime", r.Stats.AverageRuntime)
	table.AddLine("elapsed", r.Elapsed)

	for _, err := range r.Errors {
		table.AddLine("error", err)
	}

	table.Print()
}

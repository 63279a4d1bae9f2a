package benchmark

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Render writes the report as a table to w. When showMatches is positive the
// first showMatches matching records of each pass are listed below it, looked
// up in corpus.
func (r *Report) Render(w io.Writer, showMatches int, corpus []string) error {
	fmt.Fprintf(w, "Searching %s records for %q\n", humanize.Comma(int64(r.Records)), r.Term)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Metric", "Threshold", "Matches", "Time", "Records/s"})

	for _, p := range r.Passes {
		threshold := strconv.Itoa(p.Threshold)
		if !p.Metric.UsesThreshold() {
			threshold = "-"
		}
		tw.AppendRow(table.Row{
			p.Metric.String(),
			threshold,
			humanize.Comma(int64(p.Count())),
			formatDuration(p.Elapsed),
			formatRate(r.Records, p.Elapsed),
		})
	}
	tw.AppendFooter(table.Row{"total", "", "", formatDuration(r.Total()), ""})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	tw.Render()

	if showMatches <= 0 {
		return nil
	}
	for _, p := range r.Passes {
		if p.Count() == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s matches", p.Metric)
		if p.Metric.UsesThreshold() {
			fmt.Fprintf(w, " at threshold %d", p.Threshold)
		}
		fmt.Fprintln(w, ":")
		if err := WriteMatches(w, p.Result.Indices, corpus, showMatches); err != nil {
			return err
		}
	}
	return nil
}

// WriteMatches writes up to limit "index: contents" lines for indices.
// Indices outside corpus print without contents.
func WriteMatches(w io.Writer, indices []int, corpus []string, limit int) error {
	for n, idx := range indices {
		if n == limit {
			_, err := fmt.Fprintf(w, "  ... and %s more\n", humanize.Comma(int64(len(indices)-limit)))
			return err
		}
		contents := ""
		if idx >= 0 && idx < len(corpus) {
			contents = corpus[idx]
		}
		if _, err := fmt.Fprintf(w, "  %d: %s\n", idx, contents); err != nil {
			return err
		}
	}
	return nil
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}

func formatRate(records int, d time.Duration) string {
	if d <= 0 || records == 0 {
		return "-"
	}
	return humanize.Comma(int64(float64(records) / d.Seconds()))
}

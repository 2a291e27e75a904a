package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"momentum/internal/app"
	"momentum/internal/domain"
)

type historyCmd struct {
	limit int
	unit  string
	style string
	raw   bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list logged weights, most recent first" }
func (*historyCmd) Usage() string {
	return `momentum history [-l <n>] [-u kg|lbs] [-style dark|light|notty] [-raw]

  Prints the weight history as a table, most recent day first, with the
  ids accepted by 'momentum rm'.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "l", 0, "Maximum number of entries to show (0 shows all).")
	f.StringVar(&c.unit, "u", "", "Display unit (defaults to -unit).")
	f.StringVar(&c.style, "style", "dark", "glamour style used to render the table.")
	f.BoolVar(&c.raw, "raw", false, "Print markdown without rendering.")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	unit, err := unitOrDefault(c.unit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	store, db, err := openStore(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer func() { _ = db.Close() }()

	md := historyMarkdown(app.NewWeightService(store).History(c.limit), unit)
	if c.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	out, err := glamour.Render(md, c.style)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Print(out)
	return subcommands.ExitSuccess
}

// historyMarkdown renders entries as a markdown table.
func historyMarkdown(entries []domain.Entry, unit domain.Unit) string {
	var b strings.Builder
	b.WriteString("# History\n\n")
	if len(entries) == 0 {
		b.WriteString("No entries yet. Log your weight to get started!\n")
		return b.String()
	}
	b.WriteString("| Date | Weight | Id |\n|---|---:|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | `%s` |\n", e.Date.Time().Format("January 2, 2006"), formatWeight(e.Weight, unit), e.ID)
	}
	return b.String()
}

type chartCmd struct {
	unit  string
	width int
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw a bar chart of your progress" }
func (*chartCmd) Usage() string {
	return `momentum chart [-u kg|lbs] [-w <width>]

  Draws one bar per logged day, oldest first.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.unit, "u", "", "Display unit (defaults to -unit).")
	f.IntVar(&c.width, "w", 50, "Width of the longest bar.")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	unit, err := unitOrDefault(c.unit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	store, db, err := openStore(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer func() { _ = db.Close() }()

	drawChart(os.Stdout, app.NewChartsService(store).Progress(unit), c.width)
	return subcommands.ExitSuccess
}

// drawChart writes one horizontal bar per point, scaled between the chart
// axis bounds.
func drawChart(w io.Writer, c app.Chart, width int) {
	if len(c.Points) == 0 {
		fmt.Fprintln(w, "Start your journey: log your first weight entry to begin tracking your progress.")
		return
	}
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(w, "Your progress (%s, axis %.0f-%.0f)\n", c.Unit, c.Min, c.Max)
	span := c.Max - c.Min
	for _, p := range c.Points {
		n := 0
		if span > 0 {
			n = int((p.Weight - c.Min) / span * float64(width))
		}
		n = max(0, min(n, width))
		fmt.Fprintf(w, "%-7s %s %.1f\n", p.Label, strings.Repeat("█", n), p.Weight)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	"momentum/internal/app"
	"momentum/internal/domain"
	"momentum/internal/observability"
)

type addCmd struct {
	unit string
	date string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "log a weight for a day (today by default)" }
func (*addCmd) Usage() string {
	return `momentum add [-u kg|lbs] [-d YYYY-MM-DD] <weight>

  Records the weight for the given day. A day that already has an entry
  gets the new weight and keeps its id.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.unit, "u", "", "Unit of the weight (defaults to -unit).")
	f.StringVar(&c.date, "d", "", "Day of the measurement, YYYY-MM-DD (defaults to today).")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "add requires exactly one weight argument")
		return subcommands.ExitUsageError
	}
	unit := c.unit
	if unit == "" {
		unit = *defaultUnit
	}
	day, err := app.ParseDate(c.date)
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

	svc := app.NewWeightService(store)
	entry, err := svc.RecordWeight(ctx, f.Arg(0), unit, day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not save your weight: %v\n", err)
		return subcommands.ExitFailure
	}
	u, _ := domain.ParseUnit(unit)
	fmt.Printf("Weight logged: %s on %s (%s)\n", formatWeight(entry.Weight, u), entry.Date, entry.ID)
	fmt.Println(svc.EncouragingPhrase())
	return subcommands.ExitSuccess
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete entries by id" }
func (*rmCmd) Usage() string {
	return `momentum rm <id>...

  Permanently deletes the entries with the given ids. Unknown ids are
  reported and skipped.
`
}
func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (*rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "rm requires at least one id")
		return subcommands.ExitUsageError
	}
	store, db, err := openStore(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer func() { _ = db.Close() }()

	for _, id := range f.Args() {
		deleted, err := store.Remove(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not delete %s: %v\n", id, err)
			return subcommands.ExitFailure
		}
		if !deleted {
			fmt.Printf("%s: no such entry\n", id)
			continue
		}
		fmt.Printf("%s: deleted\n", id)
	}
	return subcommands.ExitSuccess
}

type importCmd struct {
	unit   string
	dryRun bool
	out    io.Writer // defaults to os.Stdout
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "bulk import date,weight lines" }
func (*importCmd) Usage() string {
	return `momentum import [-u kg|lbs] [-n] [file|-]

  Reads lines in the format YYYY-MM-DD,Weight from file (or stdin) and
  merges them into the history. When a day appears more than once the last
  line wins. Invalid lines are reported and skipped.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.unit, "u", "", "Unit of the imported weights (defaults to -unit).")
	f.BoolVar(&c.dryRun, "n", false, "Parse and report without saving.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var in io.Reader = os.Stdin
	if f.NArg() > 0 && f.Arg(0) != "-" {
		file, err := os.Open(f.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		defer func() { _ = file.Close() }()
		in = file
	}
	text, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	unit, err := unitOrDefault(c.unit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	var res app.ImportResult
	if c.dryRun {
		p := app.ParseImport(string(text), unit)
		res = app.ImportResult{ImportedCount: len(p.Order), ErrorCount: len(p.Errors), Errors: p.Errors}
	} else {
		store, db, err := openStore(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		defer func() { _ = db.Close() }()

		res, err = app.NewWeightService(store).Import(ctx, string(text), string(unit))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not import your data: %v\n", err)
			return subcommands.ExitFailure
		}
		observability.RecordImport(res.ImportedCount, res.ErrorCount)
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	printImportResult(out, res)
	if res.Outcome() == app.ImportFailed {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func printImportResult(w io.Writer, res app.ImportResult) {
	for _, e := range res.Errors {
		fmt.Fprintf(w, "line %d: %s: %q\n", e.Line, e.Reason, strings.TrimSpace(e.Text))
	}
	switch res.Outcome() {
	case app.ImportSucceeded:
		fmt.Fprintf(w, "%d entries imported successfully!\n", res.ImportedCount)
	case app.ImportPartial:
		fmt.Fprintf(w, "%d entries imported successfully! %d rows had errors and were skipped.\n", res.ImportedCount, res.ErrorCount)
	case app.ImportFailed:
		fmt.Fprintf(w, "Import failed: could not import any entries. Please check the format. %d rows had errors.\n", res.ErrorCount)
	default:
		fmt.Fprintln(w, "No new entries to import.")
	}
}

// formatWeight renders a kilogram weight in unit with one decimal.
func formatWeight(kg float64, unit domain.Unit) string {
	return fmt.Sprintf("%.1f %s", domain.ConvertWeight(kg, domain.Kilograms, unit), unit)
}

package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum/internal/app"
	"momentum/internal/domain"
)

// useTempDB points the -db flag at a fresh database for one test.
func useTempDB(t *testing.T) {
	t.Helper()
	old := *dbPath
	*dbPath = filepath.Join(t.TempDir(), "momentum.db")
	t.Cleanup(func() { *dbPath = old })
}

func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return cmd.Execute(context.Background(), f)
}

func loadEntries(t *testing.T) []domain.Entry {
	t.Helper()
	store, db, err := openStore(context.Background())
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	return store.Entries()
}

func TestAddAndRemove(t *testing.T) {
	useTempDB(t)

	require.Equal(t, subcommands.ExitSuccess, run(t, &addCmd{}, "-u", "lbs", "-d", "2023-02-01", "160"))
	entries := loadEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "2023-02-01", entries[0].Date.String())
	assert.InDelta(t, 72.5747792, entries[0].Weight, 1e-9)

	require.Equal(t, subcommands.ExitSuccess, run(t, &rmCmd{}, entries[0].ID, "unknown"))
	assert.Empty(t, loadEntries(t))
}

func TestAddRejectsBadInput(t *testing.T) {
	useTempDB(t)

	assert.Equal(t, subcommands.ExitUsageError, run(t, &addCmd{}))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &addCmd{}, "-d", "2023-02-30", "80"))
	assert.Equal(t, subcommands.ExitFailure, run(t, &addCmd{}, "--", "-5"))
	assert.Equal(t, subcommands.ExitFailure, run(t, &addCmd{}, "-u", "st", "80"))
	assert.Empty(t, loadEntries(t))
}

func TestImportFile(t *testing.T) {
	useTempDB(t)
	path := filepath.Join(t.TempDir(), "weights.csv")
	require.NoError(t, os.WriteFile(path, []byte("2023-01-15,80.5\n2023-01-16,80.2\nbad-row\n2023-01-15,81.0\n"), 0o600))

	var dry, applied bytes.Buffer
	require.Equal(t, subcommands.ExitSuccess, run(t, &importCmd{out: &dry}, "-n", path))
	assert.Empty(t, loadEntries(t), "dry run must not save")

	require.Equal(t, subcommands.ExitSuccess, run(t, &importCmd{out: &applied}, "-u", "kg", path))
	assert.Contains(t, applied.String(), "2 entries imported successfully! 1 rows had errors and were skipped.")
	assert.Equal(t, applied.String(), dry.String())
	entries := loadEntries(t)
	require.Len(t, entries, 2)
	assert.InDelta(t, 81.0, entries[0].Weight, 1e-9)
}

func TestImportOnlyErrorsFails(t *testing.T) {
	useTempDB(t)
	path := filepath.Join(t.TempDir(), "weights.csv")
	require.NoError(t, os.WriteFile(path, []byte("nope\n2023-01-01,-1\n"), 0o600))

	assert.Equal(t, subcommands.ExitFailure, run(t, &importCmd{}, path))
}

func TestPrintImportResult(t *testing.T) {
	tests := []struct {
		res  app.ImportResult
		want string
	}{
		{app.ImportResult{ImportedCount: 2}, "2 entries imported successfully!"},
		{app.ImportResult{ImportedCount: 2, ErrorCount: 1, Errors: []app.LineError{{Line: 3, Text: "bad-row", Reason: "expected date,weight"}}}, "1 rows had errors and were skipped"},
		{app.ImportResult{ErrorCount: 1}, "Import failed"},
		{app.ImportResult{}, "No new entries to import."},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		printImportResult(&buf, tc.res)
		assert.Contains(t, buf.String(), tc.want)
	}

	var buf bytes.Buffer
	printImportResult(&buf, tests[1].res)
	assert.Contains(t, buf.String(), `line 3: expected date,weight: "bad-row"`)
}

func TestHistoryMarkdown(t *testing.T) {
	md := historyMarkdown([]domain.Entry{
		{ID: "b", Date: domain.NewDay(2023, time.January, 16), Weight: 80.2},
		{ID: "a", Date: domain.NewDay(2023, time.January, 15), Weight: 81},
	}, domain.Kilograms)

	lines := strings.Split(strings.TrimSpace(md), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "| January 16, 2023 | 80.2 kg | `b` |", lines[4])
	assert.Equal(t, "| January 15, 2023 | 81.0 kg | `a` |", lines[5])

	assert.Contains(t, historyMarkdown(nil, domain.Kilograms), "No entries yet")
}

func TestHistoryCommand(t *testing.T) {
	useTempDB(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &addCmd{}, "-d", "2023-01-15", "80"))

	assert.Equal(t, subcommands.ExitSuccess, run(t, &historyCmd{}, "-raw"))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &historyCmd{}, "-style", "notty", "-u", "lbs"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &historyCmd{}, "-u", "st"))
}

func TestDrawChart(t *testing.T) {
	var buf bytes.Buffer
	drawChart(&buf, app.Chart{
		Unit: domain.Kilograms,
		Min:  70,
		Max:  90,
		Points: []app.ChartPoint{
			{Label: "Jan 15", Weight: 80},
			{Label: "Jan 16", Weight: 90},
		},
	}, 10)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Jan 15  "+strings.Repeat("█", 5)+" 80.0", lines[1])
	assert.Equal(t, "Jan 16  "+strings.Repeat("█", 10)+" 90.0", lines[2])

	buf.Reset()
	drawChart(&buf, app.Chart{}, 10)
	assert.Contains(t, buf.String(), "Start your journey")
}

func TestExport(t *testing.T) {
	useTempDB(t)
	assert.Equal(t, subcommands.ExitSuccess, run(t, &exportCmd{}))
}

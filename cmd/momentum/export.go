package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"momentum/internal/adapter/sqlite"
)

type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "print the stored record as JSON" }
func (*exportCmd) Usage() string {
	return `momentum export

  Prints the persisted record exactly as stored, in the same shape the
  browser version of the app kept under "momentum-weight-storage".
`
}
func (*exportCmd) SetFlags(*flag.FlagSet) {}

func (*exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := sqlite.Open(*dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer func() { _ = db.Close() }()

	rec, err := db.Record(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if rec == nil {
		rec = []byte(`{"state":{"entries":[]},"version":0}`)
	}
	fmt.Println(string(rec))
	return subcommands.ExitSuccess
}

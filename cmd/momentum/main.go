package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&addCmd{}, "entries")
	commander.Register(&rmCmd{}, "entries")
	commander.Register(&importCmd{}, "entries")
	commander.Register(&historyCmd{}, "views")
	commander.Register(&chartCmd{}, "views")
	commander.Register(&exportCmd{}, "storage")
	commander.Register(&serveCmd{}, "server")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

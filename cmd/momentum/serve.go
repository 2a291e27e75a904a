package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"

	adapthttp "momentum/internal/adapter/http"
	"momentum/internal/app"
	"momentum/internal/observability"
)

type serveCmd struct {
	addr   string
	webDir string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the local web UI and JSON API" }
func (*serveCmd) Usage() string {
	return `momentum serve [-addr host:port] [-web dir]

  Serves the JSON API under /api, Prometheus metrics under /metrics and the
  static UI from the web directory. Listens on the loopback interface by
  default.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", cfg.HTTPAddress, "Listen address.")
	f.StringVar(&c.webDir, "web", cfg.WebDir, "Directory of the static web UI.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	unit, err := unitOrDefault("")
	if err != nil {
		log.Print(err)
		return subcommands.ExitUsageError
	}
	store, db, err := openStore(ctx)
	if err != nil {
		log.Printf("store open: %v", err)
		return subcommands.ExitFailure
	}
	defer func() { _ = db.Close() }()

	stopWatch := observability.Watch(store)
	defer stopWatch()

	weightSvc := app.NewWeightService(store)
	chartsSvc := app.NewChartsService(store)

	h := adapthttp.New(weightSvc, chartsSvc, c.webDir).WithUnit(unit).Handler()
	srv := &http.Server{Addr: c.addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Printf("listening on %s (%d entries in %s)", c.addr, store.Len(), db.Path())

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Print(err)
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

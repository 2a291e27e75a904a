package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"momentum/internal/adapter/sqlite"
	"momentum/internal/app"
	"momentum/internal/config"
	"momentum/internal/domain"
)

var cfg = config.Load()

var (
	dbPath      = flag.String("db", cfg.DBPath, "Path to the SQLite database holding the weight entries")
	defaultUnit = flag.String("unit", cfg.Unit, "Default weight unit (kg or lbs)")
)

// openStore opens the database and loads the entry store. The caller must
// close the returned database.
func openStore(ctx context.Context) (*app.Store, *sqlite.DB, error) {
	db, err := sqlite.Open(*dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", *dbPath, err)
	}
	store, err := app.NewStore(ctx, db, app.WithLogger(log.Default()))
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store, db, nil
}

// unitOrDefault returns the unit named by s, or the -unit default when s
// is empty.
func unitOrDefault(s string) (domain.Unit, error) {
	if s == "" {
		s = *defaultUnit
	}
	return domain.ParseUnit(s)
}

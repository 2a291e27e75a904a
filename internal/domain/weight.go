// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"math"
)

// StorageKey names the single persisted record holding the collection.
const StorageKey = "momentum-weight-storage"

// Entry represents the weight recorded for one calendar day. Weight is
// always in kilograms.
type Entry struct {
	ID     string  `json:"id"`
	Date   Day     `json:"date"`
	Weight float64 `json:"weight"`
}

// ValidWeight reports whether w is a positive finite number.
func ValidWeight(w float64) bool {
	return w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}

// EntryStorage is the port for persisting the whole entry collection.
// Load returns an empty collection when nothing has been saved yet. Save
// replaces the persisted collection atomically.
type EntryStorage interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
}

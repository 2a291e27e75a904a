// Package app holds the entry store and the application services built on it.
package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"strings"

	"momentum/internal/domain"
)

var (
	// ErrInvalidWeight indicates an empty, non-numeric or non-positive weight.
	ErrInvalidWeight = errors.New("weight must be a positive number")
	// ErrInvalidUnit indicates a unit other than kg or lbs.
	ErrInvalidUnit = errors.New("unit must be \"kg\" or \"lbs\"")
	// ErrInvalidDate indicates a date that is not a valid YYYY-MM-DD day.
	ErrInvalidDate = errors.New("date must be a valid YYYY-MM-DD day")
	// ErrEmptyImport indicates import text with nothing in it.
	ErrEmptyImport = errors.New("please paste your CSV data")
)

// WeightService encapsulates the weight-logging use cases and validates
// user input before it reaches the store.
type WeightService struct {
	store *Store
}

// NewWeightService creates a WeightService backed by the given store.
func NewWeightService(store *Store) *WeightService {
	return &WeightService{store: store}
}

// RecordWeight validates a user-entered weight and unit and stores it for
// day. A zero day means today.
func (s *WeightService) RecordWeight(ctx context.Context, raw, unit string, day domain.Day) (domain.Entry, error) {
	w, err := parseWeight(raw)
	if err != nil {
		return domain.Entry{}, ErrInvalidWeight
	}
	u, err := domain.ParseUnit(unit)
	if err != nil {
		return domain.Entry{}, ErrInvalidUnit
	}
	if day.IsZero() {
		day = domain.Today()
	}
	return s.store.AddOrUpdate(ctx, w, u, day)
}

// ParseDate parses an optional YYYY-MM-DD date. The empty string yields
// the zero Day, which RecordWeight treats as today.
func ParseDate(s string) (domain.Day, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Day{}, nil
	}
	d, err := domain.ParseDay(s)
	if err != nil {
		return domain.Day{}, ErrInvalidDate
	}
	return d, nil
}

// Remove deletes the entry with the given id.
func (s *WeightService) Remove(ctx context.Context, id string) (bool, error) {
	return s.store.Remove(ctx, id)
}

// Import validates the unit and bulk-imports text.
func (s *WeightService) Import(ctx context.Context, text, unit string) (ImportResult, error) {
	u, err := domain.ParseUnit(unit)
	if err != nil {
		return ImportResult{}, ErrInvalidUnit
	}
	if strings.TrimSpace(text) == "" {
		return ImportResult{}, ErrEmptyImport
	}
	return s.store.ImportBulk(ctx, text, u)
}

// Entries returns all entries in ascending date order.
func (s *WeightService) Entries() []domain.Entry {
	return s.store.Entries()
}

// History returns up to limit entries, most recent first. A non-positive
// limit returns every entry.
func (s *WeightService) History(limit int) []domain.Entry {
	out := s.store.Entries()
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

var encouragingPhrases = []string{
	"Great job logging your weight today!",
	"Every entry is a step forward. Keep it up!",
	"Consistency is key. You're doing great!",
	"You're building a healthy habit. Well done!",
	"Progress, not perfection. Proud of you!",
	"One step at a time. You've got this!",
	"Tracking your progress is a sign of commitment. Awesome!",
	"Keep showing up for yourself. It's paying off!",
	"Another day, another step towards your goal.",
	"You're making your health a priority. That's fantastic!",
}

// EncouragingPhrase returns a random message to show after a manual log.
func (s *WeightService) EncouragingPhrase() string {
	return encouragingPhrases[rand.IntN(len(encouragingPhrases))]
}

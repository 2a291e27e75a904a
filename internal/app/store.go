package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"sync"

	"github.com/google/uuid"

	"momentum/internal/domain"
)

// ErrPersist wraps every failure to save the collection. When it is
// returned the in-memory collection is left at the last saved snapshot.
var ErrPersist = errors.New("persist entries")

// Store is the authoritative, persisted collection of weight entries. It
// holds at most one entry per day, always sorted by ascending date, and
// saves the whole collection after every mutation.
type Store struct {
	mu      sync.Mutex
	entries []domain.Entry
	storage domain.EntryStorage

	version uint64 // guarded by mu, bumped on every commit

	notifyMu  sync.Mutex // serialises delivery
	delivered uint64     // guarded by notifyMu

	subsMu  sync.Mutex
	subs    map[int]func([]domain.Entry)
	nextSub int

	logger *log.Logger
	newID  func() string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load repairs and save failures.
func WithLogger(l *log.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator replaces the UUID generator for new entries.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore creates a Store and loads the persisted collection from storage.
func NewStore(ctx context.Context, storage domain.EntryStorage, opts ...StoreOption) (*Store, error) {
	s := &Store{
		storage: storage,
		subs:    make(map[int]func([]domain.Entry)),
		logger:  log.New(io.Discard, "", 0),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	loaded, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	s.entries = s.repair(loaded)
	return s, nil
}

// repair restores the collection invariants on data read from storage:
// entries with no date or an invalid weight are dropped, the first entry
// wins for a duplicated date, and missing identifiers are regenerated.
func (s *Store) repair(in []domain.Entry) []domain.Entry {
	out := make([]domain.Entry, 0, len(in))
	seen := make(map[domain.Day]bool, len(in))
	for _, e := range in {
		if e.Date.IsZero() {
			s.logger.Printf("store: dropping entry id=%q with no valid date", e.ID)
			continue
		}
		if !domain.ValidWeight(e.Weight) {
			s.logger.Printf("store: dropping invalid entry id=%q date=%s weight=%v", e.ID, e.Date, e.Weight)
			continue
		}
		if seen[e.Date] {
			s.logger.Printf("store: dropping duplicate entry id=%q for %s", e.ID, e.Date)
			continue
		}
		seen[e.Date] = true
		if e.ID == "" {
			e.ID = s.newID()
		}
		out = append(out, e)
	}
	if !slices.IsSortedFunc(out, compareEntries) {
		slices.SortStableFunc(out, compareEntries)
	}
	return out
}

func compareEntries(a, b domain.Entry) int { return a.Date.Compare(b.Date) }

// Entries returns a copy of the collection in ascending date order.
func (s *Store) Entries() []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Subscribe registers fn to receive the new snapshot after every successful
// mutation. A snapshot never reflects a partially applied import, and
// snapshots never go backwards: when mutations race, a subscriber may skip
// an intermediate snapshot but always ends on the latest one. fn may read
// the store, subscribe and unsubscribe, but must not mutate the store.
// Subscribers added or removed by fn take effect from the next snapshot.
func (s *Store) Subscribe(fn func([]domain.Entry)) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

// AddOrUpdate records weight for day. An existing entry for the same day
// keeps its identifier and gets the new weight. Weight validity is the
// caller's responsibility.
func (s *Store) AddOrUpdate(ctx context.Context, weight float64, unit domain.Unit, day domain.Day) (domain.Entry, error) {
	kg := domain.ToKilograms(weight, unit)

	s.mu.Lock()
	next := slices.Clone(s.entries)
	next, i := s.upsert(next, indexByDay(next), day, kg)
	entry := next[i]
	slices.SortStableFunc(next, compareEntries)
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return domain.Entry{}, err
	}
	s.publish(next)
	return entry, nil
}

// Remove deletes the entry with the given id. Removing an unknown id is a
// no-op and reports false.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	i := slices.IndexFunc(s.entries, func(e domain.Entry) bool { return e.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	next := slices.Delete(slices.Clone(s.entries), i, i+1)
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.publish(next)
	return true, nil
}

// ImportBulk parses csvText as date,weight lines in unit and merges every
// valid day into the collection. Malformed lines are counted, never
// returned as an error; the returned error is only ever a save failure.
// The whole batch is saved once.
func (s *Store) ImportBulk(ctx context.Context, csvText string, unit domain.Unit) (ImportResult, error) {
	parsed := ParseImport(csvText, unit)
	res := ImportResult{ErrorCount: len(parsed.Errors), Errors: parsed.Errors}
	if len(parsed.Order) == 0 {
		return res, nil
	}

	s.mu.Lock()
	next := slices.Clone(s.entries)
	idx := indexByDay(next)
	for _, day := range parsed.Order {
		next, _ = s.upsert(next, idx, day, parsed.Weights[day])
	}
	slices.SortStableFunc(next, compareEntries)
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return res, err
	}
	s.publish(next)

	res.ImportedCount = len(parsed.Order)
	return res, nil
}

// upsert sets the weight for day in entries, appending a new entry when
// the day is not present. idx maps days to positions in entries and is
// kept up to date. It returns the updated slice and the entry position.
func (s *Store) upsert(entries []domain.Entry, idx map[domain.Day]int, day domain.Day, kg float64) ([]domain.Entry, int) {
	if i, ok := idx[day]; ok {
		entries[i].Weight = kg
		return entries, i
	}
	entries = append(entries, domain.Entry{ID: s.newID(), Date: day, Weight: kg})
	i := len(entries) - 1
	idx[day] = i
	return entries, i
}

func indexByDay(entries []domain.Entry) map[domain.Day]int {
	idx := make(map[domain.Day]int, len(entries))
	for i, e := range entries {
		idx[e.Date] = i
	}
	return idx
}

// commit saves next and installs it as the current collection. Must be
// called with s.mu held.
func (s *Store) commit(ctx context.Context, next []domain.Entry) error {
	if err := s.storage.Save(ctx, next); err != nil {
		s.logger.Printf("store: save failed, keeping %d entries: %v", len(s.entries), err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.entries = next
	s.version++
	return nil
}

// publish releases s.mu and delivers snapshot to subscribers unless a
// newer snapshot has already been delivered.
func (s *Store) publish(snapshot []domain.Entry) {
	v := s.version
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if v <= s.delivered {
		return
	}
	s.delivered = v

	s.subsMu.Lock()
	fns := make([]func([]domain.Entry), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(slices.Clone(snapshot))
	}
}

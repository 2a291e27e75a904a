package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum/internal/domain"
)

func TestStorage(t *testing.T) {
	s := New()
	ctx := context.Background()

	// Empty storage loads nothing
	entries, err := s.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)

	in := []domain.Entry{
		{ID: "a", Date: domain.NewDay(2023, time.January, 15), Weight: 80.5},
		{ID: "b", Date: domain.NewDay(2023, time.January, 16), Weight: 80.2},
	}
	require.NoError(t, s.Save(ctx, in))
	in[0].Weight = 1 // must not leak into storage

	entries, err = s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 80.5, entries[0].Weight)
	assert.Equal(t, "b", entries[1].ID)
	assert.Equal(t, 1, s.Saves())
}

func TestStorageFailSaves(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("quota exceeded")

	s.FailSaves(boom)
	require.ErrorIs(t, s.Save(ctx, nil), boom)
	s.FailSaves(nil)
	require.NoError(t, s.Save(ctx, nil))
	assert.Equal(t, 1, s.Saves())
}

func TestStorageLoadsEntriesWithBadDates(t *testing.T) {
	s := &Storage{data: []byte(`[{"id":"a","date":"2023-01-15","weight":80},{"id":"b","date":"","weight":81}]`)}

	entries, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[1].Date.IsZero())
}

package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"momentum/internal/adapter/memory"
	"momentum/internal/app"
	"momentum/internal/domain"
)

func TestWatchTracksEntries(t *testing.T) {
	ctx := context.Background()
	store, err := app.NewStore(ctx, memory.New())
	require.NoError(t, err)
	_, err = store.AddOrUpdate(ctx, 80, domain.Kilograms, domain.NewDay(2023, time.January, 1))
	require.NoError(t, err)

	stop := Watch(store)
	defer stop()
	require.Equal(t, 1.0, testutil.ToFloat64(entriesGauge))

	_, err = store.ImportBulk(ctx, "2023-01-02,80\n2023-01-03,81", domain.Kilograms)
	require.NoError(t, err)
	require.Equal(t, 3.0, testutil.ToFloat64(entriesGauge))
}

func TestRecordImport(t *testing.T) {
	imported := testutil.ToFloat64(importRows.WithLabelValues("imported"))
	rejected := testutil.ToFloat64(importRows.WithLabelValues("rejected"))

	RecordImport(2, 1)

	require.Equal(t, imported+2, testutil.ToFloat64(importRows.WithLabelValues("imported")))
	require.Equal(t, rejected+1, testutil.ToFloat64(importRows.WithLabelValues("rejected")))
}

func TestRecordPersistFailure(t *testing.T) {
	before := testutil.ToFloat64(persistFailures)
	RecordPersistFailure()
	require.Equal(t, before+1, testutil.ToFloat64(persistFailures))
}

// Package observability exposes Prometheus collectors for the entry store.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"momentum/internal/domain"
)

var (
	entriesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "momentum",
		Subsystem: "store",
		Name:      "entries",
		Help:      "Number of weight entries in the store.",
	})
	importRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "momentum",
		Subsystem: "import",
		Name:      "days_total",
		Help:      "Days merged and lines rejected by bulk imports.",
	}, []string{"result"})
	persistFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "momentum",
		Subsystem: "store",
		Name:      "persist_failures_total",
		Help:      "Mutations rejected because the collection could not be saved.",
	})
)

func init() {
	prometheus.MustRegister(entriesGauge, importRows, persistFailures)
}

// Subscriber is the part of the store the collectors observe.
type Subscriber interface {
	Len() int
	Subscribe(fn func([]domain.Entry)) (unsubscribe func())
}

// Watch keeps the entries gauge in step with s until the returned function
// is called.
func Watch(s Subscriber) (stop func()) {
	entriesGauge.Set(float64(s.Len()))
	return s.Subscribe(func(snapshot []domain.Entry) {
		entriesGauge.Set(float64(len(snapshot)))
	})
}

// RecordImport counts the merged days and rejected lines of one import.
func RecordImport(imported, rejected int) {
	importRows.WithLabelValues("imported").Add(float64(imported))
	importRows.WithLabelValues("rejected").Add(float64(rejected))
}

// RecordPersistFailure counts a mutation lost to a save failure.
func RecordPersistFailure() {
	persistFailures.Inc()
}

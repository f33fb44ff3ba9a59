package memory

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/expenses/internal/models"
	"github.com/mmynk/expenses/internal/storage"
)

const (
	opCreate = "create"
	opUpdate = "update"
	opRead   = "read"
	opLookup = "lookup"
	opFind   = "find"
	opList   = "list"
)

type metrics struct {
	writes        *prometheus.CounterVec
	reads         *prometheus.CounterVec
	records       *prometheus.GaugeVec
	writeDuration prometheus.Histogram
}

// newMetrics builds the store metrics. A nil registerer leaves them unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		writes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "expenses",
			Subsystem: "store",
			Name:      "writes_total",
			Help:      "Writes by entity kind, operation and result.",
		}, []string{"kind", "op", "result"}),
		reads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "expenses",
			Subsystem: "store",
			Name:      "reads_total",
			Help:      "Reads by operation and result.",
		}, []string{"op", "result"}),
		records: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "expenses",
			Subsystem: "store",
			Name:      "records",
			Help:      "Records held, by entity kind.",
		}, []string{"kind"}),
		writeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "expenses",
			Subsystem: "store",
			Name:      "write_duration_seconds",
			Help:      "Time spent in Write, lock wait included.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}
}

func (m *metrics) observeWrite(kind models.Kind, op string, err error, elapsed time.Duration) {
	m.writes.WithLabelValues(string(kind), op, resultLabel(err)).Inc()
	m.writeDuration.Observe(elapsed.Seconds())
	if err == nil && op == opCreate {
		m.records.WithLabelValues(string(kind)).Inc()
	}
}

func (m *metrics) observeRead(op string, err error) {
	m.reads.WithLabelValues(op, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, storage.ErrConflict):
		return "conflict"
	case errors.Is(err, storage.ErrNotFound):
		return "not_found"
	case errors.Is(err, storage.ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, storage.ErrInvalidReference):
		return "invalid_reference"
	case errors.Is(err, storage.ErrDuplicateKey):
		return "duplicate_key"
	default:
		return "error"
	}
}

// Package telemetry holds the journal's prometheus counters.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a private registry so tests and the CLI never collide with the
// global default registerer.
type Metrics struct {
	Registry *prometheus.Registry

	RecordsAppended  *prometheus.CounterVec
	SnapshotWrites   *prometheus.CounterVec
	CorruptSnapshots *prometheus.CounterVec
	UserOperations   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RecordsAppended: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journal_records_appended_total",
				Help: "Records appended to the journal",
			},
			[]string{"kind"},
		),
		SnapshotWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journal_snapshot_writes_total",
				Help: "Full-collection snapshot writes to the blob store",
			},
			[]string{"key", "status"},
		),
		CorruptSnapshots: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journal_corrupt_snapshots_total",
				Help: "Snapshots that failed to decode and were replaced by an empty collection",
			},
			[]string{"key"},
		),
		UserOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journal_user_operations_total",
				Help: "User manager calls by operation and outcome",
			},
			[]string{"op", "result"},
		),
	}
	m.Registry.MustRegister(m.RecordsAppended, m.SnapshotWrites, m.CorruptSnapshots, m.UserOperations)
	return m
}

// The helpers below are nil-safe so components can run without metrics.

func (m *Metrics) RecordAppended(kind string) {
	if m == nil {
		return
	}
	m.RecordsAppended.WithLabelValues(kind).Inc()
}

func (m *Metrics) SnapshotWritten(key string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.SnapshotWrites.WithLabelValues(key, status).Inc()
}

func (m *Metrics) CorruptSnapshot(key string) {
	if m == nil {
		return
	}
	m.CorruptSnapshots.WithLabelValues(key).Inc()
}

func (m *Metrics) UserOperation(op string, success bool) {
	if m == nil {
		return
	}
	result := "success"
	if !success {
		result = "failure"
	}
	m.UserOperations.WithLabelValues(op, result).Inc()
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

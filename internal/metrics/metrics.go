// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics holds the run counters for an extraction run and writes
// them in Prometheus text format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the collectors for one run. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Registry       *prometheus.Registry
	Candidates     *prometheus.CounterVec
	Records        *prometheus.CounterVec
	Rejected       *prometheus.CounterVec
	Skipped        *prometheus.CounterVec
	DecodeDuration prometheus.Histogram
}

// New constructs and registers all collectors on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	candidates := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricelist_candidates_total",
			Help: "Candidate rows collected, by supplier.",
		},
		[]string{"supplier"},
	)
	records := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricelist_records_total",
			Help: "Product records extracted, by supplier.",
		},
		[]string{"supplier"},
	)
	rejected := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricelist_rejected_total",
			Help: "Candidates that produced no record, by reason.",
		},
		[]string{"reason"},
	)
	skipped := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricelist_suppliers_skipped_total",
			Help: "Suppliers skipped, by reason.",
		},
		[]string{"reason"},
	)
	decodeDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pricelist_decode_duration_seconds",
			Help:    "Time spent decoding one supplier PDF.",
			Buckets: prometheus.DefBuckets,
		},
	)

	registry.MustRegister(candidates, records, rejected, skipped, decodeDuration)

	return &Metrics{
		Registry:       registry,
		Candidates:     candidates,
		Records:        records,
		Rejected:       rejected,
		Skipped:        skipped,
		DecodeDuration: decodeDuration,
	}
}

// AddCandidates adds n collected candidates for supplier.
func (m *Metrics) AddCandidates(supplier string, n int) {
	if m == nil {
		return
	}
	m.Candidates.WithLabelValues(supplier).Add(float64(n))
}

// AddRecords adds n extracted records for supplier.
func (m *Metrics) AddRecords(supplier string, n int) {
	if m == nil {
		return
	}
	m.Records.WithLabelValues(supplier).Add(float64(n))
}

// AddRejected adds n rejections with the given reason.
func (m *Metrics) AddRejected(reason string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.Rejected.WithLabelValues(reason).Add(float64(n))
}

// IncSkipped counts one skipped supplier.
func (m *Metrics) IncSkipped(reason string) {
	if m == nil {
		return
	}
	m.Skipped.WithLabelValues(reason).Inc()
}

// ObserveDecode records how long one decode took.
func (m *Metrics) ObserveDecode(d time.Duration) {
	if m == nil {
		return
	}
	m.DecodeDuration.Observe(d.Seconds())
}

// WriteTextfile writes every collector to path in the node_exporter
// textfile format. A nil *Metrics or empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}

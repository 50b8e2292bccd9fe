package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DocumentMetrics records metadata for PDF generation.
type DocumentMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	bytes    *prometheus.HistogramVec
}

// NewDocumentMetrics registers the document metrics on the provided registerer.
func NewDocumentMetrics(reg prometheus.Registerer) *DocumentMetrics {
	if reg == nil {
		return &DocumentMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "document_generation_duration_seconds",
		Help:    "Duration of document generation in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "document_generation_success",
		Help: "Successful document generations.",
	}, []string{"kind"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "document_generation_failure",
		Help: "Failed document generations.",
	}, []string{"kind"})
	bytes := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "document_size_bytes",
		Help:    "Size of generated documents in bytes.",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	}, []string{"kind"})
	reg.MustRegister(duration, success, failure, bytes)
	return &DocumentMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		bytes:    bytes,
	}
}

// ObserveDuration records the generation duration for the document kind.
func (d *DocumentMetrics) ObserveDuration(kind string, duration time.Duration) {
	if d == nil || d.duration == nil {
		return
	}
	d.duration.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

// ObserveSize records the generated document size.
func (d *DocumentMetrics) ObserveSize(kind string, sizeBytes int64) {
	if d == nil || d.bytes == nil {
		return
	}
	d.bytes.WithLabelValues(normalizeLabel(kind)).Observe(float64(sizeBytes))
}

// IncSuccess increments the success counter for the document kind.
func (d *DocumentMetrics) IncSuccess(kind string) {
	if d == nil || d.success == nil {
		return
	}
	d.success.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncFailure increments the failure counter for the document kind.
func (d *DocumentMetrics) IncFailure(kind string) {
	if d == nil || d.failure == nil {
		return
	}
	d.failure.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(kind string) string {
	if kind == "" {
		return "unknown"
	}
	return kind
}

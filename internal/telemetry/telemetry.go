// Package telemetry provides OpenTelemetry instrumentation for the triage
// service. It exports Prometheus metrics and provides tracing capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "triage"

// Metrics holds all triage Prometheus metrics
type Metrics struct {
	// Triage metrics
	ComplaintsTriaged *prometheus.CounterVec
	TriageFailed      *prometheus.CounterVec
	TriageDuration    prometheus.Histogram
	SentimentTotal    *prometheus.CounterVec
	PriorityTotal     *prometheus.CounterVec

	// Batch metrics
	BatchSize     prometheus.Histogram
	ActiveWorkers prometheus.Gauge

	// Dataset metrics
	ComplaintsRecorded prometheus.Counter
	DatasetRows        prometheus.Gauge
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}

	m.ComplaintsTriaged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_complaints_total",
		Help: "Total complaints triaged, by predicted category",
	}, []string{"category"})

	m.TriageFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_failed_total",
		Help: "Total triage requests that failed",
	}, []string{"error_code"})

	m.TriageDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triage_duration_seconds",
		Help:    "Time to triage a single complaint",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	})

	m.SentimentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_sentiment_total",
		Help: "Total complaints by detected customer sentiment",
	}, []string{"sentiment"})

	m.PriorityTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_priority_total",
		Help: "Total complaints by assigned priority",
	}, []string{"priority"})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triage_batch_size",
		Help:    "Number of complaints per batch request",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 500},
	})

	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "triage_active_workers",
		Help: "Currently active batch worker goroutines",
	})

	m.ComplaintsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triage_complaints_recorded_total",
		Help: "Total complaints appended to the dataset",
	})

	m.DatasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "triage_dataset_rows",
		Help: "Current number of rows in the complaint dataset",
	})

	return m
}

// RecordTriage records metrics for one successful triage
func (p *Provider) RecordTriage(ctx context.Context, category, sentiment, priority string, duration time.Duration) {
	p.Metrics.ComplaintsTriaged.WithLabelValues(category).Inc()
	p.Metrics.SentimentTotal.WithLabelValues(sentiment).Inc()
	p.Metrics.PriorityTotal.WithLabelValues(priority).Inc()
	p.Metrics.TriageDuration.Observe(duration.Seconds())
}

// RecordTriageFailure records a failed triage with its error code
func (p *Provider) RecordTriageFailure(ctx context.Context, errorCode string) {
	p.Metrics.TriageFailed.WithLabelValues(errorCode).Inc()
}

// RecordBatchSize records the size of a processed batch
func (p *Provider) RecordBatchSize(size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// SetActiveWorkers sets the current active worker count
func (p *Provider) SetActiveWorkers(count int) {
	p.Metrics.ActiveWorkers.Set(float64(count))
}

// RecordComplaintRecorded increments the dataset append counter
func (p *Provider) RecordComplaintRecorded(ctx context.Context) {
	p.Metrics.ComplaintsRecorded.Inc()
}

// SetDatasetRows sets the current dataset row count
func (p *Provider) SetDatasetRows(rows int) {
	p.Metrics.DatasetRows.Set(float64(rows))
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}

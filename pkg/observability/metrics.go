package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics records the lifecycle of service operations.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
}

type prometheusOperationMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewOperationMetrics registers operation counters and a latency histogram on
// reg. Calling it twice against the same registry reuses the registered vectors.
func NewOperationMetrics(reg prometheus.Registerer) OperationMetrics {
	labels := []string{"service", "operation"}
	m := &prometheusOperationMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventdesk",
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, labels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventdesk",
			Name:      "operation_success_total",
			Help:      "Service operations that completed without error.",
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventdesk",
			Name:      "operation_failures_total",
			Help:      "Service operations that returned an error or panicked.",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "eventdesk",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, labels),
	}
	m.attempts = registerOrExisting(reg, m.attempts)
	m.successes = registerOrExisting(reg, m.successes)
	m.failures = registerOrExisting(reg, m.failures)
	m.duration = registerOrExisting(reg, m.duration)
	return m
}

func (m *prometheusOperationMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(service, operation).Inc()
}

func (m *prometheusOperationMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(service, operation).Inc()
}

func (m *prometheusOperationMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(service, operation).Inc()
}

func (m *prometheusOperationMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.duration.WithLabelValues(service, operation).Observe(d.Seconds())
}

type noopOperationMetrics struct{}

// NewNoopMetrics returns OperationMetrics that record nothing.
func NewNoopMetrics() OperationMetrics { return noopOperationMetrics{} }

func (noopOperationMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (noopOperationMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (noopOperationMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (noopOperationMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}

// DirectusMetrics observes outbound CMS requests.
type DirectusMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewDirectusMetrics registers CMS client metrics on reg.
func NewDirectusMetrics(reg prometheus.Registerer) *DirectusMetrics {
	labels := []string{"method", "resource", "status"}
	m := &DirectusMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventdesk",
			Subsystem: "directus",
			Name:      "requests_total",
			Help:      "Requests sent to the Directus API.",
		}, labels),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "eventdesk",
			Subsystem: "directus",
			Name:      "request_duration_seconds",
			Help:      "Directus API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, labels),
	}
	m.requests = registerOrExisting(reg, m.requests)
	m.latency = registerOrExisting(reg, m.latency)
	return m
}

// ObserveRequest records one CMS round trip. status is "error" for transport failures.
func (m *DirectusMetrics) ObserveRequest(method, resource, status string, d time.Duration) {
	m.requests.WithLabelValues(method, resource, status).Inc()
	m.latency.WithLabelValues(method, resource, status).Observe(d.Seconds())
}

func registerOrExisting[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

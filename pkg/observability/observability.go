package observability

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/raynzz/eventdesk"

// Config controls how the observability stack is built.
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
	LogFormat   string
	Output      io.Writer
}

// Observability bundles the logger, tracer and metrics registry handed to modules.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
}

// New builds the observability stack. The tracer comes from the global otel
// provider so an exporter installed by the host process is picked up.
func New(cfg Config) Observability {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	logger := NewLogger(cfg)
	if cfg.ServiceName != "" {
		logger = logger.With(slog.String("service", cfg.ServiceName))
	}

	return Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(instrumentationName),
		Registry: registry,
	}
}

// NewNoop returns an Observability that discards logs, traces and metrics.
func NewNoop() Observability {
	return Observability{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:   noop.NewTracerProvider().Tracer("noop"),
		Registry: prometheus.NewRegistry(),
	}
}

// NewLogger returns a JSON logger outside development and a text logger in it.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	format := strings.ToLower(cfg.LogFormat)
	if format == "" {
		format = "json"
		if isDevelopment(cfg.Environment) {
			format = "text"
		}
	}

	if format == "text" {
		return slog.New(slog.NewTextHandler(out, opts))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}

// MetricsHandler serves the registry in the Prometheus exposition format.
func (o Observability) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{Registry: o.Registry})
}

// OperationMetrics returns service metrics registered on o.Registry, or a noop
// recorder when there is no registry.
func (o Observability) OperationMetrics() OperationMetrics {
	if o.Registry == nil {
		return NewNoopMetrics()
	}
	return NewOperationMetrics(o.Registry)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isDevelopment(env string) bool {
	switch strings.ToLower(env) {
	case "", "development", "dev", "local":
		return true
	}
	return false
}

// Package observability bundles the logger, tracer and metrics registry that
// every module receives at construction time.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ServiceName identifies this client in traces and logs.
const ServiceName = "esportivo"

// Config controls logger construction.
type Config struct {
	LogLevel       string
	LogFormat      string
	MetricsEnabled bool
	Environment    string
	Output         io.Writer
}

// Provider owns the logger.
type Provider struct {
	Logger *slog.Logger
}

// Registry owns the tracer and the prometheus registry. Metrics is nil when
// metrics are disabled.
type Registry struct {
	Tracer  trace.Tracer
	Metrics *prometheus.Registry
}

// Observability is handed to module constructors.
type Observability struct {
	Provider Provider
	Registry Registry
}

// New builds the observability bundle from config.
func New(cfg Config) Observability {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}
	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler).With(slog.String("service", ServiceName))
	if cfg.Environment != "" {
		logger = logger.With(slog.String("env", cfg.Environment))
	}

	var reg *prometheus.Registry
	if cfg.MetricsEnabled {
		reg = prometheus.NewRegistry()
	}

	return Observability{
		Provider: Provider{Logger: logger},
		Registry: Registry{
			Tracer:  otel.Tracer(ServiceName),
			Metrics: reg,
		},
	}
}

// NewNoop returns a bundle that discards logs and traces. Used by tests.
func NewNoop() Observability {
	return Observability{
		Provider: Provider{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
		Registry: Registry{Tracer: noop.NewTracerProvider().Tracer("test")},
	}
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

package insert

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for session events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets the tracer used for session spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Controller) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithMaxInsertionCount lowers the counted insertion cap. Values above
// MaxInsertionCount are clamped to it; n <= 0 keeps the default.
func WithMaxInsertionCount(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.policy.Max = min(n, MaxInsertionCount)
		}
	}
}

// WithCatalog replaces the built-in variant catalog.
func WithCatalog(catalog *Catalog) Option {
	return func(c *Controller) {
		if catalog != nil {
			c.catalog = catalog
		}
	}
}

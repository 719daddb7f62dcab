package casstcl

import (
	"github.com/gahr/casstcl/internal/logging"
	"github.com/gahr/casstcl/internal/metrics"
	"github.com/gahr/casstcl/schema"
	"github.com/gahr/casstcl/types"
)

const (
	// DefaultPageSize is the page size used when neither the client
	// configuration nor the call specifies one.
	DefaultPageSize = 100
)

// ClientConfig holds the configuration of a Client.
type ClientConfig struct {
	// Logger receives structured log output. Defaults to a no-op
	// logger.
	Logger types.Logger

	// Metrics receives operational metrics. Defaults to a no-op
	// collector.
	Metrics types.MetricsCollector

	// PageSize is the default number of rows fetched per page.
	PageSize int

	// Consistency is the default consistency level of statements that
	// carry none of their own.
	Consistency types.Consistency

	// Resolver is an optional slow-path hook for wire type descriptors
	// the built-in translation does not recognize.
	Resolver schema.Resolver

	// Dispatcher delivers async completions. A private dispatcher is
	// created when none is supplied.
	Dispatcher *Dispatcher
}

// DefaultConfig returns the default client configuration.
//
// Returns:
//   - *ClientConfig: Defaults with nop logger and metrics, page size
//     DefaultPageSize and quorum consistency
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Logger:      logging.NewNopLogger(),
		Metrics:     metrics.NewNopMetrics(),
		PageSize:    DefaultPageSize,
		Consistency: types.Quorum,
	}
}

// Option is a function type used to apply configuration options to
// ClientConfig.
type Option func(*ClientConfig)

// WithLogger sets the logger instance for the client.
func WithLogger(logger types.Logger) Option {
	return func(config *ClientConfig) {
		if logger != nil {
			config.Logger = logger
		}
	}
}

// WithMetrics sets the metrics collector for the client.
func WithMetrics(collector types.MetricsCollector) Option {
	return func(config *ClientConfig) {
		if collector != nil {
			config.Metrics = collector
		}
	}
}

// WithPageSize sets the default page size for paginated selects.
func WithPageSize(n int) Option {
	return func(config *ClientConfig) {
		if n > 0 {
			config.PageSize = n
		}
	}
}

// WithConsistency sets the default consistency level.
func WithConsistency(c types.Consistency) Option {
	return func(config *ClientConfig) {
		config.Consistency = c
	}
}

// WithConsistencyName sets the default consistency level by name, such
// as "local_quorum". Unknown names are ignored.
func WithConsistencyName(name string) Option {
	return func(config *ClientConfig) {
		if c, ok := types.ParseConsistency(name); ok {
			config.Consistency = c
		}
	}
}

// WithTypeResolver sets the slow-path type descriptor resolver.
func WithTypeResolver(r schema.Resolver) Option {
	return func(config *ClientConfig) {
		config.Resolver = r
	}
}

// WithDispatcher sets the dispatcher that delivers async completions.
func WithDispatcher(d *Dispatcher) Option {
	return func(config *ClientConfig) {
		if d != nil {
			config.Dispatcher = d
		}
	}
}

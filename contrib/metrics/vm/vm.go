package vm

import (
	"fmt"
	"io"
	"net/http"

	"github.com/VictoriaMetrics/metrics"

	"github.com/gahr/casstcl/types"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix.
//
// Default: "casstcl"
//
// Parameters:
//   - prefix: The prefix to use for all metric names
//
// Returns:
//   - Option: A configuration option
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		c.prefix = prefix
	}
}

// WithMetricsSet sets the metrics set to use.
//
// If provided, the collector will register metrics with this set instead
// of creating a new one. The caller is responsible for exposing this set
// (e.g., via metrics.WritePrometheus or a custom handler).
//
// Parameters:
//   - set: The metrics set to use
//
// Returns:
//   - Option: A configuration option
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		c.set = set
	}
}

// Collector implements types.MetricsCollector using VictoriaMetrics.
//
// All metrics are pre-created at initialization time for optimal
// performance. Thread-safe for concurrent use.
type Collector struct {
	set    *metrics.Set
	prefix string

	queryTotal    map[types.QueryKind]*metrics.Counter
	queryErrors   map[types.QueryKind]*metrics.Counter
	queryDuration map[types.QueryKind]*metrics.Histogram

	pagesFetched  *metrics.Counter
	rowsDelivered *metrics.Counter

	typeCacheHits   *metrics.Counter
	typeCacheMisses *metrics.Counter

	asyncSubmitted *metrics.Counter
	asyncDelivered *metrics.Counter
}

// Compile-time assertion that Collector implements types.MetricsCollector.
var _ types.MetricsCollector = (*Collector)(nil)

// New creates a new VictoriaMetrics-based metrics collector.
//
// The collector creates its own metrics.Set and registers it globally
// unless WithMetricsSet supplies one.
//
// Parameters:
//   - opts: Configuration options (e.g., WithPrefix)
//
// Returns:
//   - *Collector: A new metrics collector ready for use
//
// Example:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	client, _ := casstcl.NewClient(session,
//	    casstcl.WithMetrics(collector),
//	)
func New(opts ...Option) *Collector {
	c := &Collector{prefix: "casstcl"}

	for _, opt := range opts {
		opt(c)
	}

	// If no set is provided, create a new one and register it globally.
	// If a set is provided, we assume the caller manages it.
	if c.set == nil {
		c.set = metrics.NewSet()
		metrics.RegisterSet(c.set)
	}

	c.initMetrics()

	return c
}

// initMetrics pre-creates all metrics with the configured prefix.
func (c *Collector) initMetrics() {
	p := c.prefix
	kinds := []types.QueryKind{types.QueryExec, types.QuerySelect, types.QueryAsync}

	c.queryTotal = make(map[types.QueryKind]*metrics.Counter, len(kinds))
	c.queryErrors = make(map[types.QueryKind]*metrics.Counter, len(kinds))
	c.queryDuration = make(map[types.QueryKind]*metrics.Histogram, len(kinds))
	for _, kind := range kinds {
		c.queryTotal[kind] = c.set.NewCounter(
			fmt.Sprintf(`%s_query_total{kind="%s"}`, p, kind))
		c.queryErrors[kind] = c.set.NewCounter(
			fmt.Sprintf(`%s_query_errors_total{kind="%s"}`, p, kind))
		c.queryDuration[kind] = c.set.NewHistogram(
			fmt.Sprintf(`%s_query_duration_seconds{kind="%s"}`, p, kind))
	}

	c.pagesFetched = c.set.NewCounter(fmt.Sprintf(`%s_pages_fetched_total`, p))
	c.rowsDelivered = c.set.NewCounter(fmt.Sprintf(`%s_rows_delivered_total`, p))

	c.typeCacheHits = c.set.NewCounter(fmt.Sprintf(`%s_type_cache_hits_total`, p))
	c.typeCacheMisses = c.set.NewCounter(fmt.Sprintf(`%s_type_cache_misses_total`, p))

	c.asyncSubmitted = c.set.NewCounter(fmt.Sprintf(`%s_async_submitted_total`, p))
	c.asyncDelivered = c.set.NewCounter(fmt.Sprintf(`%s_async_delivered_total`, p))
}

// Set returns the underlying metrics set.
func (c *Collector) Set() *metrics.Set {
	return c.set
}

// Handler returns an HTTP handler that exposes metrics in Prometheus
// format.
//
// Example:
//
//	http.HandleFunc("/metrics", collector.Handler)
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}

// WritePrometheus writes all metrics in Prometheus format to the given
// writer.
//
// Parameters:
//   - w: The writer to write metrics to
func (c *Collector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

// IncQueryTotal increments the query counter for the given kind.
func (c *Collector) IncQueryTotal(kind types.QueryKind) {
	if counter, ok := c.queryTotal[kind]; ok {
		counter.Inc()
	}
}

// IncQueryError increments the query error counter for the given kind.
func (c *Collector) IncQueryError(kind types.QueryKind) {
	if counter, ok := c.queryErrors[kind]; ok {
		counter.Inc()
	}
}

// ObserveQueryDuration records a query duration for the given kind.
func (c *Collector) ObserveQueryDuration(kind types.QueryKind, seconds float64) {
	if histogram, ok := c.queryDuration[kind]; ok {
		histogram.Update(seconds)
	}
}

// IncPagesFetched increments the fetched pages counter.
func (c *Collector) IncPagesFetched() {
	c.pagesFetched.Inc()
}

// IncRowsDelivered adds to the delivered rows counter.
func (c *Collector) IncRowsDelivered(n int) {
	if n > 0 {
		c.rowsDelivered.Add(n)
	}
}

// IncTypeCacheHit increments the type cache hit counter.
func (c *Collector) IncTypeCacheHit() {
	c.typeCacheHits.Inc()
}

// IncTypeCacheMiss increments the type cache miss counter.
func (c *Collector) IncTypeCacheMiss() {
	c.typeCacheMisses.Inc()
}

// IncAsyncSubmitted increments the async submission counter.
func (c *Collector) IncAsyncSubmitted() {
	c.asyncSubmitted.Inc()
}

// IncAsyncDelivered increments the async delivery counter.
func (c *Collector) IncAsyncDelivered() {
	c.asyncDelivered.Inc()
}

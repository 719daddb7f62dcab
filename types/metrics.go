package types

// QueryKind labels the operation kind for metrics.
type QueryKind string

const (
	// QueryExec is a synchronous non-row execution.
	QueryExec QueryKind = "exec"

	// QuerySelect is a paginated row-streaming execution.
	QuerySelect QueryKind = "select"

	// QueryAsync is an asynchronous submission.
	QueryAsync QueryKind = "async"
)

// MetricsCollector receives operational metrics from the engine.
//
// Implementations MUST be safe for concurrent use from multiple
// goroutines. The default is a no-op collector; see contrib/metrics/vm
// for a VictoriaMetrics implementation.
type MetricsCollector interface {
	// IncQueryTotal counts one execution of the given kind.
	IncQueryTotal(kind QueryKind)

	// IncQueryError counts one failed execution of the given kind.
	IncQueryError(kind QueryKind)

	// ObserveQueryDuration records the duration in seconds of one
	// execution of the given kind.
	ObserveQueryDuration(kind QueryKind, seconds float64)

	// IncPagesFetched counts one fetched result page.
	IncPagesFetched()

	// IncRowsDelivered counts rows delivered to row handlers.
	IncRowsDelivered(n int)

	// IncTypeCacheHit counts one type-registry cache hit.
	IncTypeCacheHit()

	// IncTypeCacheMiss counts one type-registry cache miss.
	IncTypeCacheMiss()

	// IncAsyncSubmitted counts one async submission.
	IncAsyncSubmitted()

	// IncAsyncDelivered counts one async completion delivery.
	IncAsyncDelivered()
}

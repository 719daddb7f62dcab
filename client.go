package casstcl

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gahr/casstcl/adapter/cql"
	"github.com/gahr/casstcl/schema"
	"github.com/gahr/casstcl/types"
)

// Client is a dynamically typed CQL query engine over a driver session.
//
// The client never inspects CQL text; values travel as types.Value and
// are converted explicitly against schema-resolved column types. All
// methods are safe for concurrent use.
type Client struct {
	session    cql.Session
	registry   *schema.Registry
	dispatcher *Dispatcher
	config     *ClientConfig
	closed     atomic.Bool
}

// NewClient creates a new Client over the given session.
//
// Example:
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	session, _ := cluster.CreateSession()
//	client, err := casstcl.NewClient(v1.WrapSession(session),
//		casstcl.WithPageSize(500),
//		casstcl.WithConsistencyName("local_quorum"),
//	)
//
// Parameters:
//   - session: The driver session, wrapped by an adapter subpackage
//   - opts: Optional configuration
//
// Returns:
//   - *Client: The client
//   - error: types.ErrNilSession if session is nil
func NewClient(session cql.Session, opts ...Option) (*Client, error) {
	if session == nil {
		return nil, types.ErrNilSession
	}

	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	dispatcher := config.Dispatcher
	if dispatcher == nil {
		dispatcher = NewDispatcher()
	}

	registryOpts := []schema.Option{
		schema.WithLogger(config.Logger),
		schema.WithMetrics(config.Metrics),
	}
	if config.Resolver != nil {
		registryOpts = append(registryOpts, schema.WithResolver(config.Resolver))
	}

	return &Client{
		session:    session,
		registry:   schema.NewRegistry(session, registryOpts...),
		dispatcher: dispatcher,
		config:     config,
	}, nil
}

// Registry returns the client's type registry.
func (c *Client) Registry() *schema.Registry {
	return c.registry
}

// Dispatcher returns the dispatcher delivering async completions.
func (c *Client) Dispatcher() *Dispatcher {
	return c.dispatcher
}

// Prepare registers a statement for name-based binding.
//
// Parameter metadata is external input here, usually obtained from
// schema inspection; see cql.Session.Prepare.
func (c *Client) Prepare(stmt string, params ...cql.ColumnInfo) cql.Prepared {
	return c.session.Prepare(stmt, params...)
}

// Close closes the client and the underlying session. Further
// operations fail with types.ErrSessionClosed.
func (c *Client) Close() {
	if c.closed.Swap(true) {
		return
	}
	c.session.Close()
}

// Exec executes a statement that returns no rows.
//
// Parameters:
//   - ctx: Context for cancellation
//   - stmt: A built statement
//
// Returns:
//   - error: *types.ExecError on driver failure
func (c *Client) Exec(ctx context.Context, stmt *Statement) error {
	if c.closed.Load() {
		return types.ErrSessionClosed
	}

	c.config.Metrics.IncQueryTotal(types.QueryExec)
	start := time.Now()
	err := c.queryFor(stmt).ExecContext(ctx)
	c.config.Metrics.ObserveQueryDuration(types.QueryExec, time.Since(start).Seconds())

	if err != nil {
		c.config.Metrics.IncQueryError(types.QueryExec)
		c.reportFailure("statement execution failed", stmt, err)

		return &types.ExecError{Query: stmt.Text(), Cause: err}
	}

	return nil
}

// reportFailure logs a driver failure and forwards it to the
// process-wide diagnostics callback, if one is registered.
func (c *Client) reportFailure(msg string, stmt *Statement, err error) {
	c.config.Logger.Error(msg, "query", stmt.Text(), "error", err)
	emitLogEvent(LogEvent{
		Time:     time.Now(),
		Severity: SeverityError,
		Message:  err.Error(),
	})
}

// queryFor builds the driver query for a statement, applying the
// statement's consistency or the client default.
func (c *Client) queryFor(stmt *Statement) cql.Query {
	var query cql.Query
	if stmt.prepared != nil {
		query = stmt.prepared.Bind(stmt.values...)
	} else {
		query = c.session.Query(stmt.query, stmt.values...)
	}

	consistency := c.config.Consistency
	if stmt.consistency != nil {
		consistency = *stmt.consistency
	}

	return query.Consistency(consistency)
}

package casstcl

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gahr/casstcl/types"
)

// Dispatcher is a single logical thread of control for asynchronous
// completions.
//
// Workers execute statements on their own goroutines, but completion
// callbacks are only ever invoked from the dispatcher, inside Run or
// Pump. Completions are delivered in submission order: an operation
// submitted later never delivers before an earlier one, even when it
// finishes first.
type Dispatcher struct {
	mu      sync.Mutex
	pending []*pendingOp
	stopped bool

	// wake has capacity 1; a completion only needs to ensure a pump
	// happens after it, not one pump per completion.
	wake chan struct{}
}

// pendingOp is one queued completion. The deliver closure is set
// before ready flips, so a pumping goroutine that observes ready can
// safely call deliver.
type pendingOp struct {
	ready   atomic.Bool
	deliver func()
}

func (op *pendingOp) finish(deliver func()) {
	op.deliver = deliver
	op.ready.Store(true)
}

// NewDispatcher creates a dispatcher.
//
// Returns:
//   - *Dispatcher: A dispatcher with an empty queue, ready to Run
func NewDispatcher() *Dispatcher {
	return &Dispatcher{wake: make(chan struct{}, 1)}
}

// enqueue appends an operation slot in submission order.
func (d *Dispatcher) enqueue() (*pendingOp, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return nil, types.ErrDispatcherStopped
	}

	op := &pendingOp{}
	d.pending = append(d.pending, op)

	return op, nil
}

// wakeUp nudges Run to pump. Non-blocking.
func (d *Dispatcher) wakeUp() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Pump delivers every completion that is ready at the head of the
// queue and returns how many it delivered.
//
// Delivery is gated at the head: a later operation that finished early
// waits until everything submitted before it has delivered.
//
// Returns:
//   - int: Number of completions delivered
func (d *Dispatcher) Pump() int {
	delivered := 0
	for {
		d.mu.Lock()
		if len(d.pending) == 0 || !d.pending[0].ready.Load() {
			d.mu.Unlock()

			return delivered
		}
		head := d.pending[0]
		d.pending = d.pending[1:]
		d.mu.Unlock()

		head.deliver()
		delivered++
	}
}

// Run pumps completions until the context is cancelled.
//
// Parameters:
//   - ctx: Context bounding the dispatcher's lifetime
//
// Returns:
//   - error: The context's error
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.wake:
			d.Pump()
		}
	}
}

// Stop rejects further submissions. Already-queued completions can
// still be pumped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
}

// Future is the handle of one asynchronous operation.
//
// It completes when the dispatcher delivers the operation's
// completion, not when the worker finishes; Await therefore requires
// the dispatcher to be running or pumped.
type Future struct {
	done chan struct{}
	err  error
	halt atomic.Bool
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Done returns a channel closed once the completion has been
// delivered.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Err returns the operation's error. Valid only after Done is closed.
func (f *Future) Err() error {
	return f.err
}

// Await blocks until the completion has been delivered or the context
// is cancelled.
//
// Parameters:
//   - ctx: Context bounding the wait
//
// Returns:
//   - error: The operation's error, or the context's error
func (f *Future) Await(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.done:
		return f.err
	}
}

// Stop asks a running select to halt before its next page fetch. It
// has no effect on non-row operations or on the current page.
func (f *Future) Stop() {
	f.halt.Store(true)
}

func (f *Future) complete(err error) {
	f.err = err
	close(f.done)
}

// ExecAsync executes a statement on a worker goroutine and delivers
// its completion through the dispatcher.
//
// The returned future completes with the operation's error once the
// dispatcher delivers; done, when non-nil, is invoked from the
// dispatcher immediately before that.
//
// Parameters:
//   - ctx: Context for cancellation
//   - stmt: A built statement
//   - done: Optional completion callback, invoked from the dispatcher
//
// Returns:
//   - *Future: The operation's handle
func (c *Client) ExecAsync(ctx context.Context, stmt *Statement, done func(error)) *Future {
	return c.submit(ctx, func(ctx context.Context) error {
		return c.Exec(ctx, stmt)
	}, done)
}

// SelectAsync runs a paginated select on a worker goroutine and
// delivers its completion through the dispatcher.
//
// The row handler runs on the worker goroutine as rows arrive; only
// the final completion is delivered through the dispatcher. Calling
// Stop on the returned future halts the select before its next page
// fetch.
//
// Parameters:
//   - ctx: Context for cancellation
//   - stmt: A built statement
//   - pageSize: Rows per page, 0 for the client default
//   - fn: Row handler, invoked on the worker goroutine
//   - done: Optional completion callback, invoked from the dispatcher
//
// Returns:
//   - *Future: The operation's handle
func (c *Client) SelectAsync(ctx context.Context, stmt *Statement, pageSize int,
	fn RowHandler, done func(error),
) *Future {
	future := newFuture()
	c.start(ctx, future, func(ctx context.Context) error {
		if c.closed.Load() {
			return types.ErrSessionClosed
		}

		err := c.selectPages(ctx, stmt, pageSize, fn, &future.halt)
		if err != nil {
			c.reportFailure("async select failed", stmt, err)
		}

		return err
	}, done)

	return future
}

// submit wraps an operation into a fresh future and starts it.
func (c *Client) submit(ctx context.Context, run func(context.Context) error,
	done func(error),
) *Future {
	future := newFuture()
	c.start(ctx, future, run, done)

	return future
}

// start queues an operation slot, runs the operation on a worker
// goroutine and arranges ordered delivery of its completion.
func (c *Client) start(ctx context.Context, future *Future,
	run func(context.Context) error, done func(error),
) {
	op, err := c.dispatcher.enqueue()
	if err != nil {
		// The dispatcher is stopped; the future completes immediately
		// and the done callback is never invoked.
		future.complete(err)

		return
	}
	c.config.Metrics.IncAsyncSubmitted()
	c.config.Metrics.IncQueryTotal(types.QueryAsync)

	go func() {
		err := run(ctx)
		if err != nil {
			c.config.Metrics.IncQueryError(types.QueryAsync)
		}
		op.finish(func() {
			if done != nil {
				done(err)
			}
			future.complete(err)
			c.config.Metrics.IncAsyncDelivered()
		})
		c.dispatcher.wakeUp()
	}()
}

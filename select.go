package casstcl

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gahr/casstcl/adapter/cql"
	"github.com/gahr/casstcl/marshal"
	"github.com/gahr/casstcl/types"
)

// RowControl is a row handler's verdict on how iteration proceeds.
type RowControl int

const (
	// Continue proceeds with the next row.
	Continue RowControl = iota

	// SkipPage abandons the remaining rows of the current page and
	// proceeds with the next page.
	SkipPage

	// Stop ends the iteration successfully. No further rows are
	// delivered and no further pages are fetched.
	Stop
)

// RowHandler receives one row at a time during a paginated select.
//
// Returning an error stops the iteration and surfaces as a
// *types.CallbackError; returning Stop ends it successfully.
type RowHandler func(row Row) (RowControl, error)

// Row is one result row. Columns that were NULL in the result are
// absent from the row, not rendered as empty values.
type Row struct {
	columns []string
	values  []types.Value
}

// Columns returns the names of the row's non-NULL columns in result
// order.
func (r Row) Columns() []string {
	return r.columns
}

// Values returns the row's values in result order, parallel to
// Columns.
func (r Row) Values() []types.Value {
	return r.values
}

// Value returns the value of the named column. The second result is
// false when the column is absent, which includes NULL columns.
func (r Row) Value(name string) (types.Value, bool) {
	for i, col := range r.columns {
		if col == name {
			return r.values[i], true
		}
	}

	return types.Null(), false
}

// Len returns the number of non-NULL columns in the row.
func (r Row) Len() int {
	return len(r.columns)
}

// Select executes a statement and streams its rows through fn, one
// page at a time.
//
// Pages are fetched on demand: the next page is requested only after
// the current page's rows have been handled, carrying the driver's
// paging state forward. A page with zero rows is not an error; the
// iteration simply proceeds to the more-pages check.
//
// Parameters:
//   - ctx: Context for cancellation
//   - stmt: A built statement
//   - pageSize: Rows per page, 0 for the client default
//   - fn: Row handler
//
// Returns:
//   - error: *types.ExecError on driver failure, *types.CallbackError
//     when fn returned an error
func (c *Client) Select(ctx context.Context, stmt *Statement, pageSize int, fn RowHandler) error {
	if c.closed.Load() {
		return types.ErrSessionClosed
	}

	c.config.Metrics.IncQueryTotal(types.QuerySelect)
	start := time.Now()
	err := c.selectPages(ctx, stmt, pageSize, fn, nil)
	c.config.Metrics.ObserveQueryDuration(types.QuerySelect, time.Since(start).Seconds())

	if err != nil {
		c.config.Metrics.IncQueryError(types.QuerySelect)
		c.reportFailure("select failed", stmt, err)
	}

	return err
}

// selectPages runs the per-page fetch loop. The optional halt flag is
// checked between pages; it is how an async future stops a running
// select without cancelling its context.
func (c *Client) selectPages(ctx context.Context, stmt *Statement, pageSize int,
	fn RowHandler, halt *atomic.Bool,
) error {
	if pageSize <= 0 {
		pageSize = c.config.PageSize
	}

	var pageState []byte
	for page := 0; ; page++ {
		if halt != nil && halt.Load() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return &types.ExecError{Query: stmt.Text(), Cause: err}
		}

		// Applying the page state, even an empty one on the first
		// page, puts the driver in manual paging mode so the iterator
		// covers exactly one page.
		query := c.queryFor(stmt).PageSize(pageSize).PageState(pageState)
		iter := query.IterContext(ctx)
		if iter == nil {
			return &types.ExecError{Query: stmt.Text(), Cause: types.ErrNoResult}
		}
		c.config.Metrics.IncPagesFetched()

		stopped, err := c.drainPage(iter, page, fn)
		if err != nil {
			iter.Close()

			return err
		}

		nextState := iter.PageState()
		if err := iter.Close(); err != nil {
			return &types.ExecError{Query: stmt.Text(), Cause: err}
		}
		if stopped || len(nextState) == 0 {
			return nil
		}
		pageState = nextState
	}
}

// drainPage delivers one page's rows to fn. It reports whether the
// handler asked to stop the whole iteration.
func (c *Client) drainPage(iter cql.Iter, page int, fn RowHandler) (bool, error) {
	columns := iter.Columns()
	for rowIdx := 0; ; rowIdx++ {
		values, ok := iter.Next()
		if !ok {
			return false, nil
		}

		c.config.Metrics.IncRowsDelivered(1)
		control, err := fn(buildRow(columns, values))
		if err != nil {
			return false, &types.CallbackError{Page: page, Row: rowIdx, Cause: err}
		}

		switch control {
		case SkipPage:
			return false, nil
		case Stop:
			return true, nil
		}
	}
}

// buildRow converts one scanned row into the dynamic row view,
// omitting NULL columns.
func buildRow(columns []cql.ColumnInfo, values []any) Row {
	row := Row{
		columns: make([]string, 0, len(values)),
		values:  make([]types.Value, 0, len(values)),
	}
	for i, v := range values {
		if v == nil || i >= len(columns) {
			continue
		}
		row.columns = append(row.columns, columns[i].Name)
		row.values = append(row.values, marshal.ToValue(v))
	}

	return row
}

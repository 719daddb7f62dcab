// Package cql defines driver-neutral interfaces between the casstcl
// engine and the underlying CQL driver.
package cql

import (
	"context"

	"github.com/gahr/casstcl/types"
)

// Consistency is re-exported from the types package for convenience.
type Consistency = types.Consistency

// Session represents a connection to a CQL cluster.
//
// It is the engine's only view of the driver: statement execution,
// statement preparation and schema metadata. Adapters for concrete
// drivers live in subpackages (v1 wraps github.com/gocql/gocql).
type Session interface {
	// Query creates a new query for the given statement.
	//
	// Parameters:
	//   - stmt: CQL statement with ? placeholders
	//   - values: Values to bind to placeholders
	//
	// Returns:
	//   - Query: A query builder
	Query(stmt string, values ...any) Query

	// Prepare registers a statement for later binding.
	//
	// Drivers that do not expose server-side parameter metadata accept
	// it from the caller instead; see the v1 subpackage.
	//
	// Parameters:
	//   - stmt: CQL statement with ? placeholders
	//   - params: Parameter metadata in bind order
	//
	// Returns:
	//   - Prepared: A reusable prepared-statement handle
	Prepare(stmt string, params ...ColumnInfo) Prepared

	// KeyspaceMetadata returns the schema metadata of a keyspace.
	//
	// Parameters:
	//   - keyspace: The keyspace to describe
	//
	// Returns:
	//   - *KeyspaceMeta: The keyspace's tables and columns
	//   - error: Driver error, or a lookup failure for a missing keyspace
	KeyspaceMetadata(keyspace string) (*KeyspaceMeta, error)

	// Keyspaces lists the names of the keyspaces in the cluster.
	//
	// Returns:
	//   - []string: Keyspace names
	//   - error: Driver error
	Keyspaces(ctx context.Context) ([]string, error)

	// Close terminates the session.
	Close()
}

// Query represents a single executable statement.
//
// Configuration methods return the same query for chaining, matching
// the shape of gocql's fluent API.
type Query interface {
	// Consistency sets the consistency level.
	Consistency(c Consistency) Query

	// PageSize sets the number of rows fetched per page.
	PageSize(n int) Query

	// PageState sets the opaque continuation token for the next page.
	//
	// Setting a page state (even nil) switches the query to manual
	// paging: the iterator covers exactly one page and reports the
	// next token via Iter.PageState.
	PageState(state []byte) Query

	// ExecContext executes the query without returning rows.
	ExecContext(ctx context.Context) error

	// IterContext executes the query and returns an iterator over the
	// resulting page. A nil iterator with no way to surface an error
	// corresponds to a future that completed with no result.
	IterContext(ctx context.Context) Iter
}

// Iter iterates over the rows of one result page.
type Iter interface {
	// Columns returns metadata for the result columns, in result order.
	Columns() []ColumnInfo

	// Next returns the values of the next row in result-column order.
	// NULL columns are returned as nil entries. The second result is
	// false when the page is exhausted or an error occurred; errors
	// are reported by Close.
	Next() ([]any, bool)

	// PageState returns the continuation token for the next page, or
	// an empty token when the result set is exhausted.
	PageState() []byte

	// NumRows returns the number of rows in this page.
	NumRows() int

	// Close releases the iterator and returns any iteration error.
	Close() error
}

// Prepared is an opaque prepared-statement handle.
//
// Parameter types come from the statement's own metadata, not from the
// general schema registry, so binding by name needs no table lookup.
type Prepared interface {
	// Statement returns the CQL text the handle was prepared from.
	Statement() string

	// Parameters returns the statement's parameter metadata in bind
	// order.
	Parameters() []ColumnInfo

	// Bind creates a query over the prepared statement with the given
	// values bound positionally.
	Bind(values ...any) Query
}

type unsetColumn struct{}

// Unset is bound in place of a prepared-statement parameter that was
// not supplied. The server leaves an unset column untouched, where a
// nil bind writes NULL. Adapters translate it to their driver's unset
// representation.
var Unset any = unsetColumn{}

// ColumnInfo holds metadata about a column, either in query results or
// in prepared-statement parameters.
type ColumnInfo struct {
	// Keyspace is the keyspace containing the table, when known.
	Keyspace string

	// Table is the table name, when known.
	Table string

	// Name is the column name.
	Name string

	// Validator is the raw wire type descriptor, either a CQL type
	// name such as "list<int>" or a marshal class such as
	// "org.apache.cassandra.db.marshal.UTF8Type".
	Validator string
}

// ColumnMeta describes one column of a table in schema metadata.
type ColumnMeta struct {
	// Name is the column name. Entries whose underlying metadata does
	// not carry a simple name are skipped by adapters and never appear
	// here.
	Name string

	// Validator is the raw wire type descriptor of the column.
	Validator string
}

// TableMeta describes one table of a keyspace.
type TableMeta struct {
	// Name is the table name.
	Name string

	// Columns holds the table's columns in schema order.
	Columns []ColumnMeta
}

// KeyspaceMeta describes a keyspace.
type KeyspaceMeta struct {
	// Name is the keyspace name.
	Name string

	// Tables maps table name to table metadata.
	Tables map[string]*TableMeta
}

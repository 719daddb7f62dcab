package types

import (
	"errors"
	"strconv"
)

// Sentinel errors for builder and executor failure scenarios.
//
// All errors carry a discriminated kind so callers can branch on them
// programmatically with errors.Is / errors.As; none is a bare
// message-only failure.
var (
	// ErrMissingQuery indicates a build call ran out of arguments
	// without a query string and without a prepared statement.
	ErrMissingQuery = errors.New("casstcl: no query and no prepared statement supplied")

	// ErrConflictingOptions indicates mutually exclusive build options
	// were combined, such as a prepared statement with table-driven
	// bindings, or mapping and dropping unknown columns at once.
	ErrConflictingOptions = errors.New("casstcl: conflicting statement options")

	// ErrMalformedBindList indicates a flat name/value pair list with
	// an odd number of elements.
	ErrMalformedBindList = errors.New("casstcl: bind list must contain an even number of elements")

	// ErrMalformedMap indicates a map literal whose flat key/value
	// sequence has an odd number of elements.
	ErrMalformedMap = errors.New("casstcl: map value must contain an even number of elements")

	// ErrNoResult indicates that an execution future completed
	// successfully but carried no result. This is kept distinct from a
	// zero-row page, which is not an error.
	ErrNoResult = errors.New("casstcl: future has no result")

	// ErrSessionClosed indicates an operation was attempted on a
	// closed client.
	ErrSessionClosed = errors.New("casstcl: session is closed")

	// ErrNilSession indicates that a nil session was provided.
	ErrNilSession = errors.New("casstcl: session cannot be nil")

	// ErrDispatcherStopped indicates an async submission was made
	// against a dispatcher that is no longer delivering.
	ErrDispatcherStopped = errors.New("casstcl: dispatcher is stopped")
)

// KeyspaceNotFoundError reports a metadata lookup for a keyspace that
// does not exist.
type KeyspaceNotFoundError struct {
	Keyspace string
}

// Error implements the error interface.
func (e *KeyspaceNotFoundError) Error() string {
	return "casstcl: keyspace '" + e.Keyspace + "' not found"
}

// TableNotFoundError reports a type resolution or metadata lookup
// against a table missing from the schema.
type TableNotFoundError struct {
	Keyspace string
	Table    string
}

// Error implements the error interface.
func (e *TableNotFoundError) Error() string {
	if e.Keyspace == "" {
		return "casstcl: table '" + e.Table + "' not found"
	}

	return "casstcl: table '" + e.Table + "' not found in keyspace '" + e.Keyspace + "'"
}

// UnknownColumnError reports an upsert column that did not resolve
// against the table schema while neither drop-unknown nor map-unknown
// policy was in effect.
type UnknownColumnError struct {
	Table  string
	Column string
}

// Error implements the error interface.
func (e *UnknownColumnError) Error() string {
	return "casstcl: unknown column '" + e.Column + "' in upsert for table '" + e.Table + "'"
}

// BindError reports a dynamic value that could not be marshalled
// against its target column type.
type BindError struct {
	// Column is the column being bound, when known.
	Column string

	// Type is the target wire type.
	Type ColumnType

	// Value is the dynamic value that failed to convert.
	Value Value

	// Cause is the underlying conversion error.
	Cause error
}

// Error implements the error interface.
func (e *BindError) Error() string {
	msg := "casstcl: cannot bind value '" + e.Value.String() + "' as " + e.Type.String()
	if e.Column != "" {
		msg += " for column '" + e.Column + "'"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *BindError) Unwrap() error {
	return e.Cause
}

// ExecError wraps a failure reported by the underlying driver during
// statement execution.
type ExecError struct {
	// Query is the statement text, empty for prepared statements.
	Query string

	// Cause is the driver error, verbatim.
	Cause error
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	if e.Query == "" {
		return "casstcl: execute failed: " + e.Cause.Error()
	}

	return "casstcl: execute failed for '" + e.Query + "': " + e.Cause.Error()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *ExecError) Unwrap() error {
	return e.Cause
}

// CallbackError wraps an error returned by a row handler, augmented
// with the position in the row loop at which it occurred.
type CallbackError struct {
	// Page is the zero-based page index being iterated.
	Page int

	// Row is the zero-based row index within the page.
	Row int

	// Cause is the handler's error.
	Cause error
}

// Error implements the error interface.
func (e *CallbackError) Error() string {
	return "casstcl: row handler failed at page " + strconv.Itoa(e.Page) +
		" row " + strconv.Itoa(e.Row) + ": " + e.Cause.Error()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *CallbackError) Unwrap() error {
	return e.Cause
}

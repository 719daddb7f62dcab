package casstcl

import (
	"fmt"

	"github.com/gahr/casstcl/adapter/cql"
	"github.com/gahr/casstcl/marshal"
	"github.com/gahr/casstcl/types"
)

// Statement is a bound, executable statement: CQL text or a prepared
// handle, together with its ordered driver-native bind values.
//
// Statements are immutable once built; page size and paging state are
// applied per execution by the executor, never stored here.
type Statement struct {
	query       string
	prepared    cql.Prepared
	columns     []string
	values      []any
	consistency *types.Consistency
}

// Text returns the statement's CQL text.
func (s *Statement) Text() string {
	if s.prepared != nil {
		return s.prepared.Statement()
	}

	return s.query
}

// Columns returns the bound column names in bind order, where known.
func (s *Statement) Columns() []string {
	return s.columns
}

// Values returns the driver-native bind values in bind order.
func (s *Statement) Values() []any {
	return s.values
}

// TypedValue pairs a dynamic value with its explicit target type, for
// positional binding.
type TypedValue struct {
	Value types.Value
	Type  types.ColumnType
}

// StatementSpec describes a statement to build.
//
// Exactly one binding style applies: positional typed values against
// Query, a record bound by name against Table's schema, or name/value
// pairs against a Prepared handle. Mixing the prepared handle with
// table-driven binding is a conflict.
type StatementSpec struct {
	// Query is the CQL text with ? placeholders. Ignored when Prepared
	// is set.
	Query string

	// Positional holds ordered (value, type) binds for Query.
	Positional []TypedValue

	// Table is the keyspace-qualified table whose schema types Record
	// binding resolves against.
	Table string

	// Record is a flat list of alternating column names and values,
	// bound in encounter order with types from the table schema.
	Record types.Value

	// Types overrides the schema-resolved type of individual record
	// columns.
	Types map[string]types.ColumnType

	// Prepared binds name/value pairs from Record against the handle's
	// own parameter metadata instead of a table schema.
	Prepared cql.Prepared

	// Consistency is the level name for this statement, such as
	// "local_quorum". Empty means the client default.
	Consistency string
}

// Build creates a Statement from a spec.
//
// Parameters:
//   - spec: The statement description
//
// Returns:
//   - *Statement: The bound statement
//   - error: types.ErrMissingQuery, types.ErrConflictingOptions,
//     types.ErrMalformedBindList, *types.UnknownColumnError or
//     *types.BindError
func (c *Client) Build(spec StatementSpec) (*Statement, error) {
	consistency, err := parseConsistency(spec.Consistency)
	if err != nil {
		return nil, err
	}

	if spec.Prepared != nil {
		if spec.Table != "" || len(spec.Positional) > 0 {
			return nil, types.ErrConflictingOptions
		}

		stmt, err := c.BuildPrepared(spec.Prepared, spec.Record)
		if err != nil {
			return nil, err
		}
		stmt.consistency = consistency

		return stmt, nil
	}

	if spec.Query == "" {
		return nil, types.ErrMissingQuery
	}

	stmt := &Statement{query: spec.Query, consistency: consistency}

	switch {
	case !spec.Record.IsNull():
		if len(spec.Positional) > 0 {
			return nil, types.ErrConflictingOptions
		}
		if spec.Table == "" {
			return nil, types.ErrConflictingOptions
		}
		if err := c.bindRecord(stmt, spec.Table, spec.Record, spec.Types); err != nil {
			return nil, err
		}
	default:
		for _, tv := range spec.Positional {
			native, err := marshal.Bind("", tv.Type, tv.Value)
			if err != nil {
				return nil, err
			}
			stmt.values = append(stmt.values, native)
		}
	}

	return stmt, nil
}

// bindRecord binds a flat name/value pair list against a table's
// schema-resolved column types, in encounter order.
func (c *Client) bindRecord(stmt *Statement, table string, record types.Value,
	overrides map[string]types.ColumnType,
) error {
	pairs := record.Elems()
	if len(pairs)%2 != 0 {
		return types.ErrMalformedBindList
	}

	for i := 0; i < len(pairs); i += 2 {
		column := pairs[i].Text()

		typ, override := overrides[column]
		if !override {
			resolved, err := c.registry.Resolve(table, column)
			if err != nil {
				return err
			}
			if resolved.IsUnknown() {
				return &types.UnknownColumnError{Table: table, Column: column}
			}
			typ = resolved
		}

		native, err := marshal.Bind(column, typ, pairs[i+1])
		if err != nil {
			return err
		}
		stmt.columns = append(stmt.columns, column)
		stmt.values = append(stmt.values, native)
	}

	return nil
}

// parseConsistency translates an optional level name. Empty means
// "use the client default" and yields nil.
func parseConsistency(name string) (*types.Consistency, error) {
	if name == "" {
		return nil, nil
	}

	c, ok := types.ParseConsistency(name)
	if !ok {
		return nil, fmt.Errorf("casstcl: unknown consistency level '%s'", name)
	}

	return &c, nil
}

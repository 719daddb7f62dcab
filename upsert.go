package casstcl

import (
	"errors"
	"strings"

	"github.com/gahr/casstcl/marshal"
	"github.com/gahr/casstcl/types"
)

// upsertConfig holds the policies of one upsert build.
type upsertConfig struct {
	mapUnknown  string
	dropUnknown bool
	ifNotExists bool
	consistency *types.Consistency
}

// UpsertOption configures BuildUpsert.
type UpsertOption func(*upsertConfig)

// WithMapUnknown diverts pairs whose column is not in the table schema
// into the named MAP<text, text> column instead of failing.
func WithMapUnknown(column string) UpsertOption {
	return func(config *upsertConfig) {
		config.mapUnknown = column
	}
}

// WithDropUnknown silently drops pairs whose column is not in the
// table schema.
func WithDropUnknown() UpsertOption {
	return func(config *upsertConfig) {
		config.dropUnknown = true
	}
}

// WithIfNotExists appends IF NOT EXISTS to the generated statement.
func WithIfNotExists() UpsertOption {
	return func(config *upsertConfig) {
		config.ifNotExists = true
	}
}

// WithUpsertConsistency sets the statement's consistency level,
// overriding the client default.
func WithUpsertConsistency(c types.Consistency) UpsertOption {
	return func(config *upsertConfig) {
		config.consistency = &c
	}
}

// BuildUpsert generates an INSERT statement from a flat list of
// alternating column names and values.
//
// Columns are emitted in encounter order. Each value is converted
// against the column's schema-resolved type. A pair whose value is
// null is omitted entirely, so the column appears neither in the
// statement text nor among the bound values. A pair whose column is
// not in the table schema fails with *types.UnknownColumnError unless
// a policy says otherwise: WithDropUnknown discards it, WithMapUnknown
// collects all such pairs into one MAP<text, text> column bound last.
// The two policies are mutually exclusive.
//
// Example:
//
//	stmt, err := client.BuildUpsert("app.users",
//		types.TextList("id", "8fa6...", "name", "karl", "debug", "1"),
//		casstcl.WithMapUnknown("extra"),
//		casstcl.WithIfNotExists(),
//	)
//	// INSERT INTO app.users (id,name,extra) values (?,?,?) IF NOT EXISTS
//
// Parameters:
//   - table: Keyspace-qualified table name
//   - pairs: Flat list of alternating column names and values
//   - opts: Unknown-column policy, IF NOT EXISTS, consistency
//
// Returns:
//   - *Statement: The generated statement with bound values
//   - error: types.ErrMalformedBindList, types.ErrConflictingOptions,
//     *types.UnknownColumnError or *types.BindError
func (c *Client) BuildUpsert(table string, pairs types.Value, opts ...UpsertOption) (*Statement, error) {
	config := &upsertConfig{}
	for _, opt := range opts {
		opt(config)
	}

	if config.mapUnknown != "" && config.dropUnknown {
		return nil, types.ErrConflictingOptions
	}

	elems := pairs.Elems()
	if len(elems)%2 != 0 {
		return nil, types.ErrMalformedBindList
	}

	stmt := &Statement{consistency: config.consistency}
	var unknown map[string]string

	for i := 0; i < len(elems); i += 2 {
		column := elems[i].Text()
		value := elems[i+1]

		// A null value means the column is absent from the insert: it
		// gets no column slot and no bind.
		if value.IsNull() {
			continue
		}

		typ, err := c.registry.Resolve(table, column)
		if err != nil {
			return nil, err
		}

		if typ.IsUnknown() {
			switch {
			case config.dropUnknown:
				continue
			case config.mapUnknown != "":
				if unknown == nil {
					unknown = make(map[string]string)
				}
				unknown[column] = value.Text()

				continue
			default:
				return nil, &types.UnknownColumnError{Table: table, Column: column}
			}
		}

		native, err := marshal.Bind(column, typ, value)
		if err != nil {
			return nil, err
		}
		stmt.columns = append(stmt.columns, column)
		stmt.values = append(stmt.values, native)
	}

	// The overflow map is bound last, and only when at least one pair
	// actually overflowed.
	if len(unknown) > 0 {
		stmt.columns = append(stmt.columns, config.mapUnknown)
		stmt.values = append(stmt.values, unknown)
	}

	if len(stmt.columns) == 0 {
		return nil, errors.New("casstcl: upsert requires at least one column")
	}

	stmt.query = upsertText(table, stmt.columns, config.ifNotExists)

	return stmt, nil
}

// upsertText renders the INSERT statement for the given columns.
func upsertText(table string, columns []string, ifNotExists bool) string {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(columns, ","))
	sb.WriteString(") values (")
	for i := range columns {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("?")
	}
	sb.WriteString(")")
	if ifNotExists {
		sb.WriteString(" IF NOT EXISTS")
	}

	return sb.String()
}

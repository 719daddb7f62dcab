package casstcl

import (
	"fmt"

	"github.com/gahr/casstcl/adapter/cql"
	"github.com/gahr/casstcl/marshal"
	"github.com/gahr/casstcl/schema"
	"github.com/gahr/casstcl/types"
)

// BuildPrepared binds a flat list of alternating parameter names and
// values against a prepared statement.
//
// Parameter types come from the handle's own metadata, never from the
// table schema, so no registry lookup happens here. Parameters absent
// from the pair list, and pairs whose value is null, are left unset:
// their columns are not written at all, unlike an explicit NULL which
// would overwrite them. An empty pair list is valid. A pair naming no
// parameter of the statement is an error.
//
// Parameters:
//   - prepared: The prepared-statement handle
//   - pairs: Flat list of alternating parameter names and values
//
// Returns:
//   - *Statement: The bound statement
//   - error: types.ErrMalformedBindList or *types.BindError
func (c *Client) BuildPrepared(prepared cql.Prepared, pairs types.Value) (*Statement, error) {
	elems := pairs.Elems()
	if len(elems)%2 != 0 {
		return nil, types.ErrMalformedBindList
	}

	supplied := make(map[string]types.Value, len(elems)/2)
	for i := 0; i < len(elems); i += 2 {
		supplied[elems[i].Text()] = elems[i+1]
	}

	params := prepared.Parameters()
	known := make(map[string]bool, len(params))
	for _, p := range params {
		known[p.Name] = true
	}
	for name := range supplied {
		if !known[name] {
			return nil, fmt.Errorf(
				"casstcl: no parameter '%s' in prepared statement", name)
		}
	}

	stmt := &Statement{prepared: prepared}
	for _, param := range params {
		value, ok := supplied[param.Name]
		if !ok || value.IsNull() {
			// The slot stays positionally aligned but carries the
			// unset marker, so the column is never written.
			stmt.columns = append(stmt.columns, param.Name)
			stmt.values = append(stmt.values, cql.Unset)

			continue
		}

		native, err := marshal.Bind(param.Name, schema.ParseDescriptor(param.Validator), value)
		if err != nil {
			return nil, err
		}
		stmt.columns = append(stmt.columns, param.Name)
		stmt.values = append(stmt.values, native)
	}

	return stmt, nil
}

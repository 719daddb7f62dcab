package casstcl

import (
	"context"

	"github.com/gahr/casstcl/types"
)

// ListKeyspaces returns the keyspace names in the cluster, sorted.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - []string: Keyspace names
//   - error: Driver error
func (c *Client) ListKeyspaces(ctx context.Context) ([]string, error) {
	if c.closed.Load() {
		return nil, types.ErrSessionClosed
	}

	return c.registry.Keyspaces(ctx)
}

// ListTables returns the table names of a keyspace, sorted.
//
// Parameters:
//   - keyspace: The keyspace name
//
// Returns:
//   - []string: Table names
//   - error: *types.KeyspaceNotFoundError or driver error
func (c *Client) ListTables(keyspace string) ([]string, error) {
	if c.closed.Load() {
		return nil, types.ErrSessionClosed
	}

	return c.registry.Tables(keyspace)
}

// ListColumns returns a table's columns in schema order.
//
// Without types the result is a plain list of column names. With
// types it is a flat list of alternating names and type renderings;
// a column whose descriptor did not translate keeps its raw
// descriptor text.
//
// Parameters:
//   - keyspace: The keyspace name
//   - table: The table name, unqualified
//   - includeTypes: Whether to interleave type renderings
//
// Returns:
//   - types.Value: List of names, or flat name/type pairs
//   - error: *types.KeyspaceNotFoundError, *types.TableNotFoundError
//     or driver error
func (c *Client) ListColumns(keyspace, table string, includeTypes bool) (types.Value, error) {
	if c.closed.Load() {
		return types.Null(), types.ErrSessionClosed
	}

	columns, err := c.registry.Columns(keyspace + "." + table)
	if err != nil {
		return types.Null(), err
	}

	var elems []types.Value
	for _, col := range columns {
		elems = append(elems, types.Text(col.Name))
		if !includeTypes {
			continue
		}
		rendered := col.Type.String()
		if col.Type.IsUnknown() && col.Type.Raw != "" {
			rendered = col.Type.Raw
		}
		elems = append(elems, types.Text(rendered))
	}

	return types.List(elems...), nil
}

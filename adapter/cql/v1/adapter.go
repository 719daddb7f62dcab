// Package v1 provides an adapter for gocql v1 (github.com/gocql/gocql).
package v1

import (
	"context"
	"reflect"
	"sort"

	"github.com/gocql/gocql"

	"github.com/gahr/casstcl/adapter/cql"
)

// Session wraps a gocql v1 session.
type Session struct {
	session *gocql.Session
}

// NewSession creates a new v1 adapter from a gocql session.
//
// Parameters:
//   - session: A gocql.Session instance
//
// Returns:
//   - *Session: An adapter implementing cql.Session
func NewSession(session *gocql.Session) *Session {
	return &Session{session: session}
}

// WrapSession is an alias for NewSession that wraps a gocql v1 session.
//
// Example:
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	session, _ := cluster.CreateSession()
//	client, _ := casstcl.NewClient(v1.WrapSession(session))
//
// Parameters:
//   - session: A gocql.Session instance
//
// Returns:
//   - cql.Session: An adapter implementing cql.Session
func WrapSession(session *gocql.Session) cql.Session {
	return NewSession(session)
}

// Query creates a new query for the given statement.
func (s *Session) Query(stmt string, values ...any) cql.Query {
	return &Query{query: s.session.Query(stmt, values...)}
}

// Prepare registers a statement for name-based binding.
//
// gocql prepares statements transparently on first execution and does
// not expose the server's parameter metadata, so preparation here
// captures the statement text together with the parameter metadata the
// caller obtained from schema inspection (for example via ListColumns).
//
// Parameters:
//   - stmt: CQL statement with ? placeholders
//   - params: Parameter metadata in bind order
//
// Returns:
//   - cql.Prepared: A handle binding by position over the statement
func (s *Session) Prepare(stmt string, params ...cql.ColumnInfo) cql.Prepared {
	return &Prepared{session: s, stmt: stmt, params: params}
}

// KeyspaceMetadata returns the schema metadata of a keyspace.
func (s *Session) KeyspaceMetadata(keyspace string) (*cql.KeyspaceMeta, error) {
	meta, err := s.session.KeyspaceMetadata(keyspace)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, nil
	}

	out := &cql.KeyspaceMeta{
		Name:   meta.Name,
		Tables: make(map[string]*cql.TableMeta, len(meta.Tables)),
	}
	for name, table := range meta.Tables {
		tm := &cql.TableMeta{Name: name}

		// gocql hands columns back as a map; sort for a stable order.
		colNames := make([]string, 0, len(table.Columns))
		for colName := range table.Columns {
			colNames = append(colNames, colName)
		}
		sort.Strings(colNames)

		for _, colName := range colNames {
			col := table.Columns[colName]
			if col == nil || col.Name == "" {
				// Internal system tables can carry nameless metadata
				// entries; never surface those as resolvable columns.
				continue
			}
			tm.Columns = append(tm.Columns, cql.ColumnMeta{
				Name:      col.Name,
				Validator: descriptorFor(col.Type),
			})
		}
		out.Tables[name] = tm
	}

	return out, nil
}

// Keyspaces lists the keyspace names in the cluster.
func (s *Session) Keyspaces(ctx context.Context) ([]string, error) {
	iter := s.session.Query("SELECT keyspace_name FROM system_schema.keyspaces").
		WithContext(ctx).Iter()

	var names []string
	var name string
	for iter.Scan(&name) {
		names = append(names, name)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	return names, nil
}

// Close terminates the session.
func (s *Session) Close() {
	s.session.Close()
}

// descriptorFor renders a gocql TypeInfo as a wire type descriptor the
// schema package can parse back, such as "list<varchar>".
func descriptorFor(typ gocql.TypeInfo) string {
	if typ == nil {
		return ""
	}

	switch typ.Type() {
	case gocql.TypeList:
		if ct, ok := typ.(gocql.CollectionType); ok {
			return "list<" + descriptorFor(ct.Elem) + ">"
		}

		return "list"
	case gocql.TypeSet:
		if ct, ok := typ.(gocql.CollectionType); ok {
			return "set<" + descriptorFor(ct.Elem) + ">"
		}

		return "set"
	case gocql.TypeMap:
		if ct, ok := typ.(gocql.CollectionType); ok {
			return "map<" + descriptorFor(ct.Key) + ", " + descriptorFor(ct.Elem) + ">"
		}

		return "map"
	case gocql.TypeCustom:
		return typ.Custom()
	default:
		return typ.Type().String()
	}
}

// Query wraps a gocql v1 query.
type Query struct {
	query *gocql.Query
}

// Consistency sets the consistency level.
func (q *Query) Consistency(c cql.Consistency) cql.Query {
	q.query = q.query.Consistency(gocql.Consistency(c))

	return q
}

// PageSize sets the page size.
func (q *Query) PageSize(n int) cql.Query {
	q.query = q.query.PageSize(n)

	return q
}

// PageState sets the pagination state.
//
// gocql switches to manual paging once a page state is set, which is
// exactly what the paginated executor needs: one Iter per page.
func (q *Query) PageState(state []byte) cql.Query {
	q.query = q.query.PageState(state)

	return q
}

// ExecContext executes the query without returning rows.
func (q *Query) ExecContext(ctx context.Context) error {
	return q.query.WithContext(ctx).Exec()
}

// IterContext executes the query and returns a single-page iterator.
func (q *Query) IterContext(ctx context.Context) cql.Iter {
	return &Iter{iter: q.query.WithContext(ctx).Iter()}
}

// Iter wraps a gocql v1 iterator.
type Iter struct {
	iter    *gocql.Iter
	scanErr error
}

// Columns returns metadata for the result columns.
func (i *Iter) Columns() []cql.ColumnInfo {
	gocqlCols := i.iter.Columns()
	result := make([]cql.ColumnInfo, len(gocqlCols))
	for idx, col := range gocqlCols {
		result[idx] = cql.ColumnInfo{
			Keyspace:  col.Keyspace,
			Table:     col.Table,
			Name:      col.Name,
			Validator: descriptorFor(col.TypeInfo),
		}
	}

	return result
}

// Next returns the next row's values in result-column order, with nil
// entries for NULL columns.
//
// Values are scanned through double pointers so a NULL column is
// distinguishable from a zero value, which gocql's MapScan cannot do.
func (i *Iter) Next() ([]any, bool) {
	cols := i.iter.Columns()
	holders := make([]any, len(cols))
	for idx, col := range cols {
		ptr, err := col.TypeInfo.NewWithError()
		if err != nil {
			i.scanErr = err

			return nil, false
		}
		// ptr is *T; build a **T so gocql reports NULL as a nil *T.
		holders[idx] = reflect.New(reflect.TypeOf(ptr)).Interface()
	}

	if !i.iter.Scan(holders...) {
		return nil, false
	}

	values := make([]any, len(cols))
	for idx, holder := range holders {
		inner := reflect.ValueOf(holder).Elem()
		if inner.IsNil() {
			values[idx] = nil

			continue
		}
		values[idx] = inner.Elem().Interface()
	}

	return values, true
}

// PageState returns the continuation token for the next page.
func (i *Iter) PageState() []byte {
	return i.iter.PageState()
}

// NumRows returns the number of rows in this page.
func (i *Iter) NumRows() int {
	return i.iter.NumRows()
}

// Close releases the iterator and returns any iteration error.
func (i *Iter) Close() error {
	if err := i.iter.Close(); err != nil {
		return err
	}

	return i.scanErr
}

// Prepared implements cql.Prepared over a statement with caller-supplied
// parameter metadata.
type Prepared struct {
	session *Session
	stmt    string
	params  []cql.ColumnInfo
}

// Statement returns the CQL text the handle was prepared from.
func (p *Prepared) Statement() string {
	return p.stmt
}

// Parameters returns the statement's parameter metadata in bind order.
func (p *Prepared) Parameters() []cql.ColumnInfo {
	return p.params
}

// Bind creates a query with the given values bound positionally.
// cql.Unset values translate to gocql.UnsetValue, leaving those
// columns untouched on the server.
func (p *Prepared) Bind(values ...any) cql.Query {
	return p.session.Query(p.stmt, translateValues(values)...)
}

// translateValues maps engine sentinels to their gocql equivalents.
func translateValues(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		if v == cql.Unset {
			v = gocql.UnsetValue
		}
		out[i] = v
	}

	return out
}

package casstcl

import (
	"context"
	"sync"

	"github.com/gahr/casstcl/adapter/cql"
	"github.com/gahr/casstcl/types"
)

// mockSession implements cql.Session over canned pages and metadata.
type mockSession struct {
	mu sync.Mutex

	// columns describes the result columns of every page.
	columns []cql.ColumnInfo

	// pages holds the result rows, one slice per page.
	pages [][][]any

	// nilIter makes IterContext return nil, simulating a future that
	// completed without a result.
	nilIter bool

	execErr  error
	closeErr error

	// execHook, when set, runs inside ExecContext. Lets tests block a
	// worker to control completion order.
	execHook func(stmt string) error

	keyspaces map[string]*cql.KeyspaceMeta

	queries   []*mockQuery
	iterCount int
	closed    bool
}

func (s *mockSession) Query(stmt string, values ...any) cql.Query {
	q := &mockQuery{session: s, stmt: stmt, values: values}
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()

	return q
}

func (s *mockSession) Prepare(stmt string, params ...cql.ColumnInfo) cql.Prepared {
	return &mockPrepared{session: s, stmt: stmt, params: params}
}

func (s *mockSession) KeyspaceMetadata(keyspace string) (*cql.KeyspaceMeta, error) {
	return s.keyspaces[keyspace], nil
}

func (s *mockSession) Keyspaces(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(s.keyspaces))
	for name := range s.keyspaces {
		names = append(names, name)
	}

	return names, nil
}

func (s *mockSession) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *mockSession) lastQuery() *mockQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queries) == 0 {
		return nil
	}

	return s.queries[len(s.queries)-1]
}

func (s *mockSession) itersServed() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.iterCount
}

// mockQuery records its configuration and serves one page per iter.
type mockQuery struct {
	session     *mockSession
	stmt        string
	values      []any
	consistency types.Consistency
	pageSize    int
	pageState   []byte
}

func (q *mockQuery) Consistency(c cql.Consistency) cql.Query {
	q.consistency = c

	return q
}

func (q *mockQuery) PageSize(n int) cql.Query {
	q.pageSize = n

	return q
}

func (q *mockQuery) PageState(state []byte) cql.Query {
	q.pageState = state

	return q
}

func (q *mockQuery) ExecContext(_ context.Context) error {
	if q.session.execHook != nil {
		return q.session.execHook(q.stmt)
	}

	return q.session.execErr
}

func (q *mockQuery) IterContext(_ context.Context) cql.Iter {
	s := q.session
	if s.nilIter {
		return nil
	}

	s.mu.Lock()
	s.iterCount++
	s.mu.Unlock()

	// The page state is one byte carrying the next page index.
	pageIdx := 0
	if len(q.pageState) > 0 {
		pageIdx = int(q.pageState[0])
	}

	var rows [][]any
	if pageIdx < len(s.pages) {
		rows = s.pages[pageIdx]
	}
	var next []byte
	if pageIdx+1 < len(s.pages) {
		next = []byte{byte(pageIdx + 1)}
	}

	return &mockIter{
		columns:  s.columns,
		rows:     rows,
		next:     next,
		closeErr: s.closeErr,
	}
}

type mockIter struct {
	columns  []cql.ColumnInfo
	rows     [][]any
	idx      int
	next     []byte
	closeErr error
}

func (i *mockIter) Columns() []cql.ColumnInfo {
	return i.columns
}

func (i *mockIter) Next() ([]any, bool) {
	if i.idx >= len(i.rows) {
		return nil, false
	}
	row := i.rows[i.idx]
	i.idx++

	return row, true
}

func (i *mockIter) PageState() []byte {
	return i.next
}

func (i *mockIter) NumRows() int {
	return len(i.rows)
}

func (i *mockIter) Close() error {
	return i.closeErr
}

type mockPrepared struct {
	session *mockSession
	stmt    string
	params  []cql.ColumnInfo
}

func (p *mockPrepared) Statement() string {
	return p.stmt
}

func (p *mockPrepared) Parameters() []cql.ColumnInfo {
	return p.params
}

func (p *mockPrepared) Bind(values ...any) cql.Query {
	return p.session.Query(p.stmt, values...)
}

// usersMeta is the schema shared by most tests: app.users with a few
// scalar and collection columns.
func usersMeta() map[string]*cql.KeyspaceMeta {
	return map[string]*cql.KeyspaceMeta{
		"app": {
			Name: "app",
			Tables: map[string]*cql.TableMeta{
				"users": {
					Name: "users",
					Columns: []cql.ColumnMeta{
						{Name: "id", Validator: "uuid"},
						{Name: "name", Validator: "text"},
						{Name: "age", Validator: "bigint"},
						{Name: "tags", Validator: "set<text>"},
						{Name: "extra", Validator: "map<text, text>"},
					},
				},
			},
		},
	}
}

func newMockSession() *mockSession {
	return &mockSession{keyspaces: usersMeta()}
}

// countingMetrics counts collector invocations.
type countingMetrics struct {
	mu            sync.Mutex
	queryTotal    map[types.QueryKind]int
	queryErrors   map[types.QueryKind]int
	durations     int
	pages         int
	rows          int
	cacheHits     int
	cacheMisses   int
	submitted     int
	delivered     int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{
		queryTotal:  make(map[types.QueryKind]int),
		queryErrors: make(map[types.QueryKind]int),
	}
}

func (m *countingMetrics) IncQueryTotal(kind types.QueryKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryTotal[kind]++
}

func (m *countingMetrics) IncQueryError(kind types.QueryKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryErrors[kind]++
}

func (m *countingMetrics) ObserveQueryDuration(types.QueryKind, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations++
}

func (m *countingMetrics) IncPagesFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages++
}

func (m *countingMetrics) IncRowsDelivered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows += n
}

func (m *countingMetrics) IncTypeCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *countingMetrics) IncTypeCacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses++
}

func (m *countingMetrics) IncAsyncSubmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted++
}

func (m *countingMetrics) IncAsyncDelivered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delivered++
}

package casstcl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gahr/casstcl/types"
)

func TestNewClientNilSession(t *testing.T) {
	client, err := NewClient(nil)
	require.ErrorIs(t, err, types.ErrNilSession)
	assert.Nil(t, client)
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(newMockSession())
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, client.config.PageSize)
	assert.Equal(t, types.Quorum, client.config.Consistency)
	assert.NotNil(t, client.Dispatcher())
	assert.NotNil(t, client.Registry())
}

func TestNewClientOptions(t *testing.T) {
	dispatcher := NewDispatcher()
	client, err := NewClient(newMockSession(),
		WithPageSize(42),
		WithConsistencyName("local_quorum"),
		WithDispatcher(dispatcher),
	)
	require.NoError(t, err)
	assert.Equal(t, 42, client.config.PageSize)
	assert.Equal(t, types.LocalQuorum, client.config.Consistency)
	assert.Same(t, dispatcher, client.Dispatcher())
}

func TestExec(t *testing.T) {
	session := newMockSession()
	client, err := NewClient(session, WithConsistency(types.LocalOne))
	require.NoError(t, err)

	stmt, err := client.Build(StatementSpec{
		Query: "UPDATE app.users SET name = ? WHERE id = ?",
		Positional: []TypedValue{
			{Value: types.Text("karl"), Type: types.Scalar(types.TypeText)},
			{Value: types.Text("f47ac10b-58cc-4372-a567-0e02b2c3d479"),
				Type: types.Scalar(types.TypeUUID)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, client.Exec(context.Background(), stmt))

	query := session.lastQuery()
	require.NotNil(t, query)
	assert.Equal(t, "UPDATE app.users SET name = ? WHERE id = ?", query.stmt)
	assert.Len(t, query.values, 2)
	assert.Equal(t, "karl", query.values[0])
	assert.Equal(t, types.LocalOne, query.consistency)
}

func TestExecError(t *testing.T) {
	session := newMockSession()
	session.execErr = errors.New("connection refused")
	client, err := NewClient(session)
	require.NoError(t, err)

	stmt, err := client.Build(StatementSpec{Query: "TRUNCATE app.users"})
	require.NoError(t, err)

	err = client.Exec(context.Background(), stmt)
	var execErr *types.ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "TRUNCATE app.users", execErr.Query)
	assert.Equal(t, session.execErr, execErr.Cause)
}

func TestExecAfterClose(t *testing.T) {
	session := newMockSession()
	client, err := NewClient(session)
	require.NoError(t, err)

	stmt, err := client.Build(StatementSpec{Query: "TRUNCATE app.users"})
	require.NoError(t, err)

	client.Close()
	assert.True(t, session.closed)

	require.ErrorIs(t, client.Exec(context.Background(), stmt), types.ErrSessionClosed)
	require.ErrorIs(t, client.Select(context.Background(), stmt, 0, nil),
		types.ErrSessionClosed)
}

func TestCloseIdempotent(t *testing.T) {
	session := newMockSession()
	client, err := NewClient(session)
	require.NoError(t, err)

	client.Close()
	client.Close()
	assert.True(t, session.closed)
}

func TestExecMetrics(t *testing.T) {
	session := newMockSession()
	collector := newCountingMetrics()
	client, err := NewClient(session, WithMetrics(collector))
	require.NoError(t, err)

	stmt, err := client.Build(StatementSpec{Query: "TRUNCATE app.users"})
	require.NoError(t, err)

	require.NoError(t, client.Exec(context.Background(), stmt))
	assert.Equal(t, 1, collector.queryTotal[types.QueryExec])
	assert.Equal(t, 0, collector.queryErrors[types.QueryExec])
	assert.Equal(t, 1, collector.durations)

	session.execErr = errors.New("boom")
	require.Error(t, client.Exec(context.Background(), stmt))
	assert.Equal(t, 1, collector.queryErrors[types.QueryExec])
}

func TestStatementConsistencyOverride(t *testing.T) {
	session := newMockSession()
	client, err := NewClient(session, WithConsistency(types.One))
	require.NoError(t, err)

	stmt, err := client.Build(StatementSpec{
		Query:       "TRUNCATE app.users",
		Consistency: "all",
	})
	require.NoError(t, err)

	require.NoError(t, client.Exec(context.Background(), stmt))
	assert.Equal(t, types.All, session.lastQuery().consistency)
}

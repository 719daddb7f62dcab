package casstcl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gahr/casstcl/types"
)

func TestBuildUpsert(t *testing.T) {
	client, err := NewClient(newMockSession())
	require.NoError(t, err)

	stmt, err := client.BuildUpsert("app.users", types.TextList(
		"id", "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		"name", "karl",
		"age", "42",
	))
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO app.users (id,name,age) values (?,?,?)", stmt.Text())
	require.Len(t, stmt.Values(), 3)
	assert.Equal(t, "f47ac10b-58cc-4372-a567-0e02b2c3d479", stmt.Values()[0])
	assert.Equal(t, "karl", stmt.Values()[1])
	assert.Equal(t, int64(42), stmt.Values()[2])
}

func TestBuildUpsertIfNotExists(t *testing.T) {
	client, err := NewClient(newMockSession())
	require.NoError(t, err)

	stmt, err := client.BuildUpsert("app.users",
		types.TextList("name", "karl"),
		WithIfNotExists(),
	)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO app.users (name) values (?) IF NOT EXISTS", stmt.Text())
}

func TestBuildUpsertUnknownColumnFails(t *testing.T) {
	client, err := NewClient(newMockSession())
	require.NoError(t, err)

	_, err = client.BuildUpsert("app.users",
		types.TextList("name", "karl", "debug_flag", "1"))
	var unknownErr *types.UnknownColumnError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "app.users", unknownErr.Table)
	assert.Equal(t, "debug_flag", unknownErr.Column)
	assert.Contains(t, err.Error(), "unknown column 'debug_flag'")
}

func TestBuildUpsertDropUnknown(t *testing.T) {
	client, err := NewClient(newMockSession())
	require.NoError(t, err)

	stmt, err := client.BuildUpsert("app.users",
		types.TextList("name", "karl", "debug_flag", "1", "age", "42"),
		WithDropUnknown(),
	)
	require.NoError(t, err)

	// The unknown pair vanishes; the rest keeps its encounter order.
	assert.Equal(t, "INSERT INTO app.users (name,age) values (?,?)", stmt.Text())
	require.Len(t, stmt.Values(), 2)
}

func TestBuildUpsertMapUnknown(t *testing.T) {
	client, err := NewClient(newMockSession())
	require.NoError(t, err)

	stmt, err := client.BuildUpsert("app.users",
		types.TextList(
			"name", "karl",
			"debug_flag", "1",
			"age", "42",
			"trace_id", "abc",
		),
		WithMapUnknown("extra"),
	)
	require.NoError(t, err)

	// The overflow map column is emitted last.
	assert.Equal(t, "INSERT INTO app.users (name,age,extra) values (?,?,?)", stmt.Text())
	require.Len(t, stmt.Values(), 3)
	assert.Equal(t, map[string]string{"debug_flag": "1", "trace_id": "abc"},
		stmt.Values()[2])
}

func TestBuildUpsertMapUnknownNoOverflow(t *testing.T) {
	client, err := NewClient(newMockSession())
	require.NoError(t, err)

	// No pair overflows, so the map column is not emitted at all.
	stmt, err := client.BuildUpsert("app.users",
		types.TextList("name", "karl"),
		WithMapUnknown("extra"),
	)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO app.users (name) values (?)", stmt.Text())
	require.Len(t, stmt.Values(), 1)
}

func TestBuildUpsertConflictingPolicies(t *testing.T) {
	client, err := NewClient(newMockSession())
	require.NoError(t, err)

	_, err = client.BuildUpsert("app.users",
		types.TextList("name", "karl"),
		WithMapUnknown("extra"),
		WithDropUnknown(),
	)
	require.ErrorIs(t, err, types.ErrConflictingOptions)
}

func TestBuildUpsertOddPairs(t *testing.T) {
	client, err := NewClient(newMockSession())
	require.NoError(t, err)

	_, err = client.BuildUpsert("app.users",
		types.TextList("name", "karl", "age"))
	require.ErrorIs(t, err, types.ErrMalformedBindList)
}

func TestBuildUpsertBindError(t *testing.T) {
	client, err := NewClient(newMockSession())
	require.NoError(t, err)

	_, err = client.BuildUpsert("app.users",
		types.TextList("age", "not-a-number"))
	var bindErr *types.BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, "age", bindErr.Column)
}

func TestBuildUpsertCollection(t *testing.T) {
	client, err := NewClient(newMockSession())
	require.NoError(t, err)

	stmt, err := client.BuildUpsert("app.users", types.List(
		types.Text("tags"), types.TextList("admin", "ops"),
	))
	require.NoError(t, err)
	require.Len(t, stmt.Values(), 1)
	assert.Equal(t, []any{"admin", "ops"}, stmt.Values()[0])
}

func TestBuildUpsertNullValueOmitsColumn(t *testing.T) {
	client, err := NewClient(newMockSession())
	require.NoError(t, err)

	stmt, err := client.BuildUpsert("app.users", types.List(
		types.Text("id"), types.Text("f47ac10b-58cc-4372-a567-0e02b2c3d479"),
		types.Text("name"), types.Null(),
	))
	require.NoError(t, err)

	// The null pair never reaches the statement: no column, no bind
	// slot.
	assert.Equal(t, "INSERT INTO app.users (id) values (?)", stmt.Text())
	require.Len(t, stmt.Values(), 1)
	assert.Equal(t, "f47ac10b-58cc-4372-a567-0e02b2c3d479", stmt.Values()[0])
}

func TestBuildUpsertAllNullValues(t *testing.T) {
	client, err := NewClient(newMockSession())
	require.NoError(t, err)

	// Every pair is null, so nothing is left to insert.
	_, err = client.BuildUpsert("app.users", types.List(
		types.Text("name"), types.Null(),
	))
	require.Error(t, err)
}

func TestBuildUpsertEmpty(t *testing.T) {
	client, err := NewClient(newMockSession())
	require.NoError(t, err)

	_, err = client.BuildUpsert("app.users", types.List())
	require.Error(t, err)
}

func TestBuildUpsertConsistency(t *testing.T) {
	session := newMockSession()
	client, err := NewClient(session, WithConsistency(types.One))
	require.NoError(t, err)

	stmt, err := client.BuildUpsert("app.users",
		types.TextList("name", "karl"),
		WithUpsertConsistency(types.LocalQuorum),
	)
	require.NoError(t, err)

	require.NoError(t, client.Exec(context.Background(), stmt))
	assert.Equal(t, types.LocalQuorum, session.lastQuery().consistency)
}

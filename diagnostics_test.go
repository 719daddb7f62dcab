package casstcl

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCallback(t *testing.T) {
	t.Cleanup(ClearLoggingCallback)

	session := newMockSession()
	session.execErr = errors.New("node down")
	client, err := NewClient(session)
	require.NoError(t, err)

	dispatcher := NewDispatcher()
	var events []LogEvent
	SetLoggingCallback(dispatcher, func(event LogEvent) {
		events = append(events, event)
	})

	stmt, err := client.Build(StatementSpec{Query: "TRUNCATE app.users"})
	require.NoError(t, err)
	require.Error(t, client.Exec(context.Background(), stmt))

	// The event is queued on the registering dispatcher, not invoked
	// inline.
	require.Empty(t, events)
	assert.Equal(t, 1, dispatcher.Pump())

	require.Len(t, events, 1)
	assert.Equal(t, SeverityError, events[0].Severity)
	assert.Contains(t, events[0].Message, "node down")
	assert.False(t, events[0].Time.IsZero())
}

func TestLoggingCallbackSelectFailure(t *testing.T) {
	t.Cleanup(ClearLoggingCallback)

	session := newMockSession()
	session.nilIter = true
	client, err := NewClient(session)
	require.NoError(t, err)

	dispatcher := NewDispatcher()
	var events []LogEvent
	SetLoggingCallback(dispatcher, func(event LogEvent) {
		events = append(events, event)
	})

	stmt, err := client.Build(StatementSpec{Query: "SELECT name FROM app.users"})
	require.NoError(t, err)
	err = client.Select(context.Background(), stmt, 10,
		func(Row) (RowControl, error) {
			return Continue, nil
		})
	require.Error(t, err)

	// Select failures reach the callback the same way Exec failures do.
	require.Equal(t, 1, dispatcher.Pump())
	require.Len(t, events, 1)
	assert.Equal(t, SeverityError, events[0].Severity)
	assert.Contains(t, events[0].Message, "no result")
}

func TestLoggingCallbackAsyncSelectFailure(t *testing.T) {
	t.Cleanup(ClearLoggingCallback)

	session := newMockSession()
	session.nilIter = true
	client, err := NewClient(session)
	require.NoError(t, err)

	var mu sync.Mutex
	var events []LogEvent
	SetLoggingCallback(client.Dispatcher(), func(event LogEvent) {
		mu.Lock()
		events = append(events, event)
		mu.Unlock()
	})

	stmt, err := client.Build(StatementSpec{Query: "SELECT name FROM app.users"})
	require.NoError(t, err)
	future := client.SelectAsync(context.Background(), stmt, 10,
		func(Row) (RowControl, error) {
			return Continue, nil
		}, nil)

	// Both the completion and the diagnostics event ride the
	// dispatcher; pump until both have been delivered.
	require.Eventually(t, func() bool {
		client.Dispatcher().Pump()
		mu.Lock()
		defer mu.Unlock()

		return len(events) == 1
	}, time.Second, time.Millisecond)

	require.Error(t, future.Await(context.Background()))
	assert.Equal(t, SeverityError, events[0].Severity)
	assert.Contains(t, events[0].Message, "no result")
}

func TestLoggingCallbackReplacement(t *testing.T) {
	t.Cleanup(ClearLoggingCallback)

	session := newMockSession()
	session.execErr = errors.New("boom")
	client, err := NewClient(session)
	require.NoError(t, err)

	dispatcher := NewDispatcher()
	firstCalled := false
	SetLoggingCallback(dispatcher, func(LogEvent) {
		firstCalled = true
	})

	// Registering again drops the previous callback entirely.
	secondCalled := 0
	SetLoggingCallback(dispatcher, func(LogEvent) {
		secondCalled++
	})

	stmt, err := client.Build(StatementSpec{Query: "TRUNCATE app.users"})
	require.NoError(t, err)
	require.Error(t, client.Exec(context.Background(), stmt))

	dispatcher.Pump()
	assert.False(t, firstCalled)
	assert.Equal(t, 1, secondCalled)
}

func TestLoggingCallbackCleared(t *testing.T) {
	t.Cleanup(ClearLoggingCallback)

	session := newMockSession()
	session.execErr = errors.New("boom")
	client, err := NewClient(session)
	require.NoError(t, err)

	dispatcher := NewDispatcher()
	SetLoggingCallback(dispatcher, func(LogEvent) {
		t.Error("callback must not run after clear")
	})
	ClearLoggingCallback()

	stmt, err := client.Build(StatementSpec{Query: "TRUNCATE app.users"})
	require.NoError(t, err)
	require.Error(t, client.Exec(context.Background(), stmt))

	assert.Equal(t, 0, dispatcher.Pump())
}

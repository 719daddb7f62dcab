package casstcl

import (
	"sync"
	"time"
)

// Severity classifies a diagnostic log event.
type Severity string

const (
	SeverityDebug Severity = "debug"
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// LogEvent is one diagnostic event emitted by the engine, such as a
// driver failure surfacing from an execution.
type LogEvent struct {
	// Time is when the event was produced.
	Time time.Time

	// Severity is the event's severity.
	Severity Severity

	// Message is the event's text.
	Message string
}

// logSink is the process-wide diagnostics registration. There is at
// most one; registering a new callback drops the previous one.
type logSink struct {
	dispatcher *Dispatcher
	fn         func(LogEvent)
}

var (
	logSinkMu sync.Mutex
	logged    *logSink
)

// SetLoggingCallback registers a process-wide diagnostics callback.
//
// Events are produced on whichever goroutine hits them but are always
// redelivered through the given dispatcher, so the callback runs on
// the dispatcher like any other completion. Registering a new callback
// replaces and drops the previous registration.
//
// Parameters:
//   - d: The dispatcher the callback is invoked from
//   - fn: The callback
func SetLoggingCallback(d *Dispatcher, fn func(LogEvent)) {
	logSinkMu.Lock()
	defer logSinkMu.Unlock()
	if d == nil || fn == nil {
		logged = nil

		return
	}
	logged = &logSink{dispatcher: d, fn: fn}
}

// ClearLoggingCallback removes the process-wide diagnostics callback.
func ClearLoggingCallback() {
	logSinkMu.Lock()
	defer logSinkMu.Unlock()
	logged = nil
}

// emitLogEvent hands an event to the registered callback, if any,
// through its dispatcher.
func emitLogEvent(event LogEvent) {
	logSinkMu.Lock()
	sink := logged
	logSinkMu.Unlock()
	if sink == nil {
		return
	}

	op, err := sink.dispatcher.enqueue()
	if err != nil {
		return
	}
	op.finish(func() {
		sink.fn(event)
	})
	sink.dispatcher.wakeUp()
}

package types

import "strings"

// Consistency represents the Cassandra consistency level.
type Consistency uint16

// Consistency levels matching gocql.
const (
	Any         Consistency = 0x00
	One         Consistency = 0x01
	Two         Consistency = 0x02
	Three       Consistency = 0x03
	Quorum      Consistency = 0x04
	All         Consistency = 0x05
	LocalQuorum Consistency = 0x06
	EachQuorum  Consistency = 0x07
	Serial      Consistency = 0x08
	LocalSerial Consistency = 0x09
	LocalOne    Consistency = 0x0A
)

var consistencyNames = map[string]Consistency{
	"any":          Any,
	"one":          One,
	"two":          Two,
	"three":        Three,
	"quorum":       Quorum,
	"all":          All,
	"local_quorum": LocalQuorum,
	"each_quorum":  EachQuorum,
	"serial":       Serial,
	"local_serial": LocalSerial,
	"local_one":    LocalOne,
}

// ParseConsistency translates a consistency level name such as
// "local_quorum" (case-insensitive) into a Consistency.
//
// Returns:
//   - Consistency: The parsed level
//   - bool: false if the name is not a known level
func ParseConsistency(name string) (Consistency, bool) {
	c, ok := consistencyNames[strings.ToLower(name)]

	return c, ok
}

// String returns the lowercase name of the consistency level.
func (c Consistency) String() string {
	for name, level := range consistencyNames {
		if level == c {
			return name
		}
	}

	return "unknown"
}

// Logger is the structured logging interface used throughout casstcl.
//
// It is compatible with zap.SugaredLogger: each method takes a message
// followed by alternating key-value pairs.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info-level message.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning-level message.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error-level message.
	Error(msg string, keysAndValues ...any)
}

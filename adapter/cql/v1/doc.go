// Package v1 adapts github.com/gocql/gocql to the driver-neutral
// interfaces in the parent cql package.
//
// The adapter renders gocql type metadata as textual wire descriptors
// (the schema package translates those into ColumnType values) and
// scans result rows through double pointers so NULL columns survive the
// driver boundary as nil values rather than zero values.
package v1

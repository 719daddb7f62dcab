// Package types provides shared types and errors for the casstcl library.
//
// This is a "leaf" package with no imports from other casstcl packages,
// allowing it to be imported by any package without causing import cycles.
//
// The two central types are Value, the dynamic value model exchanged with
// the caller, and ColumnType, the typed wire representation of a column.
// The marshal package converts between them; the schema package produces
// ColumnType values from cluster metadata.
package types

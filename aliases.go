package casstcl

import "github.com/gahr/casstcl/types"

// Type aliases for convenience - re-export from types package.
type (
	Value            = types.Value
	ColumnType       = types.ColumnType
	TypeKind         = types.TypeKind
	Consistency      = types.Consistency
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
)

// Re-export consistency level constants for convenience.
const (
	Any         = types.Any
	One         = types.One
	Two         = types.Two
	Three       = types.Three
	Quorum      = types.Quorum
	All         = types.All
	LocalQuorum = types.LocalQuorum
	EachQuorum  = types.EachQuorum
	Serial      = types.Serial
	LocalSerial = types.LocalSerial
	LocalOne    = types.LocalOne
)

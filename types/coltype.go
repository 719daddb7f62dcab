package types

// TypeKind identifies the wire type of a column.
type TypeKind int

const (
	// TypeUnknown means "no schema entry found". It is a valid,
	// meaningful value and never an error by itself; callers decide
	// policy (drop the column, map it, or fail).
	TypeUnknown TypeKind = iota

	TypeAscii
	TypeText
	TypeBlob
	TypeBoolean
	TypeTinyInt
	TypeSmallInt
	TypeInt
	TypeBigInt
	TypeCounter
	TypeFloat
	TypeDouble
	TypeDecimal
	TypeVarint
	TypeTimestamp
	TypeUUID
	TypeTimeUUID
	TypeInet

	TypeList
	TypeSet
	TypeMap
)

var typeKindNames = map[TypeKind]string{
	TypeUnknown:   "unknown",
	TypeAscii:     "ascii",
	TypeText:      "text",
	TypeBlob:      "blob",
	TypeBoolean:   "boolean",
	TypeTinyInt:   "tinyint",
	TypeSmallInt:  "smallint",
	TypeInt:       "int",
	TypeBigInt:    "bigint",
	TypeCounter:   "counter",
	TypeFloat:     "float",
	TypeDouble:    "double",
	TypeDecimal:   "decimal",
	TypeVarint:    "varint",
	TypeTimestamp: "timestamp",
	TypeUUID:      "uuid",
	TypeTimeUUID:  "timeuuid",
	TypeInet:      "inet",
	TypeList:      "list",
	TypeSet:       "set",
	TypeMap:       "map",
}

// String returns the CQL name of the type kind.
func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}

	return "unknown"
}

// IsCollection reports whether the kind is a list, set or map.
func (k TypeKind) IsCollection() bool {
	return k == TypeList || k == TypeSet || k == TypeMap
}

// ColumnType is the typed wire representation assigned to a column:
// a scalar kind, or a list/set/map with nested element types.
//
// The zero ColumnType is UNKNOWN.
type ColumnType struct {
	// Kind is the scalar or collection kind.
	Kind TypeKind

	// Key is the key type of a map, nil otherwise.
	Key *ColumnType

	// Elem is the element type of a list or set, or the value type
	// of a map; nil for scalars.
	Elem *ColumnType

	// Raw preserves the unrecognized wire type descriptor when Kind
	// is TypeUnknown, for diagnostics. Empty for resolved types.
	Raw string
}

// Scalar returns a scalar column type of the given kind.
func Scalar(kind TypeKind) ColumnType {
	return ColumnType{Kind: kind}
}

// ListOf returns a LIST column type over the given element type.
func ListOf(elem ColumnType) ColumnType {
	return ColumnType{Kind: TypeList, Elem: &elem}
}

// SetOf returns a SET column type over the given element type.
func SetOf(elem ColumnType) ColumnType {
	return ColumnType{Kind: TypeSet, Elem: &elem}
}

// MapOf returns a MAP column type over the given key and value types.
func MapOf(key, value ColumnType) ColumnType {
	return ColumnType{Kind: TypeMap, Key: &key, Elem: &value}
}

// Unknown returns the UNKNOWN column type, preserving the raw wire
// descriptor that failed to resolve.
func Unknown(raw string) ColumnType {
	return ColumnType{Kind: TypeUnknown, Raw: raw}
}

// IsUnknown reports whether the type is UNKNOWN.
func (t ColumnType) IsUnknown() bool {
	return t.Kind == TypeUnknown
}

// String returns the CQL rendering of the type, such as
// "map<text, bigint>". Unknown types render their raw descriptor when
// one was preserved.
func (t ColumnType) String() string {
	switch t.Kind {
	case TypeList, TypeSet:
		if t.Elem != nil {
			return t.Kind.String() + "<" + t.Elem.String() + ">"
		}

		return t.Kind.String()
	case TypeMap:
		if t.Key != nil && t.Elem != nil {
			return "map<" + t.Key.String() + ", " + t.Elem.String() + ">"
		}

		return "map"
	case TypeUnknown:
		if t.Raw != "" {
			return "unknown(" + t.Raw + ")"
		}

		return "unknown"
	default:
		return t.Kind.String()
	}
}

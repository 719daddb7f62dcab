package schema

import (
	"strings"

	"github.com/gahr/casstcl/types"
)

const marshalPrefix = "org.apache.cassandra.db.marshal."

// scalarKinds maps normalized descriptor names to wire type kinds.
//
// Both spellings a cluster can hand back are covered: plain CQL type
// names ("bigint") and Cassandra marshal class simple names
// ("LongType"), lowercased.
var scalarKinds = map[string]types.TypeKind{
	"ascii":     types.TypeAscii,
	"text":      types.TypeText,
	"varchar":   types.TypeText,
	"blob":      types.TypeBlob,
	"boolean":   types.TypeBoolean,
	"tinyint":   types.TypeTinyInt,
	"smallint":  types.TypeSmallInt,
	"int":       types.TypeInt,
	"bigint":    types.TypeBigInt,
	"counter":   types.TypeCounter,
	"float":     types.TypeFloat,
	"double":    types.TypeDouble,
	"decimal":   types.TypeDecimal,
	"varint":    types.TypeVarint,
	"timestamp": types.TypeTimestamp,
	"uuid":      types.TypeUUID,
	"timeuuid":  types.TypeTimeUUID,
	"inet":      types.TypeInet,

	"asciitype":         types.TypeAscii,
	"utf8type":          types.TypeText,
	"bytestype":         types.TypeBlob,
	"booleantype":       types.TypeBoolean,
	"bytetype":          types.TypeTinyInt,
	"shorttype":         types.TypeSmallInt,
	"int32type":         types.TypeInt,
	"longtype":          types.TypeBigInt,
	"countercolumntype": types.TypeCounter,
	"floattype":         types.TypeFloat,
	"doubletype":        types.TypeDouble,
	"decimaltype":       types.TypeDecimal,
	"integertype":       types.TypeVarint,
	"timestamptype":     types.TypeTimestamp,
	"datetype":          types.TypeTimestamp,
	"uuidtype":          types.TypeUUID,
	"timeuuidtype":      types.TypeTimeUUID,
	"inetaddresstype":   types.TypeInet,
}

// ParseDescriptor translates a raw wire type descriptor into a
// ColumnType.
//
// Accepted forms are CQL type names ("map<text, bigint>") and marshal
// class names ("org.apache.cassandra.db.marshal.MapType(UTF8Type,LongType)"),
// including ReversedType and frozen wrappers, which translate to their
// inner type. A descriptor that does not translate yields the UNKNOWN
// type with the raw descriptor preserved; it never yields an error.
//
// Parameters:
//   - raw: The wire type descriptor
//
// Returns:
//   - types.ColumnType: The translated type, UNKNOWN when unrecognized
func ParseDescriptor(raw string) types.ColumnType {
	typ, ok := parseDescriptor(raw)
	if !ok {
		return types.Unknown(strings.TrimSpace(raw))
	}

	return typ
}

func parseDescriptor(raw string) (types.ColumnType, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, marshalPrefix)
	if s == "" {
		return types.ColumnType{}, false
	}

	base, args, composite := splitComposite(s)
	name := strings.ToLower(strings.TrimSpace(base))

	if !composite {
		kind, ok := scalarKinds[name]
		if !ok {
			return types.ColumnType{}, false
		}

		return types.Scalar(kind), true
	}

	parts := splitArgs(args)
	switch name {
	case "list", "listtype":
		if len(parts) != 1 {
			return types.ColumnType{}, false
		}
		elem, ok := parseDescriptor(parts[0])
		if !ok {
			return types.ColumnType{}, false
		}

		return types.ListOf(elem), true
	case "set", "settype":
		if len(parts) != 1 {
			return types.ColumnType{}, false
		}
		elem, ok := parseDescriptor(parts[0])
		if !ok {
			return types.ColumnType{}, false
		}

		return types.SetOf(elem), true
	case "map", "maptype":
		if len(parts) != 2 {
			return types.ColumnType{}, false
		}
		key, ok := parseDescriptor(parts[0])
		if !ok {
			return types.ColumnType{}, false
		}
		value, ok := parseDescriptor(parts[1])
		if !ok {
			return types.ColumnType{}, false
		}

		return types.MapOf(key, value), true
	case "frozen", "frozentype", "reversed", "reversedtype":
		// Ordering and freezing are storage concerns, not value shape.
		if len(parts) != 1 {
			return types.ColumnType{}, false
		}

		return parseDescriptor(parts[0])
	default:
		return types.ColumnType{}, false
	}
}

// splitComposite separates "name<args>" or "Name(args)" into its base
// name and argument text. The third result is false for plain names.
func splitComposite(s string) (base, args string, composite bool) {
	open := strings.IndexAny(s, "<(")
	if open < 0 {
		return s, "", false
	}

	var closer byte
	if s[open] == '<' {
		closer = '>'
	} else {
		closer = ')'
	}

	end := strings.LastIndexByte(s, closer)
	if end <= open {
		return s, "", false
	}

	return s[:open], s[open+1 : end], true
}

// splitArgs splits a composite argument list at top-level commas.
func splitArgs(args string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, args[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, args[start:])

	return parts
}

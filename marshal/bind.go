package marshal

import (
	"errors"
	"fmt"
	"math/big"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	inf "gopkg.in/inf.v0"

	"github.com/gahr/casstcl/types"
)

// Bind converts a dynamic value into a driver-native value for the
// given column type.
//
// A null value binds as nil, which the driver writes as NULL. All
// conversions are explicit against the column type; a value that does
// not parse for its target type yields a BindError identifying the
// column, type and offending value.
//
// Parameters:
//   - column: Column name, used in error reporting
//   - typ: Target wire type
//   - v: Dynamic value to convert
//
// Returns:
//   - any: Driver-native value, nil for null
//   - error: *types.BindError on conversion failure
func Bind(column string, typ types.ColumnType, v types.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}

	native, err := bind(typ, v)
	if err != nil {
		return nil, &types.BindError{Column: column, Type: typ, Value: v, Cause: err}
	}

	return native, nil
}

func bind(typ types.ColumnType, v types.Value) (any, error) {
	switch typ.Kind {
	case types.TypeList, types.TypeSet:
		return bindList(typ, v)
	case types.TypeMap:
		return bindMap(typ, v)
	default:
		return bindScalar(typ.Kind, v.Text())
	}
}

func bindScalar(kind types.TypeKind, s string) (any, error) {
	switch kind {
	case types.TypeAscii, types.TypeText:
		return s, nil
	case types.TypeBlob:
		return []byte(s), nil
	case types.TypeBoolean:
		return parseBool(s)
	case types.TypeTinyInt:
		n, err := strconv.ParseInt(s, 10, 8)
		if err != nil {
			return nil, err
		}

		return int8(n), nil
	case types.TypeSmallInt:
		n, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return nil, err
		}

		return int16(n), nil
	case types.TypeInt:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, err
		}

		return int32(n), nil
	case types.TypeBigInt, types.TypeCounter:
		return strconv.ParseInt(s, 10, 64)
	case types.TypeFloat:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, err
		}

		return float32(f), nil
	case types.TypeDouble:
		return strconv.ParseFloat(s, 64)
	case types.TypeDecimal:
		dec := new(inf.Dec)
		if _, ok := dec.SetString(s); !ok {
			return nil, fmt.Errorf("invalid decimal '%s'", s)
		}

		return dec, nil
	case types.TypeVarint:
		n := new(big.Int)
		if _, ok := n.SetString(s, 10); !ok {
			return nil, fmt.Errorf("invalid varint '%s'", s)
		}

		return n, nil
	case types.TypeTimestamp:
		return parseTimestamp(s)
	case types.TypeUUID, types.TypeTimeUUID:
		u, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}

		return u.String(), nil
	case types.TypeInet:
		ip := net.ParseIP(s)
		if ip == nil {
			return nil, fmt.Errorf("invalid inet address '%s'", s)
		}

		return ip, nil
	case types.TypeUnknown:
		// A descriptor that did not translate binds as text.
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported type kind %s", kind)
	}
}

func bindList(typ types.ColumnType, v types.Value) (any, error) {
	if typ.Elem == nil {
		return nil, errors.New("collection type has no element type")
	}

	elems := listElems(v)
	out := make([]any, 0, len(elems))
	for _, elem := range elems {
		native, err := bind(*typ.Elem, elem)
		if err != nil {
			return nil, err
		}
		out = append(out, native)
	}

	return out, nil
}

func bindMap(typ types.ColumnType, v types.Value) (any, error) {
	if typ.Key == nil || typ.Elem == nil {
		return nil, errors.New("map type has no key or value type")
	}

	// A map literal is a flat list of alternating keys and values.
	elems := listElems(v)
	if len(elems)%2 != 0 {
		return nil, types.ErrMalformedMap
	}

	out := make(map[any]any, len(elems)/2)
	for i := 0; i < len(elems); i += 2 {
		key, err := bind(*typ.Key, elems[i])
		if err != nil {
			return nil, err
		}
		value, err := bind(*typ.Elem, elems[i+1])
		if err != nil {
			return nil, err
		}
		out[key] = value
	}

	return out, nil
}

// listElems returns the elements of a value in list position. A scalar
// is treated as a whitespace-separated list of scalars.
func listElems(v types.Value) []types.Value {
	if v.Kind() == types.KindList {
		return v.Elems()
	}

	fields := strings.Fields(v.Text())
	elems := make([]types.Value, len(fields))
	for i, f := range fields {
		elems[i] = types.Text(f)
	}

	return elems
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on", "y", "t":
		return true, nil
	case "0", "false", "no", "off", "n", "f":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean '%s'", s)
	}
}

// parseTimestamp accepts epoch milliseconds or an RFC 3339 time.
func parseTimestamp(s string) (time.Time, error) {
	if millis, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(millis).UTC(), nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp '%s'", s)
	}

	return t, nil
}

package marshal

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/gahr/casstcl/types"
)

// ToValue converts a driver-native result value into a dynamic Value.
//
// Scalars become their textual form: integers in base 10, floats in
// shortest-round-trip notation, booleans as "1"/"0", timestamps as
// epoch milliseconds. Collections become lists; a map becomes a flat
// alternating key/value list sorted by key for a stable rendering. A
// nil value becomes null, never the empty string.
//
// Parameters:
//   - v: Driver-native value from a result row
//
// Returns:
//   - types.Value: The dynamic form
func ToValue(v any) types.Value {
	if v == nil {
		return types.Null()
	}

	switch x := v.(type) {
	case string:
		return types.Text(x)
	case []byte:
		return types.Text(string(x))
	case bool:
		if x {
			return types.Text("1")
		}

		return types.Text("0")
	case int:
		return types.Text(strconv.FormatInt(int64(x), 10))
	case int8:
		return types.Text(strconv.FormatInt(int64(x), 10))
	case int16:
		return types.Text(strconv.FormatInt(int64(x), 10))
	case int32:
		return types.Text(strconv.FormatInt(int64(x), 10))
	case int64:
		return types.Text(strconv.FormatInt(x, 10))
	case float32:
		return types.Text(strconv.FormatFloat(float64(x), 'g', -1, 32))
	case float64:
		return types.Text(strconv.FormatFloat(x, 'g', -1, 64))
	case time.Time:
		return types.Text(strconv.FormatInt(x.UnixMilli(), 10))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return types.Null()
		}
		if s, ok := v.(fmt.Stringer); ok {
			return types.Text(s.String())
		}

		return ToValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if s, ok := v.(fmt.Stringer); ok {
			return types.Text(s.String())
		}
		elems := make([]types.Value, rv.Len())
		for i := range elems {
			elems[i] = ToValue(rv.Index(i).Interface())
		}

		return types.List(elems...)
	case reflect.Map:
		return mapToValue(rv)
	}

	if s, ok := v.(fmt.Stringer); ok {
		return types.Text(s.String())
	}

	return types.Text(fmt.Sprintf("%v", v))
}

func mapToValue(rv reflect.Value) types.Value {
	type pair struct {
		key   types.Value
		value types.Value
	}

	pairs := make([]pair, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, pair{
			key:   ToValue(iter.Key().Interface()),
			value: ToValue(iter.Value().Interface()),
		})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].key.Text() < pairs[j].key.Text()
	})

	flat := make([]types.Value, 0, len(pairs)*2)
	for _, p := range pairs {
		flat = append(flat, p.key, p.value)
	}

	return types.List(flat...)
}

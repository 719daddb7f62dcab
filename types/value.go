package types

import "strings"

// ValueKind discriminates the variants of a dynamic Value.
type ValueKind int

const (
	// KindNull marks an absent value. A null is never bound to a
	// statement slot and converts back to a null, never to "".
	KindNull ValueKind = iota

	// KindText is a scalar carried in its textual form.
	KindText

	// KindList is an ordered sequence of values. A map literal is a
	// list of alternating keys and values.
	KindList
)

// Value is the dynamic value model the engine exchanges with its caller.
//
// It is a small tagged variant: null, a textual scalar, or an ordered
// list of values. There is no implicit coercion anywhere in the engine;
// the marshal package performs all conversions explicitly against a
// ColumnType.
//
// The zero Value is null.
type Value struct {
	kind ValueKind
	text string
	list []Value
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Text returns a scalar value carrying s.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// List returns a list value over the given elements.
func List(elems ...Value) Value {
	return Value{kind: KindList, list: elems}
}

// TextList returns a list value whose elements are the given strings.
//
// This is a convenience for the common flat name/value pair shape:
//
//	pairs := types.TextList("id", "42", "name", "karl")
func TextList(elems ...string) Value {
	list := make([]Value, len(elems))
	for i, s := range elems {
		list[i] = Text(s)
	}

	return Value{kind: KindList, list: list}
}

// Kind returns the variant of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Text returns the scalar form of the value.
//
// For a list, the elements are joined with spaces; for null it returns
// the empty string. Use Kind to distinguish a null from an empty scalar.
func (v Value) Text() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.Text()
		}

		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// Elems returns the elements of a list value, or nil for other kinds.
//
// The returned slice is shared, not copied; callers must not mutate it.
func (v Value) Elems() []Value {
	if v.kind != KindList {
		return nil
	}

	return v.list
}

// Len returns the number of elements of a list value, or 0.
func (v Value) Len() int {
	return len(v.list)
}

// Equal reports deep equality of two values.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == other.text
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}

		return true
	default:
		return true
	}
}

// String implements fmt.Stringer for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "<null>"
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}

		return "{" + strings.Join(parts, " ") + "}"
	default:
		return v.text
	}
}

package ir

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the result value types.
// Only String, Int, Bool, Array and Object implement it.
type Value interface {
	irValue()
}

// String is a JSON string.
type String string

func (String) irValue() {}

// Int is a JSON integer. Always int64, never float64.
type Int int64

func (Int) irValue() {}

// Bool is a JSON boolean.
type Bool bool

func (Bool) irValue() {}

// Array is an ordered list of values.
type Array []Value

func (Array) irValue() {}

// Object maps keys to values. Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) irValue() {}

// Field is one key/value pair for Obj.
type Field struct {
	Key   string
	Value Value
}

// F is shorthand for Field.
func F(key string, value Value) Field {
	return Field{Key: key, Value: value}
}

// Obj builds an Object from fields. A later field overwrites an earlier one
// with the same key.
func Obj(fields ...Field) Object {
	obj := make(Object, len(fields))
	for _, f := range fields {
		obj[f.Key] = f.Value
	}
	return obj
}

// Arr builds an Array, never nil.
func Arr(vals ...Value) Array {
	if vals == nil {
		return Array{}
	}
	return Array(vals)
}

// ArrayOf projects every element of items into an Array.
func ArrayOf[T any](items []T, project func(T) Value) Array {
	arr := make(Array, 0, len(items))
	for _, it := range items {
		arr = append(arr, project(it))
	}
	return arr
}

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units).
// This differs from Go's byte-wise string order outside the BMP.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}

// MarshalJSON renders the object canonically, so --format json output and
// digests agree byte for byte.
func (obj Object) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(obj)
}

// MarshalJSON renders the array canonically.
func (arr Array) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(arr)
}

// Package optional distinguishes an omitted JSON field from an explicit null.
package optional

import (
	"bytes"
	"encoding/json"
)

// Field is absent (zero value), null, or set.
// Use it as a struct field; UnmarshalJSON only runs when the key is present.
type Field[T any] struct {
	present bool
	null    bool
	value   T
}

// Of returns a set field
func Of[T any](v T) Field[T] {
	return Field[T]{present: true, value: v}
}

// Null returns an explicitly cleared field
func Null[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

func (f Field[T]) Present() bool { return f.present }
func (f Field[T]) IsNull() bool  { return f.present && f.null }

// Value returns the value and whether one is set (present and not null)
func (f Field[T]) Value() (T, bool) {
	return f.value, f.present && !f.null
}

// Ptr returns nil for absent or null
func (f Field[T]) Ptr() *T {
	if !f.present || f.null {
		return nil
	}
	v := f.value
	return &v
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.null = true
		var zero T
		f.value = zero
		return nil
	}
	f.null = false
	return json.Unmarshal(data, &f.value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.present || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

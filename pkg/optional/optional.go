// Package optional models a JSON field that may be absent, explicitly null, or carry a value.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value is the zero value when the field was omitted by the caller.
type Value[T any] struct {
	set   bool
	null  bool
	value T
}

// Of returns a present, non-null value.
func Of[T any](v T) Value[T] {
	return Value[T]{set: true, value: v}
}

// Null returns a present value explicitly set to null.
func Null[T any]() Value[T] {
	return Value[T]{set: true, null: true}
}

// Present reports whether the caller supplied the field, including as null.
func (v Value[T]) Present() bool { return v.set }

// IsNull reports whether the field was supplied as null.
func (v Value[T]) IsNull() bool { return v.set && v.null }

// Get returns the value and true when present and non-null.
func (v Value[T]) Get() (T, bool) {
	if !v.set || v.null {
		var zero T
		return zero, false
	}
	return v.value, true
}

// Ptr returns nil for absent or null fields.
func (v Value[T]) Ptr() *T {
	if val, ok := v.Get(); ok {
		return &val
	}
	return nil
}

// SQLValue returns the driver argument for a present field: nil for null.
func (v Value[T]) SQLValue() interface{} {
	if v.null {
		return nil
	}
	return v.value
}

// UnmarshalJSON is only invoked by encoding/json when the key exists in the payload.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		v.null = true
		var zero T
		v.value = zero
		return nil
	}
	v.null = false
	return json.Unmarshal(data, &v.value)
}

// MarshalJSON renders absent and null fields as null.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set || v.null {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}

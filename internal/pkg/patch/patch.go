// Package patch provides a tri-state field for partial updates: a field is
// either left untouched, cleared to null, or set to a value.
//
// Decoded from JSON, an absent key leaves the field untouched, an explicit
// null clears it and anything else sets it.
package patch

import (
	"bytes"
	"encoding/json"
)

type Field[T any] struct {
	present bool
	value   *T
}

// Set returns a field that assigns v.
func Set[T any](v T) Field[T] {
	return Field[T]{present: true, value: &v}
}

// Null returns a field that clears the target.
func Null[T any]() Field[T] {
	return Field[T]{present: true}
}

// FromPtr returns Set(*p) or Null when p is nil.
func FromPtr[T any](p *T) Field[T] {
	if p == nil {
		return Null[T]()
	}
	return Set(*p)
}

// Present reports whether the field should be applied at all.
func (f Field[T]) Present() bool {
	return f.present
}

// Ptr returns the new value, nil meaning "clear".
func (f Field[T]) Ptr() *T {
	if f.value == nil {
		return nil
	}
	v := *f.value
	return &v
}

// IsNull reports whether the field clears the target.
func (f Field[T]) IsNull() bool {
	return f.present && f.value == nil
}

// Apply writes the field into dst when present.
func (f Field[T]) Apply(dst **T) {
	if f.present {
		*dst = f.Ptr()
	}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = &v
	return nil
}

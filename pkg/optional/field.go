// Package optional provides a presence-aware value for partial updates.
package optional

import "encoding/json"

// Field holds a value together with whether it was supplied at all.
// A Field that was never set is distinct from one set to its zero value.
type Field[T any] struct {
	Value T
	Set   bool
}

// Of returns a Field set to v.
func Of[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Get returns the value and whether it was set.
func (f Field[T]) Get() (T, bool) {
	return f.Value, f.Set
}

// IsZero reports an unset field, so `omitzero` drops it from JSON output.
func (f Field[T]) IsZero() bool {
	return !f.Set
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// UnmarshalJSON is only called when the key is present, including an
// explicit null, which is what marks the field as set.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	return json.Unmarshal(data, &f.Value)
}

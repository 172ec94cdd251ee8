// Package patch models partial-update payloads where "field absent",
// "field explicitly null" and "field set to a value" must stay
// distinguishable after JSON decoding.
package patch

import "encoding/json"

// Field is a tri-state optional value for PATCH bodies. The zero value
// means the field was absent from the request.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON is only invoked by encoding/json when the key is present,
// so Set doubles as a presence flag.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Null = true
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// HasValue reports whether the field carries an actual value (present and
// not null).
func (f Field[T]) HasValue() bool {
	return f.Set && !f.Null
}

// Ptr returns the value as a pointer, nil when absent or null. Convenient
// for merging over existing rows.
func (f Field[T]) Ptr() *T {
	if !f.HasValue() {
		return nil
	}
	v := f.Value
	return &v
}

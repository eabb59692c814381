package model

import "encoding/json"

// Optional is a tri-state JSON field: absent from the request body,
// explicitly null, or set to a value. Patch updates need all three so that
// "clear this field" and "leave it alone" are distinguishable.
type Optional[T any] struct {
	// Set reports whether the field appeared in the request body at all.
	Set bool
	// Valid reports whether a non-null value was supplied.
	Valid bool
	Value T
}

// Some returns an Optional holding a value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

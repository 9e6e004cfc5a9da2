package domain

import (
	"bytes"
	"encoding/json"
)

// FieldState distinguishes a field missing from a payload from one explicitly set to null.
type FieldState uint8

const (
	Absent FieldState = iota
	Null
	Present
)

// Value is an untyped input value consumed by the upsert engine.
type Value struct {
	State FieldState
	V     any
}

// NullValue returns a Value that clears the column.
func NullValue() Value { return Value{State: Null} }

// Set returns a present Value holding v.
func Set(v any) Value { return Value{State: Present, V: v} }

// Record is an incoming partial row: an optional identity (0 means none) and
// column values keyed by column name. Columns missing from Fields are absent.
type Record struct {
	ID     int64
	Fields map[string]Value
}

// Optional is a request field with three states. The zero value is Absent,
// a JSON null decodes to Null and anything else to Present.
type Optional[T any] struct {
	State FieldState
	Val   T
}

// Some returns a present Optional.
func Some[T any](v T) Optional[T] { return Optional[T]{State: Present, Val: v} }

// None returns an explicitly null Optional.
func None[T any]() Optional[T] { return Optional[T]{State: Null} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.Val, o.State == Present }

// Value converts o for the upsert engine.
func (o Optional[T]) Value() Value {
	switch o.State {
	case Present:
		return Set(o.Val)
	case Null:
		return NullValue()
	}
	return Value{}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	var zero T
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.State, o.Val = Null, zero
		return nil
	}
	if err := json.Unmarshal(b, &o.Val); err != nil {
		return err
	}
	o.State = Present
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.State != Present {
		return []byte("null"), nil
	}
	return json.Marshal(o.Val)
}

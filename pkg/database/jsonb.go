package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB scans a postgres jsonb column into a typed value. Used for the
// per-factor score breakdown and user feedback columns on matches.
type JSONB[T any] struct {
	Data T
}

func (p *JSONB[T]) Scan(src any) error {
	if src == nil {
		var zero T
		p.Data = zero
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("JSONB.Scan: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, &p.Data)
}

func (p JSONB[T]) Value() (driver.Value, error) {
	return json.Marshal(p.Data)
}

func (p *JSONB[T]) GetValue() T {
	return p.Data
}

// NewJSONB wraps a value for storage in a jsonb column
func NewJSONB[T any](data T) JSONB[T] {
	return JSONB[T]{Data: data}
}

// MarshalJSON marshals the wrapped value transparently
func (p JSONB[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Data)
}

// UnmarshalJSON unmarshals into the wrapped value transparently
func (p *JSONB[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &p.Data)
}

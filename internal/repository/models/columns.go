// Package models holds the row shapes of the Oracle tables and the column
// types they need.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// StringSlice stores a []string as a JSON array string.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	data, err := scanBytes("StringSlice", value)
	if err != nil {
		return err
	}
	if data == nil {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// JSON stores any JSON-serializable value in a CLOB column.
type JSON[T any] struct {
	V T
}

// NewJSON wraps v for storage.
func NewJSON[T any](v T) JSON[T] {
	return JSON[T]{V: v}
}

// Value implements the driver.Valuer interface
func (j JSON[T]) Value() (driver.Value, error) {
	data, err := json.Marshal(j.V)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface. NULL and empty values leave the
// zero value of T.
func (j *JSON[T]) Scan(value interface{}) error {
	data, err := scanBytes("JSON", value)
	if err != nil {
		return err
	}
	var v T
	if data != nil {
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("JSON Scan: %w", err)
		}
	}
	j.V = v
	return nil
}

// scanBytes normalizes a driver value to bytes. It returns nil for NULL, an
// empty string, or a stored "null".
func scanBytes(typeName string, value interface{}) ([]byte, error) {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil, errors.New(typeName + " Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	return data, nil
}

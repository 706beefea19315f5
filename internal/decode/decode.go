// Package decode parses the JSON documents written by external tools.
package decode

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Shape is a response type that names the JSON fields it cannot do without.
type Shape interface {
	RequiredFields() []string
}

// DecodeError means the bytes were not the expected JSON document.
type DecodeError struct {
	Missing []string
	Err     error
}

func (e *DecodeError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required field(s): %s", strings.Join(e.Missing, ", "))
	}
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Into decodes a single JSON object from data into v.
// Unknown fields are accepted; absent required fields are not.
func Into(data []byte, v Shape) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return &DecodeError{Err: err}
	}

	var missing []string
	for _, name := range v.RequiredFields() {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &DecodeError{Missing: missing}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

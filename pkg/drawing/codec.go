package drawing

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownType is returned by [Decode] when the "type" field is missing or
// names no known drawing variant.
var ErrUnknownType = errors.New("unknown drawing type")

// Decode decodes a single JSON drawing object into its concrete variant.
func Decode(data []byte) (Drawing, error) {
	var head struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	d := New(head.Type, "", "")
	if d == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, head.Type)
	}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("decode %s: %w", head.Type, err)
	}
	return d, nil
}

// FromRecord converts a generic decoded JSON value (typically
// map[string]any) into a drawing.
func FromRecord(record any) (Drawing, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return Decode(data)
}

// Record converts d into the generic map form used for schema validation.
func Record(d Drawing) (map[string]any, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode drawing: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

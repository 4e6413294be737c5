package drawing

import (
	"encoding/json"
	"errors"
	"fmt"
)

// EndPoint is one end of a line: either [Floating] or [Connected].
type EndPoint interface {
	isEndPoint()
}

// Floating is an end point at an absolute coordinate.
type Floating struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Connected is an end point that takes its position from another drawing.
//
// TopOfBetween selects the top (true) or bottom (false) of a Between anchor.
// StartOfPathLine selects the start (true) or end (false) of a PathLine
// anchor. Both are ignored for other anchor types.
type Connected struct {
	AnchorID        string `json:"anchorId"`
	TopOfBetween    bool   `json:"topOfBetween"`
	StartOfPathLine bool   `json:"startOfPathLine"`
}

func (Floating) isEndPoint()  {}
func (Connected) isEndPoint() {}

// MarshalJSON writes the floating shape with its "connected": false tag.
func (f Floating) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Connected bool    `json:"connected"`
		X         float64 `json:"x"`
		Y         float64 `json:"y"`
	}{false, f.X, f.Y})
}

// MarshalJSON writes the connected shape with its "connected": true tag.
func (c Connected) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Connected       bool   `json:"connected"`
		AnchorID        string `json:"anchorId"`
		TopOfBetween    bool   `json:"topOfBetween"`
		StartOfPathLine bool   `json:"startOfPathLine"`
	}{true, c.AnchorID, c.TopOfBetween, c.StartOfPathLine})
}

// ErrMissingEndPoint is returned when a line omits its start or end.
var ErrMissingEndPoint = errors.New("missing end point")

// DecodeEndPoint decodes a JSON end point, dispatching on "connected".
func DecodeEndPoint(data []byte) (EndPoint, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, ErrMissingEndPoint
	}
	var tag struct {
		Connected *bool `json:"connected"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decode end point: %w", err)
	}
	if tag.Connected == nil {
		return nil, errors.New("end point has no \"connected\" field")
	}
	if *tag.Connected {
		var c Connected
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decode connected end point: %w", err)
		}
		return c, nil
	}
	var f Floating
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode floating end point: %w", err)
	}
	return f, nil
}

// UnmarshalJSON decodes a line, resolving the end point union for start and end.
func (l *Line) UnmarshalJSON(data []byte) error {
	type plain Line
	aux := struct {
		*plain
		Start json.RawMessage `json:"start"`
		End   json.RawMessage `json:"end"`
	}{plain: (*plain)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	start, err := DecodeEndPoint(aux.Start)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	end, err := DecodeEndPoint(aux.End)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}
	l.Start, l.End = start, end
	return nil
}

// AnchorIDs returns the IDs referenced by the connected ends of d, start
// first. It returns nil for drawings that are not lines or have no
// connected ends.
func AnchorIDs(d Drawing) []string {
	start, end, ok := Endpoints(d)
	if !ok {
		return nil
	}
	var ids []string
	for _, ep := range []EndPoint{start, end} {
		if c, ok := ep.(Connected); ok {
			ids = append(ids, c.AnchorID)
		}
	}
	return ids
}

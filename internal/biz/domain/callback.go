package domain

import (
	"encoding/json"
	"fmt"
)

// Callback is the continuation-token wire format round-tripped through the
// transport's selection buttons. It is regenerated every time options are
// presented and never persisted. TaskID binds the token to the issuing
// CommandTask so a stale or foreign token is rejected instead of trusted.
type Callback struct {
	Command  string        `json:"command"`
	TaskID   string        `json:"task_id,omitempty"`
	DefectID int64         `json:"defect_id,omitempty"`
	Status   *DefectStatus `json:"status,omitempty"`
}

// Encode serializes the callback for transport
func (c Callback) Encode() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode callback: %w", err)
	}
	return string(b), nil
}

// DecodeCallback parses a continuation-token payload
func DecodeCallback(data string) (Callback, error) {
	var c Callback
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return Callback{}, fmt.Errorf("decode callback: %w", err)
	}
	if c.Command == "" {
		return Callback{}, fmt.Errorf("decode callback: missing command")
	}
	return c, nil
}

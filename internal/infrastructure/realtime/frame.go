package realtime

import (
	"encoding/json"
	"fmt"
)

// Frame is the envelope written to subscribers.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// EncodeFrame wraps payload in an event envelope.
func EncodeFrame(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", event, err)
	}
	return json.Marshal(Frame{Event: event, Data: data})
}

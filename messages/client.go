package messages

import (
	"encoding/json"

	"github.com/bytedance/sonic"
)

// ClientMessage represents a message from a frontend client
type ClientMessage struct {
	Type    string          `json:"type"` // "audio", "audio_binary", "control"
	Payload json.RawMessage `json:"payload"`
}

// AudioPayload contains audio data from client
type AudioPayload struct {
	Data string `json:"data"` // Base64-encoded PCM audio
}

// ControlPayload contains control commands
type ControlPayload struct {
	Action string `json:"action"` // "ping", "end_turn"
}

// TwilioFrame is an inbound event on a Twilio media stream:
// connected, start, media, stop, mark
type TwilioFrame struct {
	Event string `json:"event"`
	Start *struct {
		StreamSid string `json:"streamSid"`
	} `json:"start,omitempty"`
	Media *struct {
		Payload string `json:"payload"` // Base64-encoded mu-law audio
	} `json:"media,omitempty"`
}

// ParseTwilio decodes a raw Twilio stream frame
func ParseTwilio(data []byte) (*TwilioFrame, error) {
	var frame TwilioFrame
	if err := sonic.Unmarshal(data, &frame); err != nil {
		return nil, err
	}
	return &frame, nil
}

// ParseClient decodes a raw client frame
func ParseClient(data []byte) (*ClientMessage, error) {
	var msg ClientMessage
	if err := sonic.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DecodePayload unpacks the message payload into the given struct
func (m *ClientMessage) DecodePayload(v any) error {
	return sonic.Unmarshal(m.Payload, v)
}

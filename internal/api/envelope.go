package api

import (
	"bytes"
	"encoding/json"
)

// envelope is the wire shape every endpoint responds with. Some
// endpoints wrap the payload a second time (data.data); decodePayload
// tolerates exactly that one extra level and nothing else.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// errorMessage extracts a human-readable message from an error body,
// falling back to empty when the body is not an envelope.
func errorMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}

// decodePayload unwraps the response envelope into target. An
// unexpected shape is a loud typed error, not a silent empty default.
func decodePayload(body []byte, target any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &Error{Kind: KindBadEnvelope, Message: "response is not a JSON envelope"}
	}

	raw := env.Data
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		// An empty envelope on success is only legal as an empty
		// object body; anything else means the contract changed.
		trimmed := bytes.TrimSpace(body)
		if bytes.Equal(trimmed, []byte("{}")) || bytes.Equal(raw, []byte("null")) {
			return nil
		}
		return &Error{Kind: KindBadEnvelope, Message: "envelope has no data field"}
	}

	// Tolerate one extra nesting level: { data: { data: ... } }.
	var inner envelope
	if err := json.Unmarshal(raw, &inner); err == nil && len(inner.Data) > 0 {
		raw = inner.Data
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return &Error{Kind: KindBadEnvelope, Message: "envelope data has unexpected shape"}
	}
	return nil
}

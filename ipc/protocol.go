package ipc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/monodyle/tokyo-go/model"
)

var (
	ErrEmptyFrame = errors.New("empty frame")
	ErrMissingTag = errors.New("envelope has no tag")
)

// Envelope is the adjacently tagged wire format shared with the game server.
// Data is kept as RawMessage so handlers can defer deserialization to the concrete type.
type Envelope struct {
	Type string          `json:"e"`
	Data json.RawMessage `json:"data,omitempty"`
}

// DecodeEnvelope parses one text frame.
func DecodeEnvelope(frame []byte) (Envelope, error) {
	if len(frame) == 0 {
		return Envelope{}, ErrEmptyFrame
	}
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, ErrMissingTag
	}
	return env, nil
}

// EncodeCommand renders cmd as the frame the server expects.
func EncodeCommand(cmd model.GameCommand) ([]byte, error) {
	b, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode command: %w", err)
	}
	return b, nil
}

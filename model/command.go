package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// CommandKind is the wire tag of a GameCommand. These must stay in sync with
// the server's command enum.
type CommandKind string

const (
	KindRotate   CommandKind = "rotate"
	KindThrottle CommandKind = "throttle"
	KindFire     CommandKind = "fire"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("command requires data")
)

// GameCommand is the single action a player may take per tick.
// Value is the heading in radians for rotate, the throttle fraction for
// throttle, and unused for fire.
type GameCommand struct {
	Kind  CommandKind
	Value float64
}

func Rotate(radians float64) GameCommand { return GameCommand{Kind: KindRotate, Value: radians} }

func Throttle(v float64) GameCommand { return GameCommand{Kind: KindThrottle, Value: v} }

func Fire() GameCommand { return GameCommand{Kind: KindFire} }

func (c GameCommand) String() string {
	switch c.Kind {
	case KindRotate:
		return fmt.Sprintf("rotate(%.3f)", c.Value)
	case KindThrottle:
		return fmt.Sprintf("throttle(%.2f)", c.Value)
	default:
		return string(c.Kind)
	}
}

// Equal compares tag and payload; fire carries no payload.
func (c GameCommand) Equal(o GameCommand) bool {
	if c.Kind != o.Kind {
		return false
	}
	return c.Kind == KindFire || c.Value == o.Value || (math.IsNaN(c.Value) && math.IsNaN(o.Value))
}

// CommandFrame is the adjacently tagged wire form of a GameCommand:
// {"e":"rotate","data":1.57} or {"e":"fire"}.
type CommandFrame struct {
	E    CommandKind `json:"e" jsonschema:"enum=rotate,enum=throttle,enum=fire"`
	Data *float64    `json:"data,omitempty" jsonschema:"description=Radians for rotate; fraction in [-1, 1] for throttle; absent for fire"`
}

func (c GameCommand) MarshalJSON() ([]byte, error) {
	f := CommandFrame{E: c.Kind}
	switch c.Kind {
	case KindRotate, KindThrottle:
		v := c.Value
		f.Data = &v
	case KindFire:
	default:
		return nil, fmt.Errorf("marshal %q: %w", c.Kind, ErrUnknownCommand)
	}
	return json.Marshal(f)
}

func (c *GameCommand) UnmarshalJSON(b []byte) error {
	var f CommandFrame
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("unmarshal command: %w", err)
	}
	switch f.E {
	case KindRotate, KindThrottle:
		if f.Data == nil {
			return fmt.Errorf("unmarshal %q: %w", f.E, ErrMissingArgument)
		}
		*c = GameCommand{Kind: f.E, Value: *f.Data}
	case KindFire:
		*c = Fire()
	default:
		return fmt.Errorf("unmarshal %q: %w", f.E, ErrUnknownCommand)
	}
	return nil
}

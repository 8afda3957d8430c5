package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/monodyle/tokyo-go/model"
)

// These constants must stay in sync with the server's message enum.
const (
	TypeID        = "id"
	TypeState     = "state"
	TypeTeamNames = "teamnames"
)

// TeamNames maps player ids to display names.
type TeamNames map[uint32]string

func (env Envelope) ID() (uint32, error) {
	var id uint32
	if err := env.decode(TypeID, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (env Envelope) State() (model.GameState, error) {
	var gs model.GameState
	if err := env.decode(TypeState, &gs); err != nil {
		return model.GameState{}, err
	}
	return gs, nil
}

func (env Envelope) TeamNames() (TeamNames, error) {
	var names TeamNames
	if err := env.decode(TypeTeamNames, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (env Envelope) decode(want string, v any) error {
	if env.Type != want {
		return fmt.Errorf("decode %s: envelope is %q", want, env.Type)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decode %s: %w", want, err)
	}
	return nil
}

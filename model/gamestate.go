package model

import "time"

// GameState is the full world snapshot the server broadcasts every tick.
type GameState struct {
	Bounds     [2]float64        `json:"bounds" jsonschema:"description=World width and height in pixels,minItems=2,maxItems=2"`
	Players    []PlayerState     `json:"players"`
	Items      []Item            `json:"items"`
	Dead       []DeadPlayer      `json:"dead"`
	Bullets    []BulletState     `json:"bullets"`
	Scoreboard map[uint32]uint32 `json:"scoreboard" jsonschema:"description=Player id to score"`
}

// Player returns the live player with id, if any.
func (gs GameState) Player(id uint32) (PlayerState, bool) {
	for _, p := range gs.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerState{}, false
}

func (gs GameState) WorldBounds() Bounds {
	return Bounds{Width: gs.Bounds[0], Height: gs.Bounds[1]}
}

type PlayerState struct {
	ID           uint32  `json:"id"`
	Angle        float64 `json:"angle" jsonschema:"description=Heading in radians"`
	Throttle     float64 `json:"throttle" jsonschema:"minimum=-1,maximum=1"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Radius       float64 `json:"radius"`
	BulletRadius float64 `json:"bullet_radius"`
	BulletSpeed  float64 `json:"bullet_speed" jsonschema:"description=Pixels per second"`
	BulletLimit  uint32  `json:"bullet_limit"`
}

// NewPlayerState returns a player with base stats at the origin.
func NewPlayerState(id uint32) PlayerState {
	return PlayerState{
		ID:           id,
		Radius:       PlayerBaseRadius,
		BulletRadius: BulletBaseRadius,
		BulletSpeed:  BulletBaseSpeed,
		BulletLimit:  BulletBaseLimit,
	}
}

type BulletState struct {
	ID       uint32  `json:"id"`
	PlayerID uint32  `json:"player_id" jsonschema:"description=Owner of the bullet"`
	Angle    float64 `json:"angle"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Radius   float64 `json:"radius"`
	Speed    float64 `json:"speed"`
}

// SystemTime mirrors the server's wall-clock encoding.
type SystemTime struct {
	Secs  int64 `json:"secs_since_epoch"`
	Nanos int64 `json:"nanos_since_epoch"`
}

func (s SystemTime) Time() time.Time { return time.Unix(s.Secs, s.Nanos) }

type DeadPlayer struct {
	Respawn SystemTime  `json:"respawn"`
	Player  PlayerState `json:"player"`
	Killer  uint32      `json:"killer"`
}

// ClientState pairs the snapshot with the id the server assigned us.
type ClientState struct {
	ID        uint32    `json:"id"`
	GameState GameState `json:"game_state"`
}

// Alive reports whether our own player is among the live players.
func (cs ClientState) Alive() bool {
	_, ok := cs.GameState.Player(cs.ID)
	return ok
}

package agent

import (
	"fmt"
	"slices"

	"github.com/monodyle/tokyo-go/model"
)

// EventKind identifies a notable change between two consecutive snapshots.
type EventKind string

const (
	EventDied         EventKind = "died"
	EventRespawned    EventKind = "respawned"
	EventScored       EventKind = "scored"
	EventKill         EventKind = "kill"
	EventPlayerJoined EventKind = "player_joined"
	EventPlayerLeft   EventKind = "player_left"
	EventItemPicked   EventKind = "item_picked"
)

// Event is a game event detected by diffing consecutive snapshots. Events
// only feed the logs; decisions never depend on them.
type Event struct {
	Kind     EventKind
	PlayerID uint32
	Detail   string
}

// stateSnapshot captures the diffable fields of one snapshot.
type stateSnapshot struct {
	alive   bool
	score   uint32
	players map[uint32]bool   // live or dead, i.e. connected
	dead    map[uint32]uint32 // dead player id → killer
	items   map[uint32]model.ItemType
}

func takeSnapshot(cs model.ClientState) stateSnapshot {
	gs := cs.GameState
	s := stateSnapshot{
		alive:   cs.Alive(),
		score:   gs.Scoreboard[cs.ID],
		players: make(map[uint32]bool, len(gs.Players)+len(gs.Dead)),
		dead:    make(map[uint32]uint32, len(gs.Dead)),
		items:   make(map[uint32]model.ItemType, len(gs.Items)),
	}
	for _, p := range gs.Players {
		s.players[p.ID] = true
	}
	for _, d := range gs.Dead {
		s.players[d.Player.ID] = true
		s.dead[d.Player.ID] = d.Killer
	}
	for _, it := range gs.Items {
		s.items[it.ID] = it.ItemType
	}
	return s
}

// DetectEvents diffs next against prev. A nil prev yields no events. Events
// are ordered by kind, then by id, so the output is deterministic.
func DetectEvents(prev *model.ClientState, next model.ClientState) []Event {
	if prev == nil {
		return nil
	}
	before, after := takeSnapshot(*prev), takeSnapshot(next)
	var events []Event

	// 1. own death and respawn
	switch {
	case before.alive && !after.alive:
		detail := "killed"
		if killer, ok := after.dead[next.ID]; ok {
			detail = fmt.Sprintf("killed by %d", killer)
		}
		events = append(events, Event{Kind: EventDied, PlayerID: next.ID, Detail: detail})
	case !before.alive && after.alive:
		events = append(events, Event{Kind: EventRespawned, PlayerID: next.ID})
	}

	// 2. score gained; a reset is not an event
	if after.score > before.score {
		events = append(events, Event{
			Kind:     EventScored,
			PlayerID: next.ID,
			Detail:   fmt.Sprintf("score %d → %d", before.score, after.score),
		})
	}

	// 3. kills credited to us
	for _, id := range sortedKeys(after.dead) {
		if _, seen := before.dead[id]; seen || after.dead[id] != next.ID || id == next.ID {
			continue
		}
		events = append(events, Event{Kind: EventKill, PlayerID: id})
	}

	// 4. connections
	for _, id := range sortedKeys(after.players) {
		if !before.players[id] {
			events = append(events, Event{Kind: EventPlayerJoined, PlayerID: id})
		}
	}
	for _, id := range sortedKeys(before.players) {
		if !after.players[id] {
			events = append(events, Event{Kind: EventPlayerLeft, PlayerID: id})
		}
	}

	// 5. items gone since the last snapshot were picked up by someone
	for _, id := range sortedKeys(before.items) {
		if _, ok := after.items[id]; !ok {
			events = append(events, Event{Kind: EventItemPicked, Detail: fmt.Sprintf("item %d (%s)", id, before.items[id])})
		}
	}

	return events
}

func sortedKeys[V any](m map[uint32]V) []uint32 {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

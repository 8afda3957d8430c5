// Package analyzer keeps the bot's model of the world: per-player histories
// merged from successive snapshots, and the geometric and scoring queries
// behaviors decide with.
package analyzer

import (
	"iter"
	"time"

	"github.com/monodyle/tokyo-go/model"
)

// Analyzer is mutated once per tick by PushState and is read-only while the
// tick's behavior evaluates. It is not safe for concurrent use.
type Analyzer struct {
	cfg     Config
	ownID   uint32
	now     time.Time
	bounds  model.Bounds
	players map[uint32]*Player
	order   []uint32 // live player ids in snapshot order
	bullets []*Bullet
	items   []Item
}

func New(cfg Config) *Analyzer {
	return &Analyzer{
		cfg:     cfg.withDefaults(),
		players: make(map[uint32]*Player),
	}
}

func (a *Analyzer) Config() Config { return a.cfg }

// PushState merges a snapshot taken at now. Players present are created or
// updated in place, players absent are forgotten, bullets and items are
// replaced wholesale.
func (a *Analyzer) PushState(cs model.ClientState, now time.Time) {
	gs := cs.GameState
	a.ownID = cs.ID
	a.now = now
	a.bounds = gs.WorldBounds()

	live := make(map[uint32]*Player, len(gs.Players))
	order := make([]uint32, 0, len(gs.Players))
	for _, ps := range gs.Players {
		if _, dup := live[ps.ID]; dup {
			continue
		}
		p, ok := a.players[ps.ID]
		if ok {
			p.PushState(ps, gs.Scoreboard, now)
		} else {
			p = NewPlayer(ps, gs.Scoreboard, now, a.cfg.HistoryLimit)
		}
		live[ps.ID] = p
		order = append(order, ps.ID)
	}
	a.players = live
	a.order = order

	a.bullets = make([]*Bullet, 0, len(gs.Bullets))
	for _, bs := range gs.Bullets {
		a.bullets = append(a.bullets, NewBullet(bs))
	}
	a.items = make([]Item, 0, len(gs.Items))
	for _, it := range gs.Items {
		a.items = append(a.items, NewItem(it))
	}
}

func (a *Analyzer) OwnID() uint32 { return a.ownID }

// Now is the time of the last merged snapshot.
func (a *Analyzer) Now() time.Time { return a.now }

func (a *Analyzer) Bounds() model.Bounds { return a.bounds }

// OwnPlayer returns the bot's own player. The host only evaluates behaviors
// while the bot is alive, so a missing own player is a contract violation.
func (a *Analyzer) OwnPlayer() *Player {
	p, ok := a.players[a.ownID]
	if !ok {
		panic("analyzer: own player is not alive")
	}
	return p
}

func (a *Analyzer) Player(id uint32) (*Player, bool) {
	p, ok := a.players[id]
	return p, ok
}

func (a *Analyzer) Bullet(id uint32) (*Bullet, bool) {
	for _, b := range a.bullets {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

func (a *Analyzer) Item(id uint32) (Item, bool) {
	for _, it := range a.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Players yields every live player, own player included, in snapshot order.
func (a *Analyzer) Players() iter.Seq[*Player] {
	return func(yield func(*Player) bool) {
		for _, id := range a.order {
			if !yield(a.players[id]) {
				return
			}
		}
	}
}

// Opponents yields every live player except our own, in snapshot order.
func (a *Analyzer) Opponents() iter.Seq[*Player] {
	return func(yield func(*Player) bool) {
		for _, id := range a.order {
			if id == a.ownID {
				continue
			}
			if !yield(a.players[id]) {
				return
			}
		}
	}
}

func (a *Analyzer) PlayerCount() int { return len(a.order) }

func (a *Analyzer) Bullets() iter.Seq[*Bullet] {
	return func(yield func(*Bullet) bool) {
		for _, b := range a.bullets {
			if !yield(b) {
				return
			}
		}
	}
}

func (a *Analyzer) Items() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, it := range a.items {
			if !yield(it) {
				return
			}
		}
	}
}

func (a *Analyzer) ItemCount() int { return len(a.items) }

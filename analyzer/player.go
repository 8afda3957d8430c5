package analyzer

import (
	"fmt"
	"time"

	"github.com/monodyle/tokyo-go/geom"
	"github.com/monodyle/tokyo-go/model"
)

// Player is the current and past state of one live player. It is created on
// the first snapshot that mentions its id and updated in place afterwards so
// the histories survive.
type Player struct {
	ID           uint32
	Angle        geom.Radian
	Throttle     float64
	Position     geom.Point
	Velocity     geom.Vector
	Trajectory   Trajectory
	Scores       ScoreHistory
	Radius       float64
	BulletSpeed  float64
	BulletRadius float64
	BulletLimit  uint32
}

// NewPlayer seeds a player and both histories with one sample at now.
func NewPlayer(state model.PlayerState, scoreboard map[uint32]uint32, now time.Time, historyLimit int) *Player {
	p := &Player{
		ID:         state.ID,
		Trajectory: Trajectory{limit: historyLimit},
		Scores:     ScoreHistory{limit: historyLimit},
	}
	p.apply(state, scoreboard, now)
	return p
}

// PushState records a new snapshot of the same player. Mixing up ids is a
// caller bug and panics.
func (p *Player) PushState(state model.PlayerState, scoreboard map[uint32]uint32, now time.Time) {
	if state.ID != p.ID {
		panic(fmt.Sprintf("analyzer: pushing state of player %d into player %d", state.ID, p.ID))
	}
	p.apply(state, scoreboard, now)
}

func (p *Player) apply(state model.PlayerState, scoreboard map[uint32]uint32, now time.Time) {
	p.Angle = geom.Radian(state.Angle)
	p.Throttle = state.Throttle
	p.Position = geom.Pt(state.X, state.Y)
	p.Velocity = geom.FromPolar(p.Angle, state.Throttle*model.PlayerBaseSpeed)
	p.Radius = state.Radius
	p.BulletSpeed = state.BulletSpeed
	p.BulletRadius = state.BulletRadius
	p.BulletLimit = state.BulletLimit
	p.Trajectory.Push(p.Position, now)
	p.Scores.Push(scoreboard[state.ID], now)
}

func (p *Player) Score() uint32 { return p.Scores.LastScore() }

func (p *Player) Pos() geom.Point     { return p.Position }
func (p *Player) Vel() geom.Vector    { return p.Velocity }
func (p *Player) BodyRadius() float64 { return p.Radius }
func (p *Player) String() string      { return fmt.Sprintf("player#%d@%v", p.ID, p.Position) }

// Mobility is the magnitude of the average absolute velocity: how much the
// player has moved at all over its history.
func (p *Player) Mobility() float64 { return p.Trajectory.AveAbsVelocity().Len() }

func (p *Player) DistanceTo(o geom.Positional) float64 { return geom.Distance(p, o) }

func (p *Player) AngleTo(o geom.Positional) geom.Radian { return geom.AngleTo(p, o) }

// IsCollidingAt reports whether p and target overlap once interval has
// passed. target always keeps moving; p either keeps moving too or, with
// selfStop, stays where it is now.
func (p *Player) IsCollidingAt(target geom.Moving, interval time.Duration, selfStop bool) bool {
	self := p.Position
	if !selfStop {
		self = geom.Project(p, interval)
	}
	return self.Distance(geom.Project(target, interval)) < target.BodyRadius()+p.Radius
}

// IsCollidingDuring samples IsCollidingAt every step from one step up to
// interval inclusive.
func (p *Player) IsCollidingDuring(target geom.Moving, interval, step time.Duration, selfStop bool) bool {
	if step <= 0 {
		step = DefaultConfig().CollisionStep
	}
	for at := step; at <= interval; at += step {
		if p.IsCollidingAt(target, at, selfStop) {
			return true
		}
	}
	return false
}

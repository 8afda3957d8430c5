package behavior

import (
	"iter"
	"log/slog"
	"time"

	"github.com/monodyle/tokyo-go/analyzer"
	"github.com/monodyle/tokyo-go/geom"
	"github.com/monodyle/tokyo-go/model"
)

func first[T any](seq iter.Seq[T]) (T, bool) {
	for v := range seq {
		return v, true
	}
	var zero T
	return zero, false
}

// MoveTo drives to Destination. Once within the arrival distance it either
// brakes once or is done. Zero Tuning fields fall back to DefaultTuning, here
// and in every tactic below.
type MoveTo struct {
	Destination  geom.Point
	EndWithBrake bool
	Tuning       Tuning
}

func (t Tuning) MoveTo(dest geom.Point, endWithBrake bool) *MoveTo {
	return &MoveTo{Destination: dest, EndWithBrake: endWithBrake, Tuning: t}
}

func NewMoveTo(dest geom.Point, endWithBrake bool) *MoveTo {
	return DefaultTuning().MoveTo(dest, endWithBrake)
}

func (*MoveTo) behavior() {}

func (m *MoveTo) Next(a *analyzer.Analyzer) (model.GameCommand, bool) {
	t := m.Tuning.WithDefaults()
	own := a.OwnPlayer()
	if own.DistanceTo(m.Destination) < t.ArrivalDistance {
		if m.EndWithBrake {
			m.EndWithBrake = false
			return model.Throttle(0), true
		}
		return none, false
	}
	// TODO: the trailing Noop spends a tick while cruising; replace it with a
	// course correction once arrival can be predicted from velocity.
	return NewSequence(
		t.rotate(own.AngleTo(m.Destination), t.MoveMargin),
		t.maxThrottle(),
		&Noop{},
	).Next(a)
}

// Chase closes in on Target until within Distance of it.
type Chase struct {
	Target   Target
	Distance float64
	Tuning   Tuning
}

func (t Tuning) Chase(target Target, distance float64) *Chase {
	return &Chase{Target: target, Distance: distance, Tuning: t}
}

func NewChase(target Target, distance float64) *Chase {
	return DefaultTuning().Chase(target, distance)
}

func (*Chase) behavior() {}

func (c *Chase) Next(a *analyzer.Analyzer) (model.GameCommand, bool) {
	target, ok := c.Target.Resolve(a)
	if !ok {
		return none, false
	}
	own := a.OwnPlayer()
	if own.DistanceTo(target) <= c.Distance {
		return none, false
	}
	t := c.Tuning.WithDefaults()
	return NewSequence(
		t.rotate(own.AngleTo(target), t.ChaseMargin),
		t.maxThrottle(),
		&Noop{},
	).Next(a)
}

// Dodge steers across the path of the first bullet that would hit us within
// During, considering bullets inside Radius.
type Dodge struct {
	Radius float64
	During time.Duration
	Tuning Tuning
	next   Sequence
}

func (t Tuning) Dodge(radius float64, during time.Duration) *Dodge {
	return &Dodge{Radius: radius, During: during, Tuning: t}
}

func NewDodge(radius float64, during time.Duration) *Dodge {
	return DefaultTuning().Dodge(radius, during)
}

func (*Dodge) behavior() {}

func (d *Dodge) Next(a *analyzer.Analyzer) (model.GameCommand, bool) {
	if cmd, ok := d.next.Next(a); ok {
		return cmd, true
	}
	bullet, ok := first(a.BulletsWithinColliding(d.Radius, d.During))
	if !ok {
		return none, false
	}
	slog.Debug("dodging bullet", "bullet", bullet.ID, "owner", bullet.PlayerID)
	t := d.Tuning.WithDefaults()
	d.next = *NewSequence(
		t.maxThrottle(),
		t.rotate(bullet.Velocity.Tangent(), t.EvadeMargin),
	)
	return d.next.Next(a)
}

// GetAwayFromPlayer runs straight away from the closest opponent.
type GetAwayFromPlayer struct {
	Tuning Tuning
	next   Sequence
}

func (t Tuning) GetAwayFromPlayer() *GetAwayFromPlayer { return &GetAwayFromPlayer{Tuning: t} }

func NewGetAwayFromPlayer() *GetAwayFromPlayer { return DefaultTuning().GetAwayFromPlayer() }

func (*GetAwayFromPlayer) behavior() {}

func (g *GetAwayFromPlayer) Next(a *analyzer.Analyzer) (model.GameCommand, bool) {
	if cmd, ok := g.next.Next(a); ok {
		return cmd, true
	}
	p, ok := a.PlayerClosest()
	if !ok {
		return none, false
	}
	t := g.Tuning.WithDefaults()
	g.next = *NewSequence(
		t.maxThrottle(),
		t.rotate(p.AngleTo(a.OwnPlayer()), t.EvadeMargin),
	)
	return g.next.Next(a)
}

// DodgePlayer flees opponents on a collision course and fires back at
// opponents closing in from behind.
type DodgePlayer struct {
	Tuning Tuning
	next   Sequence
}

func (t Tuning) DodgePlayer() *DodgePlayer { return &DodgePlayer{Tuning: t} }

func NewDodgePlayer() *DodgePlayer { return DefaultTuning().DodgePlayer() }

func (*DodgePlayer) behavior() {}

func (d *DodgePlayer) Next(a *analyzer.Analyzer) (model.GameCommand, bool) {
	if cmd, ok := d.next.Next(a); ok {
		return cmd, true
	}
	t := d.Tuning.WithDefaults()
	if p, ok := first(a.PlayersWithinColliding(t.ThreatRadius, t.ThreatWindow, false)); ok {
		slog.Debug("player on collision course", "player", p.ID, "velocity", p.Velocity)
		d.next = *NewSequence(
			t.maxThrottle(),
			t.rotate(p.Velocity.Tangent(), t.EvadeMargin),
		)
		return d.next.Next(a)
	}
	if p, ok := first(a.PlayersWithinColliding(t.ThreatRadius, t.ThreatWindow, true)); ok {
		slog.Debug("chased by player, counter attack", "player", p.ID)
		d.next = *NewSequence(
			t.FireAt(ByID(p.ID), t.CounterShots),
			t.rotate(p.Velocity.Tangent(), t.EvadeMargin),
		)
		return d.next.Next(a)
	}
	return none, false
}

// FireAt aims at Target and fires Times shots. The aim leads the target: it
// searches whole-degree offsets around the direct angle for a shot predicted
// to hit, and falls back to the direct angle.
//
// An attempt is consumed when the target resolves, not when the shot leaves.
type FireAt struct {
	Target Target
	Times  int
	Tuning Tuning
	next   Sequence
}

func (t Tuning) FireAt(target Target, times int) *FireAt {
	return &FireAt{Target: target, Times: times, Tuning: t}
}

func NewFireAt(target Target, times int) *FireAt { return DefaultTuning().FireAt(target, times) }

func (*FireAt) behavior() {}

func (f *FireAt) Next(a *analyzer.Analyzer) (model.GameCommand, bool) {
	if cmd, ok := f.next.Next(a); ok {
		return cmd, true
	}
	if f.Times <= 0 {
		return none, false
	}
	target, ok := f.Target.Resolve(a)
	if !ok {
		return none, false
	}
	f.Times--

	t := f.Tuning.WithDefaults()
	angle := t.aim(a, target)
	f.next = *NewSequence(
		t.rotate(angle, t.AimMargin),
		NewFire(1),
	)
	return f.next.Next(a)
}

// aim tries offsets from -AimSpread to +AimSpread degrees, most negative
// first, and returns the first one predicted to hit.
func (t Tuning) aim(a *analyzer.Analyzer, target *analyzer.Player) geom.Radian {
	own := a.OwnPlayer()
	direct := own.AngleTo(target)
	step := a.Config().CollisionStep
	for offset := -t.AimSpread; offset <= t.AimSpread; offset++ {
		angle := direct + geom.Degrees(float64(offset))
		shot := analyzer.VirtualBullet(own.Position, angle, own.BulletSpeed, own.BulletRadius)
		if target.IsCollidingDuring(shot, t.AimHorizon, step, false) {
			return angle
		}
	}
	return direct
}

// PickItem goes for the closest item: turn to it, then full throttle.
type PickItem struct {
	Tuning Tuning
}

func (t Tuning) PickItem() *PickItem { return &PickItem{Tuning: t} }

func NewPickItem() *PickItem { return DefaultTuning().PickItem() }

func (*PickItem) behavior() {}

func (p *PickItem) Next(a *analyzer.Analyzer) (model.GameCommand, bool) {
	item, ok := a.ItemClosest()
	if !ok {
		return none, false
	}
	t := p.Tuning.WithDefaults()
	rotate := t.rotate(a.OwnPlayer().AngleTo(item), t.RotateMargin)
	if cmd, ok := rotate.Next(a); ok {
		return cmd, true
	}
	return model.Throttle(model.PlayerMaxThrottle), true
}

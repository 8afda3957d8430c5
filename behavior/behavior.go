// Package behavior contains the bot's decision primitives. A Behavior is
// asked once per tick for the next command; it either returns one, or
// reports that it has nothing left to do so the caller can move on.
//
// Behaviors are stateful and resumable: keep the same value across ticks to
// let counters and cached sub-sequences make progress. Compose them with
// Sequence.
package behavior

import (
	"fmt"
	"time"

	"github.com/monodyle/tokyo-go/analyzer"
	"github.com/monodyle/tokyo-go/geom"
	"github.com/monodyle/tokyo-go/model"
)

// Behavior is the closed set of decision primitives in this package.
type Behavior interface {
	// Next returns the command to send this tick, or false when the
	// behavior has nothing to contribute right now.
	Next(a *analyzer.Analyzer) (model.GameCommand, bool)

	behavior()
}

// Tuning collects the thresholds behaviors decide with. Angles are in
// degrees.
type Tuning struct {
	ThrottleTolerance float64       `yaml:"throttle_tolerance"`
	RotateMargin      float64       `yaml:"rotate_margin"`
	ArrivalDistance   float64       `yaml:"arrival_distance"`
	MoveMargin        float64       `yaml:"move_margin"`
	ChaseMargin       float64       `yaml:"chase_margin"`
	EvadeMargin       float64       `yaml:"evade_margin"`
	AimMargin         float64       `yaml:"aim_margin"`
	AimSpread         int           `yaml:"aim_spread"`
	AimHorizon        time.Duration `yaml:"aim_horizon"`
	ThreatRadius      float64       `yaml:"threat_radius"`
	ThreatWindow      time.Duration `yaml:"threat_window"`
	CounterShots      int           `yaml:"counter_shots"`
}

func DefaultTuning() Tuning {
	return Tuning{
		ThrottleTolerance: 0.05,
		RotateMargin:      0.1,
		ArrivalDistance:   10,
		MoveMargin:        5,
		ChaseMargin:       10,
		EvadeMargin:       5,
		AimMargin:         0.1,
		AimSpread:         30,
		AimHorizon:        4 * time.Second,
		ThreatRadius:      400,
		ThreatWindow:      2 * time.Second,
		CounterShots:      2,
	}
}

// WithDefaults fills zero fields from DefaultTuning.
func (t Tuning) WithDefaults() Tuning {
	d := DefaultTuning()
	if t.ThrottleTolerance <= 0 {
		t.ThrottleTolerance = d.ThrottleTolerance
	}
	if t.RotateMargin <= 0 {
		t.RotateMargin = d.RotateMargin
	}
	if t.ArrivalDistance <= 0 {
		t.ArrivalDistance = d.ArrivalDistance
	}
	if t.MoveMargin <= 0 {
		t.MoveMargin = d.MoveMargin
	}
	if t.ChaseMargin <= 0 {
		t.ChaseMargin = d.ChaseMargin
	}
	if t.EvadeMargin <= 0 {
		t.EvadeMargin = d.EvadeMargin
	}
	if t.AimMargin <= 0 {
		t.AimMargin = d.AimMargin
	}
	if t.AimSpread <= 0 {
		t.AimSpread = d.AimSpread
	}
	if t.AimHorizon <= 0 {
		t.AimHorizon = d.AimHorizon
	}
	if t.ThreatRadius <= 0 {
		t.ThreatRadius = d.ThreatRadius
	}
	if t.ThreatWindow <= 0 {
		t.ThreatWindow = d.ThreatWindow
	}
	if t.CounterShots <= 0 {
		t.CounterShots = d.CounterShots
	}
	return t
}

func (t Tuning) maxThrottle() *Throttle {
	return &Throttle{Value: model.PlayerMaxThrottle, Tolerance: t.ThrottleTolerance}
}

func (t Tuning) rotate(angle geom.Radian, marginDeg float64) *Rotate {
	return &Rotate{Angle: angle, Margin: geom.Degrees(marginDeg)}
}

// Sequence runs its children in order. The front child is asked first; when
// it has nothing left to do it is dropped for good and the next one is
// asked in the same tick.
type Sequence struct {
	queue []Behavior
}

func NewSequence(children ...Behavior) *Sequence {
	return &Sequence{queue: append([]Behavior(nil), children...)}
}

func (*Sequence) behavior() {}

func (s *Sequence) Next(a *analyzer.Analyzer) (model.GameCommand, bool) {
	for len(s.queue) > 0 {
		if cmd, ok := s.queue[0].Next(a); ok {
			return cmd, true
		}
		s.queue[0] = nil
		s.queue = s.queue[1:]
	}
	return model.GameCommand{}, false
}

// Len is the number of children not yet finished.
func (s *Sequence) Len() int { return len(s.queue) }

// Push appends children to the end of the queue.
func (s *Sequence) Push(children ...Behavior) { s.queue = append(s.queue, children...) }

func (s *Sequence) clone() Sequence {
	out := Sequence{queue: make([]Behavior, len(s.queue))}
	for i, b := range s.queue {
		out.queue[i] = Clone(b)
	}
	return out
}

// Clone deep-copies b so the copy can progress independently.
func Clone(b Behavior) Behavior {
	switch v := b.(type) {
	case nil:
		return nil
	case *Skip:
		return &Skip{}
	case *Stop:
		return &Stop{}
	case *Noop:
		return &Noop{}
	case *Throttle:
		c := *v
		return &c
	case *Rotate:
		c := *v
		return &c
	case *Fire:
		c := *v
		return &c
	case *MoveTo:
		c := *v
		return &c
	case *Sequence:
		c := v.clone()
		return &c
	case *Chase:
		c := *v
		return &c
	case *Dodge:
		c := *v
		c.next = v.next.clone()
		return &c
	case *GetAwayFromPlayer:
		c := *v
		c.next = v.next.clone()
		return &c
	case *DodgePlayer:
		c := *v
		c.next = v.next.clone()
		return &c
	case *FireAt:
		c := *v
		c.next = v.next.clone()
		return &c
	case *PickItem:
		c := *v
		return &c
	case *Random:
		c := *v
		return &c
	}
	panic(fmt.Sprintf("behavior: cannot clone %T", b))
}

// Name is a short label for logs.
func Name(b Behavior) string {
	if s, ok := b.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", b)
}

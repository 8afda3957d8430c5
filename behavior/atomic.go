package behavior

import (
	"math"
	"math/rand/v2"

	"github.com/monodyle/tokyo-go/analyzer"
	"github.com/monodyle/tokyo-go/geom"
	"github.com/monodyle/tokyo-go/model"
)

var none model.GameCommand

// Skip never has anything to do.
type Skip struct{}

func (*Skip) behavior() {}

func (*Skip) Next(*analyzer.Analyzer) (model.GameCommand, bool) { return none, false }

// Stop always cuts the throttle.
type Stop struct{}

func (*Stop) behavior() {}

func (*Stop) Next(*analyzer.Analyzer) (model.GameCommand, bool) { return model.Throttle(0), true }

// Noop spends the tick's command without changing anything: it rotates to
// the heading we already have.
type Noop struct{}

func (*Noop) behavior() {}

func (*Noop) Next(a *analyzer.Analyzer) (model.GameCommand, bool) {
	return model.Rotate(a.OwnPlayer().Angle.Positive().Float()), true
}

// Throttle sets the throttle unless it is already within Tolerance. A zero
// Tolerance means the default one.
type Throttle struct {
	Value     float64
	Tolerance float64
}

func NewThrottle(v float64) *Throttle {
	return &Throttle{Value: v, Tolerance: DefaultTuning().ThrottleTolerance}
}

func MaxThrottle() *Throttle { return NewThrottle(model.PlayerMaxThrottle) }

func (*Throttle) behavior() {}

func (t *Throttle) Next(a *analyzer.Analyzer) (model.GameCommand, bool) {
	tol := t.Tolerance
	if tol <= 0 {
		tol = DefaultTuning().ThrottleTolerance
	}
	if math.Abs(a.OwnPlayer().Throttle-t.Value) <= tol {
		return none, false
	}
	return model.Throttle(t.Value), true
}

// Rotate turns to Angle unless the heading is already within Margin. A zero
// Margin means the default one.
type Rotate struct {
	Angle  geom.Radian
	Margin geom.Radian
}

func NewRotate(angle geom.Radian) *Rotate {
	return RotateWithin(angle, DefaultTuning().RotateMargin)
}

func RotateWithin(angle geom.Radian, marginDeg float64) *Rotate {
	return &Rotate{Angle: angle, Margin: geom.Degrees(marginDeg)}
}

func (*Rotate) behavior() {}

func (r *Rotate) Next(a *analyzer.Analyzer) (model.GameCommand, bool) {
	margin := r.Margin
	if margin <= 0 {
		margin = geom.Degrees(DefaultTuning().RotateMargin)
	}
	if a.OwnPlayer().Angle.Within(r.Angle, margin) {
		return none, false
	}
	return model.Rotate(r.Angle.Positive().Float()), true
}

// Fire shoots Times times, one shot per call.
type Fire struct {
	Times int
}

func NewFire(times int) *Fire { return &Fire{Times: times} }

func (*Fire) behavior() {}

func (f *Fire) Next(*analyzer.Analyzer) (model.GameCommand, bool) {
	if f.Times <= 0 {
		return none, false
	}
	f.Times--
	return model.Fire(), true
}

// Random sends one of four random outcomes. It is a baseline, not a tactic.
type Random struct {
	rng *rand.Rand
}

// NewRandom draws from rng, or from the global source when rng is nil.
func NewRandom(rng *rand.Rand) *Random { return &Random{rng: rng} }

func (*Random) behavior() {}

func (r *Random) Next(*analyzer.Analyzer) (model.GameCommand, bool) {
	switch r.intN(4) {
	case 0:
		return none, false
	case 1:
		return model.Rotate(r.float() * 2 * math.Pi), true
	case 2:
		span := model.PlayerMaxThrottle - model.PlayerMinThrottle
		return model.Throttle(model.PlayerMinThrottle + r.float()*span), true
	default:
		return model.Fire(), true
	}
}

func (r *Random) intN(n int) int {
	if r.rng == nil {
		return rand.IntN(n)
	}
	return r.rng.IntN(n)
}

func (r *Random) float() float64 {
	if r.rng == nil {
		return rand.Float64()
	}
	return r.rng.Float64()
}

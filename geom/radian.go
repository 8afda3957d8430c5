package geom

import (
	"fmt"
	"math"
)

const fullTurn = 2 * math.Pi

// Radian is an angle. Raw values may lie anywhere on the real line; compare
// them only through Positive, Diff or Within.
type Radian float64

func Degrees(d float64) Radian { return Radian(d * math.Pi / 180) }

func (r Radian) ToDegrees() float64 { return float64(r) * 180 / math.Pi }

// Positive normalizes r into [0, 2π).
func (r Radian) Positive() Radian {
	v := math.Mod(float64(r), fullTurn)
	if v < 0 {
		v += fullTurn
	}
	// Mod of a tiny negative value can round up to exactly 2π.
	if v >= fullTurn {
		v = 0
	}
	return Radian(v)
}

// Diff is the signed shortest rotation from r to other, in (-π, π].
func (r Radian) Diff(other Radian) Radian {
	d := float64(other.Positive() - r.Positive())
	if d > math.Pi {
		d -= fullTurn
	} else if d <= -math.Pi {
		d += fullTurn
	}
	return Radian(d)
}

// Within reports whether other is no more than margin away from r in either
// direction.
func (r Radian) Within(other, margin Radian) bool {
	return math.Abs(float64(r.Diff(other))) <= float64(margin)
}

func (r Radian) Float() float64 { return float64(r) }

func (r Radian) String() string { return fmt.Sprintf("%.1f°", r.ToDegrees()) }

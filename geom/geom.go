// Package geom holds the 2D value types shared by the analyzer and the
// behaviors. Nothing here has state or does I/O.
package geom

import (
	"fmt"
	"math"
	"time"
)

// Point is a position in world coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Pos() Point { return p }

func (p Point) Add(v Vector) Point { return Point{X: p.X + v.X, Y: p.Y + v.Y} }

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Vector { return Vector{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) Distance(q Point) float64 { return q.Sub(p).Len() }

// AngleTo is the raw heading from p to q.
func (p Point) AngleTo(q Point) Radian { return q.Sub(p).Angle() }

// VelocityTo is the velocity needed to travel from p to q in elapsed.
// A non-positive elapsed yields the zero vector.
func (p Point) VelocityTo(q Point, elapsed time.Duration) Vector {
	if elapsed <= 0 {
		return Vector{}
	}
	return q.Sub(p).Div(elapsed.Seconds())
}

func (p Point) String() string { return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y) }

// Vector is a displacement, or a velocity in units per second.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FromAngle returns the unit vector pointing at a.
func FromAngle(a Radian) Vector {
	return Vector{X: math.Cos(float64(a)), Y: math.Sin(float64(a))}
}

func FromPolar(a Radian, magnitude float64) Vector { return FromAngle(a).Scale(magnitude) }

func (v Vector) Add(w Vector) Vector { return Vector{X: v.X + w.X, Y: v.Y + w.Y} }

func (v Vector) Scale(k float64) Vector { return Vector{X: v.X * k, Y: v.Y * k} }

func (v Vector) Div(k float64) Vector { return Vector{X: v.X / k, Y: v.Y / k} }

func (v Vector) Len() float64 { return math.Hypot(v.X, v.Y) }

// Abs drops the direction of each component.
func (v Vector) Abs() Vector { return Vector{X: math.Abs(v.X), Y: math.Abs(v.Y)} }

func (v Vector) Angle() Radian { return Radian(math.Atan2(v.Y, v.X)) }

// Tangent is the heading perpendicular to v, a quarter turn counter-clockwise.
func (v Vector) Tangent() Radian { return (v.Angle() + math.Pi/2).Positive() }

func (v Vector) IsZero() bool { return v.X == 0 && v.Y == 0 }

func (v Vector) String() string { return fmt.Sprintf("<%.1f, %.1f>", v.X, v.Y) }

// Positional is anything with a current position.
type Positional interface {
	Pos() Point
}

// Velocity is anything with a current velocity.
type Velocity interface {
	Vel() Vector
}

// Moving is a body that can be extrapolated and collided.
type Moving interface {
	Positional
	Velocity
	BodyRadius() float64
}

// Project extrapolates m linearly over d. There is no acceleration and no
// clamping to the world bounds.
func Project(m Moving, d time.Duration) Point {
	return m.Pos().Add(m.Vel().Scale(d.Seconds()))
}

func Distance(a, b Positional) float64 { return a.Pos().Distance(b.Pos()) }

// AngleTo is the raw heading from a to b. Normalize before comparing.
func AngleTo(a, b Positional) Radian { return a.Pos().AngleTo(b.Pos()) }

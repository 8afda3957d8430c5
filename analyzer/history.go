package analyzer

import (
	"time"

	"github.com/monodyle/tokyo-go/geom"
)

type positionSample struct {
	pos geom.Point
	at  time.Time
}

// Trajectory is the append-only position history of a player, oldest first.
// Queries on an empty trajectory panic: the analyzer always pushes a sample
// before the first query of a tick.
type Trajectory struct {
	samples []positionSample
	limit   int
}

// Push appends a sample, dropping the oldest one past the limit.
func (t *Trajectory) Push(p geom.Point, at time.Time) {
	t.samples = append(t.samples, positionSample{pos: p, at: at})
	if t.limit > 0 && len(t.samples) > t.limit {
		t.samples = append(t.samples[:0], t.samples[len(t.samples)-t.limit:]...)
	}
}

func (t *Trajectory) Len() int { return len(t.samples) }

func (t *Trajectory) LastPosition() geom.Point {
	return t.last().pos
}

// LastVelocity is derived from the two most recent samples. With a single
// sample there is no direction to infer and the result is zero.
func (t *Trajectory) LastVelocity() geom.Vector {
	last := t.last()
	if len(t.samples) < 2 {
		return geom.Vector{}
	}
	prev := t.samples[len(t.samples)-2]
	return prev.pos.VelocityTo(last.pos, last.at.Sub(prev.at))
}

// AveAbsVelocity averages the direction-agnostic velocity of every step in
// the history. It tells how much an entity moves at all.
func (t *Trajectory) AveAbsVelocity() geom.Vector {
	t.last()
	if len(t.samples) < 2 {
		return geom.Vector{}
	}
	var sum geom.Vector
	for i := 1; i < len(t.samples); i++ {
		prev, cur := t.samples[i-1], t.samples[i]
		sum = sum.Add(prev.pos.VelocityTo(cur.pos, cur.at.Sub(prev.at)).Abs())
	}
	return sum.Div(float64(len(t.samples) - 1))
}

func (t *Trajectory) last() positionSample {
	if len(t.samples) == 0 {
		panic("analyzer: trajectory queried before any position was pushed")
	}
	return t.samples[len(t.samples)-1]
}

type scoreSample struct {
	score uint32
	at    time.Time
}

// ScoreHistory records a player's score over time. Scores usually grow but
// resets are legal and not rejected.
type ScoreHistory struct {
	samples []scoreSample
	limit   int
}

func (h *ScoreHistory) Push(score uint32, at time.Time) {
	h.samples = append(h.samples, scoreSample{score: score, at: at})
	if h.limit > 0 && len(h.samples) > h.limit {
		h.samples = append(h.samples[:0], h.samples[len(h.samples)-h.limit:]...)
	}
}

func (h *ScoreHistory) Len() int { return len(h.samples) }

func (h *ScoreHistory) LastScore() uint32 {
	if len(h.samples) == 0 {
		panic("analyzer: score history queried before any score was pushed")
	}
	return h.samples[len(h.samples)-1].score
}

// ScoreSince is the score earned after past: the current score minus the
// latest score recorded at or before past, or minus zero when there is no
// such sample. A reset in between counts as nothing earned.
func (h *ScoreHistory) ScoreSince(past time.Time) uint32 {
	current := h.LastScore()
	var start uint32
	for i := len(h.samples) - 1; i >= 0; i-- {
		if !h.samples[i].at.After(past) {
			start = h.samples[i].score
			break
		}
	}
	if start > current {
		return 0
	}
	return current - start
}

// Project extrapolates the score after the given duration from the points
// earned during the trailing window ending at now.
func (h *ScoreHistory) Project(now time.Time, after, window time.Duration) uint32 {
	earned := h.ScoreSince(now.Add(-window))
	return h.LastScore() + uint32(float64(earned)*(after.Seconds()/window.Seconds()))
}

package rules

import (
	"math"
	"time"

	"github.com/monodyle/tokyo-go/analyzer"
	"github.com/monodyle/tokyo-go/model"
)

// Env wraps the analyzer and exposes helper methods callable from expr
// expressions. Distances are in pixels, windows in seconds.
type Env struct {
	Analyzer *analyzer.Analyzer
}

func seconds(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }

// PlayerCount is the number of live opponents.
func (e Env) PlayerCount() int {
	n := 0
	for range e.Analyzer.Opponents() {
		n++
	}
	return n
}

func (e Env) ItemCount() int { return e.Analyzer.ItemCount() }

// BulletThreats counts enemy bullets within radius that hit us within secs.
func (e Env) BulletThreats(radius, secs float64) int {
	n := 0
	for range e.Analyzer.BulletsWithinColliding(radius, seconds(secs)) {
		n++
	}
	return n
}

// PlayerThreats counts opponents we run into within secs if we keep going.
func (e Env) PlayerThreats(radius, secs float64) int {
	n := 0
	for range e.Analyzer.PlayersWithinColliding(radius, seconds(secs), false) {
		n++
	}
	return n
}

// Chasers counts opponents that reach us within secs if we stop.
func (e Env) Chasers(radius, secs float64) int {
	n := 0
	for range e.Analyzer.PlayersWithinColliding(radius, seconds(secs), true) {
		n++
	}
	return n
}

// ClosestPlayerDistance is +Inf when we are alone.
func (e Env) ClosestPlayerDistance() float64 {
	p, ok := e.Analyzer.PlayerClosest()
	if !ok {
		return math.Inf(1)
	}
	return e.Analyzer.OwnPlayer().DistanceTo(p)
}

// ClosestItemDistance is +Inf when there are no items.
func (e Env) ClosestItemDistance() float64 {
	it, ok := e.Analyzer.ItemClosest()
	if !ok {
		return math.Inf(1)
	}
	return e.Analyzer.OwnPlayer().DistanceTo(it)
}

// ItemGain weighs picking up the closest item: the relative firepower gained
// (bullet speed × radius × limit) per relative growth of our own radius,
// minus one. Faster bullets come out even, more bullets pay off. 0 when there
// are no items.
func (e Env) ItemGain() float64 {
	it, ok := e.Analyzer.ItemClosest()
	if !ok {
		return 0
	}
	own := e.Analyzer.OwnPlayer()
	before := model.PlayerState{
		Radius:       own.Radius,
		BulletRadius: own.BulletRadius,
		BulletSpeed:  own.BulletSpeed,
		BulletLimit:  own.BulletLimit,
	}
	after := before
	model.Item{ItemType: it.Type}.ApplyTo(&after)

	if firepower(before) == 0 || after.Radius == 0 {
		return 0
	}
	return firepower(after)/firepower(before)*before.Radius/after.Radius - 1
}

func firepower(p model.PlayerState) float64 {
	return p.BulletSpeed * p.BulletRadius * float64(p.BulletLimit)
}

// LeastMovingSpeed is the average speed of the least mobile opponent, +Inf
// when we are alone.
func (e Env) LeastMovingSpeed() float64 {
	p, ok := e.Analyzer.PlayerLeastMoving()
	if !ok {
		return math.Inf(1)
	}
	return p.Mobility()
}

func (e Env) Score() int { return int(e.Analyzer.OwnPlayer().Score()) }

// LeaderScore is the best opponent score, 0 when we are alone.
func (e Env) LeaderScore() int {
	p, ok := e.Analyzer.PlayerHighestScore()
	if !ok {
		return 0
	}
	return int(p.Score())
}

// Leading reports whether no opponent is ahead of us.
func (e Env) Leading() bool { return e.Score() >= e.LeaderScore() }

func (e Env) Throttle() float64 { return e.Analyzer.OwnPlayer().Throttle }

func (e Env) BulletLimit() int { return int(e.Analyzer.OwnPlayer().BulletLimit) }

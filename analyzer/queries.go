package analyzer

import (
	"iter"
	"math"
	"time"
)

// best returns the opponent ranked first by less. Ties go to the smallest id
// so the choice does not depend on snapshot order.
func (a *Analyzer) best(less func(x, y *Player) bool) (*Player, bool) {
	var winner *Player
	for p := range a.Opponents() {
		switch {
		case winner == nil, less(p, winner):
			winner = p
		case !less(winner, p) && p.ID < winner.ID:
			winner = p
		}
	}
	return winner, winner != nil
}

// PlayerClosest is the opponent nearest to our own player.
func (a *Analyzer) PlayerClosest() (*Player, bool) {
	own := a.OwnPlayer()
	return a.best(func(x, y *Player) bool {
		return own.DistanceTo(x) < own.DistanceTo(y)
	})
}

// PlayerLeastMoving is the opponent with the smallest average absolute
// velocity over its history.
func (a *Analyzer) PlayerLeastMoving() (*Player, bool) {
	return a.best(func(x, y *Player) bool {
		return x.Mobility() < y.Mobility()
	})
}

func (a *Analyzer) PlayerHighestScore() (*Player, bool) {
	return a.best(func(x, y *Player) bool {
		return x.Score() > y.Score()
	})
}

// PlayerHighestScoreAfter is the opponent whose extrapolated score after
// the given duration is highest.
func (a *Analyzer) PlayerHighestScoreAfter(after time.Duration) (*Player, bool) {
	return a.best(func(x, y *Player) bool {
		return a.ProjectScore(x, after) > a.ProjectScore(y, after)
	})
}

// ProjectScore extrapolates p's score using the configured look-back window.
func (a *Analyzer) ProjectScore(p *Player, after time.Duration) uint32 {
	return p.Scores.Project(a.now, after, a.cfg.ScoreWindow)
}

// ItemClosest is the item nearest to our own player.
func (a *Analyzer) ItemClosest() (Item, bool) {
	own := a.OwnPlayer()
	var (
		winner Item
		found  bool
		bestD  float64
	)
	for _, it := range a.items {
		d := own.DistanceTo(it)
		if !found || d < bestD || (d == bestD && it.ID < winner.ID) {
			winner, bestD, found = it, d, true
		}
	}
	return winner, found
}

// BulletsColliding yields bullets fired by others that will hit our own
// player within during if it keeps its current velocity.
func (a *Analyzer) BulletsColliding(during time.Duration) iter.Seq[*Bullet] {
	return a.BulletsWithinColliding(math.Inf(1), during)
}

// BulletsWithinColliding is BulletsColliding limited to bullets currently
// within radius of our own player.
func (a *Analyzer) BulletsWithinColliding(radius float64, during time.Duration) iter.Seq[*Bullet] {
	own := a.OwnPlayer()
	return func(yield func(*Bullet) bool) {
		for _, b := range a.bullets {
			if b.PlayerID == own.ID || own.DistanceTo(b) > radius {
				continue
			}
			if own.IsCollidingDuring(b, during, a.cfg.CollisionStep, false) && !yield(b) {
				return
			}
		}
	}
}

// PlayersWithinColliding yields opponents within radius that will collide
// with our own player during the window. With selfStop the question is
// "if I stop now, does this player still reach me", which flags chasers;
// without it the question is "if I keep going, do we meet".
func (a *Analyzer) PlayersWithinColliding(radius float64, during time.Duration, selfStop bool) iter.Seq[*Player] {
	own := a.OwnPlayer()
	return func(yield func(*Player) bool) {
		for p := range a.Opponents() {
			if own.DistanceTo(p) > radius {
				continue
			}
			if own.IsCollidingDuring(p, during, a.cfg.CollisionStep, selfStop) && !yield(p) {
				return
			}
		}
	}
}

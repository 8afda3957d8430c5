package behavior

import (
	"fmt"
	"time"

	"github.com/monodyle/tokyo-go/analyzer"
)

type TargetKind int

const (
	TargetByID TargetKind = iota
	TargetClosest
	TargetLeastMoving
	TargetHighestScore
	TargetHighestScoreAfter
)

// Target picks a player by a rule that is re-evaluated every time a
// behavior needs one. A resolved player is never kept across ticks.
type Target struct {
	Kind  TargetKind
	ID    uint32        // TargetByID
	After time.Duration // TargetHighestScoreAfter
}

func ByID(id uint32) Target { return Target{Kind: TargetByID, ID: id} }

// Closest is the opponent nearest to us.
func Closest() Target { return Target{Kind: TargetClosest} }

// LeastMoving is the opponent that has moved the least over its history.
func LeastMoving() Target { return Target{Kind: TargetLeastMoving} }

// HighestScore is the current leader among opponents.
func HighestScore() Target { return Target{Kind: TargetHighestScore} }

// HighestScoreAfter is the opponent predicted to lead after d.
func HighestScoreAfter(d time.Duration) Target {
	return Target{Kind: TargetHighestScoreAfter, After: d}
}

// Resolve returns the matching player, or false when nobody matches.
func (t Target) Resolve(a *analyzer.Analyzer) (*analyzer.Player, bool) {
	switch t.Kind {
	case TargetByID:
		return a.Player(t.ID)
	case TargetClosest:
		return a.PlayerClosest()
	case TargetLeastMoving:
		return a.PlayerLeastMoving()
	case TargetHighestScore:
		return a.PlayerHighestScore()
	case TargetHighestScoreAfter:
		return a.PlayerHighestScoreAfter(t.After)
	}
	return nil, false
}

func (t Target) String() string {
	switch t.Kind {
	case TargetByID:
		return fmt.Sprintf("id(%d)", t.ID)
	case TargetClosest:
		return "closest"
	case TargetLeastMoving:
		return "least-moving"
	case TargetHighestScore:
		return "highest-score"
	case TargetHighestScoreAfter:
		return fmt.Sprintf("highest-score-after(%s)", t.After)
	}
	return fmt.Sprintf("target(%d)", int(t.Kind))
}

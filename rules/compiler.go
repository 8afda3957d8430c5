package rules

import (
	"fmt"
	"time"

	"github.com/monodyle/tokyo-go/behavior"
	"github.com/monodyle/tokyo-go/geom"
)

const (
	// Horizon over which HighestScoreAfter extrapolates when hunting the leader.
	leaderHorizon = 10 * time.Second

	wanderReach = 300.0
	wallMargin  = 100.0
)

// CompileDoctrine generates a complete rule set from a doctrine's weights.
// All conditions are built via fmt.Sprintf with interpolated values;
// the compiler never generates invalid expr.
func CompileDoctrine(d Doctrine) []*Rule {
	d.Validate()
	t := d.Tuning
	var rules []*Rule

	// --- Survival (always present, may interrupt anything below) ---

	dodgeWindow := time.Duration(float64(d.DodgeWindow) * lerpf(0.5, 1.5, d.Caution))
	rules = append(rules, &Rule{
		Name:         "dodge-bullets",
		Priority:     1000,
		Interrupt:    true,
		ConditionSrc: fmt.Sprintf(`BulletThreats(%.2f, %.2f) > 0`, d.DodgeRadius, dodgeWindow.Seconds()),
		Build: func(Env) behavior.Behavior {
			return t.Dodge(d.DodgeRadius, dodgeWindow)
		},
	})

	threat, window := t.ThreatRadius, t.ThreatWindow.Seconds()
	rules = append(rules, &Rule{
		Name:         "evade-players",
		Priority:     900,
		Interrupt:    true,
		ConditionSrc: fmt.Sprintf(`PlayerThreats(%.2f, %.2f) > 0 || Chasers(%.2f, %.2f) > 0`, threat, window, threat, window),
		Build: func(Env) behavior.Behavior {
			return t.DodgePlayer()
		},
	})

	// Timid doctrines keep their distance from everybody.
	if d.Caution > d.Aggression {
		personal := lerpf(60, 240, d.Caution-d.Aggression)
		rules = append(rules, &Rule{
			Name:         "get-away",
			Priority:     800,
			ConditionSrc: fmt.Sprintf(`ClosestPlayerDistance() < %.2f`, personal),
			Build: func(Env) behavior.Behavior {
				return t.GetAwayFromPlayer()
			},
		})
	}

	// --- Economy ---

	// Cautious doctrines only take items worth the bigger hitbox.
	if d.Greed > 0 {
		reach := lerpf(100, 1200, d.Greed)
		minGain := lerpf(-0.2, 0.1, d.Caution)
		rules = append(rules, &Rule{
			Name:         "pick-item",
			Priority:     700,
			ConditionSrc: fmt.Sprintf(`ItemCount() > 0 && ClosestItemDistance() < %.2f && ItemGain() > %.2f`, reach, minGain),
			Build: func(Env) behavior.Behavior {
				return t.PickItem()
			},
		})
	}

	// --- Offense ---

	burst := d.FireBurst
	if d.Aggression >= 0.3 {
		rules = append(rules, &Rule{
			Name:         "hunt-leader",
			Priority:     600,
			ConditionSrc: `PlayerCount() > 0 && !Leading()`,
			Build: func(Env) behavior.Behavior {
				target := behavior.HighestScoreAfter(leaderHorizon)
				return behavior.NewSequence(
					t.Chase(target, d.ChaseDistance),
					t.FireAt(target, burst),
				)
			},
		})
	}

	idle := lerpf(5, 40, d.Aggression)
	rules = append(rules, &Rule{
		Name:         "snipe-idle",
		Priority:     500,
		ConditionSrc: fmt.Sprintf(`PlayerCount() > 0 && LeastMovingSpeed() < %.2f`, idle),
		Build: func(Env) behavior.Behavior {
			return t.FireAt(behavior.LeastMoving(), lerp(1, burst, d.Aggression))
		},
	})

	brawl := lerpf(150, 600, d.Aggression)
	rules = append(rules, &Rule{
		Name:         "brawl",
		Priority:     400,
		ConditionSrc: fmt.Sprintf(`ClosestPlayerDistance() < %.2f`, brawl),
		Build: func(Env) behavior.Behavior {
			return behavior.NewSequence(
				t.Chase(behavior.Closest(), d.ChaseDistance),
				t.FireAt(behavior.Closest(), burst),
			)
		},
	})

	// --- Fallback ---

	rules = append(rules, &Rule{
		Name:         "wander",
		Priority:     0,
		ConditionSrc: `true`,
		Build: func(env Env) behavior.Behavior {
			return behavior.NewSequence(
				t.MoveTo(wanderPoint(env), true),
				behavior.NewRandom(nil),
			)
		},
	})

	return rules
}

// wanderPoint lies straight ahead of us, pulled back inside the arena so
// wandering turns away from walls.
func wanderPoint(env Env) geom.Point {
	own := env.Analyzer.OwnPlayer()
	ahead := own.Position.Add(geom.FromPolar(own.Angle, wanderReach))
	return geom.Pt(env.Analyzer.Bounds().Clamp(ahead.X, ahead.Y, wallMargin))
}

// DefaultRules is the rule set of DefaultDoctrine.
func DefaultRules() []*Rule {
	return CompileDoctrine(DefaultDoctrine())
}

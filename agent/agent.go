package agent

import (
	"log/slog"
	"time"

	"github.com/monodyle/tokyo-go/analyzer"
	"github.com/monodyle/tokyo-go/behavior"
	"github.com/monodyle/tokyo-go/model"
	"github.com/monodyle/tokyo-go/rules"
)

// DefaultReplanAfter bounds how long one decision may run before the engine
// is consulted again.
const DefaultReplanAfter = 3 * time.Second

// Agent owns the decision-making for a single player session. It is driven
// by one goroutine; see Run.
type Agent struct {
	Engine      *rules.Engine
	ReplanAfter time.Duration
	Logger      *slog.Logger

	analyzer *analyzer.Analyzer
	current  rules.Decision
	planned  time.Time
	prev     *model.ClientState
}

func New(engine *rules.Engine, cfg analyzer.Config) *Agent {
	return &Agent{
		Engine:      engine,
		ReplanAfter: DefaultReplanAfter,
		Logger:      slog.Default(),
		analyzer:    analyzer.New(cfg),
	}
}

// Analyzer exposes the world model for inspection.
func (a *Agent) Analyzer() *analyzer.Analyzer { return a.analyzer }

// Current is the running decision; its Behavior is nil when none runs.
func (a *Agent) Current() rules.Decision { return a.current }

// Tick merges a fresh snapshot and returns the command to send, if any.
//
// While our own player is dead nothing is evaluated and the running behavior
// is dropped, so a respawn always starts from a fresh plan. Otherwise the
// running behavior is asked once; an interrupt rule or an expired plan
// replaces it first, and a behavior with nothing left to do is replaced by a
// fresh plan that is asked once.
func (a *Agent) Tick(cs model.ClientState, now time.Time) (model.GameCommand, bool) {
	for _, ev := range DetectEvents(a.prev, cs) {
		a.Logger.Info("game event", "kind", ev.Kind, "player", ev.PlayerID, "detail", ev.Detail)
	}
	a.prev = &cs

	a.analyzer.PushState(cs, now)
	if !cs.Alive() {
		a.current = rules.Decision{}
		return model.GameCommand{}, false
	}

	if a.current.Behavior != nil {
		if d, ok := a.Engine.Preempt(a.analyzer, a.current.Priority); ok {
			a.Logger.Debug("decision preempted", "from", a.current.Rule, "to", d.Rule)
			a.adopt(d, now)
		} else if a.ReplanAfter > 0 && now.Sub(a.planned) >= a.ReplanAfter {
			a.current = rules.Decision{}
		}
	}

	if a.current.Behavior != nil {
		if cmd, ok := a.current.Behavior.Next(a.analyzer); ok {
			return cmd, true
		}
	}

	a.adopt(a.Engine.Plan(a.analyzer), now)
	return a.current.Behavior.Next(a.analyzer)
}

func (a *Agent) adopt(d rules.Decision, now time.Time) {
	if d.Rule != a.current.Rule {
		a.Logger.Debug("decision", "rule", d.Rule, "priority", d.Priority, "behavior", behavior.Name(d.Behavior))
	}
	a.current = d
	a.planned = now
}

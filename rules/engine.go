package rules

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/monodyle/tokyo-go/analyzer"
	"github.com/monodyle/tokyo-go/behavior"
)

// IdlePriority is the priority of the fallback decision when no rule fires.
const IdlePriority = math.MinInt

// Decision is a freshly built behavior and the rule it came from.
type Decision struct {
	Rule     string
	Priority int
	Behavior behavior.Behavior
}

// Idle is the decision taken when nothing matches.
func Idle() Decision {
	return Decision{Rule: "idle", Priority: IdlePriority, Behavior: &behavior.Skip{}}
}

// Engine picks the bot's next behavior from compiled rules.
// Rules are tried in priority order and the first true condition wins.
type Engine struct {
	mu    sync.RWMutex
	rules []*Rule
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled}, nil
}

// Plan returns a behavior built by the highest-priority matching rule, or
// Idle when none matches.
func (e *Engine) Plan(a *analyzer.Analyzer) Decision {
	if d, ok := e.evaluate(a, IdlePriority, false); ok {
		return d
	}
	return Idle()
}

// Preempt looks for an interrupt rule ranked above priority whose condition
// holds now. The running behavior should be replaced when one is found.
func (e *Engine) Preempt(a *analyzer.Analyzer, priority int) (Decision, bool) {
	return e.evaluate(a, priority, true)
}

func (e *Engine) evaluate(a *analyzer.Analyzer, above int, interruptOnly bool) (Decision, bool) {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	env := Env{Analyzer: a}
	for _, r := range rules {
		if r.Priority <= above {
			break
		}
		if interruptOnly && !r.Interrupt {
			continue
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}
		if match, ok := result.(bool); !ok || !match {
			continue
		}

		b := r.Build(env)
		if b == nil {
			continue
		}
		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "behavior", behavior.Name(b))
		return Decision{Rule: r.Name, Priority: r.Priority, Behavior: b}, true
	}
	return Decision{}, false
}

// Swap atomically replaces the rule set (called by the strategist when the
// doctrine file changes). Compiles first; if compilation fails the old rules
// remain active.
func (e *Engine) Swap(newRules []*Rule) error {
	compiled, err := compileRules(newRules)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.rules = compiled
	e.mu.Unlock()
	slog.Info("rule set swapped", "count", len(compiled), "rules", names(compiled))
	return nil
}

// Names lists the active rules in evaluation order.
func (e *Engine) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return names(e.rules)
}

func names(rules []*Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Name
	}
	return out
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		if r.Build == nil {
			return nil, fmt.Errorf("rule %q has no behavior", r.Name)
		}
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}

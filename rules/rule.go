package rules

import (
	"github.com/expr-lang/expr/vm"
	"github.com/monodyle/tokyo-go/behavior"
)

// BuildFunc produces a fresh behavior when a rule's condition is true.
type BuildFunc func(env Env) behavior.Behavior

// Rule is the atomic unit of tactic selection: a condition → behavior pair.
// The engine evaluates rules by priority and the first match wins.
type Rule struct {
	Name         string // human-readable identifier
	Priority     int    // higher = evaluated first
	Interrupt    bool   // may replace a running lower-priority behavior
	ConditionSrc string // expr source (preserved for logging)
	program      *vm.Program
	Build        BuildFunc
}

package analyzer

import "time"

// Config holds the analyzer's tunables. Zero fields fall back to
// DefaultConfig.
type Config struct {
	// HistoryLimit caps the samples kept per trajectory and score history.
	HistoryLimit int `yaml:"history_limit"`
	// CollisionStep is the sampling step of the discretized collision check.
	// Keep max speed × step well under the smallest radius sum.
	CollisionStep time.Duration `yaml:"collision_step"`
	// ScoreWindow is the look-back used to extrapolate scores.
	ScoreWindow time.Duration `yaml:"score_window"`
}

func DefaultConfig() Config {
	return Config{
		HistoryLimit:  1200,
		CollisionStep: 10 * time.Millisecond,
		ScoreWindow:   10 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = d.HistoryLimit
	}
	if c.CollisionStep <= 0 {
		c.CollisionStep = d.CollisionStep
	}
	if c.ScoreWindow <= 0 {
		c.ScoreWindow = d.ScoreWindow
	}
	return c
}

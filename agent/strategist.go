package agent

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/monodyle/tokyo-go/rules"
)

// Strategist runs in the background and swaps the rule engine's rule set
// whenever the doctrine file is reloaded.
type Strategist struct {
	mu       sync.Mutex
	engine   *rules.Engine
	path     string
	doctrine rules.Doctrine
}

// NewStrategist creates a strategist for the doctrine at path. An empty
// path keeps the default doctrine.
func NewStrategist(engine *rules.Engine, path string) *Strategist {
	return &Strategist{engine: engine, path: path, doctrine: rules.DefaultDoctrine()}
}

// Doctrine is the doctrine behind the active rule set.
func (s *Strategist) Doctrine() rules.Doctrine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doctrine
}

// Reload reads the doctrine file and swaps in its rules. On failure the
// previous rules stay active.
func (s *Strategist) Reload() error {
	doctrine, err := rules.LoadDoctrine(s.path)
	if err != nil {
		return err
	}
	if err := s.engine.Swap(rules.CompileDoctrine(doctrine)); err != nil {
		return err
	}

	s.mu.Lock()
	s.doctrine = doctrine
	s.mu.Unlock()

	slog.Info("doctrine loaded",
		"name", doctrine.Name,
		"aggression", doctrine.Aggression,
		"caution", doctrine.Caution,
		"greed", doctrine.Greed,
		"chaseDistance", doctrine.ChaseDistance,
		"fireBurst", doctrine.FireBurst,
		"dodgeRadius", doctrine.DodgeRadius,
		"dodgeWindow", doctrine.DodgeWindow,
	)
	return nil
}

// Start reloads on every value received from reload. It blocks until ctx is
// cancelled.
func (s *Strategist) Start(ctx context.Context, reload <-chan os.Signal) {
	slog.Info("strategist started", "doctrine", s.path)
	for {
		select {
		case <-ctx.Done():
			slog.Info("strategist stopped")
			return
		case <-reload:
			if err := s.Reload(); err != nil {
				slog.Error("doctrine reload failed", "path", s.path, "error", err)
			}
		}
	}
}

package agent

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"syscall"
	"testing"
	"time"

	"github.com/monodyle/tokyo-go/rules"
)

func writeDoctrine(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doctrine.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStrategistReload(t *testing.T) {
	engine, err := rules.NewEngine(rules.DefaultRules())
	if err != nil {
		t.Fatal(err)
	}
	if slices.Contains(engine.Names(), "get-away") {
		t.Fatal("balanced doctrine should not flee")
	}

	path := writeDoctrine(t, "name: Coward\naggression: 0.1\ncaution: 0.9\n")
	s := NewStrategist(engine, path)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if s.Doctrine().Name != "Coward" {
		t.Errorf("Doctrine().Name = %q", s.Doctrine().Name)
	}
	if !slices.Contains(engine.Names(), "get-away") {
		t.Errorf("rules after reload = %v, want get-away", engine.Names())
	}
	if slices.Contains(engine.Names(), "hunt-leader") {
		t.Errorf("rules after reload = %v, a timid doctrine does not hunt", engine.Names())
	}
}

func TestStrategistReloadFailureKeepsRules(t *testing.T) {
	engine, err := rules.NewEngine(rules.DefaultRules())
	if err != nil {
		t.Fatal(err)
	}
	before := engine.Names()

	s := NewStrategist(engine, writeDoctrine(t, "aggression: [not, a, number]\n"))
	if err := s.Reload(); err == nil {
		t.Fatal("Reload of a broken file should fail")
	}
	if !slices.Equal(engine.Names(), before) {
		t.Errorf("rules changed after failed reload: %v", engine.Names())
	}
	if s.Doctrine().Name != rules.DefaultDoctrine().Name {
		t.Errorf("Doctrine() = %q, want the default kept", s.Doctrine().Name)
	}
}

func TestStrategistStartReloadsOnSignal(t *testing.T) {
	engine, err := rules.NewEngine(rules.DefaultRules())
	if err != nil {
		t.Fatal(err)
	}
	s := NewStrategist(engine, writeDoctrine(t, "name: Greedy\ngreed: 1\n"))

	ctx, cancel := context.WithCancel(context.Background())
	reload := make(chan os.Signal)
	done := make(chan struct{})
	go func() {
		s.Start(ctx, reload)
		close(done)
	}()

	reload <- syscall.SIGHUP
	// The unbuffered send only proves receipt; a second one proves the
	// first reload finished.
	reload <- syscall.SIGHUP
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
	if s.Doctrine().Name != "Greedy" {
		t.Errorf("Doctrine().Name = %q after signal", s.Doctrine().Name)
	}
}

package rules

import (
	"math"
	"testing"
	"time"

	"github.com/monodyle/tokyo-go/analyzer"
	"github.com/monodyle/tokyo-go/model"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func player(id uint32, x, y, angle, throttle float64) model.PlayerState {
	p := model.NewPlayerState(id)
	p.X, p.Y, p.Angle, p.Throttle = x, y, angle, throttle
	return p
}

// scene is one snapshot in a 1000x1000 world where we are player 1.
type scene struct {
	players []model.PlayerState
	bullets []model.BulletState
	items   []model.Item
	scores  map[uint32]uint32
}

func (s scene) env() Env {
	a := analyzer.New(analyzer.Config{})
	a.PushState(model.ClientState{
		ID: 1,
		GameState: model.GameState{
			Bounds:     [2]float64{1000, 1000},
			Players:    s.players,
			Bullets:    s.bullets,
			Items:      s.items,
			Scoreboard: s.scores,
		},
	}, t0)
	return Env{Analyzer: a}
}

func TestEnvAlone(t *testing.T) {
	env := scene{players: []model.PlayerState{player(1, 100, 100, 0, 0.5)}}.env()

	if n := env.PlayerCount(); n != 0 {
		t.Errorf("PlayerCount = %d, own player must not count", n)
	}
	if d := env.ClosestPlayerDistance(); !math.IsInf(d, 1) {
		t.Errorf("ClosestPlayerDistance = %f, want +Inf", d)
	}
	if d := env.ClosestItemDistance(); !math.IsInf(d, 1) {
		t.Errorf("ClosestItemDistance = %f, want +Inf", d)
	}
	if s := env.LeastMovingSpeed(); !math.IsInf(s, 1) {
		t.Errorf("LeastMovingSpeed = %f, want +Inf", s)
	}
	if env.LeaderScore() != 0 || !env.Leading() {
		t.Errorf("alone: LeaderScore = %d, Leading = %v", env.LeaderScore(), env.Leading())
	}
	if env.Throttle() != 0.5 || env.BulletLimit() != 3 {
		t.Errorf("Throttle = %f, BulletLimit = %d", env.Throttle(), env.BulletLimit())
	}
}

func TestEnvScores(t *testing.T) {
	env := scene{
		players: []model.PlayerState{player(1, 0, 0, 0, 0), player(2, 100, 0, 0, 0), player(3, 0, 300, 0, 0)},
		scores:  map[uint32]uint32{1: 4, 2: 9, 3: 1},
	}.env()

	if env.Score() != 4 || env.LeaderScore() != 9 || env.Leading() {
		t.Errorf("Score = %d, LeaderScore = %d, Leading = %v", env.Score(), env.LeaderScore(), env.Leading())
	}
	if env.PlayerCount() != 2 {
		t.Errorf("PlayerCount = %d, want 2", env.PlayerCount())
	}
	if d := env.ClosestPlayerDistance(); d != 100 {
		t.Errorf("ClosestPlayerDistance = %f, want 100", d)
	}
}

func TestEnvThreats(t *testing.T) {
	env := scene{
		// We drive east; player 3 chases from behind at the same speed.
		players: []model.PlayerState{player(1, 500, 500, 0, 1), player(3, 400, 500, 0, 1)},
		bullets: []model.BulletState{
			{ID: 1, PlayerID: 3, X: 800, Y: 500, Angle: math.Pi, Speed: 500, Radius: 4},
			{ID: 2, PlayerID: 1, X: 520, Y: 500, Angle: math.Pi, Speed: 500, Radius: 4},
		},
		items: []model.Item{{ID: 1, X: 500, Y: 560, Radius: 10, ItemType: model.MoreBullet}},
	}.env()

	if n := env.BulletThreats(400, 1); n != 1 {
		t.Errorf("BulletThreats(400, 1) = %d, want 1", n)
	}
	if n := env.BulletThreats(100, 1); n != 0 {
		t.Errorf("BulletThreats(100, 1) = %d, want 0", n)
	}
	if n := env.PlayerThreats(400, 2); n != 0 {
		t.Errorf("PlayerThreats = %d, a chaser at equal speed never reaches us", n)
	}
	if n := env.Chasers(400, 2); n != 1 {
		t.Errorf("Chasers = %d, want 1", n)
	}
	if env.ItemCount() != 1 || env.ClosestItemDistance() != 60 {
		t.Errorf("ItemCount = %d, ClosestItemDistance = %f", env.ItemCount(), env.ClosestItemDistance())
	}
}

func TestEnvItemGain(t *testing.T) {
	tests := []struct {
		item model.ItemType
		want float64
	}{
		{model.MoreBullet, (4.0/3)/1.05 - 1},
		{model.FasterBullet, 0},
		{model.BiggerBullet, 498.95/500 - 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.item), func(t *testing.T) {
			env := scene{
				players: []model.PlayerState{player(1, 100, 100, 0, 0)},
				items:   []model.Item{{ID: 1, X: 300, Y: 100, Radius: 10, ItemType: tt.item}},
			}.env()
			if got := env.ItemGain(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ItemGain = %f, want %f", got, tt.want)
			}
		})
	}

	if got := (scene{players: []model.PlayerState{player(1, 0, 0, 0, 0)}}).env().ItemGain(); got != 0 {
		t.Errorf("ItemGain without items = %f, want 0", got)
	}
}

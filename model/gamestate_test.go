package model

import (
	"encoding/json"
	"math"
	"testing"
)

const sampleState = `{
	"bounds": [1200, 800],
	"players": [
		{"id": 7, "angle": 1.5, "throttle": 0.5, "x": 100, "y": 200, "radius": 10,
		 "bullet_radius": 4, "bullet_speed": 500, "bullet_limit": 3}
	],
	"items": [{"id": 3, "x": 50, "y": 60, "radius": 10, "item_type": "MoreBullet"}],
	"dead": [{"respawn": {"secs_since_epoch": 1700000000, "nanos_since_epoch": 5},
	          "player": {"id": 9, "angle": 0, "throttle": 0, "x": 0, "y": 0, "radius": 10,
	                     "bullet_radius": 4, "bullet_speed": 500, "bullet_limit": 3},
	          "killer": 7}],
	"bullets": [{"id": 11, "player_id": 7, "angle": 0, "x": 110, "y": 200, "radius": 4, "speed": 500}],
	"scoreboard": {"7": 12, "9": 3}
}`

func TestGameStateDecode(t *testing.T) {
	var gs GameState
	if err := json.Unmarshal([]byte(sampleState), &gs); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if b := gs.WorldBounds(); b.Width != 1200 || b.Height != 800 {
		t.Errorf("bounds = %+v", b)
	}
	p, ok := gs.Player(7)
	if !ok {
		t.Fatal("player 7 missing")
	}
	if p.Throttle != 0.5 || p.BulletLimit != 3 {
		t.Errorf("player 7 = %+v", p)
	}
	if _, ok := gs.Player(9); ok {
		t.Error("dead player 9 should not be live")
	}
	if gs.Items[0].ItemType != MoreBullet {
		t.Errorf("item type = %q", gs.Items[0].ItemType)
	}
	if gs.Scoreboard[7] != 12 || gs.Scoreboard[9] != 3 {
		t.Errorf("scoreboard = %v", gs.Scoreboard)
	}
	if gs.Dead[0].Respawn.Time().Unix() != 1700000000 {
		t.Errorf("respawn = %v", gs.Dead[0].Respawn.Time())
	}

	cs := ClientState{ID: 7, GameState: gs}
	if !cs.Alive() {
		t.Error("client 7 should be alive")
	}
	cs.ID = 9
	if cs.Alive() {
		t.Error("client 9 should be dead")
	}
}

func TestItemTypeRejectsUnknown(t *testing.T) {
	var it Item
	err := json.Unmarshal([]byte(`{"id":1,"item_type":"Shield"}`), &it)
	if err == nil {
		t.Error("expected error for unknown item type")
	}
}

func TestItemApplyTo(t *testing.T) {
	tests := []struct {
		item  ItemType
		check func(PlayerState) bool
	}{
		{FasterBullet, func(p PlayerState) bool {
			return math.Abs(p.BulletSpeed-BulletBaseSpeed*BulletSpeedIncremental) < 1e-9
		}},
		{MoreBullet, func(p PlayerState) bool { return p.BulletLimit == BulletBaseLimit+1 }},
		{BiggerBullet, func(p PlayerState) bool {
			return math.Abs(p.BulletRadius-BulletBaseRadius*BulletRadiusIncremental) < 1e-9 &&
				math.Abs(p.BulletSpeed-(BulletBaseSpeed-BulletSpeedIncremental)) < 1e-9
		}},
	}
	for _, tc := range tests {
		p := NewPlayerState(1)
		Item{ItemType: tc.item}.ApplyTo(&p)
		if !tc.check(p) {
			t.Errorf("%s: unexpected stats %+v", tc.item, p)
		}
		if math.Abs(p.Radius-PlayerBaseRadius*PlayerRadiusIncremental) > 1e-9 {
			t.Errorf("%s: radius = %v", tc.item, p.Radius)
		}
	}
}

func TestBoundsClamp(t *testing.T) {
	b := Bounds{Width: 100, Height: 50}
	if x, y := b.Clamp(-10, 70, 5); x != 5 || y != 45 {
		t.Errorf("Clamp = (%v, %v), want (5, 45)", x, y)
	}
}

package analyzer

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/monodyle/tokyo-go/geom"
	"github.com/monodyle/tokyo-go/model"
)

// player builds a live player state with base stats.
func player(id uint32, x, y, angle, throttle float64) model.PlayerState {
	p := model.NewPlayerState(id)
	p.X, p.Y, p.Angle, p.Throttle = x, y, angle, throttle
	return p
}

func snapshot(own uint32, players ...model.PlayerState) model.ClientState {
	return model.ClientState{
		ID: own,
		GameState: model.GameState{
			Bounds:     [2]float64{1000, 1000},
			Players:    players,
			Scoreboard: map[uint32]uint32{},
		},
	}
}

func ids(seq func(func(*Player) bool)) []uint32 {
	var out []uint32
	for p := range seq {
		out = append(out, p.ID)
	}
	return out
}

func TestIsCollidingAt(t *testing.T) {
	self := NewPlayer(player(1, 0, 0, 0, 1), nil, t0, 0)
	self.Radius = 5

	hit := VirtualBullet(geom.Pt(0, 104), geom.Degrees(-90), 100, 2) // lands at (0, 4) after 1s
	if !self.IsCollidingAt(hit, time.Second, true) {
		t.Error("target landing 4 units away should collide (4 < 5+2)")
	}

	miss := VirtualBullet(geom.Pt(0, 107), geom.Degrees(-90), 100, 2) // lands at (0, 7)
	if self.IsCollidingAt(miss, time.Second, true) {
		t.Error("target landing exactly 7 units away should not collide")
	}

	// Without selfStop we keep moving east at 300 px/s and leave the spot.
	if self.IsCollidingAt(hit, time.Second, false) {
		t.Error("moving self should have left the impact point")
	}
}

func TestIsCollidingDuring(t *testing.T) {
	self := NewPlayer(player(1, 0, 0, 0, 0), nil, t0, 0)

	// A bullet crossing in front of us: passes through the origin at t=0.5s.
	crossing := VirtualBullet(geom.Pt(-250, 0), 0, 500, 4)
	if !self.IsCollidingDuring(crossing, time.Second, 10*time.Millisecond, true) {
		t.Error("bullet crossing our position should collide during 1s")
	}
	if self.IsCollidingDuring(crossing, 300*time.Millisecond, 10*time.Millisecond, true) {
		t.Error("bullet has not arrived within 300ms")
	}

	away := VirtualBullet(geom.Pt(50, 0), 0, 500, 4)
	if self.IsCollidingDuring(away, time.Second, 10*time.Millisecond, true) {
		t.Error("bullet flying away should never collide")
	}
}

func TestPushStatePanicsOnIDMismatch(t *testing.T) {
	p := NewPlayer(player(1, 0, 0, 0, 0), nil, t0, 0)
	defer func() {
		if recover() == nil {
			t.Error("PushState with a different id did not panic")
		}
	}()
	p.PushState(player(2, 0, 0, 0, 0), nil, t0)
}

func TestPlayerVelocityFromThrottle(t *testing.T) {
	p := NewPlayer(player(1, 0, 0, math.Pi/2, 0.5), nil, t0, 0)
	want := geom.Vector{X: 0, Y: 150}
	if p.Velocity.Add(want.Scale(-1)).Len() > 1e-9 {
		t.Errorf("Velocity = %v, want %v", p.Velocity, want)
	}
}

func TestMergeProtocol(t *testing.T) {
	a := New(Config{})

	a.PushState(snapshot(1, player(1, 0, 0, 0, 0), player(2, 10, 0, 0, 0), player(3, 20, 0, 0, 0)), t0)
	first, _ := a.Player(2)

	next := snapshot(1, player(3, 25, 0, 0, 0), player(1, 0, 0, 0, 0))
	next.GameState.Bullets = []model.BulletState{{ID: 40, PlayerID: 3, X: 1, Y: 1, Speed: 500, Radius: 4}}
	next.GameState.Items = []model.Item{{ID: 8, X: 5, Y: 5, Radius: 10, ItemType: model.MoreBullet}}
	a.PushState(next, t0.Add(time.Second))

	if _, ok := a.Player(2); ok {
		t.Error("player 2 left the snapshot and should be forgotten")
	}
	if got := ids(a.Players()); !slices.Equal(got, []uint32{3, 1}) {
		t.Errorf("Players order = %v, want snapshot order [3 1]", got)
	}
	p3, _ := a.Player(3)
	if p3.Trajectory.Len() != 2 {
		t.Errorf("player 3 trajectory has %d samples, want 2", p3.Trajectory.Len())
	}
	if v := p3.Trajectory.LastVelocity(); v != (geom.Vector{X: 5, Y: 0}) {
		t.Errorf("player 3 velocity = %v", v)
	}
	if _, ok := a.Bullet(40); !ok {
		t.Error("bullet 40 missing")
	}
	if _, ok := a.Item(8); !ok {
		t.Error("item 8 missing")
	}

	// Player 2 coming back is a new entity with fresh history.
	a.PushState(snapshot(1, player(1, 0, 0, 0, 0), player(2, 10, 0, 0, 0)), t0.Add(2*time.Second))
	p2, _ := a.Player(2)
	if p2 == first || p2.Trajectory.Len() != 1 {
		t.Error("returning player should start a fresh history")
	}
	if _, ok := a.Bullet(40); ok {
		t.Error("bullets should be replaced each snapshot")
	}
}

func TestOwnPlayerPanicsWhenDead(t *testing.T) {
	a := New(Config{})
	a.PushState(snapshot(1, player(2, 0, 0, 0, 0)), t0)
	defer func() {
		if recover() == nil {
			t.Error("OwnPlayer with own player absent did not panic")
		}
	}()
	a.OwnPlayer()
}

func TestPlayerClosestTieBreak(t *testing.T) {
	a := New(Config{})
	a.PushState(snapshot(1,
		player(1, 0, 0, 0, 0),
		player(9, 50, 0, 0, 0),
		player(4, -50, 0, 0, 0),
		player(6, 80, 0, 0, 0),
	), t0)

	p, ok := a.PlayerClosest()
	if !ok || p.ID != 4 {
		t.Errorf("PlayerClosest = %v, want player 4 (tie broken by id)", p)
	}
}

func TestExtremalQueriesExcludeSelfAndHandleEmpty(t *testing.T) {
	a := New(Config{})
	a.PushState(snapshot(1, player(1, 0, 0, 0, 0)), t0)

	if _, ok := a.PlayerClosest(); ok {
		t.Error("PlayerClosest should find nobody")
	}
	if _, ok := a.PlayerHighestScore(); ok {
		t.Error("PlayerHighestScore should find nobody")
	}
	if _, ok := a.PlayerLeastMoving(); ok {
		t.Error("PlayerLeastMoving should find nobody")
	}
	if _, ok := a.ItemClosest(); ok {
		t.Error("ItemClosest should find nothing")
	}
}

func TestPlayerHighestScore(t *testing.T) {
	a := New(Config{})
	cs := snapshot(1, player(1, 0, 0, 0, 0), player(5, 0, 0, 0, 0), player(3, 0, 0, 0, 0), player(7, 0, 0, 0, 0))
	cs.GameState.Scoreboard = map[uint32]uint32{1: 100, 5: 8, 3: 8, 7: 2}
	a.PushState(cs, t0)

	p, ok := a.PlayerHighestScore()
	if !ok || p.ID != 3 {
		t.Errorf("PlayerHighestScore = %v, want 3 (own player excluded, tie by id)", p)
	}
}

func TestPlayerHighestScoreAfter(t *testing.T) {
	a := New(Config{ScoreWindow: 10 * time.Second})
	scores := []map[uint32]uint32{
		{2: 50, 3: 10},
		{2: 50, 3: 30},
		{2: 51, 3: 45},
	}
	for i, sb := range scores {
		cs := snapshot(1, player(1, 0, 0, 0, 0), player(2, 0, 0, 0, 0), player(3, 0, 0, 0, 0))
		cs.GameState.Scoreboard = sb
		a.PushState(cs, t0.Add(time.Duration(i)*5*time.Second))
	}

	if p, _ := a.PlayerHighestScore(); p.ID != 2 {
		t.Errorf("current leader = %d, want 2", p.ID)
	}
	// Player 3 earned 35 in the last 10s; after 10s it should lead.
	if p, _ := a.PlayerHighestScoreAfter(10 * time.Second); p.ID != 3 {
		t.Errorf("projected leader = %d, want 3", p.ID)
	}
}

func TestPlayerLeastMoving(t *testing.T) {
	a := New(Config{})
	for i := range 3 {
		step := float64(i)
		a.PushState(snapshot(1,
			player(1, 0, 0, 0, 0),
			player(2, 100+step*50, 0, 0, 1),
			player(3, 300, 300+step, 0, 0),
		), t0.Add(time.Duration(i)*time.Second))
	}
	p, ok := a.PlayerLeastMoving()
	if !ok || p.ID != 3 {
		t.Errorf("PlayerLeastMoving = %v, want 3", p)
	}
}

func TestItemClosest(t *testing.T) {
	a := New(Config{})
	cs := snapshot(1, player(1, 0, 0, 0, 0))
	cs.GameState.Items = []model.Item{
		{ID: 5, X: 100, Y: 0},
		{ID: 2, X: 0, Y: 30},
		{ID: 1, X: 0, Y: -30},
	}
	a.PushState(cs, t0)
	it, ok := a.ItemClosest()
	if !ok || it.ID != 1 {
		t.Errorf("ItemClosest = %+v, want item 1", it)
	}
}

func TestBulletsWithinColliding(t *testing.T) {
	a := New(Config{})
	cs := snapshot(1, player(1, 0, 0, 0, 0))
	cs.GameState.Bullets = []model.BulletState{
		// Incoming from 200 away.
		{ID: 1, PlayerID: 2, X: 200, Y: 0, Angle: math.Pi, Speed: 500, Radius: 4},
		// Incoming from 600 away.
		{ID: 2, PlayerID: 2, X: 0, Y: 600, Angle: -math.Pi / 2, Speed: 500, Radius: 4},
		// Flying away.
		{ID: 3, PlayerID: 2, X: 100, Y: 0, Angle: 0, Speed: 500, Radius: 4},
		// Our own shot.
		{ID: 4, PlayerID: 1, X: 50, Y: 0, Angle: math.Pi, Speed: 500, Radius: 4},
	}
	a.PushState(cs, t0)

	var got []uint32
	for b := range a.BulletsColliding(2 * time.Second) {
		got = append(got, b.ID)
	}
	if !slices.Equal(got, []uint32{1, 2}) {
		t.Errorf("BulletsColliding = %v, want [1 2]", got)
	}

	got = got[:0]
	for b := range a.BulletsWithinColliding(300, 2*time.Second) {
		got = append(got, b.ID)
	}
	if !slices.Equal(got, []uint32{1}) {
		t.Errorf("BulletsWithinColliding = %v, want [1]", got)
	}
}

func TestPlayersWithinColliding(t *testing.T) {
	a := New(Config{})
	// We drive east at full speed. Player 2 sits ahead of us; player 3 chases
	// from behind at full speed.
	a.PushState(snapshot(1,
		player(1, 0, 0, 0, 1),
		player(2, 300, 0, 0, 0),
		player(3, -100, 0, 0, 1),
	), t0)

	moving := ids(a.PlayersWithinColliding(400, 2*time.Second, false))
	if !slices.Equal(moving, []uint32{2}) {
		t.Errorf("keep-moving collisions = %v, want [2]", moving)
	}
	stopped := ids(a.PlayersWithinColliding(400, 2*time.Second, true))
	if !slices.Equal(stopped, []uint32{3}) {
		t.Errorf("stop collisions = %v, want [3]", stopped)
	}
}

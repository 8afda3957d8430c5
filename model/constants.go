package model

import "time"

// Server-side tuning. These must stay in sync with the game server.
const (
	BulletBaseLimit         uint32  = 3
	BulletBaseRadius        float64 = 4.0
	BulletBaseSpeed         float64 = 500.0 // pixels per second
	BulletSpeedIncremental  float64 = 1.05
	BulletRadiusIncremental float64 = 1.05
	PlayerRadiusIncremental float64 = 1.05

	ItemRadius float64 = 10.0

	PlayerBaseRadius  float64 = 10.0
	PlayerBaseSpeed   float64 = 300.0
	PlayerMinThrottle float64 = -1.0
	PlayerMaxThrottle float64 = 1.0
)

// MinCommandInterval is the fastest the server accepts commands. Sending
// faster gets the player punished.
const MinCommandInterval = 50 * time.Millisecond

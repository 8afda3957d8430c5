package rules

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/monodyle/tokyo-go/behavior"
	"gopkg.in/yaml.v3"
)

// Doctrine is the bot's tactical posture, read from a YAML file.
// Weights are 0.0–1.0; the compiler maps them to concrete rule parameters.
type Doctrine struct {
	Name          string          `yaml:"name"`
	Aggression    float64         `yaml:"aggression"`
	Caution       float64         `yaml:"caution"`
	Greed         float64         `yaml:"greed"`
	ChaseDistance float64         `yaml:"chase_distance"`
	FireBurst     int             `yaml:"fire_burst"`
	DodgeRadius   float64         `yaml:"dodge_radius"`
	DodgeWindow   time.Duration   `yaml:"dodge_window"`
	Tuning        behavior.Tuning `yaml:"tuning"`
}

// DefaultDoctrine returns a balanced baseline doctrine.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Name:          "Balanced",
		Aggression:    0.5,
		Caution:       0.5,
		Greed:         0.5,
		ChaseDistance: 200,
		FireBurst:     3,
		DodgeRadius:   300,
		DodgeWindow:   time.Second,
		Tuning:        behavior.DefaultTuning(),
	}
}

// ParseDoctrine decodes YAML over DefaultDoctrine, so omitted fields keep
// their defaults, and validates the result.
func ParseDoctrine(b []byte) (Doctrine, error) {
	d := DefaultDoctrine()
	if err := yaml.Unmarshal(b, &d); err != nil {
		return Doctrine{}, fmt.Errorf("parse doctrine: %w", err)
	}
	d.Validate()
	return d, nil
}

// LoadDoctrine reads a doctrine file. An empty path yields DefaultDoctrine.
func LoadDoctrine(path string) (Doctrine, error) {
	if path == "" {
		return DefaultDoctrine(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Doctrine{}, fmt.Errorf("read doctrine %s: %w", path, err)
	}
	return ParseDoctrine(b)
}

// Validate clamps all weights and distances to their valid ranges.
func (d *Doctrine) Validate() {
	d.Aggression = clamp(d.Aggression, 0, 1)
	d.Caution = clamp(d.Caution, 0, 1)
	d.Greed = clamp(d.Greed, 0, 1)
	d.ChaseDistance = clamp(d.ChaseDistance, 50, 600)
	d.FireBurst = clampInt(d.FireBurst, 1, 10)
	d.DodgeRadius = clamp(d.DodgeRadius, 100, 1000)
	d.DodgeWindow = time.Duration(clamp(float64(d.DodgeWindow), float64(200*time.Millisecond), float64(5*time.Second)))
	d.Tuning = d.Tuning.WithDefaults()
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// lerp linearly interpolates between min and max by t (0–1), returning an int.
func lerp(min, max int, t float64) int {
	return min + int(math.Round(float64(max-min)*t))
}

// lerpf linearly interpolates between min and max by t (0–1), returning a float64.
func lerpf(min, max, t float64) float64 {
	return min + (max-min)*t
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Package config provides YAML-based game configuration loading and
// difficulty presets for the flappy simulation.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all tunables of the flappy simulation.
// Distances are world units (points), times are seconds.
type FlappyConfig struct {
	World     FlappyWorld     `yaml:"world"`
	Physics   FlappyPhysics   `yaml:"physics"`
	Player    FlappyPlayer    `yaml:"player"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Ground    FlappyGround    `yaml:"ground"`
	Rotation  FlappyRotation  `yaml:"rotation"`
	Scorecard FlappyScorecard `yaml:"scorecard"`
	Layout    FlappyLayout    `yaml:"layout"`
}

// FlappyWorld defines the scene size. The playable area starts where the
// background image ends: PlayableStart = Height - BackgroundHeight.
type FlappyWorld struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	BackgroundHeight float64 `yaml:"background_height"`
}

// PlayableStart returns the y coordinate of the ground line.
func (w FlappyWorld) PlayableStart() float64 {
	return w.Height - w.BackgroundHeight
}

// PlayableHeight returns the height of the area above the ground line.
func (w FlappyWorld) PlayableHeight() float64 {
	return w.BackgroundHeight
}

// FlappyPhysics defines the point-mass integration constants.
type FlappyPhysics struct {
	Gravity float64 `yaml:"gravity"` // negative, units/s²
	Impulse float64 `yaml:"impulse"` // upward velocity set by a flap
}

// FlappyPlayer defines the player sprite.
type FlappyPlayer struct {
	StartX float64 `yaml:"start_x"` // fraction of world width
	StartY float64 `yaml:"start_y"` // fraction of playable height above the ground
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlappyObstacles defines the obstacle pair spawn pattern.
type FlappyObstacles struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	MinFraction   float64 `yaml:"min_fraction"`
	MaxFraction   float64 `yaml:"max_fraction"`
	GapMultiplier float64 `yaml:"gap_multiplier"` // gap = player height * multiplier
	FirstDelay    float64 `yaml:"first_delay"`
	Interval      float64 `yaml:"interval"`
}

// FlappyGround defines the scrolling foreground.
type FlappyGround struct {
	Speed     float64 `yaml:"speed"`
	TileWidth float64 `yaml:"tile_width"`
}

// FlappyRotation defines the nose-down heuristic used by version 3.
type FlappyRotation struct {
	AngularVelocity float64 `yaml:"angular_velocity"` // degrees/s
	MinDegrees      float64 `yaml:"min_degrees"`
	MaxDegrees      float64 `yaml:"max_degrees"`
}

// FlappyScorecard defines the timings of the end-of-run sequence.
type FlappyScorecard struct {
	AnimDelay    float64 `yaml:"anim_delay"`    // delay between scorecard pops
	Pops         int     `yaml:"pops"`          // pops before Gameover
	FallingDelay float64 `yaml:"falling_delay"` // whack -> falling sound
}

// FlappyLayout places the button shown on MainMenu and Gameover.
// All values are fractions of the world size; X/Y are the button center.
type FlappyLayout struct {
	ButtonWidth  float64 `yaml:"button_width"`
	ButtonHeight float64 `yaml:"button_height"`
	ButtonY      float64 `yaml:"button_y"`
	PrimaryX     float64 `yaml:"primary_x"`
}

// DifficultyPreset represents a named difficulty level. Presets are static:
// they pick the gap and spawn interval once per session.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value into a preset. Empty means config default.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.GapMultiplier = 4.0
		cfg.Obstacles.Interval = 1.7
	case DifficultyNormal:
		cfg.Obstacles.GapMultiplier = 3.5
		cfg.Obstacles.Interval = 1.5
	case DifficultyHard:
		cfg.Obstacles.GapMultiplier = 3.0
		cfg.Obstacles.Interval = 1.3
	}
}

// Validate reports the first configuration value that would break the
// simulation invariants.
func (c FlappyConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	positive("world.background_height", c.World.BackgroundHeight)
	if c.World.BackgroundHeight > c.World.Height {
		errs = append(errs, fmt.Errorf("world.background_height %v exceeds world.height %v",
			c.World.BackgroundHeight, c.World.Height))
	}
	if c.Physics.Gravity >= 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must be negative, got %v", c.Physics.Gravity))
	}
	positive("physics.impulse", c.Physics.Impulse)
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("obstacles.width", c.Obstacles.Width)
	positive("obstacles.height", c.Obstacles.Height)
	positive("obstacles.gap_multiplier", c.Obstacles.GapMultiplier)
	positive("obstacles.interval", c.Obstacles.Interval)
	if c.Obstacles.FirstDelay < 0 {
		errs = append(errs, fmt.Errorf("obstacles.first_delay must not be negative, got %v", c.Obstacles.FirstDelay))
	}
	if c.Obstacles.MinFraction < 0 || c.Obstacles.MaxFraction > 1 || c.Obstacles.MinFraction > c.Obstacles.MaxFraction {
		errs = append(errs, fmt.Errorf("obstacles fractions must satisfy 0 <= min <= max <= 1, got [%v, %v]",
			c.Obstacles.MinFraction, c.Obstacles.MaxFraction))
	}
	positive("ground.speed", c.Ground.Speed)
	positive("ground.tile_width", c.Ground.TileWidth)
	if c.Ground.TileWidth > 0 && c.Ground.TileWidth < c.World.Width {
		errs = append(errs, fmt.Errorf("ground.tile_width %v is narrower than world.width %v, two tiles would leave a gap",
			c.Ground.TileWidth, c.World.Width))
	}
	positive("rotation.angular_velocity", c.Rotation.AngularVelocity)
	positive("layout.button_width", c.Layout.ButtonWidth)
	positive("layout.button_height", c.Layout.ButtonHeight)
	if c.Rotation.MinDegrees > c.Rotation.MaxDegrees {
		errs = append(errs, fmt.Errorf("rotation.min_degrees %v exceeds rotation.max_degrees %v",
			c.Rotation.MinDegrees, c.Rotation.MaxDegrees))
	}
	if c.Scorecard.Pops < 0 || c.Scorecard.AnimDelay < 0 || c.Scorecard.FallingDelay < 0 {
		errs = append(errs, errors.New("scorecard timings must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid flappy config: %w", errors.Join(errs...))
	}
	return nil
}

package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default configuration, sized for a
// 320x568 point portrait screen.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: FlappyWorld{
			Width:            320,
			Height:           568,
			BackgroundHeight: 476,
		},
		Physics: FlappyPhysics{
			Gravity: -150,
			Impulse: 150,
		},
		Player: FlappyPlayer{
			StartX: 0.2,
			StartY: 0.4,
			Width:  39,
			Height: 27,
		},
		Obstacles: FlappyObstacles{
			Width:         54,
			Height:        315,
			MinFraction:   0.1,
			MaxFraction:   0.6,
			GapMultiplier: 3.5,
			FirstDelay:    1.75,
			Interval:      1.5,
		},
		Ground: FlappyGround{
			Speed:     150,
			TileWidth: 320,
		},
		Rotation: FlappyRotation{
			AngularVelocity: 1000,
			MinDegrees:      -90,
			MaxDegrees:      25,
		},
		Scorecard: FlappyScorecard{
			AnimDelay:    0.3,
			Pops:         3,
			FallingDelay: 0.1,
		},
		Layout: FlappyLayout{
			ButtonWidth:  0.4,
			ButtonHeight: 0.1,
			ButtonY:      0.25,
			PrimaryX:     0.25,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "flappy":
		return defaultFlappyYAML
	default:
		return nil
	}
}

// Package sim implements the flappy simulation: player integration,
// scrolling ground, obstacle spawning, scoring and the six-state game
// machine. It knows nothing about terminals, audio devices or collision
// geometry; hosts feed it events and execute the effects it returns.
package sim

import "fmt"

// GameState is the active state of the game machine.
type GameState int

const (
	MainMenu GameState = iota
	Tutorial
	Play
	Falling
	ShowingScore
	Gameover
)

// String returns the state name.
func (s GameState) String() string {
	switch s {
	case MainMenu:
		return "MainMenu"
	case Tutorial:
		return "Tutorial"
	case Play:
		return "Play"
	case Falling:
		return "Falling"
	case ShowingScore:
		return "ShowingScore"
	case Gameover:
		return "Gameover"
	default:
		return fmt.Sprintf("GameState(%d)", int(s))
	}
}

// Moving returns true for the states in which the player is integrated.
func (s GameState) Moving() bool {
	return s == Play || s == Falling
}

// Ended returns true once the run is over and the scorecard is up.
func (s GameState) Ended() bool {
	return s == ShowingScore || s == Gameover
}

// Version selects one of the three successive rule sets.
type Version int

const (
	// V1 starts straight in Play; a tap after the run starts a new Play session.
	V1 Version = iota + 1
	// V2 adds the main menu and tutorial states.
	V2
	// V3 adds the nose-down rotation and the camera shake on impact.
	V3
)

// String returns the short version tag (v1, v2, v3).
func (v Version) String() string {
	return fmt.Sprintf("v%d", int(v))
}

// StartState returns the state a brand-new session of this version opens in.
func (v Version) StartState() GameState {
	if v == V1 {
		return Play
	}
	return MainMenu
}

func (v Version) hasRotation() bool {
	return v >= V3
}

func (v Version) hasImpactFX() bool {
	return v >= V3
}

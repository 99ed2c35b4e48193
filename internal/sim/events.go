package sim

import "github.com/vovakirdan/tui-flappy/internal/core"

// Category is a collision category bitmask.
type Category uint32

const (
	CategoryNone     Category = 0
	CategoryPlayer   Category = 1 << 0
	CategoryObstacle Category = 1 << 1
	CategoryGround   Category = 1 << 2
)

// Event is external input delivered to Tick.
type Event interface {
	simEvent()
}

// TapEvent is a primary touch/click at a world position.
type TapEvent struct {
	At core.Vec2
}

func (TapEvent) simEvent() {}

// ContactEvent reports that two bodies began touching.
type ContactEvent struct {
	A, B Category
}

func (ContactEvent) simEvent() {}

// other returns the category that is not the player.
func (c ContactEvent) other() Category {
	if c.A == CategoryPlayer {
		return c.B
	}
	return c.A
}

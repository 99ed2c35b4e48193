package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/physics"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

// Sprite sizes the collision hulls were traced on.
const (
	playerSpriteW   = 39
	playerSpriteH   = 27
	obstacleSpriteW = 54
	obstacleSpriteH = 315
)

// Body IDs. Obstacles use obstacleIDBase + their simulation ID.
const (
	playerID       = 1
	groundID       = 2
	obstacleIDBase = 16
)

// hulls holds the collision outlines fitted to the configured sizes,
// centered on the sprite.
type hulls struct {
	player   physics.Polygon
	obstacle physics.Polygon
}

func newHulls(cfg config.FlappyConfig) hulls {
	return hulls{
		player: physics.PlayerHull.
			Centered(playerSpriteW, playerSpriteH).
			Scaled(cfg.Player.Width/playerSpriteW, cfg.Player.Height/playerSpriteH),
		obstacle: physics.CactusHull.
			Centered(obstacleSpriteW, obstacleSpriteH).
			Scaled(cfg.Obstacles.Width/obstacleSpriteW, cfg.Obstacles.Height/obstacleSpriteH),
	}
}

// bodies places the player, the ground line and every obstacle in the world.
// Top obstacles are the same outline turned upside down.
func (g *Game) bodies() []physics.Body {
	p := g.sim.Player()
	ground := g.sim.PlayableStart()

	out := []physics.Body{
		{
			ID:          playerID,
			Category:    physics.Category(sim.CategoryPlayer),
			ContactMask: physics.Category(sim.CategoryObstacle | sim.CategoryGround),
			Shape:       g.hulls.player.Transform(p.Position, p.Rotation),
		},
		{
			ID:       groundID,
			Category: physics.Category(sim.CategoryGround),
			Shape:    physics.Polygon{core.V(0, ground), core.V(g.cfg.World.Width, ground)},
		},
	}

	for _, o := range g.sim.Obstacles() {
		angle := 0.0
		if o.Kind == sim.ObstacleTop {
			angle = math.Pi
		}
		out = append(out, physics.Body{
			ID:       obstacleIDBase + o.ID,
			Category: physics.Category(sim.CategoryObstacle),
			Shape:    g.hulls.obstacle.Transform(o.Position, angle),
		})
	}
	return out
}

// detect runs the contact detector on the current positions and returns the
// begin-contacts as events for the next tick. Bodies are only tested while
// the player moves.
func (g *Game) detect() []sim.Event {
	if !g.sim.State().Moving() {
		g.detector.Reset()
		return nil
	}

	contacts := g.detector.Step(g.bodies())
	if len(contacts) == 0 {
		return nil
	}
	events := make([]sim.Event, 0, len(contacts))
	for _, c := range contacts {
		events = append(events, sim.ContactEvent{
			A: sim.Category(c.A.Category),
			B: sim.Category(c.B.Category),
		})
	}
	return events
}

package sim

import "github.com/vovakirdan/tui-flappy/internal/core"

// spawnKey names the spawn timer action.
const spawnKey = "spawn"

// ObstacleKind tells the two members of a pair apart.
type ObstacleKind int

const (
	ObstacleBottom ObstacleKind = iota
	ObstacleTop
)

// Obstacle is one member of an obstacle pair.
type Obstacle struct {
	ID        int
	Pair      int
	Kind      ObstacleKind
	Position  core.Vec2 // sprite center
	Passed    bool      // bottom member only; set once when scored
	Moving    bool      // false once spawning was stopped
	Remaining float64   // seconds of travel left before removal
}

// Box returns the obstacle's bounding box for the given obstacle size.
func (o Obstacle) Box(w, h float64) core.Box {
	return core.BoxAround(o.Position, w, h)
}

// StartSpawning starts the spawn timer: first pair after FirstDelay, then one
// every Interval.
func (s *Simulation) StartSpawning() {
	s.removeAction(spawnKey)
	s.repeat(spawnKey, s.cfg.Obstacles.FirstDelay, s.cfg.Obstacles.Interval, s.SpawnObstaclePair)
}

// StopSpawning cancels the spawn timer and freezes every obstacle in flight.
func (s *Simulation) StopSpawning() {
	s.removeAction(spawnKey)
	for i := range s.obstacles {
		s.obstacles[i].Moving = false
	}
}

// Spawning returns true while the spawn timer is active.
func (s *Simulation) Spawning() bool {
	return s.hasAction(spawnKey)
}

// SpawnObstaclePair places a new pair just beyond the right edge. The bottom
// member's top edge is uniform within the configured fractions of the
// playable height; the top member sits a fixed gap above it. A pair spawned
// late by the timer starts where it would be had it spawned on time.
func (s *Simulation) SpawnObstaclePair() {
	oc := s.cfg.Obstacles
	startX := s.cfg.World.Width + oc.Width/2

	lo := s.playableStart - oc.Height/2 + s.playableHeight*oc.MinFraction
	hi := s.playableStart - oc.Height/2 + s.playableHeight*oc.MaxFraction
	bottomY := lo + s.rng.Float64()*(hi-lo)

	gap := s.cfg.Player.Height * oc.GapMultiplier
	topY := bottomY + oc.Height + gap

	travel := (s.cfg.World.Width + oc.Width) / s.cfg.Ground.Speed
	if s.late >= travel {
		return
	}
	startX -= s.cfg.Ground.Speed * s.late
	travel -= s.late

	s.pairSeq++
	for _, m := range []struct {
		kind ObstacleKind
		y    float64
	}{{ObstacleBottom, bottomY}, {ObstacleTop, topY}} {
		s.obstacleSeq++
		s.obstacles = append(s.obstacles, Obstacle{
			ID:        s.obstacleSeq,
			Pair:      s.pairSeq,
			Kind:      m.kind,
			Position:  core.V(startX, m.y),
			Moving:    true,
			Remaining: travel,
		})
	}
}

// moveObstacles advances moving obstacles at ground speed and removes those
// that finished their travel.
func (s *Simulation) moveObstacles(dt float64) {
	speed := s.cfg.Ground.Speed
	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		if o.Moving {
			step := min(dt, o.Remaining)
			o.Position.X -= speed * step
			o.Remaining -= step
			if o.Remaining <= timeEpsilon {
				continue
			}
		}
		kept = append(kept, o)
	}
	s.obstacles = kept
}

// UpdateScore awards one point per bottom obstacle whose right edge the
// player has passed. Each pair scores once.
func (s *Simulation) UpdateScore() {
	halfWidth := s.cfg.Obstacles.Width / 2
	for i := range s.obstacles {
		o := &s.obstacles[i]
		if o.Kind != ObstacleBottom || o.Passed {
			continue
		}
		if s.player.Position.X > o.Position.X+halfWidth {
			o.Passed = true
			s.score++
			s.emit(SoundEffect{Sound: SoundCoin})
			s.emit(ScoreEffect{Score: s.score})
		}
	}
}

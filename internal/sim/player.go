package sim

import "github.com/vovakirdan/tui-flappy/internal/core"

// PlayerBody is the single integrated point mass.
type PlayerBody struct {
	Position        core.Vec2 // sprite center
	Velocity        core.Vec2
	Rotation        float64 // radians, counter-clockwise
	AngularVelocity float64 // radians/s
}

// UpdatePlayer integrates the player over dt seconds with explicit Euler:
// gravity into velocity, velocity into position, then the floor clamp.
// Version 3 also integrates the nose-down rotation.
func (s *Simulation) UpdatePlayer(dt float64) {
	p := &s.player

	gravity := core.V(0, s.cfg.Physics.Gravity)
	p.Velocity = p.Velocity.Add(gravity.Scale(dt))
	p.Position = p.Position.Add(p.Velocity.Scale(dt))

	halfHeight := s.cfg.Player.Height / 2
	if p.Position.Y-halfHeight < s.playableStart {
		p.Position.Y = s.playableStart + halfHeight
	}

	if !s.version.hasRotation() {
		return
	}

	// lastTouchY is 0 until the first flap, so nothing tips the nose down
	// before then.
	if p.Position.Y < s.lastTouchY {
		p.AngularVelocity = -core.Radians(s.cfg.Rotation.AngularVelocity)
	}
	p.Rotation += p.AngularVelocity * dt
	p.Rotation = core.ClampF(p.Rotation,
		core.Radians(s.cfg.Rotation.MinDegrees),
		core.Radians(s.cfg.Rotation.MaxDegrees))
}

// Flap is the primary input while playing. In Play it flaps, in Tutorial it
// starts the run. In every other state it does nothing.
func (s *Simulation) Flap() {
	switch s.state {
	case Play:
		s.flapPlayer()
	case Tutorial:
		s.switchToPlay()
	}
}

// flapPlayer overwrites the velocity with the upward impulse.
func (s *Simulation) flapPlayer() {
	s.emit(SoundEffect{Sound: SoundFlapping})

	s.player.Velocity = core.V(0, s.cfg.Physics.Impulse)
	s.lastTouchTime = s.lastUpdateTime
	s.lastTouchY = s.player.Position.Y
	if s.version.hasRotation() {
		s.player.AngularVelocity = core.Radians(s.cfg.Rotation.AngularVelocity)
	}

	s.emit(BobEffect{})
}

// landPlayer lays the player on its side on the ground line.
func (s *Simulation) landPlayer() {
	s.player.Velocity = core.Vec2{}
	s.player.AngularVelocity = 0
	s.player.Rotation = core.Radians(-90)
	s.player.Position.Y = s.playableStart + s.cfg.Player.Width/2
}

package sim

// Sound names a fire-and-forget sound effect.
type Sound string

const (
	SoundCoin      Sound = "coin"
	SoundDing      Sound = "ding"
	SoundFalling   Sound = "falling"
	SoundFlapping  Sound = "flapping"
	SoundHitGround Sound = "hitGround"
	SoundPop       Sound = "pop"
	SoundWhack     Sound = "whack"
)

// Sounds lists every sound the simulation can request.
var Sounds = []Sound{SoundCoin, SoundDing, SoundFalling, SoundFlapping, SoundHitGround, SoundPop, SoundWhack}

// Effect is a presentation command returned by Tick for the host to execute.
type Effect interface {
	simEffect()
}

// SoundEffect asks the host to play a sound.
type SoundEffect struct {
	Sound Sound
}

func (SoundEffect) simEffect() {}

// StateEffect is emitted on every state transition.
type StateEffect struct {
	From, To GameState
}

func (StateEffect) simEffect() {}

// ScoreEffect carries the new score after a pair was passed.
type ScoreEffect struct {
	Score int
}

func (ScoreEffect) simEffect() {}

// BobEffect moves the player's accessory up and back down after a flap.
type BobEffect struct{}

func (BobEffect) simEffect() {}

// ShakeEffect shakes the camera on impact.
type ShakeEffect struct{}

func (ShakeEffect) simEffect() {}

// FlashEffect flashes the screen on impact.
type FlashEffect struct{}

func (FlashEffect) simEffect() {}

// ScorecardEffect shows the end-of-run scorecard.
type ScorecardEffect struct {
	Score   int
	Best    int
	NewBest bool
}

func (ScorecardEffect) simEffect() {}

// PopEffect marks one beat of the scorecard sequence.
type PopEffect struct {
	Index int // 1-based
}

func (PopEffect) simEffect() {}

// NewSessionEffect asks the host to discard this Simulation and build a
// fresh one opening in Start.
type NewSessionEffect struct {
	Start GameState
}

func (NewSessionEffect) simEffect() {}

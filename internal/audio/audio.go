// Package audio plays the short "pop" chirp heard when bubbles burst.
package audio

// Player reacts to simulation events with sound.
type Player interface {
	// Pop plays one chirp for count bubbles popped in the same tick.
	Pop(count int)
	// ToggleMute flips the mute state and reports whether sound is now on.
	ToggleMute() bool
	Close()
}

// Nop is a silent Player.
type Nop struct{}

func (Nop) Pop(int)          {}
func (Nop) ToggleMute() bool { return false }
func (Nop) Close()           {}

var _ Player = Nop{}

package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// The speaker can only be initialised once per process.
var speakerInit struct {
	once sync.Once
	err  error
}

// Speaker plays pops on the local sound device through one shared mixer.
type Speaker struct {
	mixer  *beep.Mixer
	volume float64
	muted  atomic.Bool
	closed atomic.Bool
}

var _ Player = (*Speaker)(nil)

// NewSpeaker opens the default output device. Callers should fall back to
// Nop when it fails; the simulation runs fine without sound.
func NewSpeaker(volume float64) (*Speaker, error) {
	speakerInit.once.Do(func() {
		speakerInit.err = speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond))
	})
	if speakerInit.err != nil {
		return nil, fmt.Errorf("init speaker: %w", speakerInit.err)
	}

	s := &Speaker{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Pop queues a chirp unless muted.
func (s *Speaker) Pop(count int) {
	if count <= 0 || s.muted.Load() || s.closed.Load() {
		return
	}
	sound := NewPopSound(count, s.volume, sampleRate)
	speaker.Lock()
	s.mixer.Add(sound)
	speaker.Unlock()
}

// ToggleMute flips mute, returns true if sound is now on
func (s *Speaker) ToggleMute() bool {
	muted := !s.muted.Load()
	s.muted.Store(muted)
	return !muted
}

// Close silences the mixer and releases the device.
func (s *Speaker) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

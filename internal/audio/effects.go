package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Pop sound shape
const (
	popDuration  = 70 * time.Millisecond
	popAttack    = 3 * time.Millisecond
	popRelease   = 50 * time.Millisecond
	popStartFreq = 1400.0
	popEndFreq   = 380.0
	popMaxBurst  = 4 // Pops beyond this in one tick don't get louder
)

// chirp generates a sine whose frequency slides linearly from one value to
// another over its duration.
type chirp struct {
	from, to float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

// NewChirp creates a sine sweep from one frequency to another.
func NewChirp(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &chirp{
		from:     from,
		to:       to,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (c *chirp) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.position >= c.duration {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * c.phase)
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(c.position) / float64(c.duration)
		freq := c.from + (c.to-c.from)*progress
		c.phase += freq / float64(c.rate)
		c.phase -= math.Floor(c.phase) // Keep in [0, 1)
		c.position++
	}
	return len(samples), true
}

func (c *chirp) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope fades a stream in over attack and out over the final release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// NewPopSound builds the chirp for count simultaneous pops. Bigger bursts
// are louder and start a little lower.
func NewPopSound(count int, volume float64, rate beep.SampleRate) beep.Streamer {
	count = min(max(count, 1), popMaxBurst)
	burst := float64(count) / popMaxBurst

	from := popStartFreq * (1 - 0.25*burst)
	osc := NewChirp(from, popEndFreq, popDuration, rate)
	shaped := NewEnvelope(osc, popDuration, popAttack, popRelease, rate)
	return newVolume(shaped, volume*(0.5+0.5*burst))
}

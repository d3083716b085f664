// Package rng provides the seeded pseudo-random stream that drives spawn
// placement, velocity jitter and pop decisions.
package rng

// LCG is a 32-bit linear congruential generator.
// Two generators created with the same seed produce the same stream.
type LCG struct {
	state uint32
}

// New creates a generator. A zero seed is replaced by 1.
func New(seed uint32) *LCG {
	if seed == 0 {
		seed = 1
	}
	return &LCG{state: seed}
}

// NextU32 advances the state and returns it.
func (r *LCG) NextU32() uint32 {
	r.state = r.state*1664525 + 1013904223
	return r.state
}

// Float64 returns a uniform value in [0,1) built from the low 24 bits of the next state.
func (r *LCG) Float64() float64 {
	return float64(r.NextU32()&0x00FFFFFF) / float64(0x01000000)
}

// Range returns a uniform value in [lo,hi).
func (r *LCG) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

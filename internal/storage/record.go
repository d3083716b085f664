// Package storage persists the group configuration as a fixed 60-byte
// little-endian record: per group an int32 count followed by float32
// radius, rise speed, restitution and pop chance.
package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/tomz197/bubblesim/internal/sim"
)

const (
	groupSize  = 20
	RecordSize = sim.GroupCount * groupSize
)

var (
	ErrBadRecord = errors.New("storage: malformed config record")
	ErrNotFound  = errors.New("storage: config not found")
)

// Encode serializes the configuration of every group.
func Encode(cfg sim.Config) []byte {
	buf := make([]byte, RecordSize)
	le := binary.LittleEndian
	for i, g := range cfg {
		off := i * groupSize
		le.PutUint32(buf[off:], uint32(int32(g.Count)))
		le.PutUint32(buf[off+4:], math.Float32bits(float32(g.Radius)))
		le.PutUint32(buf[off+8:], math.Float32bits(float32(g.RiseSpeed)))
		le.PutUint32(buf[off+12:], math.Float32bits(float32(g.Restitution)))
		le.PutUint32(buf[off+16:], math.Float32bits(float32(g.PopChance)))
	}
	return buf
}

// Decode parses a record produced by Encode. Values are clamped to their
// bounds; a record of the wrong size is rejected.
func Decode(data []byte) (sim.Config, error) {
	var cfg sim.Config
	if len(data) != RecordSize {
		return cfg, fmt.Errorf("%w: got %d bytes, want %d", ErrBadRecord, len(data), RecordSize)
	}

	le := binary.LittleEndian
	f32 := func(off int) float64 {
		return float64(math.Float32frombits(le.Uint32(data[off:])))
	}
	for i := range cfg {
		off := i * groupSize
		cfg[i] = sim.GroupConfig{
			Count:       int(int32(le.Uint32(data[off:]))),
			Radius:      f32(off + 4),
			RiseSpeed:   f32(off + 8),
			Restitution: f32(off + 12),
			PopChance:   f32(off + 16),
		}
	}
	return cfg.Clamp(), nil
}

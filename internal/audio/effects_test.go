package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to the end and returns every left-channel sample
func drain(t *testing.T, s beep.Streamer) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, 256)
	for range 10000 {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			return out
		}
	}
	t.Fatal("stream never ended")
	return nil
}

func TestChirpLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	samples := drain(t, NewChirp(1000, 200, 50*time.Millisecond, rate))

	if len(samples) != rate.N(50*time.Millisecond) {
		t.Fatalf("got %d samples, want %d", len(samples), rate.N(50*time.Millisecond))
	}
	for i, v := range samples {
		if v < -1 || v > 1 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
}

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewChirp(250, 250, 100*time.Millisecond, rate)
	samples := drain(t, NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate))

	if len(samples) != 100 {
		t.Fatalf("got %d samples, want 100", len(samples))
	}
	if samples[0] != 0 {
		t.Errorf("first sample = %v, want 0 (attack starts silent)", samples[0])
	}
	if math.Abs(samples[99]) > 0.06 {
		t.Errorf("last sample = %v, want near 0 after release", samples[99])
	}
}

func TestPopSoundEnds(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, count := range []int{0, 1, 3, 50} {
		samples := drain(t, NewPopSound(count, 0.5, rate))
		if len(samples) != rate.N(popDuration) {
			t.Errorf("count %d: %d samples, want %d", count, len(samples), rate.N(popDuration))
		}
		for i, v := range samples {
			if math.IsNaN(v) || math.Abs(v) > 1 {
				t.Fatalf("count %d: sample %d = %v", count, i, v)
			}
		}
	}
}

func TestSilentVolume(t *testing.T) {
	rate := beep.SampleRate(8000)
	osc := NewChirp(440, 440, 10*time.Millisecond, rate)
	for i, v := range drain(t, newVolume(osc, 0)) {
		if v != 0 {
			t.Fatalf("sample %d = %v, want silence", i, v)
		}
	}
}

func TestNop(t *testing.T) {
	var p Player = Nop{}
	p.Pop(3)
	if p.ToggleMute() {
		t.Error("Nop reports sound on")
	}
	p.Close()
}

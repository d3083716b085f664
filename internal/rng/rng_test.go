package rng

import "testing"

func TestNextU32Recurrence(t *testing.T) {
	r := New(1)
	// 1*1664525 + 1013904223
	if got, want := r.NextU32(), uint32(1015568748); got != want {
		t.Fatalf("first value = %d, want %d", got, want)
	}
	first := uint32(1015568748)
	want := first*1664525 + 1013904223
	if got := r.NextU32(); got != want {
		t.Errorf("second value = %d, want %d", got, want)
	}
}

func TestZeroSeedSubstituted(t *testing.T) {
	a := New(0)
	b := New(1)
	for i := 0; i < 16; i++ {
		if x, y := a.NextU32(), b.NextU32(); x != y {
			t.Fatalf("step %d: seed 0 gave %d, seed 1 gave %d", i, x, y)
		}
	}
}

func TestFloat64InUnitInterval(t *testing.T) {
	r := New(12345)
	for i := 0; i < 10000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("value %d out of [0,1): %v", i, v)
		}
	}
}

func TestFloat64UsesLow24Bits(t *testing.T) {
	a := New(99)
	b := New(99)
	raw := b.NextU32()
	want := float64(raw&0x00FFFFFF) / 16777216.0
	if got := a.Float64(); got != want {
		t.Errorf("Float64 = %v, want %v", got, want)
	}
}

func TestRange(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		v := r.Range(-3, 5)
		if v < -3 || v >= 5 {
			t.Fatalf("Range value out of bounds: %v", v)
		}
	}
}

func TestDeterministicStreams(t *testing.T) {
	a := New(424242)
	b := New(424242)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("streams diverged at %d", i)
		}
	}
}

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomz197/bubblesim/internal/sim"
)

func TestEncodeLayout(t *testing.T) {
	cfg := sim.Config{
		{Count: 3, Radius: 2, RiseSpeed: 1, Restitution: 0.5, PopChance: 0.25},
	}
	buf := Encode(cfg)
	if len(buf) != RecordSize || RecordSize != 60 {
		t.Fatalf("len = %d, RecordSize = %d", len(buf), RecordSize)
	}

	// int32 3, float32 2.0 (0x40000000), float32 1.0 (0x3f800000)
	want := []byte{3, 0, 0, 0, 0, 0, 0, 0x40, 0, 0, 0x80, 0x3f}
	for i, b := range want {
		if buf[i] != b {
			t.Fatalf("byte %d = %#x, want %#x", i, buf[i], b)
		}
	}
}

func TestDecode(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg[sim.GroupLarge].Radius = 12.5
	got, err := Decode(Encode(cfg))
	if err != nil {
		t.Fatal(err)
	}
	for i := range cfg {
		if got[i].Count != cfg[i].Count || got[i].Radius != cfg[i].Radius || got[i].RiseSpeed != cfg[i].RiseSpeed {
			t.Errorf("group %d = %+v, want %+v", i, got[i], cfg[i])
		}
	}
}

func TestDecodeClamps(t *testing.T) {
	cfg := sim.Config{{Count: 500, Radius: 100, RiseSpeed: -4, Restitution: 5, PopChance: -1}}
	got, err := Decode(Encode(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if got != got.Clamp() {
		t.Errorf("decoded config not clamped: %+v", got)
	}
	if got[0].Count != 64 || got[0].Radius != 32 {
		t.Errorf("group 0 = %+v", got[0])
	}
}

func TestDecodeBadSize(t *testing.T) {
	for _, n := range []int{0, 59, 61} {
		if _, err := Decode(make([]byte, n)); !errors.Is(err, ErrBadRecord) {
			t.Errorf("Decode(%d bytes) err = %v, want ErrBadRecord", n, err)
		}
	}
}

func TestManager(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	m := NewManager(dir)

	if m.Exists() {
		t.Fatal("Exists() before save")
	}
	if _, err := m.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() err = %v, want ErrNotFound", err)
	}
	cfg, err := m.LoadOrDefault()
	if err != nil || cfg != sim.DefaultConfig() {
		t.Fatalf("LoadOrDefault() = %+v, %v", cfg, err)
	}

	cfg[sim.GroupSmall].Count = 9
	if err := m.Save(cfg); err != nil {
		t.Fatal(err)
	}
	if !m.Exists() {
		t.Fatal("Exists() after save")
	}
	got, err := m.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got[sim.GroupSmall].Count != 9 {
		t.Errorf("Count = %d, want 9", got[sim.GroupSmall].Count)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("data dir has %d entries, want 1", len(entries))
	}
}

func TestLoadOrDefaultShortFile(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	if err := os.WriteFile(m.FilePath(), []byte{1, 2, 3}, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := m.LoadOrDefault()
	if !errors.Is(err, ErrBadRecord) {
		t.Fatalf("err = %v, want ErrBadRecord", err)
	}
	if cfg != sim.DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

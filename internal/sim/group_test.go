package sim

import (
	"math"
	"testing"

	"github.com/tomz197/bubblesim/internal/config"
)

func TestGroupConfigClamp(t *testing.T) {
	tests := []struct {
		name string
		in   GroupConfig
		want GroupConfig
	}{
		{
			name: "in range",
			in:   GroupConfig{Count: 5, Radius: 4, RiseSpeed: 10, Restitution: 0.5, PopChance: 0.2},
			want: GroupConfig{Count: 5, Radius: 4, RiseSpeed: 10, Restitution: 0.5, PopChance: 0.2},
		},
		{
			name: "below",
			in:   GroupConfig{Count: -3, Radius: 0, RiseSpeed: 0, Restitution: -1, PopChance: -0.5},
			want: GroupConfig{Count: config.MinCount, Radius: config.MinRadius, RiseSpeed: config.MinSpeed},
		},
		{
			name: "above",
			in:   GroupConfig{Count: 100, Radius: 50, RiseSpeed: 100, Restitution: 2, PopChance: 3},
			want: GroupConfig{Count: config.MaxCount, Radius: config.MaxRadius, RiseSpeed: config.MaxSpeed, Restitution: 1, PopChance: 1},
		},
		{
			name: "nan",
			in:   GroupConfig{Count: 1, Radius: math.NaN(), RiseSpeed: math.NaN(), Restitution: math.NaN(), PopChance: math.NaN()},
			want: GroupConfig{Count: 1, Radius: config.MinRadius, RiseSpeed: config.MinSpeed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(); got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDefaultConfigInBounds(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Clamp() != cfg {
		t.Fatalf("defaults out of bounds: %+v", cfg)
	}
	if cfg[GroupSmall].PopChance != 0 {
		t.Errorf("small group pops by default")
	}
}

func TestAdjust(t *testing.T) {
	c := GroupConfig{Count: 1, Radius: 1, RiseSpeed: 1, Restitution: 0.5, PopChance: 0.5}

	c.Adjust(FieldCount, -1)
	c.Adjust(FieldCount, -1)
	if c.Count != 0 {
		t.Errorf("Count = %d, want 0", c.Count)
	}

	c.Adjust(FieldRadius, 2)
	if c.Radius != 1.5 {
		t.Errorf("Radius = %v, want 1.5", c.Radius)
	}

	c.Adjust(FieldSpeed, -1)
	if c.RiseSpeed != config.MinSpeed {
		t.Errorf("RiseSpeed = %v, want %v", c.RiseSpeed, config.MinSpeed)
	}

	for range 100 {
		c.Adjust(FieldRestitution, 1)
	}
	if c.Restitution != 1 {
		t.Errorf("Restitution = %v, want 1", c.Restitution)
	}

	before := c
	c.Adjust(ConfigField(99), 1)
	if c != before {
		t.Errorf("unknown field changed config")
	}
}

func TestConfigFieldCycle(t *testing.T) {
	if FieldCount.Prev() != FieldPopChance {
		t.Errorf("FieldCount.Prev() = %v", FieldCount.Prev())
	}
	if FieldPopChance.Next() != FieldCount {
		t.Errorf("FieldPopChance.Next() = %v", FieldPopChance.Next())
	}
	f := FieldCount
	for range fieldCount {
		f = f.Next()
	}
	if f != FieldCount {
		t.Errorf("full cycle ended at %v", f)
	}
	if GroupLarge.Next() != GroupSmall {
		t.Errorf("GroupLarge.Next() = %v", GroupLarge.Next())
	}
}

func TestFormat(t *testing.T) {
	c := GroupConfig{Count: 12, Radius: 3.5, RiseSpeed: 11, Restitution: 0.15, PopChance: 0.1}

	tests := map[ConfigField]string{
		FieldCount:       "Count=12",
		FieldRadius:      "Radius=3.5",
		FieldSpeed:       "Speed=11.00",
		FieldRestitution: "Bounce=15%",
		FieldPopChance:   "Pop=10%",
	}
	for f, want := range tests {
		if got := c.Format(f); got != want {
			t.Errorf("Format(%v) = %q, want %q", f, got, want)
		}
	}
}

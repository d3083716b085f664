package sim

import (
	"fmt"
	"math"

	"github.com/tomz197/bubblesim/internal/config"
)

// GroupID identifies one of the three bubble size classes.
type GroupID int

const (
	GroupSmall GroupID = iota
	GroupMedium
	GroupLarge
	GroupCount = 3
)

// Valid reports whether id names an existing group.
func (id GroupID) Valid() bool {
	return id >= 0 && id < GroupCount
}

// Next cycles small -> medium -> large -> small.
func (id GroupID) Next() GroupID {
	return (id + 1) % GroupCount
}

// GroupConfig is the persisted, tunable part of a group.
type GroupConfig struct {
	Count       int     // Number of bodies in the group
	Radius      float64 // Visual and collision radius
	RiseSpeed   float64 // Upward speed (applied as negative vy)
	Restitution float64 // Bounciness 0..1
	PopChance   float64 // Probability of popping per colliding pair
}

// GroupMeta is display-only data. It is never persisted.
type GroupMeta struct {
	Name string
}

// Config is the flat record of all group configurations.
type Config [GroupCount]GroupConfig

// DefaultConfig returns the factory group settings.
// The small group does not pop by default.
func DefaultConfig() Config {
	return Config{
		GroupSmall:  {Count: 22, Radius: 3, RiseSpeed: 60, Restitution: 0.8, PopChance: 0},
		GroupMedium: {Count: 10, Radius: 8, RiseSpeed: 11, Restitution: 0.15, PopChance: 0.10},
		GroupLarge:  {Count: 4, Radius: 16, RiseSpeed: 4, Restitution: 0.05, PopChance: 0.10},
	}
}

// DefaultMeta returns the display names of the groups.
func DefaultMeta() [GroupCount]GroupMeta {
	return [GroupCount]GroupMeta{
		GroupSmall:  {Name: "Small"},
		GroupMedium: {Name: "Medium"},
		GroupLarge:  {Name: "Large"},
	}
}

// Clamp returns the configuration with every field forced into its bounds.
// NaN values fall back to the lower bound.
func (c GroupConfig) Clamp() GroupConfig {
	c.Count = min(max(c.Count, config.MinCount), config.MaxCount)
	c.Radius = clampFloat(c.Radius, config.MinRadius, config.MaxRadius)
	c.RiseSpeed = clampFloat(c.RiseSpeed, config.MinSpeed, config.MaxSpeed)
	c.Restitution = clampFloat(c.Restitution, config.MinRestitution, config.MaxRestitution)
	c.PopChance = clampFloat(c.PopChance, config.MinPopChance, config.MaxPopChance)
	return c
}

// Clamp clamps every group.
func (c Config) Clamp() Config {
	for i := range c {
		c[i] = c[i].Clamp()
	}
	return c
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ConfigField selects which group parameter the menu edits.
type ConfigField int

const (
	FieldCount ConfigField = iota
	FieldRadius
	FieldSpeed
	FieldRestitution
	FieldPopChance
	fieldCount
)

// Next selects the following field, wrapping to the first.
func (f ConfigField) Next() ConfigField {
	return (f + 1) % fieldCount
}

// Prev selects the preceding field, wrapping to the last.
func (f ConfigField) Prev() ConfigField {
	return (f + fieldCount - 1) % fieldCount
}

func (f ConfigField) String() string {
	switch f {
	case FieldCount:
		return "Count"
	case FieldRadius:
		return "Radius"
	case FieldSpeed:
		return "Speed"
	case FieldRestitution:
		return "Bounce"
	case FieldPopChance:
		return "Pop"
	default:
		return "?"
	}
}

// Adjust moves one field by dir steps and clamps it to its bounds.
func (c *GroupConfig) Adjust(field ConfigField, dir int) {
	d := float64(dir)
	switch field {
	case FieldCount:
		c.Count += dir * config.CountStep
	case FieldRadius:
		c.Radius += d * config.RadiusStep
	case FieldSpeed:
		c.RiseSpeed += d * config.SpeedStep
	case FieldRestitution:
		c.Restitution += d * config.RestitutionStep
	case FieldPopChance:
		c.PopChance += d * config.PopChanceStep
	default:
		return
	}
	*c = c.Clamp()
}

// Format renders a field the way the HUD footer shows it.
func (c GroupConfig) Format(field ConfigField) string {
	switch field {
	case FieldCount:
		return fmt.Sprintf("Count=%d", c.Count)
	case FieldRadius:
		return fmt.Sprintf("Radius=%.1f", c.Radius)
	case FieldSpeed:
		return fmt.Sprintf("Speed=%.2f", c.RiseSpeed)
	case FieldRestitution:
		return fmt.Sprintf("Bounce=%d%%", percent(c.Restitution))
	case FieldPopChance:
		return fmt.Sprintf("Pop=%d%%", percent(c.PopChance))
	default:
		return "?"
	}
}

// percent rounds a 0..1 fraction to the nearest whole percent.
func percent(v float64) int {
	return int(v*100 + 0.5)
}

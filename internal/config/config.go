package config

import "time"

// Arena - the screen the bubbles live in, in logical pixels.
// Bounds are the screen interior: [0, ArenaWidth-1] x [0, ArenaHeight-1].
const (
	ArenaWidth  = 128
	ArenaHeight = 64
)

// Timing. The simulation always advances by TimeStep per tick regardless of
// how long a tick actually took.
const (
	TimeStep = 0.03 // Seconds of simulated time per tick
	TickTime = 30 * time.Millisecond
	Gravity  = 0.0 // Bubbles rise on their initial velocity alone
)

// Population
const (
	MaxBodies = 48 // Global body capacity across all groups
)

// Spawning / respawning
const (
	SpawnCooldownFrames = 10   // Ticks a fresh body ignores collisions
	SpawnBaseOffset     = 40.0 // Distance below MaxY (plus radius) a body spawns at
	SpawnExtraOffset    = 20.0 // Random extra depth added to the base offset
	JitterFactor        = 0.2  // Horizontal jitter range as a fraction of rise speed
	OffArenaMargin      = 20.0 // How far above MinY a body's bottom must be to recycle
)

// Group tunable limits
const (
	MinCount       = 0
	MaxCount       = 64
	MinRadius      = 1.0
	MaxRadius      = 32.0
	MinSpeed       = 0.25
	MaxSpeed       = 64.0
	MinRestitution = 0.0
	MaxRestitution = 1.0
	MinPopChance   = 0.0
	MaxPopChance   = 1.0
)

// Adjustment step per key press
const (
	CountStep       = 1
	RadiusStep      = 0.25
	SpeedStep       = 1.0
	RestitutionStep = 0.01
	PopChanceStep   = 0.01
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Shutdown
const (
	ShutdownDisplaySeconds = 3.0 // Seconds to show shutdown message before auto-disconnect
)

// Persistence
const (
	ConfigFileName = "bubble.cfg"
)

// Package sim owns the bubble population: the body store, the group
// configurations, the random stream, and the per-tick pipeline
// integrate -> resolve -> recycle.
package sim

import (
	"github.com/tomz197/bubblesim/internal/config"
	"github.com/tomz197/bubblesim/internal/physics"
	"github.com/tomz197/bubblesim/internal/rng"
)

// TickStats summarizes what happened during one Step.
type TickStats struct {
	Popped   int // Bodies eliminated by collisions this tick
	Recycled int // Bodies respawned (popped or off the top)
}

// ResolvedFunc sees the bodies of a tick after collisions and before
// recycling, so popped bodies still carry their Eliminated flag. tick is
// the number of the tick being completed. bodies must not be retained.
type ResolvedFunc func(tick uint64, bodies []physics.Body)

// Simulation is not safe for concurrent use; one goroutine owns it.
type Simulation struct {
	store    *Store
	rng      *rng.LCG
	gravity  float64
	ticks    uint64
	resolved ResolvedFunc
}

// Options configure a new Simulation. Zero values fall back to defaults.
type Options struct {
	Seed     uint32
	Capacity int
	Bounds   *physics.Bounds
	Gravity  float64
}

// DefaultBounds returns the screen interior of the standard arena.
func DefaultBounds() physics.Bounds {
	return physics.Bounds{
		MinX: 0,
		MaxX: config.ArenaWidth - 1,
		MinY: 0,
		MaxY: config.ArenaHeight - 1,
	}
}

// New creates a simulation from cfg and populates every group.
func New(cfg Config, opts Options) *Simulation {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = config.MaxBodies
	}
	bounds := DefaultBounds()
	if opts.Bounds != nil {
		bounds = *opts.Bounds
	}

	s := &Simulation{
		store:   NewStore(capacity, bounds, cfg),
		rng:     rng.New(opts.Seed),
		gravity: opts.Gravity,
	}
	s.Rebuild()
	return s
}

// Step advances the simulation by dt seconds.
// A non-positive dt leaves every body untouched.
func (s *Simulation) Step(dt float64) TickStats {
	if dt <= 0 {
		return TickStats{}
	}
	bodies := s.store.Bodies()
	bounds := s.store.Bounds()

	physics.Integrate(bodies, dt, s.gravity, bounds)
	popped := physics.ResolveCollisions(bodies, bounds, s.rng)
	if s.resolved != nil {
		s.resolved(s.ticks+1, bodies)
	}
	recycled := s.Recycle()

	s.ticks++
	return TickStats{Popped: popped, Recycled: recycled}
}

// OnResolved installs fn to run inside every Step between collision
// resolution and recycling. A nil fn removes it.
func (s *Simulation) OnResolved(fn ResolvedFunc) {
	s.resolved = fn
}

// Ticks returns the number of completed steps.
func (s *Simulation) Ticks() uint64 {
	return s.ticks
}

// Bodies exposes the live bodies. Do not retain the slice across steps.
func (s *Simulation) Bodies() []physics.Body {
	return s.store.Bodies()
}

// Store exposes the body store.
func (s *Simulation) Store() *Store {
	return s.store
}

// Config copies out the configuration of every group.
func (s *Simulation) Config() Config {
	return s.store.Config()
}

// Group returns one group's configuration.
func (s *Simulation) Group(id GroupID) GroupConfig {
	return s.store.Group(id)
}

// AdjustGroup nudges one field of one group and rebuilds that group.
// Returns the clamped configuration now in effect.
func (s *Simulation) AdjustGroup(id GroupID, field ConfigField, dir int) GroupConfig {
	if !id.Valid() {
		return GroupConfig{}
	}
	cfg := s.store.Group(id)
	cfg.Adjust(field, dir)
	s.store.SetGroup(id, cfg)
	s.PopulateGroup(id)
	return s.store.Group(id)
}

// SetGroup replaces one group's configuration and rebuilds that group.
func (s *Simulation) SetGroup(id GroupID, cfg GroupConfig) {
	if !id.Valid() {
		return
	}
	s.store.SetGroup(id, cfg)
	s.PopulateGroup(id)
}

// SetConfig replaces every group's configuration and rebuilds the population.
func (s *Simulation) SetConfig(cfg Config) {
	s.store.SetConfig(cfg)
	s.Rebuild()
}

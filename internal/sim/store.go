package sim

import "github.com/tomz197/bubblesim/internal/physics"

// Store owns the body array, the group configurations and the arena bounds.
// Bodies live in a slice whose capacity never grows past the store capacity.
type Store struct {
	bodies   []physics.Body
	capacity int
	groups   Config
	meta     [GroupCount]GroupMeta
	bounds   physics.Bounds
}

// NewStore creates an empty store. Group values are clamped on the way in.
func NewStore(capacity int, bounds physics.Bounds, cfg Config) *Store {
	capacity = max(capacity, 0)
	return &Store{
		bodies:   make([]physics.Body, 0, capacity),
		capacity: capacity,
		groups:   cfg.Clamp(),
		meta:     DefaultMeta(),
		bounds:   bounds,
	}
}

// Bodies returns the live body slice. Callers may mutate the elements for
// the duration of one tick but must not keep the slice across ticks.
func (s *Store) Bodies() []physics.Body {
	return s.bodies
}

// Len returns the number of live bodies.
func (s *Store) Len() int {
	return len(s.bodies)
}

// Full reports whether no more bodies can be added.
func (s *Store) Full() bool {
	return len(s.bodies) >= s.capacity
}

// Bounds returns the arena bounds.
func (s *Store) Bounds() physics.Bounds {
	return s.bounds
}

// Group returns a copy of one group's configuration.
func (s *Store) Group(id GroupID) GroupConfig {
	return s.groups[id]
}

// SetGroup replaces one group's configuration (clamped).
// The bodies are not touched; rebuild the group to apply it.
func (s *Store) SetGroup(id GroupID, cfg GroupConfig) {
	s.groups[id] = cfg.Clamp()
}

// Config copies out the persisted record of all groups.
func (s *Store) Config() Config {
	return s.groups
}

// SetConfig copies a persisted record in (clamped).
func (s *Store) SetConfig(cfg Config) {
	s.groups = cfg.Clamp()
}

// Meta returns a group's display metadata.
func (s *Store) Meta(id GroupID) GroupMeta {
	return s.meta[id]
}

// append adds a zero body and returns it, or nil when the store is full.
func (s *Store) append() *physics.Body {
	if s.Full() {
		return nil
	}
	s.bodies = append(s.bodies, physics.Body{})
	return &s.bodies[len(s.bodies)-1]
}

// removeGroup drops every body of a group, keeping the relative order of the rest.
func (s *Store) removeGroup(id GroupID) {
	kept := s.bodies[:0]
	for _, b := range s.bodies {
		if b.Group != int(id) {
			kept = append(kept, b)
		}
	}
	clear(s.bodies[len(kept):])
	s.bodies = kept
}

// reset drops every body.
func (s *Store) reset() {
	clear(s.bodies)
	s.bodies = s.bodies[:0]
}

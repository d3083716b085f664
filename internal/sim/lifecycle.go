package sim

import (
	"github.com/tomz197/bubblesim/internal/config"
	"github.com/tomz197/bubblesim/internal/physics"
)

// PopulateGroup removes every body of the group and creates the configured
// number of fresh ones below the arena. Bodies of other groups keep their
// relative order. Creation stops silently once the store is full.
// Returns the number of bodies created.
func (s *Simulation) PopulateGroup(id GroupID) int {
	if !id.Valid() {
		return 0
	}
	s.store.removeGroup(id)

	cfg := s.store.Group(id)
	created := 0
	for range cfg.Count {
		b := s.store.append()
		if b == nil {
			break
		}
		b.Radius = cfg.Radius
		b.InvMass = 1
		b.Restitution = cfg.Restitution
		b.PopChance = cfg.PopChance
		b.Group = int(id)
		s.Respawn(b)
		created++
	}
	return created
}

// Rebuild drops every body and repopulates all groups in group order.
func (s *Simulation) Rebuild() {
	s.store.reset()
	for id := range GroupID(GroupCount) {
		s.PopulateGroup(id)
	}
}

// Respawn places a body fully below the arena with its group's rise
// velocity plus a little horizontal jitter. Draws three random values in
// order: x, extra depth, jitter.
func (s *Simulation) Respawn(b *physics.Body) {
	bounds := s.store.Bounds()
	rise := s.store.Group(GroupID(b.Group)).RiseSpeed
	r := b.Radius

	x := s.rng.Range(bounds.MinX+r, bounds.MaxX-r)
	y := bounds.MaxY + r + config.SpawnBaseOffset + s.rng.Float64()*config.SpawnExtraOffset
	jitter := (s.rng.Float64() - 0.5) * rise * config.JitterFactor

	b.Pos[0], b.Pos[1] = x, y
	b.Vel[0], b.Vel[1] = jitter, -rise
	b.Acc[0], b.Acc[1] = 0, 0
	b.SpawnCooldown = config.SpawnCooldownFrames
	b.Eliminated = false
}

// offTop reports whether a body has risen past the recycle margin above the arena.
func offTop(b *physics.Body, bounds physics.Bounds) bool {
	return b.Bottom() <= bounds.MinY-config.OffArenaMargin
}

// Recycle respawns every eliminated body first, then every body that has
// floated off the top. Returns the number of respawns.
func (s *Simulation) Recycle() int {
	bodies := s.store.Bodies()
	bounds := s.store.Bounds()

	n := 0
	for i := range bodies {
		if bodies[i].Eliminated {
			s.Respawn(&bodies[i])
			n++
		}
	}
	for i := range bodies {
		if offTop(&bodies[i], bounds) {
			s.Respawn(&bodies[i])
			n++
		}
	}
	return n
}

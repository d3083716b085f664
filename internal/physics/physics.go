// Package physics provides the rigid circle integrator, wall handling and
// pairwise collision resolution for the bubble simulation.
package physics

import "github.com/go-gl/mathgl/mgl64"

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b mgl64.Vec2) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

// CirclesOverlap checks if two circles overlap or touch.
func CirclesOverlap(a mgl64.Vec2, ra float64, b mgl64.Vec2, rb float64) bool {
	minDist := ra + rb
	return DistanceSquared(a, b) <= minDist*minDist
}

// Bounds is the arena rectangle. Bodies are confined horizontally only;
// the vertical extent is used for visibility culling and respawn placement.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Width returns the horizontal extent of the arena.
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent of the arena.
func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

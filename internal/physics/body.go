package physics

import "github.com/go-gl/mathgl/mgl64"

// Body is one simulated circle. Y grows downward, so rising bodies have a
// negative Y velocity.
type Body struct {
	Pos mgl64.Vec2 // Center position
	Vel mgl64.Vec2 // Velocity in units/sec
	Acc mgl64.Vec2 // Constant acceleration in units/sec²

	Radius      float64
	InvMass     float64 // 0 => immovable
	Restitution float64 // 0..1
	PopChance   float64 // 0..1 chance to pop on collision

	Group         int  // Owning configuration group
	SpawnCooldown int  // Ticks remaining during which the body ignores collisions
	Eliminated    bool // Popped; waiting to be respawned
}

// IsDynamic reports whether the body responds to forces and impulses.
func (b *Body) IsDynamic() bool {
	return b.InvMass > 0
}

// IsCoolingDown reports whether the body is still in its post-spawn grace period.
func (b *Body) IsCoolingDown() bool {
	return b.SpawnCooldown > 0
}

// Top returns the y coordinate of the body's upper edge.
func (b *Body) Top() float64 {
	return b.Pos.Y() - b.Radius
}

// Bottom returns the y coordinate of the body's lower edge.
func (b *Body) Bottom() float64 {
	return b.Pos.Y() + b.Radius
}

// VisibleVertical reports whether the circle intersects [MinY, MaxY].
func (b *Body) VisibleVertical(bounds Bounds) bool {
	return !(b.Bottom() < bounds.MinY || b.Top() > bounds.MaxY)
}

// MarkEliminated flags the body for respawn on the next lifecycle pass.
func (b *Body) MarkEliminated() {
	b.Eliminated = true
}

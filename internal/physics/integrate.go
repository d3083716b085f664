package physics

import "github.com/go-gl/mathgl/mgl64"

// Integrate performs explicit Euler integration for every live dynamic body,
// v = v + (a+g)*dt; p = p + v*dt, then resolves the horizontal walls and
// counts down spawn cooldowns. A non-positive dt is a no-op.
func Integrate(bodies []Body, dt, gravityY float64, bounds Bounds) {
	if dt <= 0 || len(bodies) == 0 {
		return
	}

	gravity := mgl64.Vec2{0, gravityY}
	for i := range bodies {
		b := &bodies[i]

		if b.IsDynamic() && !b.Eliminated {
			b.Vel = b.Vel.Add(b.Acc.Add(gravity).Mul(dt))
			b.Pos = b.Pos.Add(b.Vel.Mul(dt))
		}

		ReflectWallsX(b, bounds)

		if b.SpawnCooldown > 0 {
			b.SpawnCooldown--
		}
	}
}

// ReflectWallsX clamps a body inside [MinX+r, MaxX-r] and reflects its x
// velocity scaled by restitution. The velocity only flips while the body is
// still moving into the wall, so a body resting against a wall with zero
// restitution is not reflected twice. Returns true if the body touched a wall.
func ReflectWallsX(b *Body, bounds Bounds) bool {
	r := b.Radius
	x := b.Pos.X()
	vx := b.Vel.X()

	switch {
	case x-r < bounds.MinX:
		b.Pos[0] = bounds.MinX + r
		if vx < 0 {
			b.Vel[0] = -vx * b.Restitution
		}
		return true
	case x+r > bounds.MaxX:
		b.Pos[0] = bounds.MaxX - r
		if vx > 0 {
			b.Vel[0] = -vx * b.Restitution
		}
		return true
	}
	return false
}

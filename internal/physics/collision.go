package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Degenerate separation guard. Coincident centers have no usable normal, so
// they are pushed apart along +x instead of producing NaNs.
const (
	degenerateDist2  = 0.00001
	degenerateOffset = 0.001
)

// RandomSource supplies uniform values in [0,1) for pop decisions.
type RandomSource interface {
	Float64() float64
}

// ResolveCollisions runs the naive O(n²) circle-circle pass over every
// unordered pair: positional de-penetration, impulse response and the pop
// roll. Returns the number of bodies flagged as eliminated.
//
// Pops only set the Eliminated flag; positions already corrected earlier in
// the pass are left as they are.
func ResolveCollisions(bodies []Body, bounds Bounds, rnd RandomSource) int {
	popped := 0
	for i := 0; i < len(bodies); i++ {
		a := &bodies[i]
		if a.Eliminated {
			continue
		}
		visA := a.VisibleVertical(bounds)

		for j := i + 1; j < len(bodies); j++ {
			if a.Eliminated {
				break // popped by an earlier pair this pass
			}
			b := &bodies[j]
			if b.Eliminated {
				continue
			}

			// Skip collisions when both are offscreen vertically
			if !visA && !b.VisibleVertical(bounds) {
				continue
			}

			if a.IsCoolingDown() || b.IsCoolingDown() {
				continue
			}

			if victim := resolvePair(a, b, rnd); victim != nil {
				victim.MarkEliminated()
				popped++
			}
		}
	}
	return popped
}

// resolvePair separates and bounces one pair. Returns the body to pop, if any.
func resolvePair(a, b *Body, rnd RandomSource) *Body {
	if !CirclesOverlap(a.Pos, a.Radius, b.Pos, b.Radius) {
		return nil
	}

	d := b.Pos.Sub(a.Pos)
	dist2 := DistanceSquared(a.Pos, b.Pos)
	if dist2 <= degenerateDist2 {
		d = mgl64.Vec2{degenerateOffset, 0}
		dist2 = degenerateOffset * degenerateOffset
	}

	rSum := a.Radius + b.Radius

	dist := math.Sqrt(dist2)
	penetration := rSum - dist
	if penetration <= 0 {
		return nil
	}

	invSum := a.InvMass + b.InvMass
	if invSum <= 0 {
		return nil // both static
	}

	// Normal from a -> b
	n := d.Mul(1 / dist)

	// Positional correction proportional to inverse mass
	if a.InvMass > 0 {
		a.Pos = a.Pos.Sub(n.Mul(a.InvMass / invSum * penetration))
	}
	if b.InvMass > 0 {
		b.Pos = b.Pos.Add(n.Mul(b.InvMass / invSum * penetration))
	}

	applyImpulse(a, b, n, invSum)

	return rollPop(a, b, rnd)
}

// applyImpulse bounces two approaching bodies along the collision normal n
// using the mean restitution. Separating bodies are left alone.
func applyImpulse(a, b *Body, n mgl64.Vec2, invSum float64) {
	velNorm := b.Vel.Sub(a.Vel).Dot(n)
	if velNorm > 0 {
		return
	}

	e := (a.Restitution + b.Restitution) * 0.5
	j := -(1 + e) * velNorm / invSum
	impulse := n.Mul(j)

	if a.InvMass > 0 {
		a.Vel = a.Vel.Sub(impulse.Mul(a.InvMass))
	}
	if b.InvMass > 0 {
		b.Vel = b.Vel.Add(impulse.Mul(b.InvMass))
	}
}

// rollPop draws exactly one value and, with the pair's mean pop chance,
// picks the smaller body as the victim (the first one on a tie).
func rollPop(a, b *Body, rnd RandomSource) *Body {
	if rnd == nil {
		return nil
	}
	chance := (a.PopChance + b.PopChance) * 0.5
	if rnd.Float64() >= chance {
		return nil
	}
	if a.Radius <= b.Radius {
		return a
	}
	return b
}

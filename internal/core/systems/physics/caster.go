package physics

import "github.com/zeusync/raysense/internal/core/observability/metrics"

// Hit is the result of a Caster query.
type Hit struct {
	Hit        bool
	Fraction   float32
	Normal     Vec3
	Collidable Collidable
}

// Caster is the single entry point into the physics world for ray probes.
type Caster struct {
	metrics metrics.Collector
}

// NewCaster creates a Caster reporting to m. A nil m disables reporting.
func NewCaster(m metrics.Collector) *Caster {
	if m == nil {
		m = metrics.Nop()
	}
	return &Caster{metrics: m}
}

// Cast casts the world-space segment from -> to in the physics world of the
// subject's region, using the subject's collision filter. It never touches
// the world when an input is non-finite or no world can be resolved.
func (c *Caster) Cast(s Subject, from, to Vec3) Hit {
	if s == nil || !Finite(from) || !Finite(to) {
		c.metrics.RayCast(metrics.CastUnavailable)
		return Hit{}
	}
	region := s.Region()
	if region == nil {
		c.metrics.RayCast(metrics.CastUnavailable)
		return Hit{}
	}
	world := region.PhysicsWorld()
	if world == nil {
		c.metrics.RayCast(metrics.CastUnavailable)
		return Hit{}
	}

	out := castLocked(world, RayInput{FilterInfo: s.CollisionFilterInfo()}, from, to)
	if !out.Hit {
		c.metrics.RayCast(metrics.CastMiss)
		return Hit{}
	}
	c.metrics.RayCast(metrics.CastHit)
	return Hit{
		Hit:        true,
		Fraction:   out.Fraction,
		Normal:     out.Normal,
		Collidable: out.Collidable,
	}
}

func castLocked(world World, in RayInput, from, to Vec3) RayOutput {
	world.RLock()
	defer world.RUnlock()
	scale := world.Scale()
	in.From = from.Mul(scale)
	in.To = to.Mul(scale)
	return world.CastRay(in)
}

// CastWater is Cast that also reports whether the hit shape is on the water layer.
func (c *Caster) CastWater(s Subject, from, to Vec3) (Hit, bool) {
	h := c.Cast(s, from, to)
	if !h.Hit || h.Collidable == nil {
		return h, false
	}
	return h, h.Collidable.Layer() == LayerWater
}

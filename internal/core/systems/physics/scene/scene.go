// Package scene is an analytic physics world made of planes and boxes.
// It backs tests and the demo binary where no engine physics is available.
package scene

import (
	"math"
	"sync"

	"github.com/zeusync/raysense/internal/core/systems/physics"
)

// DefaultScale is the usual world-to-simulation unit scale.
const DefaultScale float32 = 0.0142875

const epsilon = 1e-8

var _ physics.World = (*World)(nil)

// Ref is a placed world object.
type Ref struct {
	Form  physics.FormType
	Model string
}

func (r *Ref) FormType() physics.FormType { return r.Form }
func (r *Ref) ModelPath() string          { return r.Model }

// Shape carries the collision attributes shared by every primitive.
type Shape struct {
	CollisionLayer physics.CollisionLayer
	MaterialTag    physics.MaterialID
	Ref            *Ref
}

func (s *Shape) Layer() physics.CollisionLayer { return s.CollisionLayer }
func (s *Shape) Material() physics.MaterialID  { return s.MaterialTag }

func (s *Shape) Reference() physics.Object {
	if s.Ref == nil {
		return nil
	}
	return s.Ref
}

// Plane is an infinite plane through Point with the given Normal.
type Plane struct {
	Point  physics.Vec3
	Normal physics.Vec3
	Shape
}

// Box is an axis-aligned box.
type Box struct {
	Min, Max physics.Vec3
	Shape
}

// World holds the primitives in world units and answers casts given in
// simulation units.
type World struct {
	mu     sync.RWMutex
	scale  float32
	planes []*Plane
	boxes  []*Box
}

// New creates an empty world. A non-positive scale selects DefaultScale.
func New(scale float32) *World {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &World{scale: scale}
}

// Ground adds a horizontal plane at height z.
func (w *World) Ground(z float32, layer physics.CollisionLayer, material physics.MaterialID) *Plane {
	return w.AddPlane(&Plane{
		Point:  physics.Vec3{0, 0, z},
		Normal: physics.Vec3{0, 0, 1},
		Shape:  Shape{CollisionLayer: layer, MaterialTag: material},
	})
}

func (w *World) AddPlane(p *Plane) *Plane {
	p.Normal = p.Normal.Normalize()
	w.mu.Lock()
	w.planes = append(w.planes, p)
	w.mu.Unlock()
	return p
}

func (w *World) AddBox(b *Box) *Box {
	w.mu.Lock()
	w.boxes = append(w.boxes, b)
	w.mu.Unlock()
	return b
}

// Clear removes every primitive.
func (w *World) Clear() {
	w.mu.Lock()
	w.planes, w.boxes = nil, nil
	w.mu.Unlock()
}

func (w *World) RLock()         { w.mu.RLock() }
func (w *World) RUnlock()       { w.mu.RUnlock() }
func (w *World) Scale() float32 { return w.scale }

// CastRay returns the closest hit along the segment. The caller holds the read lock.
func (w *World) CastRay(in physics.RayInput) physics.RayOutput {
	inv := 1 / w.scale
	from := in.From.Mul(inv)
	dir := in.To.Mul(inv).Sub(from)

	best := physics.RayOutput{Fraction: float32(math.Inf(1))}
	for _, p := range w.planes {
		if t, n, ok := intersectPlane(p, from, dir); ok && t < best.Fraction {
			best = physics.RayOutput{Hit: true, Fraction: t, Normal: n, Collidable: &p.Shape}
		}
	}
	for _, b := range w.boxes {
		if t, n, ok := intersectBox(b, from, dir); ok && t < best.Fraction {
			best = physics.RayOutput{Hit: true, Fraction: t, Normal: n, Collidable: &b.Shape}
		}
	}
	if !best.Hit {
		return physics.RayOutput{}
	}
	return best
}

func intersectPlane(p *Plane, from, dir physics.Vec3) (float32, physics.Vec3, bool) {
	denom := p.Normal.Dot(dir)
	if math.Abs(float64(denom)) < epsilon {
		return 0, physics.Vec3{}, false
	}
	t := p.Normal.Dot(p.Point.Sub(from)) / denom
	if t < 0 || t > 1 {
		return 0, physics.Vec3{}, false
	}
	n := p.Normal
	if denom > 0 {
		n = n.Mul(-1)
	}
	return t, n, true
}

// intersectBox is the slab test. Segments starting inside a box do not hit it.
func intersectBox(b *Box, from, dir physics.Vec3) (float32, physics.Vec3, bool) {
	tMin, tMax := float32(0), float32(1)
	axis := -1
	var sign float32

	for i := 0; i < 3; i++ {
		if math.Abs(float64(dir[i])) < epsilon {
			if from[i] < b.Min[i] || from[i] > b.Max[i] {
				return 0, physics.Vec3{}, false
			}
			continue
		}
		t1 := (b.Min[i] - from[i]) / dir[i]
		t2 := (b.Max[i] - from[i]) / dir[i]
		s := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1
		}
		if t1 > tMin {
			tMin, axis, sign = t1, i, s
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, physics.Vec3{}, false
		}
	}
	if axis < 0 {
		return 0, physics.Vec3{}, false
	}

	var n physics.Vec3
	n[axis] = sign
	return tMin, n, true
}

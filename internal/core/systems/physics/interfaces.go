package physics

import "github.com/go-gl/mathgl/mgl32"

// Vec3 and Mat3 are the engine's world-space vector and rotation types.
type (
	Vec3 = mgl32.Vec3
	Mat3 = mgl32.Mat3
)

// World is a physics world that can be queried with rays. It is owned and
// mutated by the simulation, so readers must hold the read lock while casting.
type World interface {
	RLock()
	RUnlock()

	// Scale converts world units into simulation units.
	Scale() float32

	// CastRay casts a segment given in simulation units.
	CastRay(in RayInput) RayOutput
}

// RayInput is a segment cast in simulation units.
type RayInput struct {
	From       Vec3
	To         Vec3
	FilterInfo uint32
}

// RayOutput is the closest hit along a RayInput segment.
type RayOutput struct {
	Hit        bool
	Fraction   float32
	Normal     Vec3
	Collidable Collidable
}

// Collidable is the physics shape that was hit.
type Collidable interface {
	Layer() CollisionLayer
	Material() MaterialID
	// Reference returns the world object backing the shape, or nil.
	Reference() Object
}

// Object is the base object of a placed world reference.
type Object interface {
	FormType() FormType
	ModelPath() string
}

// Region is the loaded area that contains an agent.
type Region interface {
	// PhysicsWorld returns nil when the region has no physics world attached.
	PhysicsWorld() World
	// WaterHeight reports the water surface height at pos, if the region has water.
	WaterHeight(pos Vec3) (float32, bool)
	// LandMaterial reports the terrain material at pos.
	LandMaterial(pos Vec3) MaterialID
	// SubmergedLevel reports how deep an actor standing at pos is in water, 0..1.
	SubmergedLevel(pos Vec3) float32
}

// Subject is anything that casts rays from inside a region.
type Subject interface {
	Region() Region
	CollisionFilterInfo() uint32
}

// CharController is the movement controller of an actor.
type CharController interface {
	// SoundMaterial is the footstep material reported by the controller.
	SoundMaterial() MaterialID
	// SurfaceVelocity is the velocity of the surface the actor stands on.
	SurfaceVelocity() Vec3
	LinearVelocity() Vec3
	SetLinearVelocity(v Vec3)
}

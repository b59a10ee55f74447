package sensing

import "github.com/zeusync/raysense/internal/core/systems/physics"

// Agent is the controlled actor as seen by the engine.
type Agent interface {
	physics.Subject

	Position() physics.Vec3
	// Yaw is the heading in radians.
	Yaw() float32
	// Rotation is the world rotation of the actor's 3D root; false when not loaded.
	Rotation() (physics.Mat3, bool)

	Is3DLoaded() bool
	IsDead() bool
	IsInKillMove() bool
	IsSwimming() bool
	IsOnMount() bool
	IsSprinting() bool
	IsInMidair() bool

	// LinearVelocity is the engine reported velocity.
	LinearVelocity() physics.Vec3
	// Controller may be nil.
	Controller() physics.CharController
}

// SurfaceType is the terrain class under the agent.
type SurfaceType uint32

const (
	SurfaceNone SurfaceType = iota
	SurfaceDefault
	SurfaceWater
	SurfaceSnow
	SurfaceIce
	SurfaceGrass
	SurfaceWood
	SurfaceStone
	SurfaceDirt
	SurfaceSand
	SurfaceGravel
)

var surfaceNames = [...]string{
	SurfaceNone:    "None",
	SurfaceDefault: "Default",
	SurfaceWater:   "Water",
	SurfaceSnow:    "Snow",
	SurfaceIce:     "Ice",
	SurfaceGrass:   "Grass",
	SurfaceWood:    "Wood",
	SurfaceStone:   "Stone",
	SurfaceDirt:    "Dirt",
	SurfaceSand:    "Sand",
	SurfaceGravel:  "Gravel",
}

func (s SurfaceType) String() string {
	if int(s) < len(surfaceNames) {
		return surfaceNames[s]
	}
	return "Unknown"
}

// PlatformType tells whether the foothold moves.
type PlatformType uint32

const (
	PlatformNone PlatformType = iota
	PlatformMoving
)

func (p PlatformType) String() string {
	if p == PlatformMoving {
		return "Moving"
	}
	return "None"
}

// ObjectType is the coarse class of a hit object.
type ObjectType uint32

const (
	ObjectNone ObjectType = iota
	ObjectSolid
	ObjectWater
	ObjectSnow
	ObjectIce
	ObjectFurniture
)

var objectNames = [...]string{
	ObjectNone:      "None",
	ObjectSolid:     "Solid",
	ObjectWater:     "Water",
	ObjectSnow:      "Snow",
	ObjectIce:       "Ice",
	ObjectFurniture: "Furniture",
}

func (o ObjectType) String() string {
	if int(o) < len(objectNames) {
		return objectNames[o]
	}
	return "Unknown"
}

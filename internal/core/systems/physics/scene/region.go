package scene

import "github.com/zeusync/raysense/internal/core/systems/physics"

// ActorHeight is the height used to turn water depth into a submerged level.
const ActorHeight float32 = 128

var _ physics.Region = (*Region)(nil)

// Region is a cell with an optional physics world and an optional flat water level.
type Region struct {
	World      *World
	HasWater   bool
	WaterLevel float32
	Land       physics.MaterialID
}

func (r *Region) PhysicsWorld() physics.World {
	if r.World == nil {
		return nil
	}
	return r.World
}

func (r *Region) WaterHeight(physics.Vec3) (float32, bool) {
	return r.WaterLevel, r.HasWater
}

func (r *Region) LandMaterial(physics.Vec3) physics.MaterialID { return r.Land }

func (r *Region) SubmergedLevel(pos physics.Vec3) float32 {
	if !r.HasWater {
		return 0
	}
	level := (r.WaterLevel - pos[2]) / ActorHeight
	switch {
	case level < 0:
		return 0
	case level > 1:
		return 1
	}
	return level
}

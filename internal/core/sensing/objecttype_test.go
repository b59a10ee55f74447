package sensing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeusync/raysense/internal/core/systems/physics"
	"github.com/zeusync/raysense/internal/core/systems/physics/scene"
)

func TestObjectTypeResolve(t *testing.T) {
	catalog := physics.DefaultCatalog()
	catalog.Add(physics.Material{ID: physics.MaterialMetal, Name: "MaterialIceRock"})
	catalog.Add(physics.Material{ID: physics.MaterialGlass, Name: "GlacierShard"})
	catalog.Add(physics.Material{ID: physics.MaterialCloth, Name: "SnowDrift"})
	r := NewObjectTypeResolver(catalog, 15)

	hitOn := func(layer physics.CollisionLayer, material physics.MaterialID, ref *scene.Ref) physics.Hit {
		return physics.Hit{Hit: true, Collidable: &scene.Shape{CollisionLayer: layer, MaterialTag: material, Ref: ref}}
	}
	dry := &scene.Region{}

	tests := []struct {
		name   string
		hit    physics.Hit
		pos    physics.Vec3
		region physics.Region
		want   ObjectType
		water  bool
	}{
		{"miss", physics.Hit{}, physics.Vec3{}, dry, ObjectNone, false},
		{"plain solid", hitOn(physics.LayerStatic, physics.MaterialStone, nil), physics.Vec3{}, dry, ObjectSolid, false},
		{"no collidable", physics.Hit{Hit: true}, physics.Vec3{}, dry, ObjectSolid, false},
		{"no region", hitOn(physics.LayerStatic, physics.MaterialNone, nil), physics.Vec3{}, nil, ObjectSolid, false},
		{"inside water band", hitOn(physics.LayerStatic, physics.MaterialStone, nil), physics.Vec3{0, 0, 110}, &scene.Region{HasWater: true, WaterLevel: 100}, ObjectWater, false},
		{"band edge inside", hitOn(physics.LayerStatic, physics.MaterialStone, nil), physics.Vec3{0, 0, 114}, &scene.Region{HasWater: true, WaterLevel: 100}, ObjectWater, false},
		{"band edge outside", hitOn(physics.LayerStatic, physics.MaterialStone, nil), physics.Vec3{0, 0, 116}, &scene.Region{HasWater: true, WaterLevel: 100}, ObjectSolid, false},
		{"above water band", hitOn(physics.LayerStatic, physics.MaterialStone, nil), physics.Vec3{0, 0, 120}, &scene.Region{HasWater: true, WaterLevel: 100}, ObjectSolid, false},
		{"sentinel water height", hitOn(physics.LayerStatic, physics.MaterialStone, nil), physics.Vec3{0, 0, -30000}, &scene.Region{HasWater: true, WaterLevel: -20000}, ObjectSolid, false},
		{"water layer", hitOn(physics.LayerWater, physics.MaterialNone, nil), physics.Vec3{}, dry, ObjectWater, true},
		{"water form id", hitOn(physics.LayerStatic, physics.MaterialWaterPuddle, nil), physics.Vec3{}, dry, ObjectWater, false},
		{"snow form id", hitOn(physics.LayerStatic, physics.MaterialSnowStairs, nil), physics.Vec3{}, dry, ObjectSnow, false},
		{"ice form id", hitOn(physics.LayerStatic, physics.MaterialIceBroken, nil), physics.Vec3{}, dry, ObjectIce, false},
		{"ice name", hitOn(physics.LayerStatic, physics.MaterialMetal, nil), physics.Vec3{}, dry, ObjectIce, false},
		{"glacier name", hitOn(physics.LayerStatic, physics.MaterialGlass, nil), physics.Vec3{}, dry, ObjectIce, false},
		{"snow name", hitOn(physics.LayerStatic, physics.MaterialCloth, nil), physics.Vec3{}, dry, ObjectSnow, false},
		{"furniture", hitOn(physics.LayerProps, physics.MaterialWood, &scene.Ref{Form: physics.FormFurniture}), physics.Vec3{}, dry, ObjectFurniture, false},
		{"material beats furniture", hitOn(physics.LayerProps, physics.MaterialSnow, &scene.Ref{Form: physics.FormFurniture}), physics.Vec3{}, dry, ObjectSnow, false},
		{"frozen model", hitOn(physics.LayerStatic, physics.MaterialStone, &scene.Ref{Form: physics.FormStatic, Model: `Meshes\Landscape\FrozenRock01.nif`}), physics.Vec3{}, dry, ObjectIce, false},
		{"snow model", hitOn(physics.LayerStatic, physics.MaterialStone, &scene.Ref{Form: physics.FormStatic, Model: "meshes/snowpile.nif"}), physics.Vec3{}, dry, ObjectSnow, false},
		{"plain model", hitOn(physics.LayerStatic, physics.MaterialStone, &scene.Ref{Form: physics.FormStatic, Model: "meshes/rock.nif"}), physics.Vec3{}, dry, ObjectSolid, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.hit, tt.water, tt.pos, tt.region))
		})
	}
}

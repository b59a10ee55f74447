package sensing

import (
	"strings"

	"github.com/zeusync/raysense/internal/core/systems/physics"
)

// Water heights at or below this are treated as no water.
const waterFloor = -10000

// ObjectTypeResolver classifies a single ray hit.
type ObjectTypeResolver struct {
	catalog physics.MaterialCatalog
	band    float32
}

func NewObjectTypeResolver(catalog physics.MaterialCatalog, waterBand float32) *ObjectTypeResolver {
	return &ObjectTypeResolver{catalog: catalog, band: waterBand}
}

// Resolve returns the ObjectType of hit at pos inside region. water reports a
// hit on the water layer, as returned by Caster.CastWater. A miss is None.
func (r *ObjectTypeResolver) Resolve(hit physics.Hit, water bool, pos physics.Vec3, region physics.Region) ObjectType {
	if !hit.Hit {
		return ObjectNone
	}
	if region != nil {
		if h, ok := region.WaterHeight(pos); ok && h > waterFloor && pos[2] < h+r.band {
			return ObjectWater
		}
	}
	if water {
		return ObjectWater
	}
	if hit.Collidable == nil {
		return ObjectSolid
	}

	if t, ok := r.byMaterial(hit.Collidable.Material()); ok {
		return t
	}

	if ref := hit.Collidable.Reference(); ref != nil {
		if ref.FormType() == physics.FormFurniture {
			return ObjectFurniture
		}
		if t, ok := byModelPath(ref.ModelPath()); ok {
			return t
		}
	}
	return ObjectSolid
}

func (r *ObjectTypeResolver) byMaterial(id physics.MaterialID) (ObjectType, bool) {
	if id == physics.MaterialNone || r.catalog == nil {
		return ObjectNone, false
	}
	m, ok := r.catalog.Material(id)
	if !ok {
		return ObjectNone, false
	}

	switch m.FormID {
	case physics.FormIDWater, physics.FormIDWaterPuddle:
		return ObjectWater, true
	case physics.FormIDSnow, physics.FormIDSnowStairs:
		return ObjectSnow, true
	case physics.FormIDIce, physics.FormIDIceForm, physics.FormIDGlacier, physics.FormIDIceBroken:
		return ObjectIce, true
	}

	name := strings.ToLower(m.Name)
	switch {
	case strings.Contains(name, "snow"):
		return ObjectSnow, true
	case strings.Contains(name, "ice"), strings.Contains(name, "glacier"):
		return ObjectIce, true
	}
	return ObjectNone, false
}

func byModelPath(path string) (ObjectType, bool) {
	if path == "" {
		return ObjectNone, false
	}
	p := strings.ToLower(path)
	switch {
	case strings.Contains(p, "glacier"), strings.Contains(p, "ice"), strings.Contains(p, "frozen"):
		return ObjectIce, true
	case strings.Contains(p, "snow"):
		return ObjectSnow, true
	}
	return ObjectNone, false
}

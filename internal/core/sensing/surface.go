package sensing

import (
	"github.com/zeusync/raysense/internal/core/systems/physics"
)

// surfaceFacts is everything the surface rules look at, gathered once.
type surfaceFacts struct {
	swimming  bool
	hit       bool
	layer     physics.CollisionLayer
	probe     physics.MaterialID
	sound     physics.MaterialID
	submerged float32
}

type surfaceRule struct {
	name  string
	match func(c *SurfaceClassifier, f *surfaceFacts) (SurfaceType, bool)
}

// surfaceRules are evaluated in order; the first match wins.
var surfaceRules = []surfaceRule{
	{"swimming", func(_ *SurfaceClassifier, f *surfaceFacts) (SurfaceType, bool) {
		return SurfaceWater, f.swimming
	}},
	{"sound_water", func(_ *SurfaceClassifier, f *surfaceFacts) (SurfaceType, bool) {
		return SurfaceWater, isWaterMaterial(f.sound)
	}},
	{"ice", func(_ *SurfaceClassifier, f *surfaceFacts) (SurfaceType, bool) {
		return SurfaceIce, isIceMaterial(f.probe) || isIceMaterial(f.sound)
	}},
	{"submerged", func(c *SurfaceClassifier, f *surfaceFacts) (SurfaceType, bool) {
		return SurfaceWater, f.submerged > c.cfg.SubmergedThreshold
	}},
	{"material", func(_ *SurfaceClassifier, f *surfaceFacts) (SurfaceType, bool) {
		m := f.probe
		if m == physics.MaterialNone {
			m = f.sound
		}
		t, ok := materialSurfaces[m]
		return t, ok
	}},
	{"layer", func(_ *SurfaceClassifier, f *surfaceFacts) (SurfaceType, bool) {
		return SurfaceWood, f.hit && (f.layer == physics.LayerTrees || f.layer == physics.LayerProps)
	}},
}

var materialSurfaces = map[physics.MaterialID]SurfaceType{
	physics.MaterialStone:         SurfaceStone,
	physics.MaterialStoneHeavy:    SurfaceStone,
	physics.MaterialStoneStairs:   SurfaceStone,
	physics.MaterialStoneBroken:   SurfaceStone,
	physics.MaterialBoulderLarge:  SurfaceStone,
	physics.MaterialBoulderMedium: SurfaceStone,
	physics.MaterialBoulderSmall:  SurfaceStone,
	physics.MaterialGravel:        SurfaceGravel,
	physics.MaterialDirt:          SurfaceDirt,
	physics.MaterialMud:           SurfaceDirt,
	physics.MaterialSand:          SurfaceSand,
	physics.MaterialGrass:         SurfaceGrass,
	physics.MaterialSnow:          SurfaceSnow,
	physics.MaterialSnowStairs:    SurfaceSnow,
	physics.MaterialIce:           SurfaceIce,
	physics.MaterialIceForm:       SurfaceIce,
	physics.MaterialGlacier:       SurfaceIce,
	physics.MaterialIceBroken:     SurfaceIce,
	physics.MaterialWater:         SurfaceWater,
	physics.MaterialWaterPuddle:   SurfaceWater,
	physics.MaterialWood:          SurfaceWood,
	physics.MaterialWoodHeavy:     SurfaceWood,
	physics.MaterialWoodLight:     SurfaceWood,
	physics.MaterialWoodStairs:    SurfaceWood,
	physics.MaterialBarrel:        SurfaceWood,
	physics.MaterialBasket:        SurfaceWood,
	physics.MaterialWheel:         SurfaceWood,
}

func isWaterMaterial(id physics.MaterialID) bool {
	return id == physics.MaterialWater || id == physics.MaterialWaterPuddle
}

func isIceMaterial(id physics.MaterialID) bool {
	return id == physics.MaterialIce || id == physics.MaterialIceForm
}

// SurfaceClassifier resolves the surface under the agent and the type of
// objects around it.
type SurfaceClassifier struct {
	caster  *physics.Caster
	cfg     *Config
	objects *ObjectTypeResolver
}

func NewSurfaceClassifier(caster *physics.Caster, cfg *Config, catalog physics.MaterialCatalog) *SurfaceClassifier {
	return &SurfaceClassifier{
		caster:  caster,
		cfg:     cfg,
		objects: NewObjectTypeResolver(catalog, cfg.WaterBand),
	}
}

// Classify returns the surface and platform type at origin.
func (c *SurfaceClassifier) Classify(a Agent, origin physics.Vec3) (SurfaceType, PlatformType) {
	f := c.facts(a, origin)
	surface := SurfaceDefault
	for _, rule := range surfaceRules {
		if t, ok := rule.match(c, &f); ok {
			surface = t
			break
		}
	}
	return surface, c.Platform(a)
}

// Platform reports Moving when the controller's surface velocity exceeds
// MovingPlatformSpeed.
func (c *SurfaceClassifier) Platform(a Agent) PlatformType {
	ctrl := a.Controller()
	if ctrl == nil {
		return PlatformNone
	}
	v := ctrl.SurfaceVelocity()
	if physics.Finite(v) && v.Len() > c.cfg.MovingPlatformSpeed {
		return PlatformMoving
	}
	return PlatformNone
}

func (c *SurfaceClassifier) facts(a Agent, origin physics.Vec3) surfaceFacts {
	f := surfaceFacts{swimming: a.IsSwimming()}
	if f.swimming {
		return f
	}

	from := origin.Add(physics.Vec3{0, 0, c.cfg.SurfaceProbeUp})
	to := origin.Sub(physics.Vec3{0, 0, c.cfg.SurfaceProbeDown})
	region := a.Region()

	if hit := c.caster.Cast(a, from, to); hit.Hit && hit.Collidable != nil {
		f.hit = true
		f.layer = hit.Collidable.Layer()
		if (f.layer == physics.LayerTerrain || f.layer == physics.LayerGround) && region != nil {
			f.probe = region.LandMaterial(physics.Lerp(from, to, hit.Fraction))
		} else {
			f.probe = hit.Collidable.Material()
		}
	}

	if ctrl := a.Controller(); ctrl != nil {
		f.sound = ctrl.SoundMaterial()
	}
	if region != nil {
		f.submerged = region.SubmergedLevel(origin)
	}
	return f
}

// ObstacleType casts TypeProbeDistance along dir at TypeProbeHeight and
// classifies whatever it hits.
func (c *SurfaceClassifier) ObstacleType(s physics.Subject, origin, dir physics.Vec3) ObjectType {
	from := origin.Add(physics.Vec3{0, 0, c.cfg.TypeProbeHeight})
	to := from.Add(dir.Mul(c.cfg.TypeProbeDistance))
	hit, water := c.caster.CastWater(s, from, to)
	if !hit.Hit {
		return ObjectNone
	}
	var region physics.Region
	if s != nil {
		region = s.Region()
	}
	return c.objects.Resolve(hit, water, physics.Lerp(from, to, hit.Fraction), region)
}

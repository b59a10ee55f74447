package physics

import "strings"

// CollisionLayer is the collision layer of a shape.
type CollisionLayer uint32

const (
	LayerUnidentified  CollisionLayer = 0
	LayerStatic        CollisionLayer = 1
	LayerAnimStatic    CollisionLayer = 2
	LayerTransparent   CollisionLayer = 3
	LayerClutter       CollisionLayer = 4
	LayerWeapon        CollisionLayer = 5
	LayerProjectile    CollisionLayer = 6
	LayerSpell         CollisionLayer = 7
	LayerBiped         CollisionLayer = 8
	LayerTrees         CollisionLayer = 9
	LayerProps         CollisionLayer = 10
	LayerWater         CollisionLayer = 11
	LayerTrigger       CollisionLayer = 12
	LayerTerrain       CollisionLayer = 13
	LayerTrap          CollisionLayer = 14
	LayerNonCollidable CollisionLayer = 15
	LayerCloudTrap     CollisionLayer = 16
	LayerGround        CollisionLayer = 17
)

// FormType is the coarse kind of a base object.
type FormType uint8

const (
	FormNone FormType = iota
	FormStatic
	FormMovableStatic
	FormTree
	FormFurniture
	FormContainer
	FormActivator
	FormDoor
	FormActor
)

// MaterialID identifies a material tag attached to a shape, the terrain or
// a footstep sound.
type MaterialID uint32

const (
	MaterialNone MaterialID = iota
	MaterialStone
	MaterialStoneHeavy
	MaterialStoneStairs
	MaterialStoneBroken
	MaterialBoulderLarge
	MaterialBoulderMedium
	MaterialBoulderSmall
	MaterialGravel
	MaterialDirt
	MaterialMud
	MaterialSand
	MaterialGrass
	MaterialSnow
	MaterialSnowStairs
	MaterialIce
	MaterialIceForm
	MaterialGlacier
	MaterialIceBroken
	MaterialWater
	MaterialWaterPuddle
	MaterialWood
	MaterialWoodHeavy
	MaterialWoodLight
	MaterialWoodStairs
	MaterialBarrel
	MaterialBasket
	MaterialWheel
	MaterialCloth
	MaterialMetal
	MaterialGlass
)

// Material is the resolved description of a MaterialID.
type Material struct {
	ID     MaterialID
	FormID uint32
	Name   string
}

// Known material form identifiers.
const (
	FormIDSnow        uint32 = 0x00012F45
	FormIDSnowStairs  uint32 = 0x00052ED0
	FormIDIce         uint32 = 0x00012F47
	FormIDIceForm     uint32 = 0x000D9B1E
	FormIDGlacier     uint32 = 0x0006A0E2
	FormIDIceBroken   uint32 = 0x00012F4C
	FormIDWater       uint32 = 0x00012F40
	FormIDWaterPuddle uint32 = 0x000D6C11
)

// MaterialCatalog resolves material tags.
type MaterialCatalog interface {
	Material(id MaterialID) (Material, bool)
}

// Catalog is a map backed MaterialCatalog.
type Catalog map[MaterialID]Material

func (c Catalog) Material(id MaterialID) (Material, bool) {
	m, ok := c[id]
	return m, ok
}

// Add registers m, replacing any material with the same ID.
func (c Catalog) Add(m Material) { c[m.ID] = m }

// Lookup finds a material by case-insensitive name.
func (c Catalog) Lookup(name string) (Material, bool) {
	for _, m := range c {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Material{}, false
}

// DefaultCatalog returns the vanilla material set. Form IDs are only known
// for the water, snow and ice families; other entries carry a zero FormID.
func DefaultCatalog() Catalog {
	c := Catalog{}
	for _, m := range []Material{
		{ID: MaterialStone, Name: "MaterialStone"},
		{ID: MaterialStoneHeavy, Name: "MaterialStoneHeavy"},
		{ID: MaterialStoneStairs, Name: "MaterialStoneStairs"},
		{ID: MaterialStoneBroken, Name: "MaterialStoneBroken"},
		{ID: MaterialBoulderLarge, Name: "MaterialBoulderLarge"},
		{ID: MaterialBoulderMedium, Name: "MaterialBoulderMedium"},
		{ID: MaterialBoulderSmall, Name: "MaterialBoulderSmall"},
		{ID: MaterialGravel, Name: "MaterialGravel"},
		{ID: MaterialDirt, Name: "MaterialDirt"},
		{ID: MaterialMud, Name: "MaterialMud"},
		{ID: MaterialSand, Name: "MaterialSand"},
		{ID: MaterialGrass, Name: "MaterialGrass"},
		{ID: MaterialSnow, FormID: FormIDSnow, Name: "MaterialSnow"},
		{ID: MaterialSnowStairs, FormID: FormIDSnowStairs, Name: "MaterialSnowStairs"},
		{ID: MaterialIce, FormID: FormIDIce, Name: "MaterialIce"},
		{ID: MaterialIceForm, FormID: FormIDIceForm, Name: "MaterialIceForm"},
		{ID: MaterialGlacier, FormID: FormIDGlacier, Name: "MaterialGlacier"},
		{ID: MaterialIceBroken, FormID: FormIDIceBroken, Name: "MaterialIceBroken"},
		{ID: MaterialWater, FormID: FormIDWater, Name: "MaterialWater"},
		{ID: MaterialWaterPuddle, FormID: FormIDWaterPuddle, Name: "MaterialWaterPuddle"},
		{ID: MaterialWood, Name: "MaterialWood"},
		{ID: MaterialWoodHeavy, Name: "MaterialWoodHeavy"},
		{ID: MaterialWoodLight, Name: "MaterialWoodLight"},
		{ID: MaterialWoodStairs, Name: "MaterialWoodStairs"},
		{ID: MaterialBarrel, Name: "MaterialBarrel"},
		{ID: MaterialBasket, Name: "MaterialBasket"},
		{ID: MaterialWheel, Name: "MaterialWheel"},
		{ID: MaterialCloth, Name: "MaterialCloth"},
		{ID: MaterialMetal, Name: "MaterialMetal"},
		{ID: MaterialGlass, Name: "MaterialGlass"},
	} {
		c.Add(m)
	}
	return c
}

package sensing

import "github.com/zeusync/raysense/internal/core/state/vars"

// Cache holds the latest sensed values. Writes come from the simulation
// thread; reads are lock free from any goroutine. Fields are independent,
// a reader may see values from different ticks.
type Cache struct {
	frontDrop    vars.AtomicFloat32
	leftDrop     vars.AtomicFloat32
	rightDrop    vars.AtomicFloat32
	playerHeight vars.AtomicFloat32
	vault        vars.AtomicFloat32

	wallFront      vars.AtomicFloat32
	wallFrontLeft  vars.AtomicFloat32
	wallFrontRight vars.AtomicFloat32
	wallLeft       vars.AtomicFloat32
	wallRight      vars.AtomicFloat32

	surface   vars.AtomicCode[SurfaceType]
	platform  vars.AtomicCode[PlatformType]
	typeFront vars.AtomicCode[ObjectType]
	typeLeft  vars.AtomicCode[ObjectType]
	typeRight vars.AtomicCode[ObjectType]
}

func (c *Cache) FrontDrop() float32      { return c.frontDrop.Get() }
func (c *Cache) LeftDrop() float32       { return c.leftDrop.Get() }
func (c *Cache) RightDrop() float32      { return c.rightDrop.Get() }
func (c *Cache) PlayerHeight() float32   { return c.playerHeight.Get() }
func (c *Cache) Vault() float32          { return c.vault.Get() }
func (c *Cache) WallFront() float32      { return c.wallFront.Get() }
func (c *Cache) WallFrontLeft() float32  { return c.wallFrontLeft.Get() }
func (c *Cache) WallFrontRight() float32 { return c.wallFrontRight.Get() }
func (c *Cache) WallLeft() float32       { return c.wallLeft.Get() }
func (c *Cache) WallRight() float32      { return c.wallRight.Get() }

func (c *Cache) SurfaceType() SurfaceType      { return c.surface.Get() }
func (c *Cache) PlatformType() PlatformType    { return c.platform.Get() }
func (c *Cache) ObstacleTypeFront() ObjectType { return c.typeFront.Get() }
func (c *Cache) ObstacleTypeLeft() ObjectType  { return c.typeLeft.Get() }
func (c *Cache) ObstacleTypeRight() ObjectType { return c.typeRight.Get() }

// IsObstacleDetected reports whether a vaultable obstacle is ahead.
func (c *Cache) IsObstacleDetected() bool { return c.vault.Get() > 0 }

// Version advances whenever any cached value changes.
func (c *Cache) Version() uint64 {
	return c.frontDrop.Version() + c.leftDrop.Version() + c.rightDrop.Version() +
		c.playerHeight.Version() + c.vault.Version() +
		c.wallFront.Version() + c.wallFrontLeft.Version() + c.wallFrontRight.Version() +
		c.wallLeft.Version() + c.wallRight.Version() +
		c.surface.Version() + c.platform.Version() +
		c.typeFront.Version() + c.typeLeft.Version() + c.typeRight.Version()
}

// Snapshot is a copy of every cached value.
type Snapshot struct {
	FrontDrop      float32 `json:"front_drop"`
	LeftDrop       float32 `json:"left_drop"`
	RightDrop      float32 `json:"right_drop"`
	PlayerHeight   float32 `json:"player_height"`
	Vault          float32 `json:"vault"`
	WallFront      float32 `json:"wall_front"`
	WallFrontLeft  float32 `json:"wall_front_l"`
	WallFrontRight float32 `json:"wall_front_r"`
	WallLeft       float32 `json:"wall_left"`
	WallRight      float32 `json:"wall_right"`

	SurfaceType       SurfaceType  `json:"surface_type"`
	PlatformType      PlatformType `json:"platform_type"`
	ObstacleTypeFront ObjectType   `json:"obstacle_type_front"`
	ObstacleTypeLeft  ObjectType   `json:"obstacle_type_left"`
	ObstacleTypeRight ObjectType   `json:"obstacle_type_right"`
}

// Snapshot reads every field once. There is no cross field atomicity.
func (c *Cache) Snapshot() Snapshot {
	return Snapshot{
		FrontDrop:      c.FrontDrop(),
		LeftDrop:       c.LeftDrop(),
		RightDrop:      c.RightDrop(),
		PlayerHeight:   c.PlayerHeight(),
		Vault:          c.Vault(),
		WallFront:      c.WallFront(),
		WallFrontLeft:  c.WallFrontLeft(),
		WallFrontRight: c.WallFrontRight(),
		WallLeft:       c.WallLeft(),
		WallRight:      c.WallRight(),

		SurfaceType:       c.SurfaceType(),
		PlatformType:      c.PlatformType(),
		ObstacleTypeFront: c.ObstacleTypeFront(),
		ObstacleTypeLeft:  c.ObstacleTypeLeft(),
		ObstacleTypeRight: c.ObstacleTypeRight(),
	}
}

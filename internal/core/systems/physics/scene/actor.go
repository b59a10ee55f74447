package scene

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/zeusync/raysense/internal/core/systems/physics"
)

// Controller is a movement controller with settable state.
type Controller struct {
	mu       sync.Mutex
	Sound    physics.MaterialID
	Surface  physics.Vec3
	Velocity physics.Vec3
}

func (c *Controller) SoundMaterial() physics.MaterialID { return c.Sound }
func (c *Controller) SurfaceVelocity() physics.Vec3     { return c.Surface }

func (c *Controller) LinearVelocity() physics.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Velocity
}

func (c *Controller) SetLinearVelocity(v physics.Vec3) {
	c.mu.Lock()
	c.Velocity = v
	c.mu.Unlock()
}

// Actor is a controllable agent standing in a Region. Heading is the yaw in
// radians, zero facing +Y and growing clockwise towards +X.
type Actor struct {
	Pos      physics.Vec3
	Heading  float32
	Velocity physics.Vec3
	Filter   uint32
	Home     physics.Region
	Ctrl     *Controller

	Loaded    bool
	Dead      bool
	KillMove  bool
	Swimming  bool
	Mounted   bool
	Sprinting bool
	Midair    bool

	// Degenerate replaces the rotation with NaNs, as seen mid load.
	Degenerate bool
}

// NewActor returns a loaded actor at pos inside region.
func NewActor(region physics.Region, pos physics.Vec3) *Actor {
	return &Actor{Pos: pos, Home: region, Loaded: true, Ctrl: &Controller{}}
}

func (a *Actor) Region() physics.Region       { return a.Home }
func (a *Actor) CollisionFilterInfo() uint32  { return a.Filter }
func (a *Actor) Position() physics.Vec3       { return a.Pos }
func (a *Actor) Yaw() float32                 { return a.Heading }
func (a *Actor) Is3DLoaded() bool             { return a.Loaded }
func (a *Actor) IsDead() bool                 { return a.Dead }
func (a *Actor) IsInKillMove() bool           { return a.KillMove }
func (a *Actor) IsSwimming() bool             { return a.Swimming }
func (a *Actor) IsOnMount() bool              { return a.Mounted }
func (a *Actor) IsSprinting() bool            { return a.Sprinting }
func (a *Actor) IsInMidair() bool             { return a.Midair }
func (a *Actor) LinearVelocity() physics.Vec3 { return a.Velocity }

func (a *Actor) Controller() physics.CharController {
	if a.Ctrl == nil {
		return nil
	}
	return a.Ctrl
}

// Rotation returns the world rotation with right, forward and up as columns.
func (a *Actor) Rotation() (physics.Mat3, bool) {
	if !a.Loaded {
		return physics.Mat3{}, false
	}
	if a.Degenerate {
		nan := float32(math.NaN())
		return physics.Mat3{nan, nan, nan, nan, nan, nan, nan, nan, nan}, true
	}
	sin, cos := math.Sincos(float64(a.Heading))
	forward := mgl32.Vec3{float32(sin), float32(cos), 0}
	right := mgl32.Vec3{float32(cos), float32(-sin), 0}
	return mgl32.Mat3FromCols(right, forward, mgl32.Vec3{0, 0, 1}), true
}

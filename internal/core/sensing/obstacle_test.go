package sensing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/raysense/internal/core/systems/physics"
	"github.com/zeusync/raysense/internal/core/systems/physics/scene"
)

var forwardFrame = FrameOf(physics.Mat3{}, false)

func newTestObstacles(t *testing.T) *ObstacleProber {
	t.Helper()
	cfg := testConfig()
	return NewObstacleProber(physics.NewCaster(nil), &cfg)
}

func TestObstacleProbeOpenGround(t *testing.T) {
	_, _, actor := flatScene()
	p := newTestObstacles(t)

	r := p.Probe(actor, actor.Pos, forwardFrame, false)
	assert.False(t, r.KneeHit)
	assert.False(t, r.ChestHit)
	assert.False(t, r.VaultDetected())
	assert.Equal(t, float32(0), r.Vault)
	assert.Equal(t, float32(230), r.WallFront)
	assert.Equal(t, float32(230), r.WallFrontLeft)
	assert.Equal(t, float32(230), r.WallFrontRight)
	assert.Equal(t, float32(230), r.WallLeft)
	assert.Equal(t, float32(230), r.WallRight)

	sprint := p.Probe(actor, actor.Pos, forwardFrame, true)
	assert.Equal(t, float32(330), sprint.Detect)
	assert.Equal(t, float32(330), sprint.WallFront)
	assert.Equal(t, float32(330), sprint.WallFrontLeft)
}

func TestObstacleProbeLowWall(t *testing.T) {
	world, _, actor := flatScene()
	addWall(world, 50, 80)
	p := newTestObstacles(t)

	r := p.Probe(actor, actor.Pos, forwardFrame, false)
	require.True(t, r.KneeHit)
	assert.False(t, r.ChestHit)
	assert.True(t, r.VaultDetected())
	assert.Equal(t, float32(50), r.WallFront)
	assert.Equal(t, float32(50), r.Vault)
	// angled rays start 50 behind the agent and subtract it again
	assert.Equal(t, float32(50), r.WallFrontLeft)
	assert.Equal(t, float32(50), r.WallFrontRight)
	assert.Equal(t, float32(230), r.WallLeft)
	assert.Equal(t, float32(230), r.WallRight)
}

func TestObstacleProbeTallWall(t *testing.T) {
	world, _, actor := flatScene()
	addWall(world, 100, 300)
	p := newTestObstacles(t)

	r := p.Probe(actor, actor.Pos, forwardFrame, false)
	assert.True(t, r.KneeHit)
	assert.True(t, r.ChestHit)
	assert.False(t, r.VaultDetected())
	assert.Equal(t, float32(0), r.Vault)
	assert.Equal(t, float32(100), r.WallFront)
}

func TestObstacleProbeOverheadBeam(t *testing.T) {
	world, _, actor := flatScene()
	world.AddBox(&scene.Box{Min: physics.Vec3{-1000, 100, 100}, Max: physics.Vec3{1000, 110, 200}})
	p := newTestObstacles(t)

	r := p.Probe(actor, actor.Pos, forwardFrame, false)
	assert.False(t, r.KneeHit)
	assert.True(t, r.ChestHit)
	assert.False(t, r.VaultDetected())
	assert.Equal(t, float32(0), r.Vault)
	assert.Equal(t, float32(230), r.WallFront)
	assert.Equal(t, float32(230), r.WallFrontLeft)
	assert.Equal(t, float32(230), r.WallFrontRight)
}

func TestObstacleProbeSideWalls(t *testing.T) {
	world, _, actor := flatScene()
	world.AddBox(&scene.Box{Min: physics.Vec3{-80, -500, 0}, Max: physics.Vec3{-70, 500, 300}})
	world.AddBox(&scene.Box{Min: physics.Vec3{120, -500, 0}, Max: physics.Vec3{130, 500, 300}})
	p := newTestObstacles(t)

	r := p.Probe(actor, actor.Pos, forwardFrame, false)
	assert.Equal(t, float32(70), r.WallLeft)
	assert.Equal(t, float32(120), r.WallRight)
	assert.False(t, r.KneeHit)
	assert.Equal(t, float32(230), r.WallFrontLeft)
}

func TestObstacleProbeSlopeIgnored(t *testing.T) {
	world, _, actor := flatScene()
	// 45 degree ramp rising ahead of the agent
	world.AddPlane(&scene.Plane{
		Point:  physics.Vec3{0, 60, 0},
		Normal: physics.Vec3{0, -1, 1},
	})
	p := newTestObstacles(t)

	r := p.Probe(actor, actor.Pos, forwardFrame, false)
	assert.False(t, r.KneeHit)
	assert.False(t, r.ChestHit)
	assert.Equal(t, float32(230), r.WallFront)
	assert.Equal(t, float32(0), r.Vault)
}

func TestObstacleProbeAngledClampsAtZero(t *testing.T) {
	world, _, actor := flatScene()
	addWall(world, 50, 80)
	// a post right beside the agent blocks the left angled ray early
	world.AddBox(&scene.Box{Min: physics.Vec3{-110, -30, 0}, Max: physics.Vec3{-90, -20, 80}})
	p := newTestObstacles(t)

	r := p.Probe(actor, actor.Pos, forwardFrame, false)
	assert.Equal(t, float32(0), r.WallFrontLeft)
	assert.Equal(t, float32(50), r.WallFrontRight)
}

package scene

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/raysense/internal/core/systems/physics"
)

func cast(w *World, from, to physics.Vec3) physics.RayOutput {
	w.RLock()
	defer w.RUnlock()
	return w.CastRay(physics.RayInput{From: from.Mul(w.Scale()), To: to.Mul(w.Scale())})
}

func TestWorld_CastRay(t *testing.T) {
	t.Run("Ground Plane", func(t *testing.T) {
		w := New(0)
		w.Ground(0, physics.LayerTerrain, physics.MaterialGrass)

		out := cast(w, physics.Vec3{0, 0, 100}, physics.Vec3{0, 0, -100})
		require.True(t, out.Hit)
		require.InDelta(t, 0.5, out.Fraction, 1e-5)
		require.Equal(t, physics.Vec3{0, 0, 1}, out.Normal)
		require.Equal(t, physics.LayerTerrain, out.Collidable.Layer())
	})

	t.Run("Parallel Ray Misses Plane", func(t *testing.T) {
		w := New(0)
		w.Ground(0, physics.LayerTerrain, physics.MaterialGrass)

		out := cast(w, physics.Vec3{0, 0, 40}, physics.Vec3{0, 230, 40})
		require.False(t, out.Hit)
	})

	t.Run("Box Face Normal", func(t *testing.T) {
		w := New(1)
		ref := &Ref{Form: physics.FormFurniture, Model: "furniture/bench.nif"}
		w.AddBox(&Box{
			Min:   physics.Vec3{-100, 50, 0},
			Max:   physics.Vec3{100, 70, 80},
			Shape: Shape{CollisionLayer: physics.LayerStatic, MaterialTag: physics.MaterialStone, Ref: ref},
		})

		out := cast(w, physics.Vec3{0, 0, 40}, physics.Vec3{0, 100, 40})
		require.True(t, out.Hit)
		require.InDelta(t, 0.5, out.Fraction, 1e-5)
		require.Equal(t, physics.Vec3{0, -1, 0}, out.Normal)
		require.Equal(t, physics.FormFurniture, out.Collidable.Reference().FormType())

		out = cast(w, physics.Vec3{0, 0, 120}, physics.Vec3{0, 100, 120})
		require.False(t, out.Hit)
	})

	t.Run("Closest Wins", func(t *testing.T) {
		w := New(1)
		w.Ground(0, physics.LayerTerrain, physics.MaterialDirt)
		w.AddBox(&Box{Min: physics.Vec3{-10, -10, 0}, Max: physics.Vec3{10, 10, 30}})

		out := cast(w, physics.Vec3{0, 0, 100}, physics.Vec3{0, 0, -100})
		require.True(t, out.Hit)
		require.InDelta(t, 0.35, out.Fraction, 1e-5)
		require.Equal(t, physics.MaterialNone, out.Collidable.Material())
	})

	t.Run("Slope Normal", func(t *testing.T) {
		w := New(1)
		w.AddPlane(&Plane{Point: physics.Vec3{0, 100, 0}, Normal: physics.Vec3{0, -1, 1}})

		out := cast(w, physics.Vec3{0, 0, 40}, physics.Vec3{0, 300, 40})
		require.True(t, out.Hit)
		require.Greater(t, out.Normal.Z(), float32(0.5))
	})
}

func TestRegion(t *testing.T) {
	r := &Region{}
	require.Nil(t, r.PhysicsWorld())
	require.Zero(t, r.SubmergedLevel(physics.Vec3{}))

	r = &Region{World: New(0), HasWater: true, WaterLevel: 64}
	require.NotNil(t, r.PhysicsWorld())
	require.InDelta(t, 0.5, r.SubmergedLevel(physics.Vec3{0, 0, 0}), 1e-6)
	require.Equal(t, float32(1), r.SubmergedLevel(physics.Vec3{0, 0, -500}))
	require.Equal(t, float32(0), r.SubmergedLevel(physics.Vec3{0, 0, 100}))
}

func TestActor_Rotation(t *testing.T) {
	a := NewActor(&Region{}, physics.Vec3{})

	m, ok := a.Rotation()
	require.True(t, ok)
	forward, right := m.Col(1), m.Col(0)
	require.InDeltaSlice(t, []float32{0, 1, 0}, forward[:], 1e-6)
	require.InDeltaSlice(t, []float32{1, 0, 0}, right[:], 1e-6)

	a.Loaded = false
	_, ok = a.Rotation()
	require.False(t, ok)

	a.Ctrl = nil
	require.Nil(t, a.Controller())
}

package sensing

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/zeusync/raysense/internal/core/systems/physics"
)

func TestFrameOf(t *testing.T) {
	t.Run("columns", func(t *testing.T) {
		right := physics.Vec3{0, -1, 0}
		forward := physics.Vec3{1, 0, 0}
		f := FrameOf(mgl32.Mat3FromCols(right, forward, physics.Vec3{0, 0, 1}), true)
		assert.Equal(t, forward, f.Forward)
		assert.Equal(t, right, f.Right)
		assert.Equal(t, physics.Vec3{0, 1, 0}, f.Left)
	})

	t.Run("no rotation", func(t *testing.T) {
		f := FrameOf(physics.Mat3{}, false)
		assert.Equal(t, physics.Vec3{0, 1, 0}, f.Forward)
		assert.Equal(t, physics.Vec3{1, 0, 0}, f.Right)
		assert.Equal(t, physics.Vec3{-1, 0, 0}, f.Left)
	})

	t.Run("zero matrix", func(t *testing.T) {
		f := FrameOf(physics.Mat3{}, true)
		assert.Equal(t, physics.Vec3{0, 1, 0}, f.Forward)
	})

	t.Run("non-finite", func(t *testing.T) {
		nan := float32(math.NaN())
		m := mgl32.Mat3FromCols(physics.Vec3{1, 0, 0}, physics.Vec3{nan, 1, 0}, physics.Vec3{0, 0, 1})
		f := FrameOf(m, true)
		assert.Equal(t, physics.Vec3{0, 1, 0}, f.Forward)
		assert.Equal(t, physics.Vec3{1, 0, 0}, f.Right)
	})
}

package sensing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/raysense/internal/core/systems/physics"
	"github.com/zeusync/raysense/internal/core/systems/physics/scene"
)

func newTestVerticality(t *testing.T) *VerticalityProber {
	t.Helper()
	cfg := testConfig()
	return NewVerticalityProber(physics.NewCaster(nil), &cfg)
}

func TestProbeDropHeights(t *testing.T) {
	tests := []struct {
		name   string
		ground *float32
		want   float32
	}{
		{"standing on ground", ptr(0), 0},
		{"ledge", ptr(-500), 500},
		{"fractional height rounds", ptr(-123.4), 123},
		{"ground above origin clamps to zero", ptr(50), 0},
		{"beyond cap clamps", ptr(-10500), 10000},
		{"out of reach", ptr(-20000), 10000},
		{"no ground", nil, 10000},
	}
	p := newTestVerticality(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := scene.New(1)
			if tt.ground != nil {
				world.Ground(*tt.ground, physics.LayerStatic, physics.MaterialNone)
			}
			actor := scene.NewActor(&scene.Region{World: world}, physics.Vec3{})

			got := p.ProbeDrop(actor, actor.Pos, physics.Vec3{}, physics.Vec3{}, 0, 0)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, float32(math.Round(float64(got))), got)
			assert.GreaterOrEqual(t, got, float32(0))
			assert.LessOrEqual(t, got, float32(10000))
		})
	}
}

func TestProbeDropNonFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	p := newTestVerticality(t)

	tests := []struct {
		name                     string
		origin, offset, velocity physics.Vec3
		prediction, slant        float32
	}{
		{"origin", physics.Vec3{nan, 0, 0}, physics.Vec3{}, physics.Vec3{}, 0, 0},
		{"offset", physics.Vec3{}, physics.Vec3{0, inf, 0}, physics.Vec3{}, 0, 0},
		{"velocity", physics.Vec3{}, physics.Vec3{}, physics.Vec3{0, 0, nan}, 0.5, 0},
		{"prediction", physics.Vec3{}, physics.Vec3{}, physics.Vec3{}, nan, 0},
		{"slant", physics.Vec3{}, physics.Vec3{0, 80, 0}, physics.Vec3{}, 0, inf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world, subject := newRecordingSubject(physics.RayOutput{})
			got := p.ProbeDrop(subject, tt.origin, tt.offset, tt.velocity, tt.prediction, tt.slant)
			assert.Equal(t, float32(0), got)
			assert.Empty(t, world.inputs)
		})
	}
}

func TestProbeDropRayGeometry(t *testing.T) {
	p := newTestVerticality(t)
	tan15 := float32(math.Tan(15 * math.Pi / 180))

	t.Run("slanted along offset", func(t *testing.T) {
		world, subject := newRecordingSubject(physics.RayOutput{})
		p.ProbeDrop(subject, physics.Vec3{}, physics.Vec3{0, 80, 0}, physics.Vec3{}, 0, 15)

		in := world.lastInput()
		assert.Equal(t, physics.Vec3{0, 80, 100}, in.From)
		assert.InDelta(t, 0, in.To[0], 1e-3)
		assert.InDelta(t, 80+11000*tan15, in.To[1], 0.5)
		assert.InDelta(t, -10900, in.To[2], 1e-3)
		assert.Equal(t, uint32(7), in.FilterInfo)
	})

	t.Run("no slant without lateral offset", func(t *testing.T) {
		for _, offset := range []physics.Vec3{{}, {0, 0.0005, 0}, {0, 0, 50}} {
			world, subject := newRecordingSubject(physics.RayOutput{})
			p.ProbeDrop(subject, physics.Vec3{}, offset, physics.Vec3{}, 0, 15)

			in := world.lastInput()
			assert.Equal(t, in.From[0], in.To[0])
			assert.Equal(t, in.From[1], in.To[1])
		}
	})

	t.Run("prediction displaces the start", func(t *testing.T) {
		world, subject := newRecordingSubject(physics.RayOutput{})
		p.ProbeDrop(subject, physics.Vec3{10, 0, 5}, physics.Vec3{}, physics.Vec3{0, 100, -20}, 0.5, 0)

		in := world.lastInput()
		assert.Equal(t, physics.Vec3{10, 50, 95}, in.From)
		assert.Equal(t, physics.Vec3{10, 50, 95 - 11000}, in.To)
	})

	t.Run("hit fraction", func(t *testing.T) {
		_, subject := newRecordingSubject(physics.RayOutput{Hit: true, Fraction: 0.5})
		got := p.ProbeDrop(subject, physics.Vec3{}, physics.Vec3{}, physics.Vec3{}, 0, 0)
		// ground at 100 - 5500
		require.Equal(t, float32(5400), got)
	})

	t.Run("no world", func(t *testing.T) {
		got := p.ProbeDrop(stubSubject{}, physics.Vec3{}, physics.Vec3{}, physics.Vec3{}, 0, 0)
		assert.Equal(t, float32(10000), got)
	})
}

func ptr(f float32) *float32 { return &f }

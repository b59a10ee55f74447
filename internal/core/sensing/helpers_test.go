package sensing

import (
	"sync"
	"time"

	"github.com/zeusync/raysense/internal/core/observability/metrics"
	"github.com/zeusync/raysense/internal/core/systems/physics"
	"github.com/zeusync/raysense/internal/core/systems/physics/scene"
)

// recordingMetrics keeps every reported event.
type recordingMetrics struct {
	mu        sync.Mutex
	outcomes  []metrics.Outcome
	casts     map[metrics.CastResult]int
	durations int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{casts: map[metrics.CastResult]int{}}
}

func (r *recordingMetrics) TickOutcome(o metrics.Outcome) {
	r.mu.Lock()
	r.outcomes = append(r.outcomes, o)
	r.mu.Unlock()
}

func (r *recordingMetrics) RayCast(c metrics.CastResult) {
	r.mu.Lock()
	r.casts[c]++
	r.mu.Unlock()
}

func (r *recordingMetrics) TickDuration(time.Duration) {
	r.mu.Lock()
	r.durations++
	r.mu.Unlock()
}

func (r *recordingMetrics) last() metrics.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.outcomes) == 0 {
		return ""
	}
	return r.outcomes[len(r.outcomes)-1]
}

func (r *recordingMetrics) totalCasts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.casts {
		n += c
	}
	return n
}

// recordingWorld answers every cast with out and remembers the inputs.
type recordingWorld struct {
	mu     sync.Mutex
	scale  float32
	out    physics.RayOutput
	inputs []physics.RayInput
}

func (w *recordingWorld) RLock()         {}
func (w *recordingWorld) RUnlock()       {}
func (w *recordingWorld) Scale() float32 { return w.scale }

func (w *recordingWorld) CastRay(in physics.RayInput) physics.RayOutput {
	w.mu.Lock()
	w.inputs = append(w.inputs, in)
	w.mu.Unlock()
	return w.out
}

func (w *recordingWorld) lastInput() physics.RayInput {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inputs[len(w.inputs)-1]
}

// flatScene is unit scale ground at z=0 with the actor standing on it.
func flatScene() (*scene.World, *scene.Region, *scene.Actor) {
	world := scene.New(1)
	world.Ground(0, physics.LayerStatic, physics.MaterialNone)
	region := &scene.Region{World: world}
	actor := scene.NewActor(region, physics.Vec3{0, 0, 0})
	return world, region, actor
}

// addWall places a box across the path in front of the actor, from y to
// y+10, up to height top.
func addWall(world *scene.World, y, top float32) *scene.Box {
	return world.AddBox(&scene.Box{
		Min:   physics.Vec3{-1000, y, 0},
		Max:   physics.Vec3{1000, y + 10, top},
		Shape: scene.Shape{CollisionLayer: physics.LayerStatic},
	})
}

func testConfig() Config {
	return DefaultConfig()
}

type stubRegion struct {
	world physics.World
}

func (r stubRegion) PhysicsWorld() physics.World                { return r.world }
func (stubRegion) WaterHeight(physics.Vec3) (float32, bool)     { return 0, false }
func (stubRegion) LandMaterial(physics.Vec3) physics.MaterialID { return physics.MaterialNone }
func (stubRegion) SubmergedLevel(physics.Vec3) float32          { return 0 }

type stubSubject struct {
	region physics.Region
}

func (s stubSubject) Region() physics.Region    { return s.region }
func (stubSubject) CollisionFilterInfo() uint32 { return 7 }

func newRecordingSubject(out physics.RayOutput) (*recordingWorld, stubSubject) {
	w := &recordingWorld{scale: 1, out: out}
	return w, stubSubject{region: stubRegion{world: w}}
}

// Package sensing turns ray casts around the controlled agent into a small
// set of cached values: drop heights, wall distances, a vault distance, the
// surface underfoot and the type of nearby obstacles.
package sensing

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/raysense/internal/core/observability/log"
	"github.com/zeusync/raysense/internal/core/observability/metrics"
	"github.com/zeusync/raysense/internal/core/state/slots"
	"github.com/zeusync/raysense/internal/core/state/vars"
	"github.com/zeusync/raysense/internal/core/systems/physics"
)

// Engine owns the probes, the cache and the motion state. OnUpdate,
// OnJumpBegin and AdjustJump must be called from the simulation thread;
// Cache getters are safe from anywhere.
type Engine struct {
	id      string
	cfg     Config
	logger  log.Log
	metrics metrics.Collector
	catalog physics.MaterialCatalog

	caster    *physics.Caster
	vertical  *VerticalityProber
	obstacles *ObstacleProber
	surface   *SurfaceClassifier

	slots  *slots.Registry
	cache  Cache
	motion motionState
}

// motionState is the position and heading of the last probed tick. It is
// cleared by swim and mount ticks.
type motionState struct {
	initialized bool
	pos         physics.Vec3
	yaw         float32
}

type Option func(*Engine)

func WithLogger(l log.Log) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithMetrics(m metrics.Collector) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

func WithCatalog(c physics.MaterialCatalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// New validates cfg and builds an engine with publishing disabled until
// Install is called.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	e := &Engine{
		id:      uuid.NewString(),
		cfg:     cfg,
		logger:  log.NewNop(),
		metrics: metrics.Nop(),
		catalog: physics.DefaultCatalog(),
		slots:   slots.Disabled(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("sensing").With(log.String("engine_id", e.id))

	e.caster = physics.NewCaster(e.metrics)
	e.vertical = NewVerticalityProber(e.caster, &e.cfg)
	e.obstacles = NewObstacleProber(e.caster, &e.cfg)
	e.surface = NewSurfaceClassifier(e.caster, &e.cfg, e.catalog)
	return e, nil
}

// Install resolves the publish slots against store. Call it once before
// the first tick.
func (e *Engine) Install(store slots.Store) {
	e.slots = slots.Resolve(store, e.logger)
	e.logger.Info("engine installed",
		log.Int("slots_resolved", e.slots.ResolvedCount()),
		log.Int("slots_total", len(slots.Keys())),
	)
}

func (e *Engine) ID() string             { return e.id }
func (e *Engine) Config() Config         { return e.cfg }
func (e *Engine) Cache() *Cache          { return &e.cache }
func (e *Engine) Slots() *slots.Registry { return e.slots }

// IsObstacleDetected reports whether the last probe found a vaultable obstacle.
func (e *Engine) IsObstacleDetected() bool { return e.cache.IsObstacleDetected() }

// JumpBonus is the vertical velocity AdjustJump adds, in world units.
func (e *Engine) JumpBonus() float32 { return e.cfg.JumpBonus }

// OnUpdate runs one sensing tick for a.
func (e *Engine) OnUpdate(a Agent, dt float32) {
	if !acceptTick(a, dt) {
		e.metrics.TickOutcome(metrics.OutcomeRejected)
		return
	}
	pos := a.Position()
	if !physics.Finite(pos) {
		e.metrics.TickOutcome(metrics.OutcomeRejected)
		return
	}
	started := time.Now()

	e.updateSurface(a, pos)
	if a.IsSwimming() || a.IsOnMount() {
		e.motion = motionState{}
		e.metrics.TickOutcome(metrics.OutcomeSurfaceOnly)
		return
	}

	yaw := a.Yaw()
	airborne := a.IsInMidair()
	if !airborne && e.stationary(pos, yaw) {
		e.metrics.TickOutcome(metrics.OutcomeSkipped)
		return
	}

	frame := FrameOf(a.Rotation())
	var velocity physics.Vec3
	if airborne {
		velocity = e.estimateVelocity(a, pos, dt)
	}

	e.probe(a, pos, frame, airborne, velocity)

	e.motion = motionState{initialized: true, pos: pos, yaw: yaw}
	e.metrics.TickOutcome(metrics.OutcomeProbed)
	e.metrics.TickDuration(time.Since(started))
}

func acceptTick(a Agent, dt float32) bool {
	if a == nil || !physics.FiniteScalar(dt) || dt <= 0 {
		return false
	}
	return a.Is3DLoaded() && !a.IsDead() && !a.IsInKillMove()
}

func (e *Engine) stationary(pos physics.Vec3, yaw float32) bool {
	if !e.motion.initialized {
		return false
	}
	moved := physics.DistanceSq(pos, e.motion.pos)
	turned := yawDelta(yaw, e.motion.yaw)
	return moved < e.cfg.StationaryDistanceSq && turned < e.cfg.StationaryAngle
}

// yawDelta is the absolute heading change wrapped into [0, pi].
func yawDelta(a, b float32) float32 {
	return float32(math.Abs(math.Remainder(float64(a)-float64(b), 2*math.Pi)))
}

func (e *Engine) estimateVelocity(a Agent, pos physics.Vec3, dt float32) physics.Vec3 {
	if !e.motion.initialized {
		return physics.Vec3{}
	}
	moved := physics.DistanceSq(pos, e.motion.pos)
	if moved < e.cfg.TeleportDistanceSq {
		v := pos.Sub(e.motion.pos).Mul(1 / dt)
		if physics.Finite(v) {
			return v
		}
		return physics.Vec3{}
	}
	v := a.LinearVelocity()
	e.logger.Debug("teleport detected, using engine velocity",
		log.Float32("distance_sq", moved),
	)
	if !physics.Finite(v) {
		return physics.Vec3{}
	}
	return v
}

func (e *Engine) probe(a Agent, pos physics.Vec3, frame Frame, airborne bool, velocity physics.Vec3) {
	groups := [...]func(){
		func() { e.updateObstacles(a, pos, frame) },
		func() { e.updateObstacleTypes(a, pos, frame) },
		func() { e.updateVerticality(a, pos, frame, airborne, velocity) },
	}
	if !e.cfg.ParallelProbes {
		for _, fn := range groups {
			fn()
		}
		return
	}

	var g errgroup.Group
	for _, fn := range groups {
		g.Go(func() error {
			fn()
			return nil
		})
	}
	_ = g.Wait()
}

func (e *Engine) updateSurface(a Agent, pos physics.Vec3) {
	surface, platform := e.surface.Classify(a, pos)
	e.cache.surface.Set(surface)
	e.slots.Publish(slots.SurfaceType, float32(surface))
	e.cache.platform.Set(platform)
	e.slots.Publish(slots.PlatformType, float32(platform))
}

func (e *Engine) updateObstacles(a Agent, pos physics.Vec3, frame Frame) {
	r := e.obstacles.Probe(a, pos, frame, a.IsSprinting())
	e.publish(&e.cache.vault, slots.Vault, r.Vault)
	e.publish(&e.cache.wallFront, slots.WallFront, r.WallFront)
	e.publish(&e.cache.wallFrontLeft, slots.WallFrontLeft, r.WallFrontLeft)
	e.publish(&e.cache.wallFrontRight, slots.WallFrontRight, r.WallFrontRight)
	e.publish(&e.cache.wallLeft, slots.WallLeft, r.WallLeft)
	e.publish(&e.cache.wallRight, slots.WallRight, r.WallRight)
}

func (e *Engine) updateObstacleTypes(a Agent, pos physics.Vec3, frame Frame) {
	for _, probe := range []struct {
		cell *vars.AtomicCode[ObjectType]
		key  slots.Key
		dir  physics.Vec3
	}{
		{&e.cache.typeFront, slots.ObstacleTypeFront, frame.Forward},
		{&e.cache.typeLeft, slots.ObstacleTypeLeft, frame.Left},
		{&e.cache.typeRight, slots.ObstacleTypeRight, frame.Right},
	} {
		t := e.surface.ObstacleType(a, pos, probe.dir)
		probe.cell.Set(t)
		e.slots.Publish(probe.key, float32(t))
	}
}

func (e *Engine) updateVerticality(a Agent, pos physics.Vec3, frame Frame, airborne bool, velocity physics.Vec3) {
	var zero physics.Vec3
	slant := e.cfg.SlantAngle

	e.updateDrop(&e.cache.playerHeight, slots.PlayerHeight, a, pos, zero, zero, 0, 0)

	if airborne {
		e.updateDrop(&e.cache.frontDrop, slots.FrontDrop, a, pos, zero, velocity, e.cfg.PredictionTime, 0)
	} else {
		e.updateDrop(&e.cache.frontDrop, slots.FrontDrop, a, pos, frame.Forward.Mul(e.cfg.FrontProbeOffset), zero, 0, slant)
	}

	e.updateDrop(&e.cache.leftDrop, slots.LeftDrop, a, pos, frame.Left.Mul(e.cfg.SideProbeOffset), zero, 0, slant)
	e.updateDrop(&e.cache.rightDrop, slots.RightDrop, a, pos, frame.Right.Mul(e.cfg.SideProbeOffset), zero, 0, slant)
}

func (e *Engine) updateDrop(cell *vars.AtomicFloat32, key slots.Key, s physics.Subject, origin, offset, velocity physics.Vec3, predictionTime, slant float32) {
	e.publish(cell, key, e.vertical.ProbeDrop(s, origin, offset, velocity, predictionTime, slant))
}

func (e *Engine) publish(cell *vars.AtomicFloat32, key slots.Key, value float32) {
	cell.Set(value)
	e.slots.Publish(key, value)
}

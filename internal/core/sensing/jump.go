package sensing

import (
	"github.com/zeusync/raysense/internal/core/observability/log"
	"github.com/zeusync/raysense/internal/core/observability/metrics"
	"github.com/zeusync/raysense/internal/core/state/slots"
	"github.com/zeusync/raysense/internal/core/systems/physics"
)

// OnJumpBegin refreshes the wall probes and the front drop before a jump
// when RefreshOnJump is set.
func (e *Engine) OnJumpBegin(a Agent) {
	if !e.cfg.RefreshOnJump || !canJump(a) {
		return
	}
	pos := a.Position()
	if !physics.Finite(pos) {
		return
	}
	frame := FrameOf(a.Rotation())
	e.updateObstacles(a, pos, frame)
	e.updateDrop(&e.cache.frontDrop, slots.FrontDrop, a, pos, physics.Vec3{}, a.LinearVelocity(), e.cfg.PredictionTime, 0)
	e.metrics.TickOutcome(metrics.OutcomeJump)
}

// AdjustJump adds JumpBonus to the controller's vertical velocity when an
// obstacle is ahead. It reports whether the velocity changed.
func (e *Engine) AdjustJump(a Agent) bool {
	if a == nil || !a.Is3DLoaded() || !e.IsObstacleDetected() {
		return false
	}
	ctrl := a.Controller()
	region := a.Region()
	if ctrl == nil || region == nil {
		return false
	}
	world := region.PhysicsWorld()
	if world == nil {
		return false
	}

	v := ctrl.LinearVelocity()
	if !physics.Finite(v) {
		return false
	}
	bonus := e.cfg.JumpBonus * world.Scale()
	v[2] += bonus
	ctrl.SetLinearVelocity(v)
	e.logger.Debug("jump adjusted", log.Float32("bonus", bonus), log.Float32("vault", e.cache.Vault()))
	return true
}

func canJump(a Agent) bool {
	return a != nil && a.Is3DLoaded() && !a.IsDead() && !a.IsOnMount() && !a.IsSwimming()
}

// Package hooks chains the sensing engine around the host's player update
// and jump functions.
package hooks

import (
	"github.com/google/uuid"

	"github.com/zeusync/raysense/internal/core/observability/log"
	"github.com/zeusync/raysense/internal/core/sensing"
)

// UpdateFunc is the host's per frame player update.
type UpdateFunc func(a sensing.Agent, dt float32)

// JumpFunc is the host's jump handler.
type JumpFunc func(a sensing.Agent)

// Engine is the part of *sensing.Engine the hook drives.
type Engine interface {
	OnUpdate(a sensing.Agent, dt float32)
	OnJumpBegin(a sensing.Agent)
	AdjustJump(a sensing.Agent) bool
}

var _ Engine = (*sensing.Engine)(nil)

// PlayerHook replaces the host's update and jump entry points.
type PlayerHook struct {
	id     string
	engine Engine
	logger log.Log

	update UpdateFunc
	jump   JumpFunc
}

func NewPlayerHook(engine Engine, logger log.Log) *PlayerHook {
	if logger == nil {
		logger = log.NewNop()
	}
	return &PlayerHook{
		id:     uuid.NewString(),
		engine: engine,
		logger: logger.Named("hooks"),
	}
}

// Install captures the original functions. Either may be nil.
func (h *PlayerHook) Install(update UpdateFunc, jump JumpFunc) {
	h.update = update
	h.jump = jump
	h.logger.Info("PlayerHook installed",
		log.String("hook_id", h.id),
		log.Bool("update", update != nil),
		log.Bool("jump", jump != nil))
}

func (h *PlayerHook) ID() string { return h.id }

// Update runs the original update, then senses.
func (h *PlayerHook) Update(a sensing.Agent, dt float32) {
	if h.update != nil {
		h.update(a, dt)
	}
	h.engine.OnUpdate(a, dt)
}

// Jump refreshes the engine before the original jump so published values
// are current when the jump animation starts, then applies the vault bonus.
func (h *PlayerHook) Jump(a sensing.Agent) {
	h.engine.OnJumpBegin(a)
	if h.jump != nil {
		h.jump(a)
	}
	h.engine.AdjustJump(a)
}

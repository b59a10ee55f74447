package main

import (
	"github.com/zeusync/raysense/internal/core/sensing"
	"github.com/zeusync/raysense/internal/core/systems/physics"
	"github.com/zeusync/raysense/internal/core/systems/physics/scene"
	"github.com/zeusync/raysense/internal/hooks"
)

// Demo course along +Y: grass terrain, a knee high wall, a ledge and a
// stone floor 400 below, then back to the start.
const (
	walkSpeed   float32 = 200
	courseEnd   float32 = 1400
	airTime     float32 = 0.6
	vaultWithin float32 = 80
	fallGravity float32 = 980
)

type demo struct {
	engine *sensing.Engine
	hook   *hooks.PlayerHook
	actor  *scene.Actor

	airborne float32
	fallVel  float32
}

func newDemo(engine *sensing.Engine, hook *hooks.PlayerHook) *demo {
	world := scene.New(scene.DefaultScale)

	// upper floor ends at y=900
	world.AddBox(&scene.Box{
		Min:   physics.Vec3{-500, -200, -20},
		Max:   physics.Vec3{500, 900, 0},
		Shape: scene.Shape{CollisionLayer: physics.LayerTerrain},
	})
	world.AddBox(&scene.Box{
		Min:   physics.Vec3{-500, 400, 0},
		Max:   physics.Vec3{500, 420, 60},
		Shape: scene.Shape{CollisionLayer: physics.LayerStatic, MaterialTag: physics.MaterialStone},
	})
	world.AddBox(&scene.Box{
		Min:   physics.Vec3{-40, 650, 0},
		Max:   physics.Vec3{40, 700, 90},
		Shape: scene.Shape{CollisionLayer: physics.LayerProps, Ref: &scene.Ref{Form: physics.FormFurniture, Model: "meshes/furniture/bench01.nif"}},
	})
	world.Ground(-400, physics.LayerStatic, physics.MaterialStone)

	region := &scene.Region{World: world, Land: physics.MaterialGrass}
	actor := scene.NewActor(region, physics.Vec3{})
	return &demo{engine: engine, hook: hook, actor: actor}
}

// step advances the course by dt and drives the hook like a host would.
func (d *demo) step(dt float32) {
	a := d.actor
	a.Pos[1] += walkSpeed * dt
	a.Velocity = physics.Vec3{0, walkSpeed, -d.fallVel}

	switch {
	case d.airborne > 0:
		d.airborne -= dt
	case d.engine.Cache().PlayerHeight() > 0:
		// walked off the ledge
		d.fallVel += fallGravity * dt
		a.Pos[2] -= d.fallVel * dt
		if drop := d.engine.Cache().PlayerHeight(); a.Pos[2] < -400 || drop < d.fallVel*dt {
			a.Pos[2] = -400
			d.fallVel = 0
		}
	}
	a.Midair = d.airborne > 0 || d.fallVel > 0

	if a.Pos[1] > courseEnd {
		a.Pos = physics.Vec3{}
		d.fallVel = 0
	}

	d.hook.Update(a, dt)

	if !a.Midair && d.engine.IsObstacleDetected() && d.engine.Cache().Vault() <= vaultWithin {
		d.hook.Jump(a)
	}
}

func (d *demo) update(sensing.Agent, float32) {}

func (d *demo) jump(a sensing.Agent) {
	d.airborne = airTime
	if ctrl := a.Controller(); ctrl != nil {
		v := ctrl.LinearVelocity()
		v[2] = 5
		ctrl.SetLinearVelocity(v)
	}
}

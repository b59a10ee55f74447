package sensing

import (
	"github.com/zeusync/raysense/internal/core/systems/physics"
)

// ObstacleResult is one pass of the wall probes. Distances are whole units.
type ObstacleResult struct {
	WallFront      float32
	WallFrontLeft  float32
	WallFrontRight float32
	WallLeft       float32
	WallRight      float32
	// Vault is the knee hit distance when only the knee ray hit, else 0.
	Vault float32

	KneeHit  bool
	ChestHit bool
	Detect   float32
}

// VaultDetected reports whether a vaultable obstacle is ahead.
func (r ObstacleResult) VaultDetected() bool { return r.KneeHit && !r.ChestHit }

// ObstacleProber casts horizontal rays for walls and vaultable obstacles.
type ObstacleProber struct {
	caster *physics.Caster
	cfg    *Config
}

func NewObstacleProber(caster *physics.Caster, cfg *Config) *ObstacleProber {
	return &ObstacleProber{caster: caster, cfg: cfg}
}

// DetectDistance is the probe length for the current gait.
func (p *ObstacleProber) DetectDistance(sprinting bool) float32 {
	if sprinting {
		return p.cfg.DetectSprint
	}
	return p.cfg.DetectWalk
}

// Probe runs the knee, chest, angled and side rays from origin.
func (p *ObstacleProber) Probe(s physics.Subject, origin physics.Vec3, frame Frame, sprinting bool) ObstacleResult {
	detect := p.DetectDistance(sprinting)
	r := ObstacleResult{
		Detect:         detect,
		WallFrontLeft:  detect,
		WallFrontRight: detect,
	}

	r.WallFront, r.KneeHit = p.wall(s, origin, frame.Forward, p.cfg.KneeHeight, detect)
	_, r.ChestHit = p.wall(s, origin, frame.Forward, p.cfg.ChestHeight, detect)

	if r.VaultDetected() {
		r.Vault = r.WallFront
	}

	if r.KneeHit {
		r.WallFrontLeft = p.angled(s, origin, frame, frame.Left, detect)
		r.WallFrontRight = p.angled(s, origin, frame, frame.Right, detect)
	}

	r.WallLeft, _ = p.wall(s, origin, frame.Left, p.cfg.KneeHeight, detect)
	r.WallRight, _ = p.wall(s, origin, frame.Right, p.cfg.KneeHeight, detect)
	return r
}

// wall casts length units along dir at height above origin. Walkable slopes
// do not count as hits; a miss reports length.
func (p *ObstacleProber) wall(s physics.Subject, origin, dir physics.Vec3, height, length float32) (float32, bool) {
	frac, ok := p.cast(s, origin, dir, height, length)
	if !ok {
		return length, false
	}
	return physics.Round(frac * length), true
}

// angled casts forward from a point pulled back and shifted sideways, and
// reports the distance measured from the agent's own plane.
func (p *ObstacleProber) angled(s physics.Subject, origin physics.Vec3, frame Frame, side physics.Vec3, detect float32) float32 {
	reach := detect + p.cfg.AngledExtra
	start := origin.Add(side.Mul(p.cfg.AngledLateral)).Sub(frame.Forward.Mul(p.cfg.AngledPullback))
	frac, ok := p.cast(s, start, frame.Forward, p.cfg.KneeHeight, reach)
	if !ok {
		return detect
	}
	d := physics.Round(frac*reach) - p.cfg.AngledPullback
	if d < 0 {
		return 0
	}
	return d
}

func (p *ObstacleProber) cast(s physics.Subject, origin, dir physics.Vec3, height, length float32) (float32, bool) {
	from := origin.Add(physics.Vec3{0, 0, height})
	to := from.Add(dir.Mul(length))
	hit := p.caster.Cast(s, from, to)
	if !hit.Hit || hit.Normal[2] > p.cfg.SlopeNormalZ {
		return 0, false
	}
	return hit.Fraction, true
}

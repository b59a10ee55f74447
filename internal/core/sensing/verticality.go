package sensing

import (
	"math"

	"github.com/zeusync/raysense/internal/core/systems/physics"
)

const minSlantOffset = 1e-3

// VerticalityProber measures drop heights with downward rays.
type VerticalityProber struct {
	caster *physics.Caster
	cfg    *Config
}

func NewVerticalityProber(caster *physics.Caster, cfg *Config) *VerticalityProber {
	return &VerticalityProber{caster: caster, cfg: cfg}
}

// ProbeDrop returns how far below origin the ground lies at origin+offset,
// optionally displaced by velocity*predictionTime. The ray starts HeadOffset
// above that point and reaches CapHeight+DropExtra down; a positive
// slantDegrees tilts its end outwards along the offset. The result is a
// whole number in [0, CapHeight]. Non-finite inputs return 0 without casting.
func (p *VerticalityProber) ProbeDrop(s physics.Subject, origin, offset, velocity physics.Vec3, predictionTime, slantDegrees float32) float32 {
	if !physics.Finite(origin) || !physics.Finite(offset) || !physics.Finite(velocity) ||
		!physics.FiniteScalar(predictionTime) || !physics.FiniteScalar(slantDegrees) {
		return 0
	}
	capHeight := p.cfg.CapHeight

	start := origin.Add(offset).Add(velocity.Mul(predictionTime))
	start[2] += p.cfg.HeadOffset

	depth := capHeight + p.cfg.DropExtra
	end := start
	end[2] -= depth

	if lateral := physics.Horizontal(offset); lateral.Len() > minSlantOffset && slantDegrees > 0 && slantDegrees < 90 {
		tilt := depth * float32(math.Tan(float64(slantDegrees)*math.Pi/180))
		end = end.Add(lateral.Normalize().Mul(tilt))
	}

	hit := p.caster.Cast(s, start, end)

	groundZ := origin[2] - capHeight
	if hit.Hit {
		groundZ = start[2] + (end[2]-start[2])*hit.Fraction
	}

	diff := physics.Round(origin[2] - groundZ)
	switch {
	case !physics.FiniteScalar(diff), diff > capHeight:
		return capHeight
	case diff < 0:
		if hit.Hit {
			return 0
		}
		return capHeight
	}
	return diff
}

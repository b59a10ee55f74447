package metrics

import "time"

// Outcome describes how a tick ended.
type Outcome string

const (
	OutcomeRejected    Outcome = "rejected"
	OutcomeSurfaceOnly Outcome = "surface_only"
	OutcomeSkipped     Outcome = "skipped"
	OutcomeProbed      Outcome = "probed"
	OutcomeJump        Outcome = "jump"
)

// CastResult describes how a single ray cast ended.
type CastResult string

const (
	CastHit         CastResult = "hit"
	CastMiss        CastResult = "miss"
	CastUnavailable CastResult = "unavailable"
)

// Collector receives engine measurements. Implementations must be safe for
// concurrent use.
type Collector interface {
	TickOutcome(outcome Outcome)
	RayCast(result CastResult)
	TickDuration(d time.Duration)
}

type nop struct{}

func (nop) TickOutcome(Outcome)        {}
func (nop) RayCast(CastResult)         {}
func (nop) TickDuration(time.Duration) {}

// Nop returns a Collector that discards everything.
func Nop() Collector { return nop{} }

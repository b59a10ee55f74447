package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg)
	require.NoError(t, err)

	p.TickOutcome(OutcomeSkipped)
	p.TickOutcome(OutcomeSkipped)
	p.TickOutcome(OutcomeProbed)
	p.RayCast(CastHit)
	p.TickDuration(time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(p.ticks.WithLabelValues(string(OutcomeSkipped))))
	require.Equal(t, 1.0, testutil.ToFloat64(p.ticks.WithLabelValues(string(OutcomeProbed))))
	require.Equal(t, 1.0, testutil.ToFloat64(p.casts.WithLabelValues(string(CastHit))))
	require.Equal(t, 0.0, testutil.ToFloat64(p.casts.WithLabelValues(string(CastMiss))))

	t.Run("Duplicate Registration", func(t *testing.T) {
		_, err := NewPrometheus(reg)
		require.Error(t, err)
	})
}

func TestNop(t *testing.T) {
	c := Nop()
	c.TickOutcome(OutcomeRejected)
	c.RayCast(CastUnavailable)
	c.TickDuration(time.Second)
}

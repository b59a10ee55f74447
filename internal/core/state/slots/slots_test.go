package slots

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/raysense/internal/core/observability/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestKeys(t *testing.T) {
	require.Len(t, Keys(), int(keyCount))
	require.Equal(t, "Verticality_Front", FrontDrop.String())
	require.Equal(t, "RaySense_Wall_Left", WallLeft.String())
	require.Equal(t, "Unknown", Key(200).String())

	seen := map[string]bool{}
	for _, n := range Names() {
		require.NotEmpty(t, n)
		require.False(t, seen[n], n)
		seen[n] = true
	}
}

func TestRegistry_Resolve(t *testing.T) {
	t.Run("Missing Slots Are Logged And Disabled", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := log.NewFromZap(zap.New(core), log.LevelDebug)
		store := NewMemoryStore(4, FrontDrop.String(), WallLeft.String())

		r := Resolve(store, logger)

		require.True(t, r.Resolved(FrontDrop))
		require.True(t, r.Resolved(WallLeft))
		require.False(t, r.Resolved(RightDrop))
		require.Equal(t, 2, r.ResolvedCount())
		require.Equal(t, int(keyCount)-2, logs.FilterMessage("slot not found, publishing disabled").Len())
		require.Equal(t, 2, logs.FilterMessage("slot found").Len())

		r.Publish(FrontDrop, 42)
		r.Publish(RightDrop, 7)
		r.Publish(Key(250), 1)

		v, ok := store.Get(FrontDrop.String())
		require.True(t, ok)
		require.Equal(t, float32(42), v)

		_, ok = store.Get(RightDrop.String())
		require.False(t, ok)
	})

	t.Run("Nil Store", func(t *testing.T) {
		r := Resolve(nil, log.NewNop())
		require.Zero(t, r.ResolvedCount())
		r.Publish(Vault, 3)
	})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(0, "b", "a")

	require.Equal(t, []string{"a", "b"}, s.Declared())
	require.NoError(t, s.Set("a", 1.5))
	require.ErrorIs(t, s.Set("zzz", 1), ErrUnknownSlot)

	require.Same(t, s.Declare("a"), s.Declare("a"))
	require.Equal(t, map[string]float32{"a": 1.5, "b": 0}, s.Values())

	_, ok := s.Lookup("missing")
	require.False(t, ok)
}

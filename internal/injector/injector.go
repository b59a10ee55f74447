//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/raysense/internal/core/observability/log"
	"github.com/zeusync/raysense/internal/core/sensing"
	"github.com/zeusync/raysense/internal/hooks"
)

func ProvideLogger() *log.Logger {
	wire.Build(log.Provide)
	return log.New(log.LevelDebug)
}

func provideEngine(cfg sensing.Config, logger *log.Logger) (*sensing.Engine, error) {
	return sensing.New(cfg, sensing.WithLogger(logger))
}

func providePlayerHook(engine *sensing.Engine, logger *log.Logger) *hooks.PlayerHook {
	return hooks.NewPlayerHook(engine, logger)
}

// InitializePlayerHook wires a logger, an engine and the player hook.
func InitializePlayerHook(cfg sensing.Config) (*hooks.PlayerHook, error) {
	wire.Build(log.Provide, provideEngine, providePlayerHook)
	return nil, nil
}

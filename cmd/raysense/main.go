package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/zeusync/raysense/internal/core/conditions"
	"github.com/zeusync/raysense/internal/core/observability/log"
	"github.com/zeusync/raysense/internal/core/observability/metrics"
	"github.com/zeusync/raysense/internal/core/sensing"
	"github.com/zeusync/raysense/internal/core/state/slots"
	"github.com/zeusync/raysense/internal/hooks"
	"github.com/zeusync/raysense/internal/server"
)

func main() {
	var (
		configPath     = flag.String("config", "", "sensing config (yaml)")
		conditionsPath = flag.String("conditions", "", "condition set (yaml)")
		listen         = flag.String("listen", server.DefaultServerConfig().ListenAddr, "debug server address, empty to disable")
		hz             = flag.Int("hz", 60, "simulation ticks per second")
		ticks          = flag.Int("ticks", 0, "stop after this many ticks, 0 runs until interrupted")
		level          = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Parse()

	logger := log.New(log.ParseLevel(*level))
	defer logger.Sync()

	if err := run(logger, *configPath, *conditionsPath, *listen, *hz, *ticks); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger, configPath, conditionsPath, listen string, hz, ticks int) error {
	if hz <= 0 {
		return fmt.Errorf("hz must be positive, got %d", hz)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	set, err := loadConditions(conditionsPath)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	collector, err := metrics.NewPrometheus(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	engine, err := sensing.New(cfg, sensing.WithLogger(logger), sensing.WithMetrics(collector))
	if err != nil {
		return err
	}
	store := slots.NewMemoryStore(4, slots.Names()...)
	engine.Install(store)

	hook := hooks.NewPlayerHook(engine, logger)
	course := newDemo(engine, hook)
	hook.Install(course.update, course.jump)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var srv *server.Server
	if listen != "" {
		srvCfg := server.DefaultServerConfig()
		srvCfg.ListenAddr = listen
		srv, err = server.NewServer(srvCfg, engine.Cache(),
			server.WithLogger(logger),
			server.WithConditions(set),
			server.WithGatherer(reg))
		if err != nil {
			return err
		}
		if err := srv.Start(ctx); err != nil {
			return err
		}
	}

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)

	dt := time.Second / time.Duration(hz)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	logger.Info("Simulation started", log.Int("hz", hz), log.Int("ticks", ticks))
loop:
	for n := 0; ticks == 0 || n < ticks; n++ {
		select {
		case <-stopCh:
			logger.Info("Interrupted", log.Int("ticks", n))
			break loop
		case <-ticker.C:
			course.step(float32(dt.Seconds()))
		}
	}
	cancel()

	snap := engine.Cache().Snapshot()
	logger.Info("Simulation finished",
		log.Any("snapshot", snap),
		log.Any("conditions", set.EvaluateAll(engine.Cache(), true)),
		log.Any("slots", store.Values()))

	if srv != nil {
		stopCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Stop(stopCtx); err != nil {
			fmt.Println("Error stopping server:", err)
		}
	}
	return nil
}

func loadConfig(path string) (sensing.Config, error) {
	if path == "" {
		return sensing.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return sensing.Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return sensing.LoadConfig(f)
}

func loadConditions(path string) (conditions.Set, error) {
	if path == "" {
		return defaultConditions(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open conditions: %w", err)
	}
	defer f.Close()
	return conditions.LoadYAML(f)
}

func defaultConditions() conditions.Set {
	return conditions.Set{
		{Name: "can_vault", Sensor: conditions.SensorVault, Op: conditions.OpGreater, Value: 0},
		{Name: "ledge_ahead", Sensor: conditions.SensorFront, Op: conditions.OpGreaterEqual, Value: 100},
		{Name: "on_water", Sensor: conditions.SensorSurface, Op: conditions.OpEqual, Value: float32(sensing.SurfaceWater)},
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/udisondev/wavecrawl/internal/config"
	"github.com/udisondev/wavecrawl/internal/data"
	"github.com/udisondev/wavecrawl/internal/db"
	"github.com/udisondev/wavecrawl/internal/ids"
	"github.com/udisondev/wavecrawl/internal/sim"
)

const DefaultConfigPath = "config/simulate.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := DefaultConfigPath
	if p := os.Getenv("WAVECRAWL_CONFIG"); p != "" {
		cfgPath = p
	}
	flag.StringVar(&cfgPath, "config", cfgPath, "path to simulator config")
	flag.Parse()

	cfg, err := config.LoadSimulator(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("wavecrawl simulator starting",
		"log_level", cfg.LogLevel,
		"sessions", cfg.Simulation.Sessions,
		"workers", cfg.Simulation.Workers,
		"class", cfg.Simulation.Class)

	catalog, err := data.LoadCatalog(cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	slog.Info("catalog loaded",
		"classes", len(catalog.Classes),
		"items", len(catalog.BaseItems),
		"skills", len(catalog.Skills),
		"monsters", len(catalog.Monsters))

	opts := []sim.Option{
		sim.WithWorkers(cfg.Simulation.Workers),
		sim.WithMaxTurns(cfg.Simulation.MaxTurns),
		sim.WithAutoEquip(cfg.Simulation.AutoEquip),
		sim.WithAutoSell(cfg.Simulation.AutoSell),
	}

	if cfg.Persist {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		opts = append(opts, sim.WithStore(database.Sessions()))
	}

	specs, err := sim.Plan(cfg.Simulation, ids.UUID{})
	if err != nil {
		return fmt.Errorf("planning sessions: %w", err)
	}

	start := time.Now()
	results, err := sim.NewRunner(catalog, &cfg.Rates, opts...).Run(ctx, specs)
	if err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}

	for _, res := range results {
		s := res.Session
		slog.Info("session",
			"id", s.ID,
			"player", s.Player.Name,
			"class", s.Player.Class,
			"seed", res.Spec.Seed,
			"state", s.State,
			"truncated", res.Truncated,
			"turns", res.Turns,
			"wave", s.Wave,
			"defeated", s.DefeatedCount,
			"level", s.Player.Level,
			"gold", s.Player.Gold,
			"sold", res.Sold,
			"items", len(s.Player.Inventory),
			"digest", res.Digest)
	}

	sum := summarize(results)
	slog.Info("simulation complete",
		"sessions", sum.Sessions,
		"completed", sum.Completed,
		"avg_wave", fmt.Sprintf("%.1f", sum.AvgWave),
		"max_level", sum.MaxLevel,
		"elapsed", time.Since(start).Round(time.Millisecond))

	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Balance simulator: собирает экипированных персонажей каждого класса
// через наковальню и прогоняет их через гейты, печатая win rate по рангам.
//
// Usage:
//
//	go run ./cmd/balancesim -config config/balancesim.yaml
//	AURAFORGE_RUNS=2000 go run ./cmd/balancesim
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

	"github.com/udisondev/auraforge/internal/config"
	"github.com/udisondev/auraforge/internal/data"
	"github.com/udisondev/auraforge/internal/db"
	"github.com/udisondev/auraforge/internal/game/dice"
)

const DefaultConfigPath = "config/balancesim.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("balancesim", flag.ContinueOnError)
	cfgPath := fs.String("config", DefaultConfigPath, "path to simulator config")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if p := os.Getenv("AURAFORGE_CONFIG"); p != "" {
		*cfgPath = p
	}

	cfg, err := config.LoadSimulator(*cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	seed := cfg.Simulation.Seed
	if seed == 0 {
		if seed, err = dice.NewSeed(); err != nil {
			return fmt.Errorf("generating seed: %w", err)
		}
	}
	slog.Info("balance simulation starting",
		"seed", seed,
		"level", cfg.Simulation.Level,
		"runs", cfg.Simulation.Runs)

	catalog, err := data.LoadItemTemplates()
	if err != nil {
		return err
	}

	sim := newSimulator(cfg, catalog, seed)

	if cfg.Simulation.Persist {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")
		sim.store = db.NewCharacterStore(database.Pool())
	}

	start := time.Now()
	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	report.Elapsed = time.Since(start)

	if sim.store != nil {
		counts, err := sim.store.Items().CountByRarity(ctx)
		if err != nil {
			return err
		}
		report.StoredByRarity = counts
	}

	report.Print(os.Stdout)
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
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

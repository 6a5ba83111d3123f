// Command battlesim runs seeded headless battles from a config file and
// logs how each one ended.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/beastclash/internal/config"
	"github.com/udisondev/beastclash/internal/data"
	"github.com/udisondev/beastclash/internal/db"
	"github.com/udisondev/beastclash/internal/game/rng"
)

const ConfigPath = "config/battlesim.yaml"

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
	cfgPath := ConfigPath
	if p := os.Getenv(config.EnvPrefix + "CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadBattle(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Уровень логирования берём из конфига
	logLevel, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	catalog, err := data.LoadCatalogFile(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	slog.Info("catalog loaded",
		"path", cfg.CatalogPath,
		"techniques", len(catalog.Techniques),
		"items", len(catalog.Items),
		"species", len(catalog.Species))

	seed := cfg.Sim.Seed
	if seed == 0 {
		if seed, err = rng.NewSeed(); err != nil {
			return err
		}
	}

	var archive archiver
	if cfg.Sim.Persist {
		dsn := cfg.Database.DSN()
		if err := db.RunMigrations(ctx, dsn); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
		database, err := db.New(ctx, dsn)
		if err != nil {
			return err
		}
		defer database.Close()
		archive = database.Archive()
		slog.Info("persistence enabled", "host", cfg.Database.Host, "db", cfg.Database.DBName)
	}

	sim, err := newSimulator(cfg, catalog, archive)
	if err != nil {
		return err
	}

	slog.Info("battlesim starting",
		"battles", cfg.Sim.Battles,
		"concurrency", cfg.Sim.Concurrency,
		"seed", seed,
		"kind", cfg.Kind)
	reports, err := sim.runAll(ctx, seed)
	if err != nil {
		return err
	}
	summarize(reports)
	return nil
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/beastclash/internal/game/battle"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BEASTCLASH_"

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// Battle holds all configuration for the battle engine and the simulator.
type Battle struct {
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL"`
	CatalogPath string `yaml:"catalog_path" env:"CATALOG_PATH"`

	// Rules
	Kind             string              `yaml:"kind" env:"KIND"` // wild | trainer
	PriorityOverride int                 `yaml:"priority_override" env:"PRIORITY_OVERRIDE"`
	Flee             battle.FleeRules    `yaml:"flee" envPrefix:"FLEE_"`
	Capture          battle.CaptureRules `yaml:"capture" envPrefix:"CAPTURE_"`

	// Database (optional persistence of status states and round logs)
	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`

	Sim Sim `yaml:"sim" envPrefix:"SIM_"`
}

// Sim configures the headless battle simulator.
type Sim struct {
	Battles     int    `yaml:"battles" env:"BATTLES"`
	Concurrency int    `yaml:"concurrency" env:"CONCURRENCY"`
	Seed        uint64 `yaml:"seed" env:"SEED"` // 0 = random
	MaxRounds   int    `yaml:"max_rounds" env:"MAX_ROUNDS"`
	Level       int    `yaml:"level" env:"LEVEL"`

	Player   []string `yaml:"player" env:"PLAYER" envSeparator:","`
	Opponent []string `yaml:"opponent" env:"OPPONENT" envSeparator:","`
	// Script lists player intents in order: attack:<technique>, item:<item>,
	// swap:<n>, flee, capture:<item>. The last entry repeats.
	Script []string       `yaml:"script" env:"SCRIPT" envSeparator:";"`
	Bag    map[string]int `yaml:"bag"`

	Persist bool `yaml:"persist" env:"PERSIST"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultBattle returns Battle config with sensible defaults.
func DefaultBattle() Battle {
	return Battle{
		LogLevel: "info",
		Kind:     string(battle.Wild),
		Flee:     battle.DefaultFleeRules(),
		Capture:  battle.DefaultCaptureRules(),
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "beastclash",
			Password: "beastclash",
			DBName:   "beastclash",
			SSLMode:  "disable",
		},
		Sim: Sim{
			Battles:     8,
			Concurrency: 4,
			MaxRounds:   100,
			Level:       20,
			Player:      []string{"sparkit", "puddlet"},
			Opponent:    []string{"sproutle"},
			Script:      []string{"attack:ember"},
			Bag:         map[string]int{"potion": 2, "capsule": 3},
		},
	}
}

// LoadBattle loads battle config from a YAML file and applies BEASTCLASH_*
// environment overrides on top. If the file doesn't exist, defaults are used.
func LoadBattle(path string) (Battle, error) {
	cfg := DefaultBattle()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parsing env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (b Battle) Validate() error {
	var errs []error
	if _, err := battle.ParseKind(b.Kind); err != nil {
		errs = append(errs, err)
	}
	if _, err := b.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if b.Flee.Min > b.Flee.Max {
		errs = append(errs, fmt.Errorf("flee min %d above max %d", b.Flee.Min, b.Flee.Max))
	}
	if b.Capture.BaseRate < 0 {
		errs = append(errs, fmt.Errorf("negative capture base rate %d", b.Capture.BaseRate))
	}
	if b.Sim.Battles < 1 {
		errs = append(errs, fmt.Errorf("sim battles must be positive, got %d", b.Sim.Battles))
	}
	if b.Sim.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("sim concurrency must be positive, got %d", b.Sim.Concurrency))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Rules converts the config into per-battle rules.
func (b Battle) Rules() (battle.Config, error) {
	kind, err := battle.ParseKind(b.Kind)
	if err != nil {
		return battle.Config{}, err
	}
	return battle.Config{Kind: kind, Flee: b.Flee, Capture: b.Capture}, nil
}

// SlogLevel parses LogLevel (debug, info, warn, error).
func (b Battle) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(b.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", b.LogLevel, err)
	}
	return lvl, nil
}

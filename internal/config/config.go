package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Simulator holds all configuration for the balance simulator.
type Simulator struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"` // debug, info, warn, error

	// Database (used only when Simulation.Persist is set)
	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`

	Balance    Balance    `yaml:"balance"`
	Simulation Simulation `yaml:"simulation"`
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

// Simulation — параметры пакетного прогона.
type Simulation struct {
	Runs    int    `yaml:"runs" env:"RUNS"`       // боёв на класс
	Level   int    `yaml:"level" env:"LEVEL"`     // уровень персонажей и наковальни
	Workers int    `yaml:"workers" env:"WORKERS"` // 0 = GOMAXPROCS
	Seed    uint64 `yaml:"seed" env:"SEED"`       // 0 = случайный seed
	Persist bool   `yaml:"persist" env:"PERSIST"` // сохранять профили и предметы в PostgreSQL
}

// DefaultSimulator returns Simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "auraforge",
			Password: "auraforge",
			DBName:   "auraforge",
			SSLMode:  "disable",
		},
		Balance: DefaultBalance(),
		Simulation: Simulation{
			Runs:    500,
			Level:   30,
			Workers: 0,
			Seed:    0,
		},
	}
}

// LoadSimulator loads simulator config from a YAML file and applies
// AURAFORGE_* environment overrides.
// If the file doesn't exist, returns defaults (still with env overrides).
func LoadSimulator(path string) (Simulator, error) {
	cfg := DefaultSimulator()

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

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Balance.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from AURAFORGE_* environment variables.
// Unset variables keep the current values.
func ApplyEnv(cfg *Simulator) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "AURAFORGE_"}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

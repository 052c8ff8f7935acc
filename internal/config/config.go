package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Simulator holds all configuration for the batch simulator.
type Simulator struct {
	LogLevel string `yaml:"log_level" env:"WAVECRAWL_LOG_LEVEL"`

	// Content catalog; empty means the embedded default content.
	ContentPath string `yaml:"content_path" env:"WAVECRAWL_CONTENT_PATH"`

	// Persistence
	Persist  bool           `yaml:"persist" env:"WAVECRAWL_PERSIST"`
	Database DatabaseConfig `yaml:"database" envPrefix:"WAVECRAWL_DB_"`

	// Rates
	Rates Rates `yaml:"rates" envPrefix:"WAVECRAWL_RATE_"`

	Simulation Simulation `yaml:"simulation" envPrefix:"WAVECRAWL_SIM_"`
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

// Simulation controls the headless session runner.
type Simulation struct {
	Sessions   int    `yaml:"sessions" env:"SESSIONS"`
	Workers    int    `yaml:"workers" env:"WORKERS"`
	MaxTurns   int    `yaml:"max_turns" env:"MAX_TURNS"`
	Seed       uint64 `yaml:"seed" env:"SEED"`               // 0 = random seed per run
	Class      string `yaml:"class" env:"CLASS"`
	PlayerName string `yaml:"player_name" env:"PLAYER_NAME"`
	AutoEquip  bool   `yaml:"auto_equip" env:"AUTO_EQUIP"`
	AutoSell   bool   `yaml:"auto_sell" env:"AUTO_SELL"`
}

// DefaultSimulator returns Simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "wavecrawl",
			Password: "wavecrawl",
			DBName:   "wavecrawl",
			SSLMode:  "disable",
		},
		Rates: DefaultRates(),
		Simulation: Simulation{
			Sessions:   8,
			Workers:    4,
			MaxTurns:   500,
			Class:      "Warrior",
			PlayerName: "Hero",
			AutoEquip:  true,
			AutoSell:   true,
		},
	}
}

// LoadSimulator loads simulator config from a YAML file and applies
// WAVECRAWL_* environment overrides on top.
// If the file doesn't exist, the defaults are used as the base.
func LoadSimulator(path string) (Simulator, error) {
	cfg := DefaultSimulator()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseEnv applies environment overrides to target. Unset variables keep
// the value already in target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects settings the runner cannot work with.
func (c Simulator) Validate() error {
	if c.Simulation.Sessions < 1 {
		return fmt.Errorf("simulation.sessions must be >= 1, got %d", c.Simulation.Sessions)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation.workers must be >= 1, got %d", c.Simulation.Workers)
	}
	if c.Simulation.MaxTurns < 1 {
		return fmt.Errorf("simulation.max_turns must be >= 1, got %d", c.Simulation.MaxTurns)
	}
	return c.Rates.Validate()
}

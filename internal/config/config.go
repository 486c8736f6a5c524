// Package config loads game settings from the environment. A .env file in
// the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of a play session.
type Config struct {
	TickInterval   time.Duration `env:"OTTOCAKE_TICK_INTERVAL"   envDefault:"16ms"`
	BakeDuration   time.Duration `env:"OTTOCAKE_BAKE_DURATION"   envDefault:"8s"`
	RhythmDuration time.Duration `env:"OTTOCAKE_RHYTHM_DURATION" envDefault:"5s"`
	RhythmLength   int           `env:"OTTOCAKE_RHYTHM_LENGTH"   envDefault:"15"`
	IdleAfter      time.Duration `env:"OTTOCAKE_IDLE_AFTER"      envDefault:"10s"`
	Seed           int64         `env:"OTTOCAKE_SEED"` // 0 seeds from the clock
	Sound          bool          `env:"OTTOCAKE_SOUND"           envDefault:"true"`
	LogFile        string        `env:"OTTOCAKE_LOG_FILE"        envDefault:".ottocake-logs/ottocake.log"`
	LogLevel       string        `env:"OTTOCAKE_LOG_LEVEL"       envDefault:"normal"`
}

// Load reads the optional dotenv files, then parses the environment.
// A missing .env is not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && len(files) > 0 {
		return Config{}, fmt.Errorf("load env files: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick interval must be positive, got %s", c.TickInterval))
	}
	if c.BakeDuration <= 0 {
		errs = append(errs, fmt.Errorf("bake duration must be positive, got %s", c.BakeDuration))
	}
	if c.RhythmDuration <= 0 {
		errs = append(errs, fmt.Errorf("rhythm duration must be positive, got %s", c.RhythmDuration))
	}
	if c.RhythmLength <= 0 {
		errs = append(errs, fmt.Errorf("rhythm length must be positive, got %d", c.RhythmLength))
	}
	return errors.Join(errs...)
}

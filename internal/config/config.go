// Package config loads service configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config is the full service configuration. Solver parameter defaults
// mirror the operational planning assumptions: a 30 collector workforce
// at 8 hours a day over 220 workdays, 0.25h DP resolution, and the
// tuned GA hyperparameters.
type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Workforce struct {
		Collectors  int     `env:"WORKFORCE_COLLECTORS" envDefault:"30"`
		HoursPerDay float64 `env:"WORKFORCE_HOURS_PER_DAY" envDefault:"8"`
		Workdays    int     `env:"WORKFORCE_WORKDAYS" envDefault:"220"`
	}
	DP struct {
		Resolution float64 `env:"DP_RESOLUTION" envDefault:"0.25"`
	}
	GA struct {
		Population    int     `env:"GA_POPULATION" envDefault:"80"`
		Generations   int     `env:"GA_GENERATIONS" envDefault:"150"`
		CrossoverRate float64 `env:"GA_CROSSOVER_RATE" envDefault:"0.7"`
		MutationRate  float64 `env:"GA_MUTATION_RATE" envDefault:"0.02"`
		Seed          int64   `env:"GA_SEED" envDefault:"42"`
	}
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; a missing file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Capacity returns the yearly workforce effort budget in hours.
func (c *Config) Capacity() float64 {
	return float64(c.Workforce.Collectors) * c.Workforce.HoursPerDay * float64(c.Workforce.Workdays)
}

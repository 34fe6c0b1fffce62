package app

import (
	"time"

	"github.com/joefazee/sportsbook/app/betting"
	"github.com/joefazee/sportsbook/app/database"
	"github.com/joefazee/sportsbook/app/settlement"
	"github.com/joefazee/sportsbook/app/stats"
	"github.com/joefazee/sportsbook/internal/cache"
	"github.com/joefazee/sportsbook/internal/events"
	"github.com/joefazee/sportsbook/internal/nexus"
	"github.com/joefazee/sportsbook/internal/security"
)

type Config struct {
	DB         database.Config
	Betting    betting.Config
	Settlement settlement.Config
	Stats      stats.Config
	Cache      cache.Config
	Events     events.Config
	Security   security.Config

	AppHost         string        `env:"APP_HOST" env-default:"localhost"`
	AppPort         string        `env:"APP_PORT" env-default:"8080"`
	Env             string        `env:"APP_ENV" env-default:"development" validate:"oneof=development staging production test"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	MetricsEnabled  bool          `env:"METRICS_ENABLED" env-default:"true"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Validate runs every feature config check. Struct tags are validated by the
// loader before this is called.
func (c *Config) Validate() error {
	checks := []interface{ Validate() error }{
		&c.DB, &c.Betting, &c.Settlement, &c.Stats,
	}
	for _, check := range checks {
		if err := check.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadConfig loads the application configuration from environment variables
// or a config file. CONFIG_FILE may point at a yaml or env file.
func LoadConfig(opts ...nexus.LoaderOption) (*Config, error) {
	c := &Config{}
	if err := nexus.NewLoader(opts...).Load(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

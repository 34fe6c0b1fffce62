package stats

import (
	"time"

	"github.com/joefazee/sportsbook/models"
)

// Config represents the configuration for the stats module
type Config struct {
	CacheTTL     time.Duration `env:"STATS_CACHE_TTL" env-default:"1m"`
	ActivityDays int           `env:"STATS_ACTIVITY_DAYS" env-default:"7"`
}

// Validate validates the stats configuration
func (c *Config) Validate() error {
	if c.CacheTTL < 0 {
		return models.ErrInvalidCacheTTL
	}
	if c.ActivityDays < 1 || c.ActivityDays > 90 {
		return models.ErrInvalidActivityWindow
	}
	return nil
}

// GetDefaultConfig returns the default stats configuration
func GetDefaultConfig() *Config {
	return &Config{
		CacheTTL:     time.Minute,
		ActivityDays: 7,
	}
}

package betting

import (
	"time"

	"github.com/joefazee/sportsbook/models"
)

// Config represents the configuration for the betting module
type Config struct {
	MinStake            int64         `env:"BETTING_MIN_STAKE" env-default:"1"`
	MinParlayLegs       int           `env:"BETTING_MIN_PARLAY_LEGS" env-default:"2"`
	MaxParlayLegs       int           `env:"BETTING_MAX_PARLAY_LEGS" env-default:"12"`
	ParlayOddsTolerance int           `env:"BETTING_PARLAY_ODDS_TOLERANCE" env-default:"0"`
	OperationTimeout    time.Duration `env:"BETTING_OPERATION_TIMEOUT" env-default:"5s"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{c.MinStake >= 1, models.ErrInvalidMinStake},
		{c.MinParlayLegs >= 2, models.ErrInvalidParlayLegBounds},
		{c.MaxParlayLegs >= c.MinParlayLegs, models.ErrInvalidParlayLegBounds},
		{c.ParlayOddsTolerance >= 0, models.ErrInvalidOddsTolerance},
		{c.OperationTimeout > 0, models.ErrInvalidOperationTimeout},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

// GetDefaultConfig returns the default betting configuration
func GetDefaultConfig() *Config {
	return &Config{
		MinStake:            1,
		MinParlayLegs:       2,
		MaxParlayLegs:       12,
		ParlayOddsTolerance: 0,
		OperationTimeout:    5 * time.Second,
	}
}

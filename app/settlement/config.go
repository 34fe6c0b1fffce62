package settlement

import (
	"time"

	"github.com/joefazee/sportsbook/models"
)

// Config represents the configuration for the settlement module
type Config struct {
	OperationTimeout time.Duration `env:"SETTLEMENT_OPERATION_TIMEOUT" env-default:"30s"`
}

// Validate validates the settlement configuration
func (c *Config) Validate() error {
	if c.OperationTimeout <= 0 {
		return models.ErrInvalidOperationTimeout
	}
	return nil
}

// GetDefaultConfig returns the default settlement configuration
func GetDefaultConfig() *Config {
	return &Config{
		OperationTimeout: 30 * time.Second,
	}
}

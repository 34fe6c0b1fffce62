package deps

import (
	"time"

	"github.com/joefazee/sportsbook/internal/cache"
	"github.com/joefazee/sportsbook/internal/events"
	"github.com/joefazee/sportsbook/internal/logger"
	"github.com/joefazee/sportsbook/internal/metrics"
	"github.com/joefazee/sportsbook/internal/sanitizer"
	"github.com/joefazee/sportsbook/internal/security"
	"gorm.io/gorm"
)

// Container holds all shared dependencies
type Container struct {
	DB          *gorm.DB
	TokenMaker  security.Maker
	Sanitizer   sanitizer.HTMLStripperer
	Logger      logger.Logger
	Events      events.Publisher
	Metrics     metrics.Recorder
	CacheConfig cache.Config
	Clock       func() time.Time

	// Store repositories as interfaces to avoid imports
	repositories map[string]interface{}
	services     map[string]interface{}
}

// Option overrides an optional dependency.
type Option func(*Container)

func WithEvents(p events.Publisher) Option {
	return func(c *Container) { c.Events = p }
}

func WithMetrics(m metrics.Recorder) Option {
	return func(c *Container) { c.Metrics = m }
}

func WithCacheConfig(cfg cache.Config) Option {
	return func(c *Container) { c.CacheConfig = cfg }
}

func WithClock(now func() time.Time) Option {
	return func(c *Container) { c.Clock = now }
}

func NewContainer(db *gorm.DB, tokenMaker security.Maker, sanitizer sanitizer.HTMLStripperer, logger logger.Logger, opts ...Option) *Container {
	c := &Container{
		DB:           db,
		TokenMaker:   tokenMaker,
		Sanitizer:    sanitizer,
		Logger:       logger,
		Events:       events.NopPublisher{},
		Metrics:      metrics.Nop{},
		CacheConfig:  cache.Config{Backend: cache.MemoryBackend},
		Clock:        time.Now,
		repositories: make(map[string]interface{}),
		services:     make(map[string]interface{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterRepository stores a repository with a key
func (c *Container) RegisterRepository(key string, repo interface{}) {
	c.repositories[key] = repo
}

// GetRepository retrieves a repository by key
func (c *Container) GetRepository(key string) interface{} {
	return c.repositories[key]
}

// RegisterService stores a service with a key
func (c *Container) RegisterService(key string, service interface{}) {
	c.services[key] = service
}

// GetService retrieves a service by key
func (c *Container) GetService(key string) interface{} {
	return c.services[key]
}

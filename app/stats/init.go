package stats

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/sportsbook/internal/cache"
	"github.com/joefazee/sportsbook/internal/deps"
	"github.com/joefazee/sportsbook/internal/logger"
)

const (
	RepoKey    = "stats_repository"
	ServiceKey = "stats_service"
)

// InitRepositories wires the stats service into the container. It must run
// before betting and settlement, which invalidate its cache.
func InitRepositories(container *deps.Container, config *Config) {
	if config == nil {
		config = GetDefaultConfig()
	}
	if err := config.Validate(); err != nil {
		panic("Invalid stats configuration: " + err.Error())
	}

	c, err := cache.New[BettingStats](container.CacheConfig)
	if err != nil {
		panic("Invalid stats cache: " + err.Error())
	}
	gens, err := cache.New[string](container.CacheConfig)
	if err != nil {
		panic("Invalid stats cache: " + err.Error())
	}

	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	log := container.Logger.With(logger.Fields{"module": "stats"})
	container.RegisterService(ServiceKey, NewService(repo, c, gens, config, container.Metrics, log, container.Clock))
}

// ServiceFrom returns the registered stats service.
func ServiceFrom(container *deps.Container) Service {
	return container.GetService(ServiceKey).(Service)
}

// MountAuthenticated mounts the caller's stats route
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := NewHandler(ServiceFrom(container))
	r.GET("/stats", handler.GetMyStats)
}

// MountAdmin mounts the staff view of any user's stats
func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := NewHandler(ServiceFrom(container))
	r.GET("/users/:id/stats", handler.GetUserStats)
}

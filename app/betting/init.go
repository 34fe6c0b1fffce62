package betting

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/sportsbook/app/limits"
	"github.com/joefazee/sportsbook/app/wallet"
	"github.com/joefazee/sportsbook/internal/deps"
	"github.com/joefazee/sportsbook/internal/logger"
)

const (
	RepoKey    = "betting_repository"
	ServiceKey = "betting_service"
)

// Dependencies represent the dependencies needed for the betting module
type Dependencies struct {
	Config *Config
	Stats  StatsInvalidator
}

// InitRepositories wires the betting service into the container. The wallet
// module must be initialized first.
func InitRepositories(container *deps.Container, d Dependencies) {
	if d.Config == nil {
		d.Config = GetDefaultConfig()
	}
	if err := d.Config.Validate(); err != nil {
		panic("Invalid betting configuration: " + err.Error())
	}

	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	guard := limits.NewGuard(repo, limits.WithClock(container.Clock))

	srv := NewService(container.DB, repo, wallet.LedgerFrom(container), guard, d.Config, ServiceDeps{
		Publisher: container.Events,
		Metrics:   container.Metrics,
		Stats:     d.Stats,
		Logger:    container.Logger.With(logger.Fields{"module": "betting"}),
		Clock:     container.Clock,
	})
	container.RegisterService(ServiceKey, srv)
}

// MountAuthenticated mounts the caller's betting routes
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := NewHandler(container.GetService(ServiceKey).(Service))

	bets := r.Group("/bets")
	bets.POST("", handler.PlaceSingle)
	bets.POST("/parlay", handler.PlaceParlay)
	bets.GET("", handler.GetMyBets)
	bets.GET("/:id", handler.GetBetByID)
}

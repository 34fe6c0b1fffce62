package settlement

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/sportsbook/app/wallet"
	"github.com/joefazee/sportsbook/internal/deps"
	"github.com/joefazee/sportsbook/internal/logger"
)

const (
	RepoKey    = "settlement_repository"
	ServiceKey = "settlement_service"
)

// Dependencies represent the dependencies needed for the settlement module
type Dependencies struct {
	Config *Config
	Stats  StatsInvalidator
}

// InitRepositories wires the settlement service into the container. The
// wallet module must be initialized first.
func InitRepositories(container *deps.Container, d Dependencies) {
	if d.Config == nil {
		d.Config = GetDefaultConfig()
	}
	if err := d.Config.Validate(); err != nil {
		panic("Invalid settlement configuration: " + err.Error())
	}

	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	srv := NewService(container.DB, repo, wallet.LedgerFrom(container), d.Config, ServiceDeps{
		Publisher: container.Events,
		Metrics:   container.Metrics,
		Stats:     d.Stats,
		Logger:    container.Logger.With(logger.Fields{"module": "settlement"}),
		Clock:     container.Clock,
	})
	container.RegisterService(ServiceKey, srv)
}

// MountAdmin mounts settlement routes on a staff-only group
func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := NewHandler(container.GetService(ServiceKey).(Service))

	games := r.Group("/games")
	games.POST("/:id/settle", handler.SettleGame)
	games.PATCH("/:id/status", handler.UpdateStatus)
}

package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/sportsbook/app/api"
	"github.com/joefazee/sportsbook/app/wallet"
	"github.com/joefazee/sportsbook/internal/deps"
	"github.com/joefazee/sportsbook/internal/logger"
	"github.com/joefazee/sportsbook/models"
)

const (
	RepoKey    = "admin_repository"
	ServiceKey = "admin_service"
)

// InitRepositories wires the back-office service. The wallet module must be
// initialized first.
func InitRepositories(container *deps.Container) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)
	container.RegisterService(api.UserFinderKey, repo)

	srv := NewService(container.DB, repo, wallet.LedgerFrom(container), container.Events,
		container.Logger.With(logger.Fields{"module": "admin"}))
	container.RegisterService(ServiceKey, srv)
}

// MountAdmin mounts user and ledger management on the staff group. Role
// changes additionally require the owner role.
func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := NewHandler(container.GetService(ServiceKey).(Service), container.Sanitizer, container.Logger)
	finder := container.GetService(api.UserFinderKey).(api.UserFinder)

	users := r.Group("/users")
	users.GET("", handler.GetUsers)
	users.GET("/:id", handler.GetUser)
	users.PUT("/:id/limits", handler.UpdateLimits)
	users.PATCH("/:id/suspension", handler.UpdateSuspension)
	users.PATCH("/:id/role", api.RequireRole(finder, models.RoleOwner), handler.UpdateRole)
	users.PUT("/:id/balance", handler.SetBalance)
	users.POST("/:id/balance/adjust", handler.AdjustBalance)

	r.GET("/bets", handler.GetBets)
	r.GET("/transactions", handler.GetTransactions)
}

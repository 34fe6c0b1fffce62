package catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/sportsbook/internal/deps"
	"github.com/joefazee/sportsbook/internal/logger"
)

const (
	RepoKey    = "catalog_repository"
	ServiceKey = "catalog_service"
)

// InitRepositories initializes and registers repositories and services for this module
func InitRepositories(container *deps.Container) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	srv := NewService(repo, container.Logger.With(logger.Fields{"module": "catalog"}))
	container.RegisterService(ServiceKey, srv)
}

// MountPublic mounts the read-only catalog routes
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	r.GET("/sports", handler.GetSports)
	r.GET("/sports/:id/teams", handler.GetTeams)
	r.GET("/games", handler.GetGames)
	r.GET("/games/:id", handler.GetGameByID)
}

// MountAdmin mounts game management routes on the staff group
func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	r.POST("/games", handler.CreateGame)
	r.PATCH("/games/:id/odds", handler.UpdateOdds)
}

func createHandler(container *deps.Container) *Handler {
	return NewHandler(container.GetService(ServiceKey).(Service), container.Sanitizer)
}

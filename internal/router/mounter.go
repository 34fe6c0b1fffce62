// internal/router/mounter.go
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/sportsbook/app/api"
	"github.com/joefazee/sportsbook/internal/deps"
	"github.com/joefazee/sportsbook/models"
)

// MountFunc represents a function that mounts routes for a module
type MountFunc func(*gin.RouterGroup, *deps.Container)

const (
	BasePath  = "/api/v1"
	AdminPath = "/api/v1/admin"
)

type Mounter struct {
	container *deps.Container
}

func NewMounter(container *deps.Container) *Mounter {
	return &Mounter{container: container}
}

// Public routes - no authentication required
func (m *Mounter) Public(engine *gin.Engine) *RouteGroup {
	group := engine.Group(BasePath)
	return &RouteGroup{group: group, container: m.container}
}

// Authenticated routes - requires a valid bearer token
func (m *Mounter) Authenticated(engine *gin.Engine) *RouteGroup {
	group := engine.Group(BasePath)
	group.Use(api.Authenticate(m.container.TokenMaker))
	return &RouteGroup{group: group, container: m.container}
}

// Staff routes live under /admin and require an agent or owner token.
func (m *Mounter) Staff(engine *gin.Engine) *RouteGroup {
	return m.Authorized(engine, AdminPath, models.RoleAgent, models.RoleOwner)
}

// Authorized routes - requires a valid token for a user whose stored role is
// one of roles. The UserFinder must be registered under api.UserFinderKey.
func (m *Mounter) Authorized(engine *gin.Engine, path string, roles ...models.Role) *RouteGroup {
	users, ok := m.container.GetService(api.UserFinderKey).(api.UserFinder)
	if !ok {
		panic("router: no user finder registered for authorized routes")
	}

	group := engine.Group(path)
	group.Use(api.Authenticate(m.container.TokenMaker), api.RequireRole(users, roles...))
	return &RouteGroup{group: group, container: m.container}
}

type RouteGroup struct {
	group     *gin.RouterGroup
	container *deps.Container
}

// Mount provides a fluent interface for mounting modules
func (rg *RouteGroup) Mount(mountFuncs ...MountFunc) *RouteGroup {
	for _, mount := range mountFuncs {
		mount(rg.group, rg.container)
	}
	return rg
}

// Group creates a sub-group for organizing routes
func (rg *RouteGroup) Group(path string) *RouteGroup {
	return &RouteGroup{group: rg.group.Group(path), container: rg.container}
}

// With adds middleware to the group, e.g. a stricter role check.
func (rg *RouteGroup) With(middleware ...gin.HandlerFunc) *RouteGroup {
	rg.group.Use(middleware...)
	return rg
}

// RouterGroup exposes the underlying gin group.
func (rg *RouteGroup) RouterGroup() *gin.RouterGroup {
	return rg.group
}

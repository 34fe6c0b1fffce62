package api

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/internal/security"
	"github.com/joefazee/sportsbook/models"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"

	userIDKey = "userID"
	roleKey   = "role"

	// UserFinderKey is the container service key of the UserFinder used by
	// staff routes.
	UserFinderKey = "user_finder"
)

// UserFinder loads the stored state of an authenticated caller. Unknown ids
// return models.ErrRecordNotFound.
type UserFinder interface {
	FindUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// UserFinderFunc adapts a function to UserFinder.
type UserFinderFunc func(ctx context.Context, id uuid.UUID) (*models.User, error)

func (f UserFinderFunc) FindUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return f(ctx, id)
}

// Authenticate verifies the bearer token and stores the caller in the context.
func Authenticate(tokenMaker security.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields := strings.Fields(c.GetHeader(AuthorizationHeaderKey))
		if len(fields) != 2 || fields[0] != AuthorizationTypeBearer {
			UnauthorizedResponse(c)
			c.Abort()
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set(userIDKey, payload.UserID)
		c.Set(roleKey, payload.Role)
		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles. The
// caller's role and suspension are read from users, not from the token, so a
// demoted or suspended staff member loses access before the token expires.
func RequireRole(users UserFinder, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserIDFrom(c)
		if !ok {
			UnauthorizedResponse(c)
			c.Abort()
			return
		}

		user, err := users.FindUser(c.Request.Context(), userID)
		switch {
		case errors.Is(err, models.ErrRecordNotFound):
			UnauthorizedResponse(c)
			c.Abort()
			return
		case err != nil:
			InternalErrorResponse(c, "failed to load user")
			c.Abort()
			return
		}

		if user.Suspended {
			ForbiddenResponse(c, "Access Denied: account suspended")
			c.Abort()
			return
		}

		for _, r := range roles {
			if r == user.Role {
				c.Set(roleKey, user.Role)
				c.Next()
				return
			}
		}

		ForbiddenResponse(c, "Access Denied: insufficient role")
		c.Abort()
	}
}

// UserIDFrom returns the authenticated user id.
func UserIDFrom(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// RoleFrom returns the authenticated user's role.
func RoleFrom(c *gin.Context) (models.Role, bool) {
	v, exists := c.Get(roleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(models.Role)
	return role, ok
}

// MustUserID returns the caller id or writes a 401 and reports false.
func MustUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := UserIDFrom(c)
	if !ok {
		UnauthorizedResponse(c)
		return uuid.Nil, false
	}
	return id, true
}

// ParamUUID parses a path parameter or writes a 400 and reports false.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		BadRequestResponse(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

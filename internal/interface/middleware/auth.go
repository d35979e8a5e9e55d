package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/internal/domain/repository"
	"github.com/2phishy/phishy-backend/pkg/helpers"
	"github.com/2phishy/phishy-backend/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	ctxUserKey   = "currentUser"
)

// tokenFromRequest reads the access token from the cookie, falling back to
// an Authorization bearer header so game clients without cookie support work.
func tokenFromRequest(c *gin.Context) string {
	if tok, err := c.Cookie("access_token"); err == nil && tok != "" {
		return tok
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// Auth validates the access token, loads the user and requires an active
// account. The full user record goes into the context for policy checks.
func Auth(users repository.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		u, err := users.GetByID(claims.UserID)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		if u.Status != entity.StatusActive {
			response.Error[any](c, http.StatusForbidden, "account is not active", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed by Auth.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}

// RequireRole gates a route on the role hierarchy: the authenticated user's
// role level must meet the requirement.
func RequireRole(required entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
			c.Abort()
			return
		}
		if !u.Role.AtLeast(required) {
			response.Error[any](c, http.StatusForbidden, "access denied, required role: "+string(required), nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

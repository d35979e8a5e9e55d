package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/internal/domain/repository"
	handlers "github.com/2phishy/phishy-backend/internal/interface/http"
	"github.com/2phishy/phishy-backend/internal/interface/middleware"
	"github.com/2phishy/phishy-backend/pkg/helpers"
)

// AdminModule wires the user administration routes under /api/admin.
// Every route requires an authenticated admin or super-admin; fine-grained
// rules (self-mutation, super-admin grants) are enforced in the service layer.
type AdminModule struct {
	Handler *handlers.AdminHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewAdminModule(h *handlers.AdminHandler, users repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client) *AdminModule {
	return &AdminModule{Handler: h, Users: users, JWT: jwt, Redis: rdb}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.Users, m.JWT))
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	admin.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		admin.GET("/stats", m.Handler.Stats)
		admin.GET("/users", m.Handler.ListUsers)
		admin.GET("/users/search", m.Handler.Search)
		admin.GET("/users/role/:role", m.Handler.ListByRole)
		admin.GET("/users/status/:status", m.Handler.ListByStatus)
		admin.GET("/users/:user_id", m.Handler.GetUser)
		admin.PUT("/users/:user_id", m.Handler.UpdateUser)
		admin.PATCH("/users/:user_id/role/:role", m.Handler.ChangeRole)
		admin.PATCH("/users/:user_id/status/:status", m.Handler.ChangeStatus)
		admin.DELETE("/users/:user_id", m.Handler.DeleteUser)
	}
}

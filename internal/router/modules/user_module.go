package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/2phishy/phishy-backend/internal/domain/repository"
	handlers "github.com/2phishy/phishy-backend/internal/interface/http"
	"github.com/2phishy/phishy-backend/internal/interface/middleware"
	"github.com/2phishy/phishy-backend/pkg/helpers"
)

// UserModule wires account and session routes.
// Public: POST /api/users/register, POST /api/users/login, POST /api/refresh
// Protected: POST /api/logout, GET /api/users/me, PUT /api/users/me,
// POST /api/users/me/avatar
type UserModule struct {
	Handler *handlers.UserHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, users repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Users: users, JWT: jwt, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/users/register", registerLimiter, m.Handler.Register)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/users/me", m.Handler.Me)
		auth.PUT("/users/me", m.Handler.UpdateMe)
		auth.POST("/users/me/avatar", m.Handler.UploadAvatar)
	}
}

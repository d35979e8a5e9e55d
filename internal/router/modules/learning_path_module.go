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

// LearningPathModule wires the learning-path routes under /api/learning-path.
// All routes require authentication.
type LearningPathModule struct {
	Handler *handlers.LearningPathHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewLearningPathModule(h *handlers.LearningPathHandler, users repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client) *LearningPathModule {
	return &LearningPathModule{Handler: h, Users: users, JWT: jwt, Redis: rdb}
}

func (m *LearningPathModule) Register(rg *gin.RouterGroup) {
	lp := rg.Group("/learning-path")
	lp.Use(middleware.Auth(m.Users, m.JWT))
	lp.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		lp.POST("", m.Handler.Create)
		lp.GET("", m.Handler.ListMine)
		lp.GET("/users/:user_id", m.Handler.ListForUser)
		lp.PUT("/:path_id/score", m.Handler.UpdateScore)
		lp.PUT("/:path_id/complete", m.Handler.Complete)
	}
}

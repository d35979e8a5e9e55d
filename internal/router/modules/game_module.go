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

// GameModule wires game save state, the leaderboard and assessment sessions
// under /api/game. All routes require authentication.
type GameModule struct {
	Handler *handlers.GameHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewGameModule(h *handlers.GameHandler, users repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client) *GameModule {
	return &GameModule{Handler: h, Users: users, JWT: jwt, Redis: rdb}
}

func (m *GameModule) Register(rg *gin.RouterGroup) {
	game := rg.Group("/game")
	game.Use(middleware.Auth(m.Users, m.JWT))
	// Save and result submission traffic is bursty during play sessions.
	game.Use(middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		game.POST("/progress", m.Handler.SaveProgress)
		game.GET("/progress", m.Handler.GetProgress)
		game.PUT("/progress", m.Handler.UpdateProgress)

		game.POST("/scores", m.Handler.RecordScore)
		game.GET("/scores", m.Handler.MyScores)
		game.GET("/scores/top", m.Handler.TopScores)

		game.POST("/assessment/start", m.Handler.StartSession)
		game.POST("/assessment/:session_id/result", m.Handler.SubmitResult)
		game.POST("/assessment/:session_id/end", m.Handler.EndSession)
		game.GET("/assessment/history/:user_id", m.Handler.History)
		game.GET("/assessment/stats/:user_id", m.Handler.Stats)
	}
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/2phishy/phishy-backend/internal/application"
	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/internal/interface/middleware"
	"github.com/2phishy/phishy-backend/pkg/response"
	"github.com/2phishy/phishy-backend/pkg/validation"
)

// GameHandler serves the game save state, the leaderboard and the
// assessment session endpoints.
type GameHandler struct {
	Game       *application.GameService
	Assessment *application.AssessmentService
	Logger     *logrus.Logger
}

func NewGameHandler(game *application.GameService, assessment *application.AssessmentService, logger *logrus.Logger) *GameHandler {
	return &GameHandler{Game: game, Assessment: assessment, Logger: logger}
}

func progressResponse(p *entity.GameProgress) gin.H {
	return gin.H{
		"id":               p.ID,
		"user_id":          p.UserID,
		"level":            p.Level,
		"current_score":    p.CurrentScore,
		"highest_score":    p.HighestScore,
		"enemies_defeated": p.EnemiesDefeated,
		"chests_collected": p.ChestsCollected,
		"time_played":      p.TimePlayed,
		"completed":        p.Completed,
		"save_data":        p.SaveData,
		"created_at":       p.CreatedAt,
		"updated_at":       p.UpdatedAt,
	}
}

func scoreResponse(s *entity.GameScore) gin.H {
	return gin.H{
		"id":               s.ID,
		"user_id":          s.UserID,
		"score":            s.Score,
		"level":            s.Level,
		"enemies_defeated": s.EnemiesDefeated,
		"chests_collected": s.ChestsCollected,
		"time_taken":       s.TimeTaken,
		"created_at":       s.CreatedAt,
	}
}

func scoreListResponse(scores []*entity.GameScore) []gin.H {
	out := make([]gin.H, 0, len(scores))
	for _, s := range scores {
		out = append(out, scoreResponse(s))
	}
	return out
}

func sessionResponse(s *entity.AssessmentSession) gin.H {
	return gin.H{
		"id":              s.ID,
		"session_id":      s.SessionID,
		"user_id":         s.UserID,
		"topic":           s.Topic,
		"start_time":      s.StartTime,
		"end_time":        s.EndTime,
		"total_score":     s.TotalScore,
		"total_questions": s.TotalQuestions,
		"completed":       s.Completed,
		"created_at":      s.CreatedAt,
		"updated_at":      s.UpdatedAt,
	}
}

type progressRequest struct {
	Level           *int     `json:"level" binding:"omitempty,gte=1"`
	CurrentScore    *int     `json:"current_score" binding:"omitempty,gte=0"`
	HighestScore    *int     `json:"highest_score" binding:"omitempty,gte=0"`
	EnemiesDefeated *int     `json:"enemies_defeated" binding:"omitempty,gte=0"`
	ChestsCollected *int     `json:"chests_collected" binding:"omitempty,gte=0"`
	TimePlayed      *float64 `json:"time_played" binding:"omitempty,gte=0"`
	Completed       *bool    `json:"completed"`
	SaveData        *string  `json:"save_data"`
}

func (r progressRequest) patch() application.GameProgressPatch {
	return application.GameProgressPatch{
		Level:           r.Level,
		CurrentScore:    r.CurrentScore,
		HighestScore:    r.HighestScore,
		EnemiesDefeated: r.EnemiesDefeated,
		ChestsCollected: r.ChestsCollected,
		TimePlayed:      r.TimePlayed,
		Completed:       r.Completed,
		SaveData:        r.SaveData,
	}
}

// SaveProgress POST /api/game/progress
func (h *GameHandler) SaveProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Game.SaveProgress(c.GetString(middleware.CtxUserIDKey), req.patch())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, progressResponse(p), "progress saved", nil)
}

// GetProgress GET /api/game/progress
func (h *GameHandler) GetProgress(c *gin.Context) {
	p, err := h.Game.GetProgress(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, progressResponse(p), "progress", nil)
}

// UpdateProgress PUT /api/game/progress
func (h *GameHandler) UpdateProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Game.UpdateProgress(c.GetString(middleware.CtxUserIDKey), req.patch())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, progressResponse(p), "progress updated", nil)
}

type recordScoreRequest struct {
	Score           int     `json:"score" binding:"gte=0"`
	Level           int     `json:"level" binding:"gte=1"`
	EnemiesDefeated int     `json:"enemies_defeated" binding:"gte=0"`
	ChestsCollected int     `json:"chests_collected" binding:"gte=0"`
	TimeTaken       float64 `json:"time_taken" binding:"gte=0"`
}

// RecordScore POST /api/game/scores
func (h *GameHandler) RecordScore(c *gin.Context) {
	var req recordScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	s, err := h.Game.RecordScore(c.GetString(middleware.CtxUserIDKey), application.RecordScoreInput{
		Score:           req.Score,
		Level:           req.Level,
		EnemiesDefeated: req.EnemiesDefeated,
		ChestsCollected: req.ChestsCollected,
		TimeTaken:       req.TimeTaken,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, scoreResponse(s), "score recorded", nil)
}

// MyScores GET /api/game/scores
func (h *GameHandler) MyScores(c *gin.Context) {
	scores, err := h.Game.MyScores(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, scoreListResponse(scores), "scores", nil)
}

// TopScores GET /api/game/scores/top?limit=
func (h *GameHandler) TopScores(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	scores, err := h.Game.TopScores(limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, scoreListResponse(scores), "leaderboard", nil)
}

type startSessionRequest struct {
	Topic     string     `json:"topic" binding:"required"`
	StartTime *time.Time `json:"start_time"`
}

// StartSession POST /api/game/assessment/start
func (h *GameHandler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	start := time.Now().UTC()
	if req.StartTime != nil {
		start = *req.StartTime
	}
	sess, err := h.Assessment.StartSession(c.GetString(middleware.CtxUserIDKey), req.Topic, start)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sessionResponse(sess), "assessment session started", nil)
}

type submitResultRequest struct {
	QuestionID    string     `json:"question_id" binding:"required"`
	UserAnswer    string     `json:"user_answer"`
	CorrectAnswer string     `json:"correct_answer"`
	IsCorrect     bool       `json:"is_correct"`
	Topic         string     `json:"topic"`
	Subcategory   string     `json:"subcategory"`
	Timestamp     *time.Time `json:"timestamp"`
}

// SubmitResult POST /api/game/assessment/:session_id/result
func (h *GameHandler) SubmitResult(c *gin.Context) {
	var req submitResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ts := time.Now().UTC()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}
	res, err := h.Assessment.SubmitResult(c.GetString(middleware.CtxUserIDKey), c.Param("session_id"), application.SubmitResultInput{
		QuestionID:    req.QuestionID,
		UserAnswer:    req.UserAnswer,
		CorrectAnswer: req.CorrectAnswer,
		IsCorrect:     req.IsCorrect,
		Topic:         req.Topic,
		Subcategory:   req.Subcategory,
		Timestamp:     ts,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":             res.ID,
		"session_id":     res.SessionID,
		"question_id":    res.QuestionID,
		"user_answer":    res.UserAnswer,
		"correct_answer": res.CorrectAnswer,
		"is_correct":     res.IsCorrect,
		"topic":          res.Topic,
		"subcategory":    res.Subcategory,
		"timestamp":      res.Timestamp,
	}, "result recorded", nil)
}

type endSessionRequest struct {
	EndTime        *time.Time `json:"end_time"`
	TotalScore     int        `json:"total_score" binding:"gte=0"`
	TotalQuestions int        `json:"total_questions" binding:"gte=0"`
}

// EndSession POST /api/game/assessment/:session_id/end
func (h *GameHandler) EndSession(c *gin.Context) {
	var req endSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	end := time.Now().UTC()
	if req.EndTime != nil {
		end = *req.EndTime
	}
	sess, err := h.Assessment.EndSession(c.GetString(middleware.CtxUserIDKey), c.Param("session_id"), end, req.TotalScore, req.TotalQuestions)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, sessionResponse(sess), "assessment session closed", nil)
}

// History GET /api/game/assessment/history/:user_id
func (h *GameHandler) History(c *gin.Context) {
	sessions, err := h.Assessment.History(middleware.CurrentUser(c), c.Param("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionResponse(s))
	}
	response.Success(c, http.StatusOK, out, "assessment history", nil)
}

// Stats GET /api/game/assessment/stats/:user_id
func (h *GameHandler) Stats(c *gin.Context) {
	stats, err := h.Assessment.Stats(middleware.CurrentUser(c), c.Param("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "assessment stats", nil)
}

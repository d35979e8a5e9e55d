package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/2phishy/phishy-backend/internal/application"
	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/internal/interface/middleware"
	"github.com/2phishy/phishy-backend/pkg/response"
	"github.com/2phishy/phishy-backend/pkg/validation"
)

type LearningPathHandler struct {
	Svc    *application.LearningPathService
	Logger *logrus.Logger
}

func NewLearningPathHandler(svc *application.LearningPathService, logger *logrus.Logger) *LearningPathHandler {
	return &LearningPathHandler{Svc: svc, Logger: logger}
}

func pathResponse(p *entity.LearningPath) gin.H {
	return gin.H{
		"id":         p.ID,
		"user_id":    p.UserID,
		"topic":      p.Topic,
		"subtopic":   p.Subtopic,
		"priority":   p.Priority,
		"score":      p.Score,
		"completed":  p.Completed,
		"notes":      p.Notes,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

func pathListResponse(paths []*entity.LearningPath) []gin.H {
	out := make([]gin.H, 0, len(paths))
	for _, p := range paths {
		out = append(out, pathResponse(p))
	}
	return out
}

type createPathRequest struct {
	Topic    string  `json:"topic" binding:"required"`
	Subtopic string  `json:"subtopic" binding:"required"`
	Score    float64 `json:"score" binding:"gte=0,lte=1"`
	Notes    string  `json:"notes"`
}

// Create POST /api/learning-path
func (h *LearningPathHandler) Create(c *gin.Context) {
	var req createPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.GetString(middleware.CtxUserIDKey), application.CreateLearningPathInput{
		Topic:    entity.Topic(req.Topic),
		Subtopic: req.Subtopic,
		Score:    req.Score,
		Notes:    req.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, pathResponse(p), "learning path created", nil)
}

// ListMine GET /api/learning-path
func (h *LearningPathHandler) ListMine(c *gin.Context) {
	u := middleware.CurrentUser(c)
	paths, err := h.Svc.ListForUser(u, u.ID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, pathListResponse(paths), "learning paths", nil)
}

// ListForUser GET /api/learning-path/users/:user_id
func (h *LearningPathHandler) ListForUser(c *gin.Context) {
	paths, err := h.Svc.ListForUser(middleware.CurrentUser(c), c.Param("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, pathListResponse(paths), "learning paths", nil)
}

type updateScoreRequest struct {
	Score float64 `json:"score" binding:"gte=0,lte=1"`
}

// UpdateScore PUT /api/learning-path/:path_id/score
func (h *LearningPathHandler) UpdateScore(c *gin.Context) {
	var req updateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdateScore(c.Param("path_id"), req.Score)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, pathResponse(p), "learning path updated", nil)
}

// Complete PUT /api/learning-path/:path_id/complete
func (h *LearningPathHandler) Complete(c *gin.Context) {
	p, err := h.Svc.MarkCompleted(c.Param("path_id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, pathResponse(p), "learning path completed", nil)
}

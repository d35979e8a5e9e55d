package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/2phishy/phishy-backend/internal/application"
	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/internal/interface/middleware"
	"github.com/2phishy/phishy-backend/pkg/response"
	"github.com/2phishy/phishy-backend/pkg/validation"
)

// AdminHandler exposes the user administration surface. Every route is
// registered behind RequireRole(admin); the finer-grained rules (self
// mutation, super-admin grants) live in the service's policy checks.
type AdminHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.UserService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

// Stats GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.Svc.UserStats()
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "user statistics", nil)
}

// ListUsers GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers()
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, userListResponse(users), "users", nil)
}

// Search GET /api/admin/users/search?q=&size=
func (h *AdminHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

// ListByRole GET /api/admin/users/role/:role
func (h *AdminHandler) ListByRole(c *gin.Context) {
	role, err := entity.ParseRole(c.Param("role"))
	if err != nil {
		fail(c, err)
		return
	}
	users, err := h.Svc.ListUsersByRole(role)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, userListResponse(users), "users", nil)
}

// ListByStatus GET /api/admin/users/status/:status
func (h *AdminHandler) ListByStatus(c *gin.Context) {
	status, err := entity.ParseAccountStatus(c.Param("status"))
	if err != nil {
		fail(c, err)
		return
	}
	users, err := h.Svc.ListUsersByStatus(status)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, userListResponse(users), "users", nil)
}

// GetUser GET /api/admin/users/:user_id
func (h *AdminHandler) GetUser(c *gin.Context) {
	u, err := h.Svc.GetUser(c.Param("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, userResponse(u), "user", nil)
}

type adminUpdateRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=64"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Role     *string `json:"role" binding:"omitempty,oneof=student admin super-admin"`
	Status   *string `json:"account_status" binding:"omitempty,oneof=active inactive suspended"`
}

// UpdateUser PUT /api/admin/users/:user_id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req adminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	patch := application.AdminUserPatch{Username: req.Username, Email: req.Email}
	if req.Role != nil {
		r := entity.Role(*req.Role)
		patch.Role = &r
	}
	if req.Status != nil {
		s := entity.AccountStatus(*req.Status)
		patch.Status = &s
	}
	u, err := h.Svc.AdminUpdateUser(c.Request.Context(), middleware.CurrentUser(c), c.Param("user_id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, userResponse(u), "user updated", nil)
}

// ChangeRole PATCH /api/admin/users/:user_id/role/:role
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	role, err := entity.ParseRole(c.Param("role"))
	if err != nil {
		fail(c, err)
		return
	}
	u, err := h.Svc.UpdateRole(c.Request.Context(), middleware.CurrentUser(c), c.Param("user_id"), role)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, userResponse(u), "role updated", nil)
}

// ChangeStatus PATCH /api/admin/users/:user_id/status/:status
func (h *AdminHandler) ChangeStatus(c *gin.Context) {
	status, err := entity.ParseAccountStatus(c.Param("status"))
	if err != nil {
		fail(c, err)
		return
	}
	u, err := h.Svc.UpdateStatus(c.Request.Context(), middleware.CurrentUser(c), c.Param("user_id"), status)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, userResponse(u), "status updated", nil)
}

// DeleteUser DELETE /api/admin/users/:user_id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.Svc.DeleteUser(middleware.CurrentUser(c), c.Param("user_id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "user deleted", nil)
}

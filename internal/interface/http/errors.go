package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/2phishy/phishy-backend/internal/application"
	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/pkg/response"
)

// fail maps a service error onto the HTTP status taxonomy: absent entities
// are 404, policy denials 403, bad input 400, unknown credentials 401, and
// everything else is treated as an infrastructure failure.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrPathNotFound),
		errors.Is(err, entity.ErrSessionNotFound),
		errors.Is(err, entity.ErrProgressNotFound),
		errors.Is(err, entity.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, entity.ErrForbidden),
		errors.Is(err, entity.ErrSelfRoleChange),
		errors.Is(err, entity.ErrSelfStatusChange),
		errors.Is(err, entity.ErrSelfDelete),
		errors.Is(err, entity.ErrSuperAdminGrant):
		response.Error[any](c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, entity.ErrInvalidRole),
		errors.Is(err, entity.ErrInvalidStatus),
		errors.Is(err, entity.ErrInvalidTopic),
		errors.Is(err, entity.ErrScoreOutOfRange),
		errors.Is(err, entity.ErrDuplicateUsername),
		errors.Is(err, entity.ErrDuplicateEmail):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

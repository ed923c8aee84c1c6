package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskorganizer/internal/adapter/http/middleware"
	"taskorganizer/internal/core/domain"
	"taskorganizer/pkg/apierrors"
)

func abortWithError(c *gin.Context, status int, msgKey string) {
	c.AbortWithStatusJSON(status, apierrors.CreateError(status, msgKey, middleware.GetLang(c)))
}

// respondTaskError maps task service errors to HTTP responses. Unexpected
// errors are logged and reported with failKey.
func respondTaskError(c *gin.Context, err error, failKey string, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
	case errors.Is(err, domain.ErrTaskNotFound):
		abortWithError(c, http.StatusNotFound, apierrors.MsgTaskNotFound)
	case errors.Is(err, domain.ErrInvalidTransition):
		abortWithError(c, http.StatusConflict, apierrors.MsgInvalidTimerAction)
	default:
		zap.L().Error(logMsg, zap.String("task_id", c.Param("id")), zap.Error(err))
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, failKey)
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-task-manager/internal/domain"
	resp "go-task-manager/internal/transport/http/response"
)

// fail maps domain errors onto the response envelope. Anything unexpected is
// logged server-side and reported as an opaque internal error.
func fail(c *gin.Context, l *zap.Logger, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
	case errors.Is(err, domain.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, resp.Error(resp.CodeConflict, err.Error()))
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, err.Error()))
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, err.Error()))
	case errors.Is(err, domain.ErrNotFoundOrForbidden):
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, err.Error()))
	default:
		l.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
	}
}

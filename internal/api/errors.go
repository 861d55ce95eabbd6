package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"credit_backend/internal/shared/apperror"
)

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as an ErrorResponse. Messages of unclassified errors
// are logged and replaced with a generic text.
func WriteError(c *gin.Context, log *zap.Logger, err error) {
	status := StatusFor(err)
	body := ErrorResponse{Error: http.StatusText(status)}

	var appErr *apperror.AppError
	if status != http.StatusInternalServerError && errors.As(err, &appErr) {
		body.Message = appErr.Message
		body.Field = appErr.Field
	} else if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		body.Message = "internal server error"
	} else {
		body.Message = err.Error()
	}

	c.AbortWithStatusJSON(status, body)
}

// WriteBindError reports a request that failed gin binding validation.
func WriteBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error:   http.StatusText(http.StatusBadRequest),
		Message: err.Error(),
	})
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/studentregistry/internal/app/models/dto"
	"github.com/yigit/studentregistry/internal/pkg/apperrors"
	"github.com/yigit/studentregistry/internal/pkg/logger"
)

// --- Central Error Handling ---

// HandleAPIError maps an error returned by a service to a status code and an
// ErrorResponse. The error's own message is always sent to the client.
// Unique violations are reported as 500 like any other storage failure.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := dto.ErrorCodeInternalServer

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		status = http.StatusNotFound
		code = dto.ErrorCodeResourceNotFound
	case errors.Is(err, apperrors.ErrConflict):
		code = dto.ErrorCodeResourceAlreadyExists
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		status = http.StatusBadRequest
		code = dto.ErrorCodeValidationFailed
	default:
		code = dto.ErrorCodeDatabaseError
	}

	resp := dto.NewErrorResponse(code, err.Error())
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && len(ce.Details) > 0 {
		resp = resp.WithDetails(ce.Details)
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

// RespondBadRequest writes a 400 with the validation error code
func RespondBadRequest(c *gin.Context, message string, details interface{}) {
	resp := dto.NewErrorResponse(dto.ErrorCodeValidationFailed, message)
	if details != nil {
		resp = resp.WithDetails(details)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}

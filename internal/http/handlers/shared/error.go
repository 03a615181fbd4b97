package shared

import (
	"errors"

	"github.com/sanjose-despensas/backend/internal/http/response"
	"github.com/sanjose-despensas/backend/internal/logger"
	"github.com/sanjose-despensas/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog returns a logger carrying the request id.
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError answers with an error envelope, logging the cause if any.
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondDomainError maps a service error onto the response taxonomy.
// Unrecognized errors become an internal fault with a generic message.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrCaptchaRequired),
		errors.Is(err, service.ErrCaptchaInvalid),
		errors.Is(err, service.ErrCaptchaDisabled):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrAlreadyCollected),
		errors.Is(err, service.ErrDuplicateMember):
		response.Error(c, response.CodeBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrBranchScopeDenied),
		errors.Is(err, service.ErrSupervisorRequired):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrBranchNotFound),
		errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	default:
		RespondError(c, response.CodeInternal, "error interno del servidor", err)
	}
}

package helper

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/adapter/http/validation"
	"taskhub/internal/core/domain"
	"taskhub/internal/core/model/response"
)

func SendSuccess(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, response.Envelope{
		Success: true,
		Data:    data,
	})
}

func SendError(c *gin.Context, statusCode int, code, message string, errors ...[]response.ValidationError) {
	body := &response.ErrorBody{
		Code:    code,
		Message: message,
	}

	if len(errors) > 0 {
		body.Errors = errors[0]
	}

	c.JSON(statusCode, response.Envelope{
		Success: false,
		Error:   body,
	})
}

func SendValidationError(c *gin.Context, err error) {
	validationErrors := validation.FormatValidationErrors(err)

	if len(validationErrors) == 0 {
		SendError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request parameters")
		return
	}

	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationErrors)
}

func SendUnauthorizedError(c *gin.Context, code, message string) {
	SendError(c, http.StatusUnauthorized, code, message)
}

func SendBadRequestError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// SendDomainError translates the service sentinels into wire status and
// code. Anything unrecognized is logged and hidden behind a 500.
func SendDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		SendError(c, http.StatusBadRequest, "DUPLICATE_EMAIL", "Email is already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		SendError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, domain.ErrAccountLocked):
		SendError(c, http.StatusLocked, "ACCOUNT_LOCKED", "Account locked after too many failed login attempts")
	case errors.Is(err, domain.ErrWrongPassword):
		SendError(c, http.StatusBadRequest, "WRONG_PASSWORD", "Current password does not match")
	case errors.Is(err, domain.ErrNotFound):
		SendError(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, domain.ErrListForbidden):
		SendError(c, http.StatusForbidden, "LIST_FORBIDDEN", "List does not belong to the authenticated user")
	case errors.Is(err, domain.ErrForbidden):
		SendError(c, http.StatusForbidden, "FORBIDDEN", "Resource does not belong to the authenticated user")
	case errors.Is(err, domain.ErrInvalidInput):
		SendError(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request parameters")
	default:
		slog.Error("Unhandled error", "error", err, "path", c.FullPath())
		SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/service"
)

// SendDomainError is the single place where domain failures become HTTP
// responses. Handlers never pick status codes themselves; anything not
// recognized here falls through to an opaque 500.
func SendDomainError(c *gin.Context, err error) {
	var authnErr *domain.AuthenticationError
	var authzErr *domain.AuthorizationError
	var validationErr *domain.ValidationError
	var dbErr *domain.DatabaseError

	switch {
	case errors.As(err, &authnErr):
		c.Header("WWW-Authenticate", "Bearer")
		sendError(c, http.StatusUnauthorized, authnErr.Error(), authnErr.Code(), "")

	case errors.As(err, &authzErr):
		sendError(c, http.StatusForbidden, authzErr.Error(), authzErr.Code(), "")

	case errors.As(err, &validationErr):
		sendError(c, http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR", validationErr.Field)

	case errors.Is(err, domain.ErrTaskNotFound):
		sendError(c, http.StatusNotFound, "Task not found", "NOT_FOUND", "")

	case errors.Is(err, domain.ErrEmailTaken):
		sendError(c, http.StatusBadRequest, "Email already registered", "EMAIL_TAKEN", "email")

	case errors.Is(err, service.ErrInvalidCredentials):
		sendError(c, http.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS", "")

	case errors.As(err, &dbErr):
		sendError(c, http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR", "")

	default:
		sendError(c, http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR", "")
	}
}

func SendValidationError(c *gin.Context, err error) {
	formatted := validation.FormatValidationErrors(err)

	if len(formatted) == 0 {
		sendError(c, http.StatusBadRequest, "Invalid request body", "VALIDATION_ERROR", "")
		return
	}

	first := formatted[0]
	sendError(c, http.StatusBadRequest, first.Message, "VALIDATION_ERROR", first.Field)
}

func SendBadRequestError(c *gin.Context, field, message string) {
	sendError(c, http.StatusBadRequest, message, "VALIDATION_ERROR", field)
}

func sendError(c *gin.Context, statusCode int, detail, code, field string) {
	c.AbortWithStatusJSON(statusCode, response.ErrorResponse{
		Detail:    detail,
		ErrorCode: code,
		Field:     field,
	})
}

// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/worldcities-service/internal/query"
	"github.com/maxviazov/worldcities-service/internal/repository"
	"github.com/maxviazov/worldcities-service/internal/service"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Client-caused list errors carry their own message; internal errors never leak details.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}

	switch {
	case errors.Is(err, query.ErrUnknownField):
		return http.StatusBadRequest, ErrorPayload{Error: "unknown_field", Message: err.Error()}
	case errors.Is(err, query.ErrInvalidPageSize):
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_page_size", Message: err.Error()}
	case errors.Is(err, query.ErrInvalidPageIndex):
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_page_index", Message: err.Error()}
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found"}
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict, ErrorPayload{Error: "already_exists"}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorPayload{Error: "conflict"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context. The error is
// attached to the gin context so the access log can report it.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// InvalidParam builds the invalid_input error for a malformed path or query parameter.
func InvalidParam(field, message string) error {
	return &paramError{fe: []service.FieldError{{Field: field, Message: message}}}
}

type paramError struct{ fe []service.FieldError }

func (e *paramError) Error() string                { return service.ErrInvalidInput.Error() }
func (e *paramError) Unwrap() error                { return service.ErrInvalidInput }
func (e *paramError) Fields() []service.FieldError { return e.fe }

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"transfleet/internal/media"
	"transfleet/internal/service"
	"transfleet/internal/storage"
	"transfleet/internal/upstream"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrSessionExpired),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Device permission errors
	case errors.Is(err, media.ErrPermissionDenied):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrNoSubmission),
		errors.Is(err, service.ErrRepairNotFound),
		errors.Is(err, upstream.ErrNotFound):
		return http.StatusNotFound

	// Validation errors
	case errors.Is(err, service.ErrInvalidOrderKind),
		errors.Is(err, service.ErrInvalidOrderID),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidFilter),
		errors.Is(err, service.ErrInvalidRepairType),
		errors.Is(err, service.ErrMissingDescription),
		errors.Is(err, service.ErrMissingVehicle),
		errors.Is(err, media.ErrNoImage),
		errors.Is(err, media.ErrTooManyImages):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrOrderCompleted),
		errors.Is(err, service.ErrSubmissionInFlight),
		errors.Is(err, service.ErrSubmissionNotEditable),
		errors.Is(err, service.ErrRepairNotDeletable):
		return http.StatusConflict

	// Upstream failures surface as bad gateway
	case errors.Is(err, storage.ErrUploadFailed),
		errors.Is(err, service.ErrTransitionRejected),
		errors.Is(err, upstream.ErrUnauthorized):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound is returned when a post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrLikeNotFound is returned when a like is not found.
	ErrLikeNotFound = errors.New("like not found")
	// ErrAccessDenied is returned when a caller tries to mutate a resource they do not own.
	ErrAccessDenied = errors.New("access denied")
	// ErrEmailTaken is returned when an email collides with an existing user.
	ErrEmailTaken = errors.New("email already in use")
	// ErrLikeConflict is returned when a like insert races another insert for the
	// same (user, post) pair. The caller may retry the toggle.
	ErrLikeConflict = errors.New("like already exists for this user and post")
	// ErrSchedulePast is returned when a schedule date is not in the future.
	ErrSchedulePast = errors.New("schedule date must be in the future")
	// ErrScheduleTooFar is returned when a schedule date is more than a year ahead.
	ErrScheduleTooFar = errors.New("schedule date must be within one year")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "POST_NOT_FOUND")
	case errors.Is(err, ErrLikeNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "LIKE_NOT_FOUND")
	case errors.Is(err, ErrAccessDenied):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCESS_DENIED")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrLikeConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "LIKE_CONFLICT")
	case errors.Is(err, ErrSchedulePast):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SCHEDULE_IN_PAST")
	case errors.Is(err, ErrScheduleTooFar):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SCHEDULE_TOO_FAR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

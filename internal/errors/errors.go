package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrHerbNotFound is returned when a herb is not found.
	ErrHerbNotFound = errors.New("herb not found")
	// ErrStoreNotFound is returned when a store is not found.
	ErrStoreNotFound = errors.New("store not found")
	// ErrProfileNotFound is returned when a profile is not found.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrImageTooLarge is returned when an uploaded image exceeds the size limit.
	ErrImageTooLarge = errors.New("image exceeds the 2MB size limit")
	// ErrInvalidImageType is returned when an uploaded file is not an allowed image type.
	ErrInvalidImageType = errors.New("invalid image type, only JPEG, PNG and WebP are allowed")
	// ErrInvalidWebhookSignature is returned when a webhook payload fails signature verification.
	ErrInvalidWebhookSignature = errors.New("invalid webhook signature")
	// ErrSubscriptionNotFound is returned when a profile has no subscription record.
	ErrSubscriptionNotFound = errors.New("subscription not found")
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
	switch err {
	case ErrHerbNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "HERB_NOT_FOUND")
	case ErrStoreNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "STORE_NOT_FOUND")
	case ErrProfileNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PROFILE_NOT_FOUND")
	case ErrSubscriptionNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "SUBSCRIPTION_NOT_FOUND")
	case ErrImageTooLarge:
		return NewHTTPError(http.StatusRequestEntityTooLarge, err.Error(), "IMAGE_TOO_LARGE")
	case ErrInvalidImageType:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_IMAGE_TYPE")
	case ErrInvalidWebhookSignature:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SIGNATURE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

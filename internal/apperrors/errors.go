package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateContact is returned when the email is already registered.
	ErrDuplicateContact = errors.New("contact already registered")
	// ErrNotFound is returned when the referenced meal does not exist.
	ErrNotFound = errors.New("meal not found")
	// ErrForbidden is returned when the meal exists but belongs to someone else.
	ErrForbidden = errors.New("meal belongs to another user")
	// ErrEmptyUpdate is returned when an update provides no field to change.
	ErrEmptyUpdate = errors.New("update request is empty")
	// ErrUnauthorized is returned when no session token was presented.
	ErrUnauthorized = errors.New("session token is required")
)

// ValidationError describes malformed or missing input, keyed by field.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StorageError wraps a failure reported by the persistence layer. The
// wrapped error is passed through untouched.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError wraps err, or returns nil when err is nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// HTTPError is a domain error resolved to a status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     map[string]string
	Err        error
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	detail := e.Message
	if e.Err != nil && e.StatusCode != http.StatusInternalServerError {
		detail = e.Err.Error()
	}
	return ErrorResponse{
		Message: e.Message,
		Error:   detail,
		Code:    e.Code,
		Fields:  e.Fields,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: "Validation failed", Code: "VALIDATION_ERROR", Fields: verr.Fields, Err: err}
	case errors.Is(err, ErrValidation):
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: "Validation failed", Code: "VALIDATION_ERROR", Err: err}
	case errors.Is(err, ErrDuplicateContact):
		return &HTTPError{StatusCode: http.StatusConflict, Message: "Registration failed", Code: "DUPLICATE_CONTACT", Err: ErrDuplicateContact}
	case errors.Is(err, ErrNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Message: "Meal not found", Code: "NOT_FOUND", Err: err}
	case errors.Is(err, ErrForbidden):
		return &HTTPError{StatusCode: http.StatusForbidden, Message: "User not related to the meal", Code: "FORBIDDEN", Err: err}
	case errors.Is(err, ErrEmptyUpdate):
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: "Request is empty", Code: "EMPTY_UPDATE", Err: err}
	case errors.Is(err, ErrUnauthorized):
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: "Session token is required", Code: "UNAUTHORIZED", Err: err}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "internal server error", Code: "INTERNAL_ERROR", Err: err}
	}
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION_ERROR"
	ErrorTypeFetch       ErrorType = "FETCH_ERROR"
	ErrorTypeTimeout     ErrorType = "TIMEOUT_ERROR"
	ErrorTypeDecode      ErrorType = "DECODE_ERROR"
	ErrorTypeParse       ErrorType = "PARSE_ERROR"
	ErrorTypeNoRecipe    ErrorType = "NO_RECIPE_ERROR"
	ErrorTypeUnsupported ErrorType = "UNSUPPORTED_SITE_ERROR"
	ErrorTypeInternal    ErrorType = "INTERNAL_ERROR"
)

// Error codes shared with API clients.
const (
	CodeInvalidURL        = "ERR_INVALID_URL"
	CodeUnsupportedDomain = "ERR_UNSUPPORTED_DOMAIN"
	CodeFetchFailed       = "ERR_FETCH_FAILED"
	CodeNoRecipeFound     = "ERR_NO_RECIPE_FOUND"
	CodeTimeout           = "ERR_TIMEOUT"
	CodeUnknown           = "ERR_UNKNOWN"
)

// AppError represents a structured error for the application
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"statusCode"`
	ErrorCode  string    `json:"errorCode"`
	Recovery   string    `json:"recoverySuggestion,omitempty"`
	Err        error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the application-specific error code
func (e *AppError) Code() string {
	return e.ErrorCode
}

// RecoverySuggestion returns the suggestion on how to recover from the error
func (e *AppError) RecoverySuggestion() string {
	return e.Recovery
}

// As returns the first *AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err carries an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == t
}

// NewValidationError creates a new validation error (400)
func NewValidationError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		ErrorCode:  errorCode,
		Recovery:   suggestion,
	}
}

// NewFetchError creates a new fetch error (502)
func NewFetchError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeFetch,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		ErrorCode:  CodeFetchFailed,
		Recovery:   "The website might be down or blocking requests. Try again later.",
		Err:        err,
	}
}

// NewTimeoutError creates a new timeout error (504)
func NewTimeoutError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		ErrorCode:  CodeTimeout,
		Recovery:   "The page took too long to respond. Try again later.",
		Err:        err,
	}
}

// NewDecodeError creates a new decode error (422)
func NewDecodeError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeDecode,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		ErrorCode:  CodeFetchFailed,
		Recovery:   "The page is not valid UTF-8 text.",
		Err:        err,
	}
}

// NewParseError creates a new parse error (422)
func NewParseError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeParse,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		ErrorCode:  CodeNoRecipeFound,
		Err:        err,
	}
}

// NewNoRecipeError creates a new error for pages without usable recipe data (422)
func NewNoRecipeError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNoRecipe,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		ErrorCode:  CodeNoRecipeFound,
		Recovery:   "Make sure the URL points to a single recipe page.",
	}
}

// NewUnsupportedSiteError creates a new error for hosts without an adapter (422)
func NewUnsupportedSiteError(host string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnsupported,
		Message:    fmt.Sprintf("website %s is not supported", host),
		StatusCode: http.StatusUnprocessableEntity,
		ErrorCode:  CodeUnsupportedDomain,
		Recovery:   "Try a recipe from a different website.",
	}
}

// NewInternalError creates a new internal error (500)
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  CodeUnknown,
		Err:        err,
	}
}

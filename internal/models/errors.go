package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the application.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeInvalidState = "INVALID_STATE"
	CodeGateway      = "GATEWAY_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   string `json:"details,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewInvalidStateError signals an operation that is not legal for the swap's
// current lifecycle state, including a lost compare-and-swap race.
func NewInvalidStateError(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidState,
		Message: message,
	}
}

// NewGatewayError signals a failed or malformed response from the external
// suggestion service. Always recoverable; callers should offer a retry.
func NewGatewayError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeGateway,
		Message: message,
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// StatusForError maps an application error to its HTTP status code.
func StatusForError(err error) int {
	appErr, ok := err.(*AppError)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeInvalidState:
		return fiber.StatusConflict
	case CodeGateway:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error:     appErr.Message,
			Code:      appErr.Code,
			Retryable: appErr.Code == CodeGateway,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}

package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeTooMany      ErrorType = "TOO_MANY_REQUESTS"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodePasswordTooShort ErrorCode = "PASSWORD_TOO_SHORT"
	ErrCodeInvalidRole      ErrorCode = "INVALID_ROLE"
	ErrCodeSelfDestructive  ErrorCode = "SELF_DESTRUCTIVE_ACTION"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeLockedOut          ErrorCode = "LOCKED_OUT"
	ErrCodeUnauthenticated    ErrorCode = "UNAUTHENTICATED"
	ErrCodeSessionExpired     ErrorCode = "SESSION_EXPIRED"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"

	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeProjectNotFound    ErrorCode = "PROJECT_NOT_FOUND"
	ErrCodeTaskNotFound       ErrorCode = "TASK_NOT_FOUND"
	ErrCodeContactNotFound    ErrorCode = "CONTACT_NOT_FOUND"
	ErrCodeRiskNotFound       ErrorCode = "RISK_NOT_FOUND"
	ErrCodeTemplateNotFound   ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeAttachmentNotFound ErrorCode = "ATTACHMENT_NOT_FOUND"

	ErrCodeDuplicateID       ErrorCode = "DUPLICATE_ID"
	ErrCodeDuplicateUsername ErrorCode = "DUPLICATE_USERNAME"

	ErrCodeFileTooLarge   ErrorCode = "FILE_TOO_LARGE"
	ErrCodeDisallowedType ErrorCode = "DISALLOWED_TYPE"

	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy carrying the underlying error; sentinels stay
// untouched so they remain comparable with errors.Is.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithMessage returns a copy with a more specific message, keeping the
// stable type and code.
func (e *AppError) WithMessage(format string, args ...interface{}) *AppError {
	clone := *e
	clone.Message = fmt.Sprintf(format, args...)
	return &clone
}

// Is lets errors.Is match a derived copy (WithCause/WithMessage) against
// its sentinel by type and code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Join() string {
	msgs := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewTooManyRequestsError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeTooMany,
		Code:       ErrCodeLockedOut,
		Message:    message,
		StatusCode: http.StatusTooManyRequests,
	}
}

func NewStorageError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeStorageFailure,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrInvalidCredentials = NewUnauthorizedError("invalid username or password", ErrCodeInvalidCredentials)
	ErrLockedOut          = NewTooManyRequestsError("too many failed login attempts")
	ErrUnauthenticated    = NewUnauthorizedError("missing or invalid session token", ErrCodeUnauthenticated)
	ErrSessionExpired     = NewUnauthorizedError("session has expired, please log in again", ErrCodeSessionExpired)
	ErrForbidden          = NewForbiddenError("insufficient role for this operation", ErrCodeForbidden)

	ErrUserNotFound       = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrProjectNotFound    = NewNotFoundError("project not found", ErrCodeProjectNotFound)
	ErrTaskNotFound       = NewNotFoundError("task not found", ErrCodeTaskNotFound)
	ErrContactNotFound    = NewNotFoundError("contact not found", ErrCodeContactNotFound)
	ErrRiskNotFound       = NewNotFoundError("risk not found", ErrCodeRiskNotFound)
	ErrTemplateNotFound   = NewNotFoundError("template not found", ErrCodeTemplateNotFound)
	ErrAttachmentNotFound = NewNotFoundError("attachment not found", ErrCodeAttachmentNotFound)

	ErrDuplicateID       = NewConflictError("id already exists in this project", ErrCodeDuplicateID)
	ErrDuplicateUsername = NewConflictError("username already exists", ErrCodeDuplicateUsername)

	ErrFileTooLarge   = NewValidationError("file exceeds the maximum allowed size", ErrCodeFileTooLarge)
	ErrDisallowedType = NewValidationError("file type is not allowed", ErrCodeDisallowedType)
)

// IsAppError unwraps err down to the AppError carrying the wire taxonomy,
// if one is anywhere in the chain.
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

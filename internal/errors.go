package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound          ErrorType = "NOT_FOUND"
	ErrorTypeInvalidTransition ErrorType = "INVALID_TRANSITION"
	ErrorTypeUnauthorized      ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden         ErrorType = "FORBIDDEN"
	ErrorTypeConflict          ErrorType = "CONFLICT"
	ErrorTypeInternal          ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidCategory  ErrorCode = "INVALID_CATEGORY"
	ErrCodeInvalidShift     ErrorCode = "INVALID_SHIFT"

	ErrCodeToolNotFound         ErrorCode = "TOOL_NOT_FOUND"
	ErrCodeDeviceNotFound       ErrorCode = "DEVICE_NOT_FOUND"
	ErrCodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	ErrCodeLoanNotFound         ErrorCode = "LOAN_NOT_FOUND"
	ErrCodeUsageNotFound        ErrorCode = "USAGE_RECORD_NOT_FOUND"
	ErrCodeDecommissionNotFound ErrorCode = "DECOMMISSION_NOT_FOUND"

	ErrCodeToolNotAvailable        ErrorCode = "TOOL_NOT_AVAILABLE"
	ErrCodeToolNotBorrowed         ErrorCode = "TOOL_NOT_BORROWED"
	ErrCodeToolDecommissioned      ErrorCode = "TOOL_DECOMMISSIONED"
	ErrCodeToolNotInMaintenance    ErrorCode = "TOOL_NOT_IN_MAINTENANCE"
	ErrCodeDeviceNotAvailable      ErrorCode = "DEVICE_NOT_AVAILABLE"
	ErrCodeUsageAlreadyEnded       ErrorCode = "USAGE_ALREADY_ENDED"
	ErrCodeReplacementOutOfOrder   ErrorCode = "REPLACEMENT_OUT_OF_ORDER"
	ErrCodeReplacementComplete     ErrorCode = "REPLACEMENT_COMPLETE"
	ErrCodeDeviceInUse             ErrorCode = "DEVICE_IN_USE"
	ErrCodeToolAlreadyRegistered   ErrorCode = "TOOL_ALREADY_REGISTERED"
	ErrCodeAlreadyDecommissioned   ErrorCode = "ALREADY_DECOMMISSIONED"
	ErrCodeUserAlreadyRegistered   ErrorCode = "USER_ALREADY_REGISTERED"
	ErrCodeDeviceAlreadyRegistered ErrorCode = "DEVICE_ALREADY_REGISTERED"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeMissingActor       ErrorCode = "MISSING_ACTOR"
	ErrCodeInsufficientRole   ErrorCode = "INSUFFICIENT_ROLE"
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

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
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

// NewInvalidTransitionError reports an operation attempted from a status
// that does not permit it (e.g. checking in a tool that is not borrowed).
func NewInvalidTransitionError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidTransition,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
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

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrToolNotFound         = NewNotFoundError("tool not found", ErrCodeToolNotFound)
	ErrDeviceNotFound       = NewNotFoundError("lockout device not found", ErrCodeDeviceNotFound)
	ErrUserNotFound         = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrLoanNotFound         = NewNotFoundError("loan record not found", ErrCodeLoanNotFound)
	ErrUsageNotFound        = NewNotFoundError("lockout usage record not found", ErrCodeUsageNotFound)
	ErrDecommissionNotFound = NewNotFoundError("decommission record not found", ErrCodeDecommissionNotFound)

	ErrToolNotAvailable     = NewInvalidTransitionError("tool is not available for checkout", ErrCodeToolNotAvailable)
	ErrToolNotBorrowed      = NewInvalidTransitionError("tool is not borrowed and cannot be returned", ErrCodeToolNotBorrowed)
	ErrToolDecommissioned   = NewInvalidTransitionError("tool is decommissioned", ErrCodeToolDecommissioned)
	ErrToolNotInMaintenance = NewInvalidTransitionError("tool is not in maintenance", ErrCodeToolNotInMaintenance)
	ErrDeviceNotAvailable   = NewInvalidTransitionError("lockout device is not available", ErrCodeDeviceNotAvailable)
	ErrUsageAlreadyEnded    = NewInvalidTransitionError("lockout usage record is already closed", ErrCodeUsageAlreadyEnded)

	ErrReplacementOutOfOrder = NewInvalidTransitionError("replacement status must advance one stage at a time", ErrCodeReplacementOutOfOrder)
	ErrReplacementComplete   = NewInvalidTransitionError("replacement workflow already reached its final stage", ErrCodeReplacementComplete)

	ErrDeviceInUse             = NewConflictError("lockout device is in use and cannot be removed", ErrCodeDeviceInUse)
	ErrToolAlreadyRegistered   = NewConflictError("a tool with this code already exists", ErrCodeToolAlreadyRegistered)
	ErrAlreadyDecommissioned   = NewConflictError("tool already has a decommission record", ErrCodeAlreadyDecommissioned)
	ErrUserAlreadyRegistered   = NewConflictError("a user with this code already exists", ErrCodeUserAlreadyRegistered)
	ErrDeviceAlreadyRegistered = NewConflictError("a device with this code already exists", ErrCodeDeviceAlreadyRegistered)

	ErrInvalidCredentials = NewUnauthorizedError("invalid user code or password", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
	ErrMissingActor       = NewUnauthorizedError("an authenticated user is required for this operation", ErrCodeMissingActor)
	ErrInsufficientRole   = NewForbiddenError("role does not permit this operation", ErrCodeInsufficientRole)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
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

package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Build errors (BUILD_*) - raised before the transport is contacted.
	// Callers must not retry the same request unchanged.
	ErrorCodeUnsupportedAction ErrorCode = "BUILD_UNSUPPORTED_ACTION"
	ErrorCodeMissingField      ErrorCode = "BUILD_MISSING_FIELD"
	ErrorCodeInvalidAmount     ErrorCode = "BUILD_INVALID_AMOUNT"

	// Gateway errors (GATEWAY_*) - transport-level failures. A decline is
	// not an error; it is a TransactionResult with Success=false.
	ErrorCodeGatewayError      ErrorCode = "GATEWAY_ERROR"
	ErrorCodeGatewayTimeout    ErrorCode = "GATEWAY_TIMEOUT"
	ErrorCodeGatewayNoResponse ErrorCode = "GATEWAY_NO_RESPONSE"

	// Configuration errors (CONFIG_*)
	ErrorCodeConfigMissing ErrorCode = "CONFIG_MISSING"
)

// DomainError represents a structured error with a machine code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithDetail returns a copy of the error with an added detail field. The
// receiver is left untouched so the package-level instances stay shareable.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{
		Err:     e.Err,
		Details: details,
		Code:    e.Code,
		Message: e.Message,
	}
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// GetErrorCode extracts the error code from an error, returns empty string if
// the error is not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// IsBuildError checks if an error was raised while building the processor
// request, i.e. before any transport call
func IsBuildError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeUnsupportedAction ||
		code == ErrorCodeMissingField ||
		code == ErrorCodeInvalidAmount
}

// IsGatewayError checks if an error came from the transport boundary
func IsGatewayError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeGatewayError ||
		code == ErrorCodeGatewayTimeout ||
		code == ErrorCodeGatewayNoResponse
}

// Shared build-stage error instances. Gateway and config errors are always
// constructed with WrapError/NewDomainError at the failure site so they carry
// the underlying cause.
var (
	ErrUnsupportedAction = NewDomainError(ErrorCodeUnsupportedAction, "unsupported transaction action")
	ErrMissingField      = NewDomainError(ErrorCodeMissingField, "required field missing")
	ErrInvalidAmount     = NewDomainError(ErrorCodeInvalidAmount, "invalid amount")
)

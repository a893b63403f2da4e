package errors

import (
	stderrors "errors"
	"fmt"
)

// PipeError is the unified library error type.
type PipeError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *PipeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *PipeError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *PipeError) WithCause(cause error) *PipeError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *PipeError) WithDetail(key string, value any) *PipeError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new PipeError.
func New(code ErrorCode, message string) *PipeError {
	return &PipeError{Code: code, Message: message}
}

// CodeOf extracts the ErrorCode from an error chain, or "" if the chain
// contains no PipeError.
func CodeOf(err error) ErrorCode {
	var pe *PipeError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// HasCode reports whether the error chain contains a PipeError with the given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// --- Common Error Constructors ---

// Unbound creates a new PipeError for reading a variable before it is set.
func Unbound(name string) *PipeError {
	return &PipeError{
		Code: ErrCodeUnboundVariable, Message: fmt.Sprintf("variable %q has no value", name),
		Details: map[string]any{"variable": name},
	}
}

// Leaked creates a new PipeError for a step returning a raw placeholder.
func Leaked(name string) *PipeError {
	return &PipeError{
		Code: ErrCodeLeakedPlaceholder, Message: fmt.Sprintf("pipeline variable %q being returned", name),
		Details: map[string]any{"variable": name},
	}
}

// ReadOnly creates a new PipeError for a write to a resource-backed variable.
func ReadOnly(name string) *PipeError {
	return &PipeError{
		Code: ErrCodeReadOnlyVariable, Message: fmt.Sprintf("resource variable %q is read-only", name),
		Details: map[string]any{"variable": name},
	}
}

// ClosedScope creates a new PipeError for an operation on a closed scope.
func ClosedScope(op string) *PipeError {
	return &PipeError{
		Code: ErrCodeClosedScope, Message: fmt.Sprintf("scope is closed: %s is no longer valid", op),
		Details: map[string]any{"operation": op},
	}
}

// ReservedName creates a new PipeError for an initial variable name that
// collides with a structural field of the context.
func ReservedName(name string) *PipeError {
	return &PipeError{
		Code: ErrCodeReservedName, Message: fmt.Sprintf("variable name %q is reserved", name),
		Details: map[string]any{"name": name},
	}
}

// ResourceFailure creates a new PipeError for a managed resource failure.
func ResourceFailure(name, op string, cause error) *PipeError {
	return &PipeError{
		Code: ErrCodeResourceFailure, Message: fmt.Sprintf("resource %q failed to %s", name, op),
		Details: map[string]any{"resource": name, "operation": op}, Cause: cause,
	}
}

// InvalidStep creates a new PipeError for an unsupported step function shape.
func InvalidStep(reason string) *PipeError {
	return &PipeError{Code: ErrCodeInvalidStep, Message: fmt.Sprintf("invalid step function: %s", reason)}
}

// InvalidInput creates a new PipeError for invalid input.
func InvalidInput(field, reason string) *PipeError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &PipeError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new PipeError for validation errors.
func Validation(message string) *PipeError {
	return &PipeError{Code: ErrCodeInvalidInput, Message: message}
}

// Internal creates a new PipeError for an unexpected internal failure.
func Internal(cause error) *PipeError {
	return &PipeError{
		Code: ErrCodeInternal, Message: "an unexpected error occurred",
		Cause: cause,
	}
}

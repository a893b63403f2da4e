package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Placeholder lifecycle errors
const (
	// ErrCodeUnboundVariable indicates a variable's value was read before it was ever set.
	ErrCodeUnboundVariable ErrorCode = "UNBOUND_VARIABLE"
	// ErrCodeLeakedPlaceholder indicates a step function returned a raw placeholder
	// instead of a resolved value.
	ErrCodeLeakedPlaceholder ErrorCode = "LEAKED_PLACEHOLDER"
	// ErrCodeReadOnlyVariable indicates a write to a resource-backed variable.
	ErrCodeReadOnlyVariable ErrorCode = "READ_ONLY_VARIABLE"
)

// Scope errors
const (
	// ErrCodeClosedScope indicates a variable lookup or creation on a closed scope.
	ErrCodeClosedScope ErrorCode = "CLOSED_SCOPE"
	// ErrCodeReservedName indicates an initial variable name collides with a
	// structural field of the owning context.
	ErrCodeReservedName ErrorCode = "RESERVED_NAME"
	// ErrCodeResourceFailure indicates a managed resource failed to acquire or release.
	ErrCodeResourceFailure ErrorCode = "RESOURCE_FAILURE"
)

// Composition errors
const (
	// ErrCodeInvalidStep indicates a function with an unsupported shape was
	// used to build a step.
	ErrCodeInvalidStep ErrorCode = "INVALID_STEP"
	// ErrCodeInvalidInput indicates invalid input to a library call.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// usageCodes mark programming errors: misuse of the API rather than
// transient conditions.
var usageCodes = map[ErrorCode]bool{
	ErrCodeUnboundVariable:   true,
	ErrCodeLeakedPlaceholder: true,
	ErrCodeReadOnlyVariable:  true,
	ErrCodeClosedScope:       true,
	ErrCodeReservedName:      true,
	ErrCodeInvalidStep:       true,
	ErrCodeInvalidInput:      true,
}

// IsUsageCode returns true if the error code indicates API misuse.
func IsUsageCode(code ErrorCode) bool {
	return usageCodes[code]
}

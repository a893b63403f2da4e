// Package errors provides unified error handling for the fpipe library.
// It implements structured error types with machine-readable codes so
// callers can distinguish API-misuse failures from resource failures.
package errors

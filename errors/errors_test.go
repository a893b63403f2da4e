package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestPipeError_Error(t *testing.T) {
	err := New(ErrCodeInvalidStep, "not a function")
	if got := err.Error(); got != "INVALID_STEP: not a function" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestPipeError_ErrorWithCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Internal(cause)
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected cause in message, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the cause")
	}
}

func TestPipeError_WithDetail(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad").WithDetail("field", "depth")
	if err.Details["field"] != "depth" {
		t.Fatalf("expected detail, got %v", err.Details)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *PipeError
		code ErrorCode
	}{
		{"unbound", Unbound("x"), ErrCodeUnboundVariable},
		{"leaked", Leaked("x"), ErrCodeLeakedPlaceholder},
		{"readonly", ReadOnly("db"), ErrCodeReadOnlyVariable},
		{"closed", ClosedScope("variable"), ErrCodeClosedScope},
		{"reserved", ReservedName("target"), ErrCodeReservedName},
		{"resource", ResourceFailure("db", "release", stderrors.New("x")), ErrCodeResourceFailure},
		{"invalid_step", InvalidStep("no args"), ErrCodeInvalidStep},
		{"invalid_input", InvalidInput("depth", "negative"), ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.Message == "" {
				t.Fatal("expected non-empty message")
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	err := Unbound("x")
	wrapped := fmt.Errorf("running step: %w", err)

	if got := CodeOf(wrapped); got != ErrCodeUnboundVariable {
		t.Fatalf("expected UNBOUND_VARIABLE through wrap, got %s", got)
	}
	if got := CodeOf(stderrors.New("plain")); got != "" {
		t.Fatalf("expected empty code for plain error, got %s", got)
	}
}

func TestHasCode(t *testing.T) {
	err := ClosedScope("attribute")
	if !HasCode(err, ErrCodeClosedScope) {
		t.Fatal("expected HasCode to match")
	}
	if HasCode(err, ErrCodeUnboundVariable) {
		t.Fatal("expected HasCode to reject other codes")
	}
}

func TestIsUsageCode(t *testing.T) {
	if !IsUsageCode(ErrCodeUnboundVariable) {
		t.Fatal("unbound variable is a usage error")
	}
	if IsUsageCode(ErrCodeResourceFailure) {
		t.Fatal("resource failure is not a usage error")
	}
}

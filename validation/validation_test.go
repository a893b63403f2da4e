package validation

import (
	"strings"
	"testing"

	"github.com/skillsenselab/fpipe/errors"
)

type sample struct {
	Name     string `mapstructure:"name" validate:"required"`
	MaxDepth int    `mapstructure:"max_depth" validate:"gte=1,lte=100"`
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(sample{Name: "fpipe", MaxDepth: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Failure(t *testing.T) {
	err := Validate(sample{MaxDepth: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	if !strings.Contains(err.Error(), "name") {
		t.Fatalf("expected field name in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "max_depth") {
		t.Fatalf("expected max_depth in message, got %q", err.Error())
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"MaxDepth", "max_depth"},
		{"Name", "name"},
		{"noop", "noop"},
	}
	for _, tt := range tests {
		if got := toSnakeCase(tt.in); got != tt.out {
			t.Fatalf("toSnakeCase(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}

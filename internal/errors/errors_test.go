package errors

import (
	"fmt"
	"testing"
)

func TestSentinelWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading store: %w", ErrSessionNotFound)
	if !Is(wrapped, ErrSessionNotFound) {
		t.Error("Is() should match wrapped ErrSessionNotFound")
	}
	if Is(wrapped, ErrStoreCorrupted) {
		t.Error("Is() should not match a different sentinel")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name  string
		err   *ValidationError
		want  string
	}{
		{
			name: "with field",
			err:  NewValidationError("heat", "unknown level"),
			want: "validation failed for heat: unknown level",
		},
		{
			name: "without field",
			err:  &ValidationError{Message: "bad input"},
			want: "validation failed: bad input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	err := fmt.Errorf("begin: %w", NewValidationError("level", "required"))
	if !IsValidation(err) {
		t.Error("IsValidation() should detect wrapped ValidationError")
	}
	if IsValidation(ErrSessionNotFound) {
		t.Error("IsValidation() should not match a sentinel")
	}
}

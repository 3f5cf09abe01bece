package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"direct error", Conflict("dates taken"), KindConflict},
		{"wrapped once", fmt.Errorf("create booking: %w", NotFound("listing missing")), KindNotFound},
		{"wrapping another error", Wrap(KindConflict, errors.New("sqlstate 23P01"), "overlap"), KindConflict},
		{"plain error", errors.New("boom"), Kind("")},
		{"nil", nil, Kind("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	err := InvalidState("booking %s is already cancelled", "b-1")

	if !IsKind(err, KindInvalidState) {
		t.Error("IsKind() = false for matching kind")
	}
	if IsKind(err, KindConflict) {
		t.Error("IsKind() = true for non-matching kind")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindConflict, cause, "insert failed")

	if !errors.Is(err, cause) {
		t.Error("errors.Is() cannot reach the wrapped cause")
	}
	if err.Error() != "insert failed: connection reset" {
		t.Errorf("Error() = %q", err.Error())
	}
}

package domain

import (
	"errors"
	"testing"
)

func TestValidationError_Is(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"title": "cannot be blank"}}

	if !errors.Is(err, ErrValidation) {
		t.Error("errors.Is(ValidationError, ErrValidation) = false, want true")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("errors.Is(ValidationError, ErrNotFound) = true, want false")
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"title":       "cannot be blank",
		"description": "cannot be blank",
	}}

	// Field order in the message is deterministic
	want := "validation failed: description: cannot be blank; title: cannot be blank"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	empty := &ValidationError{}
	if got := empty.Error(); got != "validation failed" {
		t.Errorf("Error() = %q, want %q", got, "validation failed")
	}
}

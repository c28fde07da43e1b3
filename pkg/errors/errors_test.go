package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/birchtree/birch/pkg/tree"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeFileNotFound, cause, "failed to open")

	if err.Code != ErrCodeFileNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFileNotFound)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeNotFound,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeCycle, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeCycle,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeDuplicateID, "test"),
			expected: ErrCodeDuplicateID,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
		{
			name:     "with cause",
			err:      Wrap(ErrCodeNotFound, errors.New("no such node"), "remove b"),
			expected: "remove b: no such node",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFromTree(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"not found", fmt.Errorf("remove x: %w", tree.ErrNotFound), ErrCodeNotFound},
		{"duplicate", fmt.Errorf("add x: %w", tree.ErrDuplicateID), ErrCodeDuplicateID},
		{"cycle", tree.ErrCycle, ErrCodeCycle},
		{"foreign", tree.ErrForeignNode, ErrCodeInvalidArgument},
		{"invalid argument", tree.ErrInvalidArgument, ErrCodeInvalidArgument},
		{"already root", tree.ErrAlreadyRoot, ErrCodeInvalidArgument},
		{"structured", New(ErrCodeInvalidQuery, "bad"), ErrCodeInvalidQuery},
		{"unknown", errors.New("boom"), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromTree(tt.err); got != tt.expected {
				t.Errorf("FromTree() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFromTreeRealMutation(t *testing.T) {
	f := tree.New[string, any]()
	r := f.NewNode(nil, "r")
	_, err := r.Remove("missing")
	if got := FromTree(err); got != ErrCodeNotFound {
		t.Errorf("FromTree(Remove error) = %v, want %v", got, ErrCodeNotFound)
	}
}

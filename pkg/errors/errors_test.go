package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  New(ErrCodeNotFound, "no snapshot named %q", "home"),
			want: `NOT_FOUND: no snapshot named "home"`,
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeInvalidConfig, errors.New("line 3: expected '='"), "decode config"),
			want: "INVALID_CONFIG: decode config: line 3: expected '='",
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

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeInternal, cause, "ping redis")

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if got := errors.Unwrap(err); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
}

func TestCodes(t *testing.T) {
	v := NewValidator(ErrCodeInvalidLayout)
	v.Addf("layout[0].w", "must be positive, got %d", 0)

	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"error", New(ErrCodeInvalidCommand, "move: missing id"), ErrCodeInvalidCommand},
		{"outer code wins", Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInternal},
		{"through fmt.Errorf", fmt.Errorf("home.json: %w", New(ErrCodeInvalidFormat, "bad")), ErrCodeInvalidFormat},
		{"validation", v.Err(), ErrCodeInvalidLayout},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
			if got, want := Is(tt.err, tt.want), tt.want != ""; got != want {
				t.Errorf("Is(%v) = %v, want %v", tt.want, got, want)
			}
		})
	}

	if Is(New(ErrCodeNotFound, "x"), ErrCodeInternal) {
		t.Error("Is() matched a different code")
	}
}

func TestUserMessage(t *testing.T) {
	v := NewValidator(ErrCodeInvalidLayout)
	v.Addf("layout[1].id", "duplicate id %q", "a")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"error drops the code", New(ErrCodeInvalidInput, "x must be an integer"), "x must be an integer"},
		{"wrapped error", fmt.Errorf("load config: %w", New(ErrCodeInvalidConfig, "no breakpoints configured")), "no breakpoints configured"},
		{"validation summary", v.Err(), `1 validation issue(s): layout[1].id: duplicate id "a"`},
		{"plain", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIssues(t *testing.T) {
	if got := Issues(New(ErrCodeNotFound, "x")); got != nil {
		t.Errorf("Issues(non-validation) = %v, want nil", got)
	}

	v := NewValidator(ErrCodeInvalidConfig)
	v.Addf("grid.cols", "must be positive, got %d", -1)
	v.Addf("store.ttl", "must not be negative")
	if got := Issues(fmt.Errorf("wrapped: %w", v.Err())); len(got) != 2 {
		t.Errorf("Issues() = %v, want 2 issues", got)
	}
}

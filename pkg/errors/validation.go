package errors

import (
	"fmt"
	"strings"
)

// Issue is a single structural violation found during validation.
// Path locates the offending field (e.g. "layout[2].w", "command.handle").
type Issue struct {
	Path    string
	Message string
}

// String renders the issue as "path: message".
func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError aggregates every structural violation found in one pass.
// Validators collect all issues before failing so callers see the complete
// list instead of fixing problems one at a time.
type ValidationError struct {
	Code   Code
	Issues []Issue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Summary())
}

// Summary lists every issue separated by semicolons.
func (e *ValidationError) Summary() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.String()
	}
	return fmt.Sprintf("%d validation issue(s): %s", len(e.Issues), strings.Join(parts, "; "))
}

// Validator collects issues under a common code.
//
//	v := errors.NewValidator(errors.ErrCodeInvalidLayout)
//	v.Addf("layout[0].w", "must be positive, got %d", w)
//	return v.Err()
type Validator struct {
	code   Code
	issues []Issue
}

// NewValidator creates a validator whose error will carry code.
func NewValidator(code Code) *Validator {
	return &Validator{code: code}
}

// Addf records an issue at path.
func (v *Validator) Addf(path, format string, args ...any) {
	v.issues = append(v.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Check records an issue at path when ok is false.
func (v *Validator) Check(ok bool, path, format string, args ...any) {
	if !ok {
		v.Addf(path, format, args...)
	}
}

// Merge appends the issues of another validation error, prefixing their paths.
func (v *Validator) Merge(prefix string, err error) {
	ve, ok := err.(*ValidationError)
	if !ok {
		if err != nil {
			v.Addf(prefix, "%v", err)
		}
		return
	}
	for _, is := range ve.Issues {
		path := is.Path
		if prefix != "" {
			path = prefix + "." + path
		}
		v.issues = append(v.issues, Issue{Path: path, Message: is.Message})
	}
}

// Len returns the number of issues collected so far.
func (v *Validator) Len() int { return len(v.issues) }

// Err returns nil when no issues were collected, otherwise a *ValidationError.
func (v *Validator) Err() error {
	if len(v.issues) == 0 {
		return nil
	}
	issues := make([]Issue, len(v.issues))
	copy(issues, v.issues)
	return &ValidationError{Code: v.code, Issues: issues}
}

// Package guard holds the result type returned by the pure precondition
// checks in the core packages.
package guard

import "fmt"

// Result represents the outcome of a guard evaluation.
type Result struct {
	Allowed bool
	Reason  string
	Kind    error // apperr kind reported when not allowed
}

// Allow is a passing result.
func Allow() Result {
	return Result{Allowed: true}
}

// Deny is a failing result of the given kind.
func Deny(kind error, format string, args ...any) Result {
	return Result{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Error converts the guard result to an error if not allowed.
func (r Result) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Kind == nil {
		return fmt.Errorf("%s", r.Reason)
	}
	return fmt.Errorf("%w: %s", r.Kind, r.Reason)
}

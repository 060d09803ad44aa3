// Package apperr defines the error kinds shared by the core, the services and
// the persistence adapters. Callers classify failures with errors.Is against
// the sentinel kinds; *Error adds operation context on top of a kind.
package apperr

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	ErrValidation           = errors.New("validation error")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrIncompleteAssessment = errors.New("incomplete assessment")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrStorage              = errors.New("storage error")
)

// ErrInvalidPriceRange is a validation error raised by the pricing engine.
// errors.Is matches both ErrInvalidPriceRange and ErrValidation.
var ErrInvalidPriceRange = fmt.Errorf("%w: invalid price range", ErrValidation)

// Error carries an operation, the affected entity and a kind.
type Error struct {
	Op      string // e.g. "listing.transition"
	Kind    error  // one of the Err* kinds
	ID      string // affected entity, optional
	Message string
	Err     error // underlying cause, optional
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	kind := "error"
	if e.Kind != nil {
		kind = e.Kind.Error()
	}

	switch {
	case e.ID != "" && msg != "":
		return fmt.Sprintf("%s: %s %s: %s", e.Op, kind, e.ID, msg)
	case e.ID != "":
		return fmt.Sprintf("%s: %s %s", e.Op, kind, e.ID)
	case msg != "":
		return fmt.Sprintf("%s: %s: %s", e.Op, kind, msg)
	default:
		return fmt.Sprintf("%s: %s", e.Op, kind)
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// New builds an *Error with a formatted message.
func New(op string, kind error, id string, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, ID: id, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error around a cause.
func Wrap(op string, kind error, id string, err error) *Error {
	return &Error{Op: op, Kind: kind, ID: id, Err: err}
}

// NotFound reports a missing entity.
func NotFound(op, entity, id string) *Error {
	return &Error{Op: op, Kind: ErrNotFound, ID: id, Message: entity + " does not exist"}
}

// Storage wraps a driver failure.
func Storage(op string, err error) *Error {
	return &Error{Op: op, Kind: ErrStorage, Err: err}
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err is a Conflict error.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// KindOf returns the first matching kind of err, or nil.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrInvalidTransition,
		ErrIncompleteAssessment,
		ErrNotFound,
		ErrConflict,
		ErrStorage,
		ErrValidation,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

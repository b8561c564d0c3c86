// Package fault defines the error kinds shared by every feature and the
// helpers used to attach an operation name to them.
package fault

import (
	"errors"
	"strings"
)

// Sentinel kinds. Callers match them with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrUnimplemented   = errors.New("backend not implemented")
	ErrOperationFailed = errors.New("operation failed")
	ErrInFlight        = errors.New("operation already in progress")
)

// Error carries the operation that failed, the kind of failure and the
// underlying cause (which may be nil).
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Kind != nil && e.Err != nil:
		b.WriteString(e.Kind.Error())
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	case e.Kind != nil:
		b.WriteString(e.Kind.Error())
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

func (e *Error) Unwrap() error { return e.Err }

// NewKind returns an error of the given kind without a cause.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// Wrap annotates err with op. The kind of err, if any, is preserved through
// Unwrap. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// WrapKind annotates err with op and kind.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Validation is a shorthand for a validation failure with a message.
func Validation(op, msg string) error {
	return &Error{Op: op, Kind: ErrValidation, Err: errors.New(msg)}
}

// KindOf returns the first known kind found in err's chain, or
// ErrOperationFailed when none matches.
func KindOf(err error) error {
	for _, k := range []error{ErrNotFound, ErrValidation, ErrInFlight, ErrUnimplemented} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrOperationFailed
}

// Package qsmerr defines the tagged error kinds returned by the QSM
// numerical core. Every public entry point validates up front and fails
// fast with one of these kinds rather than a bare wrapped error, so
// callers can branch on failure class with errors.Is.
package qsmerr

import (
	"errors"
	"fmt"
)

// Kind classifies why a core operation rejected its inputs.
type Kind int

const (
	// ShapeMismatch: array dimensions or extents are inconsistent
	// across inputs/outputs.
	ShapeMismatch Kind = iota
	// InvalidRank: field rank outside {3, 4}.
	InvalidRank
	// InvalidOption: string/symbol option outside its allowed set.
	InvalidOption
	// InvalidValue: non-finite or non-positive VoxelSize, zero direction
	// vector.
	InvalidValue
	// NumericDegenerate: denominator identically zero in an inverse
	// kernel path that cannot fall back to zero. Reserved: every known
	// inverse-kernel path in pkg/qsm falls back to zero, so this kind
	// is never produced today.
	NumericDegenerate
)

func (k Kind) String() string {
	switch k {
	case ShapeMismatch:
		return "ShapeMismatch"
	case InvalidRank:
		return "InvalidRank"
	case InvalidOption:
		return "InvalidOption"
	case InvalidValue:
		return "InvalidValue"
	case NumericDegenerate:
		return "NumericDegenerate"
	default:
		return "Unknown"
	}
}

// Sentinels usable with errors.Is to match a Kind without inspecting Param/Message.
var (
	ErrShapeMismatch      = &Error{Kind: ShapeMismatch}
	ErrInvalidRank        = &Error{Kind: InvalidRank}
	ErrInvalidOption      = &Error{Kind: InvalidOption}
	ErrInvalidValue       = &Error{Kind: InvalidValue}
	ErrNumericDegenerate  = &Error{Kind: NumericDegenerate}
)

// Error is the tagged failure value returned by the core. Param names the
// offending argument; Message explains the violation.
type Error struct {
	Kind    Kind
	Param   string
	Message string
}

func (e *Error) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("qsmcore: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("qsmcore: %s: parameter %q: %s", e.Kind, e.Param, e.Message)
}

// Is reports whether target is an *Error with the same Kind, letting
// callers write errors.Is(err, qsmerr.ErrShapeMismatch).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs a tagged error for the given kind, parameter, and message.
func New(kind Kind, param, message string) error {
	return &Error{Kind: kind, Param: param, Message: message}
}

// Shape returns a ShapeMismatch error for param.
func Shape(param, message string) error { return New(ShapeMismatch, param, message) }

// Rank returns an InvalidRank error for param.
func Rank(param, message string) error { return New(InvalidRank, param, message) }

// Option returns an InvalidOption error for param.
func Option(param, message string) error { return New(InvalidOption, param, message) }

// Value returns an InvalidValue error for param.
func Value(param, message string) error { return New(InvalidValue, param, message) }

// As is a convenience wrapper over errors.As for *Error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

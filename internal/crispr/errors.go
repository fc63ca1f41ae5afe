package crispr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind tags an Error with the class of failure behind it.
type Kind int

const (
	// unknownError is any error that didn't come from this package
	unknownError Kind = iota

	// InputError is a bad command line argument or a missing input file
	InputError

	// StructuralError is a document missing an element it must have, eg its root
	StructuralError

	// DanglingReference is a link to an id that isn't defined in the group
	DanglingReference

	// CollisionWarning is a group id seen more than once during a strict merge
	CollisionWarning

	// DataError is a malformed value on a single element, eg an unparseable coverage
	DataError
)

// String is for logging.
func (k Kind) String() string {
	switch k {
	case InputError:
		return "input error"
	case StructuralError:
		return "structural error"
	case DanglingReference:
		return "dangling reference"
	case CollisionWarning:
		return "collision"
	case DataError:
		return "data error"
	}
	return "error"
}

// Error is a failure with a Kind, a message and (optionally) where it happened.
type Error struct {
	Kind Kind

	// Msg is a single line description of what went wrong
	Msg string

	// Loc is the file or group the error relates to, may be empty
	Loc string
}

// Error returns the message, prefixed by its location if there is one.
func (e *Error) Error() string {
	if e.Loc == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

func newError(k Kind, loc, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...), Loc: loc}
}

// UsageError marks err as a problem with how a command was called.
func UsageError(err error) error {
	return newError(InputError, "", "%v", err)
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return unknownError
}

// Recoverable reports whether err only affects the group it came from.
func Recoverable(err error) bool {
	switch KindOf(err) {
	case DanglingReference, CollisionWarning, DataError:
		return true
	}
	return false
}

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if KindOf(err) == StructuralError {
		return 2
	}
	return 1
}

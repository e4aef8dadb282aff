package nstree

import (
	"fmt"

	cerrors "github.com/cockroachdb/errors"
)

// Kind is the closed error taxonomy shared by every public API entry
// point. Callers switch on Kind, never on error text.
type Kind int

const (
	// Success is never returned as an error value (a nil error means
	// success); it exists so Kind has a meaningful zero-adjacent name
	// for KindOf(nil).
	Success Kind = iota
	InitializationError
	BadPath
	ConflictingPath
	NoSuchPath
	NotADirectory
	NotAFile
	AlreadyInTree
	MemoryError
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case InitializationError:
		return "initialization error"
	case BadPath:
		return "bad path"
	case ConflictingPath:
		return "conflicting path"
	case NoSuchPath:
		return "no such path"
	case NotADirectory:
		return "not a directory"
	case NotAFile:
		return "not a file"
	case AlreadyInTree:
		return "already in tree"
	case MemoryError:
		return "memory error"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every nstree mutator and query
// that can fail. It carries a Kind from the closed taxonomy plus a
// cockroachdb/errors-produced cause that records a stack trace at the
// point the error was raised.
type Error struct {
	kind  Kind
	cause error
}

func newError(k Kind, format string, args ...any) *Error {
	return &Error{kind: k, cause: cerrors.NewWithDepthf(1, format, args...)}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.kind.String()
	}
	return fmt.Sprintf("%s: %s", e.kind, e.cause)
}

// Unwrap exposes the stack-carrying cause to errors.Is/errors.As and
// to cerrors.GetReportableStackTrace.
func (e *Error) Unwrap() error { return e.cause }

// Kind returns the taxonomy member this error belongs to.
func (e *Error) Kind() Kind { return e.kind }

// Is makes errors.Is(err, ErrBadPath) (and the other sentinels below)
// compare by Kind rather than by identity or message text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == t.kind
}

// Sentinel errors for errors.Is comparisons. These carry no cause and
// exist only to be compared against by Kind.
var (
	ErrInitializationError = &Error{kind: InitializationError}
	ErrBadPath             = &Error{kind: BadPath}
	ErrConflictingPath     = &Error{kind: ConflictingPath}
	ErrNoSuchPath          = &Error{kind: NoSuchPath}
	ErrNotADirectory       = &Error{kind: NotADirectory}
	ErrNotAFile            = &Error{kind: NotAFile}
	ErrAlreadyInTree       = &Error{kind: AlreadyInTree}
	ErrMemoryError         = &Error{kind: MemoryError}
)

// KindOf extracts the Kind carried by err, returning Success for a
// nil error and a zero Kind (Success) for any foreign error — callers
// that need to distinguish "succeeded" from "unrecognized error" should
// check err == nil first, as the API contract guarantees.
func KindOf(err error) Kind {
	if err == nil {
		return Success
	}
	var e *Error
	if cerrors.As(err, &e) {
		return e.kind
	}
	return Success
}

// Package etlerr defines the error taxonomy shared by every pipeline stage.
//
// Stages return *Error values (usually through New or the Kind helpers) so
// the CLI can map a failure to an exit code with errors.Is, while the
// message still carries the operation and path that failed.
package etlerr

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindUnknown is the zero Kind; it matches no sentinel.
	KindUnknown Kind = iota
	// KindNotFound: input directory missing or no archives found.
	KindNotFound
	// KindParse: archive content is not valid tabular data or lacks a column.
	KindParse
	// KindDomain: a value lies outside its categorical or date domain.
	KindDomain
	// KindIO: the output directory could not be reset or written.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindParse:
		return "parse"
	case KindDomain:
		return "domain"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrNotFound = errors.New("not found")
	ErrParse    = errors.New("parse error")
	ErrDomain   = errors.New("domain error")
	ErrIO       = errors.New("io error")
)

// Error is a classified pipeline error.
type Error struct {
	Kind Kind
	Op   string // stage operation, e.g. "archive.read"
	Path string // file, directory, or row locator; may be empty
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel belonging to e.Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrParse:
		return e.Kind == KindParse
	case ErrDomain:
		return e.Kind == KindDomain
	case ErrIO:
		return e.Kind == KindIO
	}
	return false
}

// New builds a classified error.
func New(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// NotFound builds a KindNotFound error.
func NotFound(op, path string, err error) *Error { return New(KindNotFound, op, path, err) }

// Parse builds a KindParse error.
func Parse(op, path string, err error) *Error { return New(KindParse, op, path, err) }

// Domain builds a KindDomain error with a formatted cause.
func Domain(op, path, format string, a ...any) *Error {
	return New(KindDomain, op, path, fmt.Errorf(format, a...))
}

// IO builds a KindIO error.
func IO(op, path string, err error) *Error { return New(KindIO, op, path, err) }

// KindOf returns the Kind of the first *Error in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

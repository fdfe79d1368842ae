package tutor

import (
	"errors"

	"github.com/phrazzld/lumina-api/internal/generation"
	"github.com/phrazzld/lumina-api/internal/prompt"
)

// ErrorKind classifies why an operation produced no value.
type ErrorKind int

// Error kinds.
const (
	KindNone ErrorKind = iota
	KindUnavailable
	KindTransport
	KindDecode
	KindInvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnavailable:
		return "unavailable"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Result is the outcome of one operation. Kind is KindNone exactly when Err
// is nil.
type Result[T any] struct {
	Value T
	Kind  ErrorKind
	Err   error
}

// OK reports whether the operation succeeded.
func (r Result[T]) OK() bool {
	return r.Kind == KindNone
}

func success[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func failure[T any](err error) Result[T] {
	return Result[T]{Kind: kindOf(err), Err: err}
}

func kindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, prompt.ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, generation.ErrUnavailable):
		return KindUnavailable
	case errors.Is(err, generation.ErrDecode):
		return KindDecode
	default:
		return KindTransport
	}
}

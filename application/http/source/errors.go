package source

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrStreamAlreadyConsumed is returned when a streaming body was read
	// before extraction began. Streams cannot be rewound; pass a fresh one.
	ErrStreamAlreadyConsumed = errors.New("stream is not readable: already consumed")

	ErrUnsupportedSourceType = errors.New("unsupported source type")
)

// UnsupportedSourceTypeError names the value a factory could not convert.
// It matches [ErrUnsupportedSourceType] with [errors.Is].
type UnsupportedSourceTypeError struct {
	Side Side
	Type string
}

func newUnsupportedSourceTypeError(side Side, v any) *UnsupportedSourceTypeError {
	return &UnsupportedSourceTypeError{Side: side, Type: fmt.Sprintf("%T", v)}
}

func (e *UnsupportedSourceTypeError) Error() string {
	return fmt.Sprintf("unsupported %s source type: %s", e.Side, e.Type)
}

func (e *UnsupportedSourceTypeError) Is(target error) bool {
	return target == ErrUnsupportedSourceType
}

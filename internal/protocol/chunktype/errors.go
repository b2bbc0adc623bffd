package chunktype

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidByte    = errors.New("chunktype: invalid byte")
	ErrMalformedInput = errors.New("chunktype: string must be 4 ASCII bytes")
	ErrShortTag       = errors.New("chunktype: short type field")
)

// InvalidByteError reports the first byte that is not an ASCII letter.
type InvalidByteError struct {
	Value byte
	Index int
}

func (e InvalidByteError) Error() string {
	return fmt.Sprintf(
		"chunktype: invalid byte %d at index %d; valid bytes are ASCII A-Z and a-z (%d-%d, %d-%d)",
		e.Value,
		e.Index,
		'A', 'Z',
		'a', 'z',
	)
}

func (e InvalidByteError) Is(target error) bool {
	return target == ErrInvalidByte
}

package chunktype

import (
	"errors"
	"io"
)

// Read consumes exactly one type field from r.
func Read(r io.Reader) (Tag, error) {
	var b [Size]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Tag{}, ErrShortTag
		}
		return Tag{}, err
	}
	return FromBytes(b)
}

// WriteTo writes the four tag bytes to w.
func (t Tag) WriteTo(w io.Writer) (int64, error) {
	if _, err := FromBytes(t.b); err != nil {
		return 0, err
	}
	n, err := w.Write(t.b[:])
	return int64(n), err
}

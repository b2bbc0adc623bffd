package chunktype

import (
	"fmt"
	"unicode/utf8"
)

// Size is the width of a chunk type code on the wire.
const Size = 4

// Tag is a validated chunk type code. Every Tag built by FromBytes or Parse
// holds four ASCII letters; the zero Tag holds none and is not valid.
type Tag struct {
	b [Size]byte
}

// Flags is a snapshot of the case-derived properties of a Tag.
type Flags struct {
	Critical         bool `json:"critical"`
	Public           bool `json:"public"`
	ReservedBitValid bool `json:"reserved_bit_valid"`
	SafeToCopy       bool `json:"safe_to_copy"`
	Valid            bool `json:"valid"`
}

// IsValidByte reports whether b is an ASCII letter (65-90 or 97-122).
func IsValidByte(b byte) bool {
	return isUpper(b) || isLower(b)
}

// FromBytes validates b and wraps it unchanged. When several bytes are
// invalid the error names the one with the lowest index.
func FromBytes(b [Size]byte) (Tag, error) {
	for i, v := range b {
		if !IsValidByte(v) {
			return Tag{}, InvalidByteError{Value: v, Index: i}
		}
	}
	return Tag{b: b}, nil
}

// Parse builds a Tag from the first four bytes of s.
//
// s is rejected only when it is neither 4 bytes long nor pure ASCII, so an
// ASCII string longer than 4 bytes is truncated. Use ParseStrict to require
// exactly 4 bytes.
func Parse(s string) (Tag, error) {
	if len(s) != Size && !isASCII(s) {
		return Tag{}, fmt.Errorf("%w: got %d non-ASCII bytes", ErrMalformedInput, len(s))
	}
	if len(s) < Size {
		return Tag{}, fmt.Errorf("%w: got %d bytes", ErrMalformedInput, len(s))
	}
	var b [Size]byte
	copy(b[:], s)
	return FromBytes(b)
}

// ParseStrict is Parse with the length check enforced for every input.
func ParseStrict(s string) (Tag, error) {
	if len(s) != Size {
		return Tag{}, fmt.Errorf("%w: got %d bytes", ErrMalformedInput, len(s))
	}
	return Parse(s)
}

// MustParse is like Parse but panics on error. It is meant for package-level values.
func MustParse(s string) Tag {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Bytes returns a copy of the four tag bytes.
func (t Tag) Bytes() [Size]byte {
	return t.b
}

// IsZero reports whether t is the zero Tag.
func (t Tag) IsZero() bool {
	return t == Tag{}
}

// IsCritical reports whether the chunk is required to interpret the container.
func (t Tag) IsCritical() bool {
	return isUpper(t.b[0])
}

// IsPublic reports whether the tag belongs to the registered namespace.
func (t Tag) IsPublic() bool {
	return isUpper(t.b[1])
}

// IsReservedBitValid reports whether the reserved third byte is uppercase.
func (t Tag) IsReservedBitValid() bool {
	return isUpper(t.b[2])
}

// IsSafeToCopy reports whether editors that do not understand the chunk may
// copy it unmodified.
func (t Tag) IsSafeToCopy() bool {
	return isLower(t.b[3])
}

// IsValid reports whether the reserved bit is valid and every byte is a letter.
func (t Tag) IsValid() bool {
	if !t.IsReservedBitValid() {
		return false
	}
	for _, v := range t.b {
		if !IsValidByte(v) {
			return false
		}
	}
	return true
}

// Flags evaluates every predicate once.
func (t Tag) Flags() Flags {
	return Flags{
		Critical:         t.IsCritical(),
		Public:           t.IsPublic(),
		ReservedBitValid: t.IsReservedBitValid(),
		SafeToCopy:       t.IsSafeToCopy(),
		Valid:            t.IsValid(),
	}
}

// String renders the tag bytes as-is.
func (t Tag) String() string {
	return string(t.b[:])
}

// MarshalText renders t, refusing a Tag that holds non-letter bytes.
func (t Tag) MarshalText() ([]byte, error) {
	if _, err := FromBytes(t.b); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

// UnmarshalText parses text with Parse.
func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func isUpper(b byte) bool { return 'A' <= b && b <= 'Z' }

func isLower(b byte) bool { return 'a' <= b && b <= 'z' }

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

package value

import "errors"

var (
	// ErrUnrepresentable is returned when a value cannot be normalized to text
	// in a way that survives a round trip.
	ErrUnrepresentable = errors.New("value cannot be represented as text")
	// ErrUnknownTag is returned when decoding with a tag this package does not produce.
	ErrUnknownTag = errors.New("unknown type tag")
	// ErrLiteral is returned when a literal cannot be parsed.
	ErrLiteral = errors.New("invalid literal")
)

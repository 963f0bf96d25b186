package modular

import "errors"

var (
	// ErrShortKey is returned when the keystream segment is shorter than the data segment.
	ErrShortKey = errors.New("keystream shorter than data")
	// ErrModulus is returned when the modulus cannot be represented in a byte.
	ErrModulus = errors.New("modulus out of range")
	// ErrShortOutput is returned when the destination cannot hold the transformed segment.
	ErrShortOutput = errors.New("output buffer too short")
)

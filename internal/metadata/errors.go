package metadata

import "errors"

var (
	// ErrMalformed indicates a ciphertext whose framing cannot be parsed,
	// independent of the key used.
	ErrMalformed = errors.New("malformed ciphertext")
	// ErrKeyMismatch indicates a header that does not decrypt to a known tag,
	// which is what a wrong key produces.
	ErrKeyMismatch = errors.New("key mismatch")
)

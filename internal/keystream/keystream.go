// Package keystream expands a short key into an arbitrarily long stream of
// base64 characters by hashing the key with an increasing counter suffix.
package keystream

import (
	"crypto/sha256"
	"encoding/base64"
	"strconv"
)

// HashSize is the length of a single Hash output.
const HashSize = 44

// SafetyMargin is the number of extra hash blocks appended past the required length.
const SafetyMargin = 5

// Hash returns the base64 encoded sha256 digest of s.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))

	return base64.StdEncoding.EncodeToString(sum[:])
}

// Blocks reports how many hash blocks Derive concatenates for length bytes.
func Blocks(length int) int {
	if length < 0 {
		length = 0
	}

	return (length+HashSize-1)/HashSize + SafetyMargin
}

// Derive returns a keystream of at least length bytes for key.
// The output is a pure function of (key, length).
func Derive(key string, length int) []byte {
	blocks := Blocks(length)
	stream := make([]byte, 0, blocks*HashSize)

	for i := range blocks {
		stream = append(stream, Hash(key+strconv.Itoa(i))...)
	}

	return stream
}

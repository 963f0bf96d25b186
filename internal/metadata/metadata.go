// Package metadata frames a ciphertext body with a small encrypted header
// recording how to reverse it.
//
// The header plaintext is "<tag>(<modulus>)". It is encrypted with the hash of
// the raw key under modulus HeaderModulus and placed in front of the body,
// separated by Delimiter:
//
//	encrypted_header || Delimiter || encrypted_body
package metadata

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/idelchi/listcrypt/internal/keystream"
	"github.com/idelchi/listcrypt/internal/modular"
	"github.com/idelchi/listcrypt/internal/value"
)

// HeaderModulus is the fixed modulus used for the header. Header symbols are
// printable ASCII, so every encrypted header byte is below it.
const HeaderModulus = 130

// Delimiter separates the encrypted header from the body. Its first byte is
// at or above HeaderModulus, so it can never start inside an encrypted header
// and the first occurrence in a blob is always the header boundary.
//
//nolint:gochecknoglobals
var Delimiter = []byte{0xc2, 0xa7, 'L', 'C', 0xc2, 0xa7}

// Header is the plaintext metadata stored in front of every body.
type Header struct {
	Tag     value.Tag
	Modulus int
}

// String renders the header as "<tag>(<modulus>)".
func (h Header) String() string {
	return fmt.Sprintf("%s(%d)", h.Tag, h.Modulus)
}

// Seal encrypts h with key and returns header || Delimiter || body.
func Seal(key string, h Header, body []byte) ([]byte, error) {
	plain := []byte(h.String())

	stream := headerStream(key)

	encrypted, err := modular.Encrypt(plain, stream, HeaderModulus)
	if err != nil {
		return nil, fmt.Errorf("encrypting header: %w", err)
	}

	blob := make([]byte, 0, len(encrypted)+len(Delimiter)+len(body))
	blob = append(blob, encrypted...)
	blob = append(blob, Delimiter...)
	blob = append(blob, body...)

	return blob, nil
}

// Open splits blob at the first Delimiter, decrypts the header with key and
// returns it together with the body, which aliases blob.
func Open(key string, blob []byte) (Header, []byte, error) {
	idx := bytes.Index(blob, Delimiter)
	if idx < 0 {
		return Header{}, nil, fmt.Errorf("%w: header delimiter not found", ErrMalformed)
	}

	if idx == 0 {
		return Header{}, nil, fmt.Errorf("%w: empty header", ErrMalformed)
	}

	stream := headerStream(key)
	if idx > len(stream) {
		return Header{}, nil, fmt.Errorf("%w: header too long (%d bytes)", ErrMalformed, idx)
	}

	plain, err := modular.Decrypt(blob[:idx], stream, HeaderModulus)
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: decrypting header: %w", ErrMalformed, err)
	}

	header, err := Parse(string(plain))
	if err != nil {
		return Header{}, nil, err
	}

	return header, blob[idx+len(Delimiter):], nil
}

// Parse reads a plaintext header of the form "<tag>(<modulus>)".
// An unknown tag is reported as ErrKeyMismatch; a known tag with a broken
// modulus field as ErrMalformed.
func Parse(s string) (Header, error) {
	name, rest, found := strings.Cut(s, "(")

	tag := value.Tag(name)
	if !tag.Known() {
		return Header{}, fmt.Errorf("%w: unrecognized header", ErrKeyMismatch)
	}

	digits, closed := strings.CutSuffix(rest, ")")
	if !found || !closed {
		return Header{}, fmt.Errorf("%w: header %q lacks a modulus field", ErrMalformed, s)
	}

	modulus, err := strconv.Atoi(digits)
	if err != nil {
		return Header{}, fmt.Errorf("%w: non-numeric modulus %q", ErrMalformed, digits)
	}

	if modulus < modular.MinModulus || modulus > modular.MaxModulus {
		return Header{}, fmt.Errorf("%w: modulus %d out of range", ErrMalformed, modulus)
	}

	return Header{Tag: tag, Modulus: modulus}, nil
}

// headerStream is the keystream used for the header: the hash of the raw key.
func headerStream(key string) []byte {
	return []byte(keystream.Hash(key))
}

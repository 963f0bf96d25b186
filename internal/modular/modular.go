// Package modular implements the byte-wise modular addition cipher.
//
// Each data byte is combined with the keystream byte at the same position:
// encryption adds, decryption subtracts, both modulo a "range" derived from
// the largest byte in the plaintext. The two are exact inverses as long as the
// same modulus and the same keystream alignment are used.
package modular

import "fmt"

const (
	// MinModulus is the floor applied to every computed modulus.
	MinModulus = 130
	// MaxModulus is the largest modulus whose residues still fit in a byte.
	MaxModulus = 256
)

// Modulus returns max(data)+1, floored at MinModulus.
func Modulus(data []byte) int {
	highest := 0

	for _, b := range data {
		highest = max(highest, int(b))
	}

	return max(highest+1, MinModulus)
}

// EncryptSegment writes (data[p] + key[p]) mod modulus into dst[p].
func EncryptSegment(dst, data, key []byte, modulus int) error {
	if err := check(dst, data, key, modulus); err != nil {
		return err
	}

	for p, b := range data {
		dst[p] = byte((int(b) + int(key[p])) % modulus)
	}

	return nil
}

// DecryptSegment writes (data[p] - key[p]) mod modulus into dst[p].
func DecryptSegment(dst, data, key []byte, modulus int) error {
	if err := check(dst, data, key, modulus); err != nil {
		return err
	}

	for p, b := range data {
		dst[p] = byte(((int(b)-int(key[p]))%modulus + modulus) % modulus)
	}

	return nil
}

// Encrypt is EncryptSegment into a freshly allocated slice.
func Encrypt(data, key []byte, modulus int) ([]byte, error) {
	out := make([]byte, len(data))

	return out, EncryptSegment(out, data, key, modulus)
}

// Decrypt is DecryptSegment into a freshly allocated slice.
func Decrypt(data, key []byte, modulus int) ([]byte, error) {
	out := make([]byte, len(data))

	return out, DecryptSegment(out, data, key, modulus)
}

func check(dst, data, key []byte, modulus int) error {
	if modulus < 1 || modulus > MaxModulus {
		return fmt.Errorf("%w: %d", ErrModulus, modulus)
	}

	if len(key) < len(data) {
		return fmt.Errorf("%w: %d < %d", ErrShortKey, len(key), len(data))
	}

	if len(dst) < len(data) {
		return fmt.Errorf("%w: %d < %d", ErrShortOutput, len(dst), len(data))
	}

	return nil
}

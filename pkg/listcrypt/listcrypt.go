package listcrypt

import (
	"bytes"
	"fmt"

	"github.com/idelchi/listcrypt/internal/keystream"
	"github.com/idelchi/listcrypt/internal/metadata"
	"github.com/idelchi/listcrypt/internal/modular"
	"github.com/idelchi/listcrypt/internal/parallel"
	"github.com/idelchi/listcrypt/internal/value"
)

// Marker is prepended to every plaintext and checked after decryption.
const Marker = "39"

// Value is the decrypted result: text, bytes or a structured literal.
type Value = value.Value

// Encrypt obfuscates data under key. data may be a string, a []byte, a Value
// or any value representable as a literal (numbers, booleans, nil, slices and
// maps with string keys). key may be of any type; it is normalized to a string.
func Encrypt(key, data any, opts ...Option) ([]byte, error) {
	o := newOptions(opts)

	rawKey, err := value.KeyString(key)
	if err != nil {
		return nil, fmt.Errorf("normalizing key: %w", err)
	}

	in := value.Of(data)

	text, tag, err := value.Encode(in, verifier(rawKey))
	if err != nil {
		return nil, fmt.Errorf("converting %s input: %w", in.Kind(), err)
	}

	blob, err := seal(rawKey, text, tag, o)
	if err != nil {
		return nil, err
	}

	o.logger.Debug().
		Str("tag", string(tag)).
		Int("plaintext", len(text)).
		Int("ciphertext", len(blob)).
		Int("workers", o.workers).
		Msg("encrypted")

	return blob, nil
}

// Decrypt reverses Encrypt. It returns ErrKeyMismatch when key does not match
// the one used to encrypt (or the body was altered) and ErrMalformed when the
// ciphertext framing is broken.
func Decrypt(key any, ciphertext []byte, opts ...Option) (Value, error) {
	o := newOptions(opts)

	rawKey, err := value.KeyString(key)
	if err != nil {
		return Value{}, fmt.Errorf("normalizing key: %w", err)
	}

	text, tag, err := open(rawKey, ciphertext, o)
	if err != nil {
		return Value{}, err
	}

	out, err := value.Decode(text, tag)
	if err != nil {
		// A body that decrypts with a valid marker but fails to parse under its
		// own tag has been altered after encryption.
		return Value{}, fmt.Errorf("%w: reconstructing %s value: %w", ErrKeyMismatch, tag, err)
	}

	o.logger.Debug().
		Str("tag", string(tag)).
		Int("ciphertext", len(ciphertext)).
		Int("workers", o.workers).
		Msg("decrypted")

	return out, nil
}

// DecryptText decrypts a ciphertext produced from a string.
func DecryptText(key any, ciphertext []byte, opts ...Option) (string, error) {
	v, err := Decrypt(key, ciphertext, opts...)
	if err != nil {
		return "", err
	}

	s, ok := v.Str()
	if !ok {
		return "", fmt.Errorf("ciphertext holds %s, not text", v.Kind())
	}

	return s, nil
}

// DecryptBytes decrypts a ciphertext produced from a []byte.
func DecryptBytes(key any, ciphertext []byte, opts ...Option) ([]byte, error) {
	v, err := Decrypt(key, ciphertext, opts...)
	if err != nil {
		return nil, err
	}

	raw, ok := v.Raw()
	if !ok {
		return nil, fmt.Errorf("ciphertext holds %s, not bytes", v.Kind())
	}

	return raw, nil
}

func seal(rawKey, text string, tag value.Tag, o options) ([]byte, error) {
	plain := []byte(Marker + text)
	modulus := modular.Modulus(plain)
	stream := keystream.Derive(rawKey, len(plain))

	body, err := parallel.Run(plain, stream, o.workers, func(dst, data, key []byte) error {
		return modular.EncryptSegment(dst, data, key, modulus)
	})
	if err != nil {
		return nil, fmt.Errorf("encrypting body: %w", err)
	}

	blob, err := metadata.Seal(rawKey, metadata.Header{Tag: tag, Modulus: modulus}, body)
	if err != nil {
		return nil, fmt.Errorf("sealing header: %w", err)
	}

	return blob, nil
}

func open(rawKey string, ciphertext []byte, o options) (string, value.Tag, error) {
	header, body, err := metadata.Open(rawKey, ciphertext)
	if err != nil {
		return "", "", err
	}

	stream := keystream.Derive(rawKey, len(body))

	plain, err := parallel.Run(body, stream, o.workers, func(dst, data, key []byte) error {
		return modular.DecryptSegment(dst, data, key, header.Modulus)
	})
	if err != nil {
		return "", "", fmt.Errorf("decrypting body: %w", err)
	}

	text, ok := bytes.CutPrefix(plain, []byte(Marker))
	if !ok {
		return "", "", fmt.Errorf("%w: confirmation marker mismatch", ErrKeyMismatch)
	}

	return string(text), header.Tag, nil
}

// verifier checks that a sample survives a sequential encrypt/decrypt round
// trip under rawKey before a binary encoding is accepted.
func verifier(rawKey string) value.Verifier {
	o := newOptions([]Option{WithWorkers(1)})

	return func(sample string) bool {
		blob, err := seal(rawKey, sample, value.TagText, o)
		if err != nil {
			return false
		}

		text, _, err := open(rawKey, blob, o)

		return err == nil && text == sample
	}
}

package value

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// SampleSize is the length of the window checked by a Verifier.
const SampleSize = 10

// Verifier reports whether sample survives an encrypt/decrypt round trip.
type Verifier func(sample string) bool

// Encode converts v to its canonical text and the tag needed to reverse it.
//
// Binary data is tried as UTF-8, then base64, then ISO-8859-1; the first
// representation whose middle sample passes verify wins. A nil verify accepts
// everything.
func Encode(v Value, verify Verifier) (string, Tag, error) {
	if verify == nil {
		verify = func(string) bool { return true }
	}

	switch v.kind {
	case KindText:
		return v.text, TagText, nil
	case KindBytes:
		return encodeBytes(v.raw, verify)
	case KindStructured:
		s, err := FormatLiteral(v.data)
		if err != nil {
			return "", "", err
		}

		return s, TagLiteral, nil
	default:
		return "", "", fmt.Errorf("%w: unsupported kind %v", ErrUnrepresentable, v.kind)
	}
}

func encodeBytes(raw []byte, verify Verifier) (string, Tag, error) {
	if utf8.Valid(raw) {
		if s := string(raw); verify(Sample(s)) {
			return s, TagUTF8, nil
		}
	}

	if s := base64.StdEncoding.EncodeToString(raw); verify(Sample(s)) {
		return s, TagBase64, nil
	}

	s, err := charmap.ISO8859_1.NewDecoder().String(string(raw))
	if err == nil && verify(Sample(s)) {
		return s, TagLatin1, nil
	}

	return "", "", fmt.Errorf("%w: %d bytes failed every text encoding", ErrUnrepresentable, len(raw))
}

// Decode reverses Encode.
func Decode(s string, tag Tag) (Value, error) {
	switch tag {
	case TagText:
		return Text(s), nil
	case TagUTF8:
		return Bytes([]byte(s)), nil
	case TagBase64:
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return Value{}, fmt.Errorf("decoding base64: %w", err)
		}

		return Bytes(raw), nil
	case TagLatin1:
		raw, err := charmap.ISO8859_1.NewEncoder().String(s)
		if err != nil {
			return Value{}, fmt.Errorf("encoding iso-8859-1: %w", err)
		}

		return Bytes([]byte(raw)), nil
	case TagLiteral:
		data, err := ParseLiteral(s)
		if err != nil {
			return Value{}, err
		}

		return Structured(data), nil
	default:
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
}

// Sample returns the SampleSize window starting at the middle of s.
func Sample(s string) string {
	lo := len(s) / 2
	hi := min(lo+SampleSize, len(s))

	return s[lo:hi]
}

// KeyString normalizes a key of any type to the string the cipher hashes.
func KeyString(key any) (string, error) {
	switch k := key.(type) {
	case string:
		return k, nil
	case []byte:
		return string(k), nil
	case Value:
		switch k.kind {
		case KindText:
			return k.text, nil
		case KindBytes:
			return string(k.raw), nil
		default:
			return FormatLiteral(k.data)
		}
	case fmt.Stringer:
		return k.String(), nil
	default:
		return FormatLiteral(k)
	}
}

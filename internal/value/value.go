// Package value normalizes arbitrary input into text plus a type tag and
// reconstructs the original value from that pair.
//
// Inputs are resolved once into a closed variant: Text, Bytes or Structured.
// Everything downstream of this package only ever sees normalized text.
package value

import (
	"bytes"
	"fmt"
	"reflect"
)

// Kind is the variant held by a Value.
type Kind int

const (
	// KindText is a string.
	KindText Kind = iota
	// KindBytes is a byte slice.
	KindBytes
	// KindStructured is any other value representable as a literal.
	KindStructured
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindStructured:
		return "structured"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a tagged union of the input types the cipher accepts.
type Value struct {
	kind Kind
	text string
	raw  []byte
	data any
}

// Text wraps a string.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Bytes wraps a byte slice.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, raw: b}
}

// Structured wraps any value carried in literal form (numbers, booleans,
// lists, maps, nil).
func Structured(v any) Value {
	return Value{kind: KindStructured, data: v}
}

// Of resolves v into the variant matching its dynamic type.
func Of(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case string:
		return Text(x)
	case []byte:
		return Bytes(x)
	default:
		return Structured(x)
	}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// Str returns the string held by a Text value.
func (v Value) Str() (string, bool) {
	return v.text, v.kind == KindText
}

// Raw returns the bytes held by a Bytes value.
func (v Value) Raw() ([]byte, bool) {
	return v.raw, v.kind == KindBytes
}

// Interface returns the underlying Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindBytes:
		return v.raw
	default:
		return v.data
	}
}

// Equal reports whether v and other hold the same variant and contents.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindText:
		return v.text == other.text
	case KindBytes:
		return bytes.Equal(v.raw, other.raw)
	default:
		return reflect.DeepEqual(v.data, other.data)
	}
}

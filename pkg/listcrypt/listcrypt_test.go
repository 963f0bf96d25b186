package listcrypt_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/listcrypt/internal/metadata"
	"github.com/idelchi/listcrypt/internal/value"
	"github.com/idelchi/listcrypt/pkg/listcrypt"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	binary := make([]byte, 1024)
	for i := range binary {
		binary[i] = byte(i * 31)
	}

	tests := []struct {
		name string
		in   any
	}{
		{"text", "hello world"},
		{"empty text", ""},
		{"unicode text", "héllo wörld ✓ 日本語"},
		{"long text", strings.Repeat("the quick brown fox ", 500)},
		{"small bytes", []byte{0x00, 0x01, 0x02}},
		{"binary", binary},
		{"empty bytes", []byte{}},
		{"int", 42},
		{"negative int", -17},
		{"float", 3.25},
		{"bool", false},
		{"nil", nil},
		{"list", []any{1, 2.5, "three", true, nil, []any{"nested"}}},
		{"map", map[string]any{"name": "listcrypt", "version": 2, "tags": []any{"a", "b"}}},
		{"nested bytes", []any{[]byte{1, 2}, "x"}},
		{"int keyed map", map[any]any{1: "a", 2: []byte{0xff}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			want := value.Of(tc.in)

			blob, err := listcrypt.Encrypt("mykey", tc.in)
			require.NoError(t, err)

			got, err := listcrypt.Decrypt("mykey", blob)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %#v, want %#v", got.Interface(), want.Interface())
		})
	}
}

func TestExamples(t *testing.T) {
	t.Parallel()

	blob, err := listcrypt.Encrypt("mykey", "hello world")
	require.NoError(t, err)

	text, err := listcrypt.DecryptText("mykey", blob)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)

	_, err = listcrypt.Decrypt("wrongkey", blob)
	require.ErrorIs(t, err, listcrypt.ErrKeyMismatch)

	blob, err = listcrypt.Encrypt("k", []byte("\x00\x01\x02"))
	require.NoError(t, err)

	raw, err := listcrypt.DecryptBytes("k", blob)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0x02}, raw)

	blob, err = listcrypt.Encrypt("k", 42)
	require.NoError(t, err)

	v, err := listcrypt.Decrypt("k", blob)
	require.NoError(t, err)
	assert.Equal(t, value.KindStructured, v.Kind())
	assert.Equal(t, 42, v.Interface())
	assert.NotEqual(t, "42", v.Interface())
}

func TestKeySensitivity(t *testing.T) {
	t.Parallel()

	inputs := []any{"hello world", []byte{0xff, 0x00, 0x7f}, 12345, strings.Repeat("z", 300)}

	for i, in := range inputs {
		blob, err := listcrypt.Encrypt("correct horse", in)
		require.NoError(t, err)

		for j := range 20 {
			wrong := fmt.Sprintf("battery staple %d-%d", i, j)

			_, err := listcrypt.Decrypt(wrong, blob)
			require.ErrorIs(t, err, listcrypt.ErrKeyMismatch, "key %q", wrong)
		}
	}
}

func TestDeterministic(t *testing.T) {
	t.Parallel()

	a, err := listcrypt.Encrypt("k", "same input")
	require.NoError(t, err)

	b, err := listcrypt.Encrypt("k", "same input")
	require.NoError(t, err)

	c, err := listcrypt.Encrypt("k2", "same input")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotContains(t, string(a), "same input")
}

func TestWorkerInvariance(t *testing.T) {
	t.Parallel()

	in := []byte(strings.Repeat("segments \xfe\x10 ", 333))

	reference, err := listcrypt.Encrypt("workers", in, listcrypt.WithWorkers(1))
	require.NoError(t, err)

	for _, w1 := range []int{1, 2, 5, 13, 128} {
		for _, w2 := range []int{1, 3, 8, 4096} {
			blob, err := listcrypt.Encrypt("workers", in, listcrypt.WithWorkers(w1))
			require.NoError(t, err)
			assert.Equal(t, reference, blob, "w1=%d", w1)

			raw, err := listcrypt.DecryptBytes("workers", blob, listcrypt.WithWorkers(w2))
			require.NoError(t, err, "w1=%d w2=%d", w1, w2)
			assert.Equal(t, in, raw)
		}
	}
}

func TestKeyTypes(t *testing.T) {
	t.Parallel()

	for _, key := range []any{"text", []byte("text"), 7, 7.5, []any{"a", 1}, map[string]any{"k": true}} {
		blob, err := listcrypt.Encrypt(key, "payload")
		require.NoError(t, err)

		text, err := listcrypt.DecryptText(key, blob)
		require.NoError(t, err)
		assert.Equal(t, "payload", text)
	}

	// string and []byte keys normalize to the same key
	blob, err := listcrypt.Encrypt("text", "payload")
	require.NoError(t, err)

	text, err := listcrypt.DecryptText([]byte("text"), blob)
	require.NoError(t, err)
	assert.Equal(t, "payload", text)
}

func TestFraming(t *testing.T) {
	t.Parallel()

	blob, err := listcrypt.Encrypt("frame", "body")
	require.NoError(t, err)

	idx := bytes.Index(blob, metadata.Delimiter)
	require.Positive(t, idx)

	header, _, err := metadata.Open("frame", blob)
	require.NoError(t, err)
	assert.Equal(t, value.TagText, header.Tag)
	assert.Equal(t, 130, header.Modulus)
	assert.Len(t, blob, idx+len(metadata.Delimiter)+len(listcrypt.Marker)+len("body"))
}

func TestMalformed(t *testing.T) {
	t.Parallel()

	_, err := listcrypt.Decrypt("k", []byte("no delimiter here"))
	require.ErrorIs(t, err, listcrypt.ErrMalformed)

	_, err = listcrypt.Decrypt("k", nil)
	require.ErrorIs(t, err, listcrypt.ErrMalformed)

	_, err = listcrypt.Decrypt("k", append(append([]byte{}, metadata.Delimiter...), "body"...))
	require.ErrorIs(t, err, listcrypt.ErrMalformed)
}

func TestCorruptedBody(t *testing.T) {
	t.Parallel()

	blob, err := listcrypt.Encrypt("k", "some text that will be damaged")
	require.NoError(t, err)

	idx := bytes.Index(blob, metadata.Delimiter) + len(metadata.Delimiter)

	damaged := bytes.Clone(blob)
	damaged[idx]++
	damaged[idx+1]++

	_, err = listcrypt.Decrypt("k", damaged)
	require.ErrorIs(t, err, listcrypt.ErrKeyMismatch)
}

func TestUnrepresentable(t *testing.T) {
	t.Parallel()

	_, err := listcrypt.Encrypt("k", func() {})
	require.ErrorIs(t, err, listcrypt.ErrUnrepresentable)

	_, err = listcrypt.Encrypt(make(chan int), "data")
	require.Error(t, err)
}

func TestStructuredTypesSurvive(t *testing.T) {
	t.Parallel()

	blob, err := listcrypt.Encrypt("k", []any{[]byte{1, 2}, "x"})
	require.NoError(t, err)

	got, err := listcrypt.Decrypt("k", blob)
	require.NoError(t, err)
	assert.Equal(t, []any{[]byte{1, 2}, "x"}, got.Interface())

	blob, err = listcrypt.Encrypt("k", map[int]string{1: "a"})
	require.NoError(t, err)

	got, err = listcrypt.Decrypt("k", blob)
	require.NoError(t, err)
	assert.Equal(t, map[any]any{1: "a"}, got.Interface())
}

func TestWrongAccessor(t *testing.T) {
	t.Parallel()

	blob, err := listcrypt.Encrypt("k", []byte("bytes"))
	require.NoError(t, err)

	_, err = listcrypt.DecryptText("k", blob)
	require.Error(t, err)

	blob, err = listcrypt.Encrypt("k", "text")
	require.NoError(t, err)

	_, err = listcrypt.DecryptBytes("k", blob)
	require.Error(t, err)
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	blob, err := listcrypt.Encrypt("k", "logged", listcrypt.WithLogger(logger), listcrypt.WithWorkers(2))
	require.NoError(t, err)

	_, err = listcrypt.Decrypt("k", blob, listcrypt.WithLogger(logger))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"message":"encrypted"`)
	assert.Contains(t, buf.String(), `"message":"decrypted"`)
	assert.Contains(t, buf.String(), `"tag":"str"`)
}

package logic_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/listcrypt/internal/config"
	"github.com/idelchi/listcrypt/internal/logic"
)

func newConfig(files ...string) *config.Config {
	return &config.Config{
		Common:   config.Common{Key: "logic-test-key", Workers: 3},
		Parallel: 2,
		Quiet:    true,
		Suffixes: config.Suffixes{Encrypt: ".lc"},
		Files:    files,
	}
}

func writeFiles(t *testing.T, contents map[string][]byte) string {
	t.Helper()

	dir := t.TempDir()

	for name, data := range contents {
		path := filepath.Join(dir, name)

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o600))
	}

	return dir
}

func TestRunRoundTrip(t *testing.T) {
	t.Parallel()

	contents := map[string][]byte{
		"notes.txt":       []byte("grocery list: eggs, milk\n"),
		"sub/binary.dat":  {0x00, 0xff, 0xfe, 0x80, 0x81, 0x01},
		"sub/unicode.txt": []byte("grüße, 世界"),
		"empty.txt":       {},
	}

	dir := writeFiles(t, contents)

	enc := newConfig(dir)
	enc.Delete = true
	require.NoError(t, logic.Run(enc))

	for name, data := range contents {
		_, err := os.Stat(filepath.Join(dir, name))
		require.ErrorIs(t, err, os.ErrNotExist, "original %s should be deleted", name)

		blob, err := os.ReadFile(filepath.Join(dir, name+".lc"))
		require.NoError(t, err)

		if len(data) > 0 {
			assert.NotContains(t, string(blob), string(data))
		}
	}

	dec := newConfig(dir)
	dec.Decrypt = true
	dec.Delete = true
	require.NoError(t, logic.Run(dec))

	for name, data := range contents {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, data, got, name)

		_, err = os.Stat(filepath.Join(dir, name+".lc"))
		require.ErrorIs(t, err, os.ErrNotExist)
	}
}

func TestRunDecryptSuffix(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string][]byte{"a.txt": []byte("alpha")})
	file := filepath.Join(dir, "a.txt")

	require.NoError(t, logic.Run(newConfig(file)))

	dec := newConfig(file + ".lc")
	dec.Decrypt = true
	dec.Suffixes.Decrypt = ".out"
	require.NoError(t, logic.Run(dec))

	got, err := os.ReadFile(file + ".out")
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(got))
}

func TestRunWrongKey(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string][]byte{"a.txt": []byte("alpha")})
	file := filepath.Join(dir, "a.txt")

	require.NoError(t, logic.Run(newConfig(file)))

	dec := newConfig(file + ".lc")
	dec.Decrypt = true
	dec.Suffixes.Decrypt = ".out"
	dec.Key = "another key"

	err := logic.Run(dec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key")

	_, err = os.Stat(file + ".out")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunDry(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string][]byte{"a.txt": []byte("alpha")})

	cfg := newConfig(dir)
	cfg.Dry = true
	require.NoError(t, logic.Run(cfg))

	_, err := os.Stat(filepath.Join(dir, "a.txt.lc"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunPatterns(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string][]byte{
		"notes.txt":      []byte("alpha"),
		"draft.md":       []byte("beta"),
		"vendor/lib.txt": []byte("gamma"),
		"excludes.jsonc": []byte("[\n  // generated\n  \"*.jsonc\",\n]"),
	})

	cfg := newConfig(dir)
	cfg.Patterns.Include = []string{"*.txt", "*.jsonc"}
	cfg.Patterns.Exclude = []string{"vendor/*"}
	cfg.Patterns.ExcludeFrom = filepath.Join(dir, "excludes.jsonc")
	require.NoError(t, logic.Run(cfg))

	_, err := os.Stat(filepath.Join(dir, "notes.txt.lc"))
	require.NoError(t, err)

	for _, skipped := range []string{"draft.md", "vendor/lib.txt", "excludes.jsonc"} {
		_, err := os.Stat(filepath.Join(dir, skipped+".lc"))
		require.ErrorIs(t, err, os.ErrNotExist, skipped)
	}

	missing := newConfig(dir)
	missing.Patterns.IncludeFrom = filepath.Join(dir, "missing.jsonc")
	require.ErrorContains(t, logic.Run(missing), "missing.jsonc")
}

func TestRunKeyFile(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string][]byte{
		"a.txt":   []byte("alpha"),
		"key.txt": []byte("file key\n"),
	})
	file := filepath.Join(dir, "a.txt")

	enc := newConfig(file)
	enc.Key, enc.KeyFile = "", filepath.Join(dir, "key.txt")
	require.NoError(t, logic.Run(enc))

	dec := newConfig(file + ".lc")
	dec.Decrypt = true
	dec.Key = "file key"
	dec.Suffixes.Decrypt = ".out"
	require.NoError(t, logic.Run(dec))

	got, err := os.ReadFile(file + ".out")
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(got))
}

func TestRunCheck(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string][]byte{"a.txt": []byte("alpha"), "b.bin": {0xff, 0x00}})

	require.NoError(t, logic.Run(newConfig(dir)))

	check := newConfig(dir)
	check.Decrypt = true
	require.NoError(t, logic.RunCheck(check))

	wrong := newConfig(dir)
	wrong.Decrypt = true
	wrong.Key = "wrong"
	require.ErrorContains(t, logic.RunCheck(wrong), "2 file(s) failed verification")
}

func TestValueRoundTrip(t *testing.T) {
	t.Parallel()

	text := "hello world"
	literal := `{"n": 42, "list": [1, 2.5, "x"]}`

	tests := []struct {
		name string
		in   logic.Input
		kind string
		want string
	}{
		{"text", logic.Input{Text: &text}, "text", "hello world"},
		{"literal", logic.Input{Literal: &literal}, "structured", `{"list":[1,2.5,"x"],"n":42}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := newConfig()

			var blob bytes.Buffer
			require.NoError(t, logic.EncryptValue(cfg, tc.in, &blob))

			var out bytes.Buffer
			require.NoError(t, logic.DecryptValue(cfg, blob.String(), true, &out))

			assert.Equal(t, tc.kind+"\n"+tc.want+"\n", out.String())
		})
	}
}

func TestValueLiteralFile(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string][]byte{
		"value.jsonc": []byte("{\n  // retries\n  \"retries\": 3,\n  \"hosts\": [\"a\", \"b\",],\n}\n"),
	})

	cfg := newConfig()

	var blob bytes.Buffer
	require.NoError(t, logic.EncryptValue(cfg, logic.Input{LiteralFile: filepath.Join(dir, "value.jsonc")}, &blob))

	var out bytes.Buffer
	require.NoError(t, logic.DecryptValue(cfg, blob.String(), false, &out))

	assert.Equal(t, `{"hosts":["a","b"],"retries":3}`, strings.TrimSpace(out.String()))
}

func TestValueErrors(t *testing.T) {
	t.Parallel()

	cfg := newConfig()

	require.ErrorIs(t, logic.EncryptValue(cfg, logic.Input{}, &bytes.Buffer{}), logic.ErrNoInput)

	bad := "{not json"
	require.Error(t, logic.EncryptValue(cfg, logic.Input{Literal: &bad}, &bytes.Buffer{}))

	require.ErrorContains(t, logic.DecryptValue(cfg, "%%%", false, &bytes.Buffer{}), "base64")
}

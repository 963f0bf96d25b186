package logic

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/idelchi/listcrypt/internal/config"
	"github.com/idelchi/listcrypt/internal/value"
	"github.com/idelchi/listcrypt/pkg/listcrypt"
)

// ErrNoInput is returned when a value command has nothing to operate on.
var ErrNoInput = errors.New("no input value")

// Input selects what the value command encrypts. Exactly one field is set.
type Input struct {
	// Text is encrypted as a string.
	Text *string
	// Literal is parsed as a literal and encrypted as a structured value.
	Literal *string
	// LiteralFile names a JSON or JSONC file holding a literal.
	LiteralFile string
}

// resolve returns the value described by in.
func (in Input) resolve() (value.Value, error) {
	switch {
	case in.Text != nil:
		return value.Text(*in.Text), nil
	case in.Literal != nil:
		return parseLiteral([]byte(*in.Literal))
	case in.LiteralFile != "":
		data, err := os.ReadFile(filepath.Clean(in.LiteralFile))
		if err != nil {
			return value.Value{}, fmt.Errorf("reading literal file %q: %w", in.LiteralFile, err)
		}

		return parseLiteral(data)
	default:
		return value.Value{}, ErrNoInput
	}
}

// parseLiteral accepts JSON with comments and trailing commas.
func parseLiteral(data []byte) (value.Value, error) {
	parsed, err := value.ParseLiteral(string(jsonc.ToJSON(data)))
	if err != nil {
		return value.Value{}, fmt.Errorf("parsing literal: %w", err)
	}

	return value.Structured(parsed), nil
}

// EncryptValue encrypts in and writes the blob to w as standard base64.
func EncryptValue(cfg *config.Config, in Input, w io.Writer) error {
	key, err := cfg.ResolveKey()
	if err != nil {
		return fmt.Errorf("reading key: %w", err)
	}

	val, err := in.resolve()
	if err != nil {
		return err
	}

	blob, err := listcrypt.Encrypt(key, val, listcrypt.WithWorkers(cfg.Workers), listcrypt.WithLogger(Logger(cfg)))
	if err != nil {
		return fmt.Errorf("encrypting value: %w", err)
	}

	if _, err := fmt.Fprintln(w, base64.StdEncoding.EncodeToString(blob)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// DecryptValue decodes a base64 blob, decrypts it and writes the rendered
// value to w. With showKind the value's kind is printed on a line before it.
func DecryptValue(cfg *config.Config, encoded string, showKind bool, w io.Writer) error {
	key, err := cfg.ResolveKey()
	if err != nil {
		return fmt.Errorf("reading key: %w", err)
	}

	blob, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return fmt.Errorf("decoding base64 input: %w", err)
	}

	val, err := listcrypt.Decrypt(key, blob, listcrypt.WithWorkers(cfg.Workers), listcrypt.WithLogger(Logger(cfg)))
	if err != nil {
		return fmt.Errorf("decrypting value: %w", err)
	}

	out, err := Render(val)
	if err != nil {
		return err
	}

	if val.Kind() == value.KindBytes {
		out = []byte(base64.StdEncoding.EncodeToString(out))
	}

	if showKind {
		if _, err := fmt.Fprintln(w, val.Kind()); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w, string(out)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

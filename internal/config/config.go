// Package config holds the runtime configuration of the listcrypt command line.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"
)

// Config carries flags, environment overrides and positional arguments.
type Config struct {
	// Show prints the resolved configuration and exits.
	Show bool `mapstructure:"show"`

	Common `mapstructure:",squash"`

	// Parallel is the number of files processed at once.
	Parallel int `label:"--parallel" mapstructure:"parallel" validate:"min=1"`

	Quiet              bool `mapstructure:"quiet"`
	Delete             bool `mapstructure:"delete"`
	Stats              bool `mapstructure:"stats"`
	Dry                bool `mapstructure:"dry"`
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	Suffixes Suffixes `mapstructure:",squash"`
	Patterns Patterns `mapstructure:",squash"`

	// Command-specific
	Decrypt bool `mapstructure:"-"`

	// Positional arguments
	Files []string `mapstructure:"-"`
}

// Common is the part of the configuration every command needs, including
// those working on a single value.
type Common struct {
	// Key material, exactly one of the two.
	Key     string `label:"--key"      mapstructure:"key"      mask:"fixed" validate:"required_without=KeyFile,exclusive=KeyFile"` //nolint:lll
	KeyFile string `label:"--key-file" mapstructure:"key-file" validate:"required_without=Key"`

	// Workers is the number of segments each input is split into.
	Workers int `label:"--workers" mapstructure:"workers" validate:"min=1"`

	Verbose bool `mapstructure:"verbose"`
}

// Suffixes controls output file naming.
type Suffixes struct {
	Encrypt string `label:"--encrypt-ext" mapstructure:"encrypt-ext" validate:"required"`
	Decrypt string `label:"--decrypt-ext" mapstructure:"decrypt-ext"`
}

// Patterns selects files found while walking directories, using find -path
// semantics relative to the walked directory.
type Patterns struct {
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	IncludeFrom string   `label:"--include-from" mapstructure:"include-from" validate:"omitempty,file"`
	ExcludeFrom string   `label:"--exclude-from" mapstructure:"exclude-from" validate:"omitempty,file"`
}

// Display reports whether the configuration should be printed instead of run.
func (c *Config) Display() bool {
	return c.Show
}

// Validate validates config, which is the whole Config or a part of it such
// as Common, against its struct tags.
func (c *Config) Validate(config any) error {
	validator := validator.NewValidator()

	if err := registerExclusive(validator); err != nil {
		return err
	}

	errs := validator.Validate(config)

	switch {
	case errs == nil:
		return nil
	case len(errs) == 1:
		return errs[0]
	default:
		return fmt.Errorf("%d validation errors: %w", len(errs), errors.Join(errs...))
	}
}

// ResolveKey returns the key from --key or the contents of --key-file,
// without a trailing newline.
func (c *Common) ResolveKey() (string, error) {
	if c.Key != "" {
		return c.Key, nil
	}

	data, err := os.ReadFile(filepath.Clean(c.KeyFile))
	if err != nil {
		return "", fmt.Errorf("reading key file: %w", err)
	}

	key := strings.TrimRight(string(data), "\r\n")
	if key == "" {
		return "", fmt.Errorf("key file %q is empty", c.KeyFile)
	}

	return key, nil
}

// OutputPath returns where the result for filename is written.
func (c *Config) OutputPath(filename string) string {
	ext := c.Suffixes.Encrypt

	if c.Decrypt {
		filename = strings.TrimSuffix(filename, c.Suffixes.Encrypt)
		ext = c.Suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/listcrypt/internal/config"
)

// preRun returns a PreRunE handler that resolves positional args into cfg.Files
// and validates the whole configuration.
func preRun(cfg *config.Config, decrypt bool) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.Decrypt = decrypt
		cfg.Files = args

		return cobraext.Validate(cfg, cfg)
	}
}

// valuePreRun validates only the settings shared by every command, since
// value commands take no files.
func valuePreRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		return cobraext.Validate(cfg, &cfg.Common)
	}
}

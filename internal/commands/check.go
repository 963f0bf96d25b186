package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/listcrypt/internal/config"
	"github.com/idelchi/listcrypt/internal/logic"
)

// NewCheckCommand creates a new cobra command for the check subcommand.
func NewCheckCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check [flags] files...",
		Short:   "Verify that encrypted files decrypt with the key",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, true),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.RunCheck(cfg)
		},
	}

	fileFlags(cmd)

	return cmd
}

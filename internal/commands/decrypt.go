package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/listcrypt/internal/config"
	"github.com/idelchi/listcrypt/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] files...",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Long: `Decrypt files and directories.
Directories are walked for files carrying the encrypted suffix.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, true),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}

	fileFlags(cmd)

	return cmd
}

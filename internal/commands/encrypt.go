package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/listcrypt/internal/config"
	"github.com/idelchi/listcrypt/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] files...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Long: `Encrypt files and directories.
Valid UTF-8 files are carried as text, everything else as bytes.
Directories are walked; files already carrying the encrypted suffix are skipped.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, false),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}

	fileFlags(cmd)

	return cmd
}

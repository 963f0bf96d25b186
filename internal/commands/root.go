package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/listcrypt/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "listcrypt [flags] command [flags]"
	root.Short = "Type-preserving obfuscation of files and values"
	root.Long = `A symmetric, deterministic obfuscation tool.
Text, binary data and structured literals decrypt back to their original type.

This is not encryption in the cryptographic sense: it offers no integrity
protection and no resistance to analysis.`

	root.Flags().BoolP("show", "s", false, "Show the configuration and exit")

	flags := root.PersistentFlags()

	flags.StringP("key", "k", "", "Key used to obfuscate and recover data")
	flags.StringP("key-file", "f", "", "Path to a file holding the key")
	flags.IntP("workers", "w", runtime.NumCPU(), "Number of segments each input is split into")
	flags.BoolP("verbose", "v", false, "Log diagnostics to stderr")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewCheckCommand(cfg),
		NewValueCommand(cfg),
	)

	return root
}

// fileFlags registers the flags shared by commands operating on files.
func fileFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of files processed in parallel, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("delete", false, "Delete the original file after successful encryption/decryption")
	flags.Bool("stats", false, "Print statistics after processing")
	flags.Bool("dry", false, "Show what would be processed without writing anything")
	flags.Bool("preserve-timestamps", false, "Carry the modification time of the input over to the output")
	flags.String("encrypt-ext", ".lc", "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	flags.StringSliceP("include", "i", nil, "Patterns of files to process inside directories (find -path syntax)")
	flags.StringSliceP("exclude", "e", nil, "Patterns of files to skip inside directories, overriding includes")
	flags.String("include-from", "", "JSONC file holding an array of include patterns")
	flags.String("exclude-from", "", "JSONC file holding an array of exclude patterns")
}

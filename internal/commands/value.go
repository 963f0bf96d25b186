package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/idelchi/listcrypt/internal/config"
	"github.com/idelchi/listcrypt/internal/logic"
)

// NewValueCommand creates the value command grouping single-value operations.
func NewValueCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "value",
		Short: "Encrypt or decrypt a single value",
	}

	cmd.AddCommand(newValueEncryptCommand(cfg), newValueDecryptCommand(cfg))

	return cmd
}

func newValueEncryptCommand(cfg *config.Config) *cobra.Command {
	var text, literal, literalFile string

	cmd := &cobra.Command{
		Use:   "encrypt [flags]",
		Short: "Encrypt a string or literal and print it as base64",
		Example: `  listcrypt value encrypt -k secret --text "hello world"
  listcrypt value encrypt -k secret --literal '{"port": 8080}'
  listcrypt value encrypt -k secret --literal-file settings.jsonc`,
		Args:    cobra.NoArgs,
		PreRunE: valuePreRun(cfg),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in logic.Input

			flags := cmd.Flags()

			switch {
			case flags.Changed("text"):
				in.Text = &text
			case flags.Changed("literal"):
				in.Literal = &literal
			case flags.Changed("literal-file"):
				in.LiteralFile = literalFile
			default:
				return errors.New("one of --text, --literal or --literal-file is required")
			}

			return logic.EncryptValue(cfg, in, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "String to encrypt")
	cmd.Flags().StringVar(&literal, "literal", "", "JSON literal to encrypt as a structured value")
	cmd.Flags().StringVar(&literalFile, "literal-file", "", "JSON or JSONC file holding a literal to encrypt")
	cmd.MarkFlagsMutuallyExclusive("text", "literal", "literal-file")

	return cmd
}

func newValueDecryptCommand(cfg *config.Config) *cobra.Command {
	var kind bool

	cmd := &cobra.Command{
		Use:   "decrypt [flags] blob",
		Short: "Decrypt a base64 blob and print the value",
		Long: `Decrypt a base64 blob produced by "value encrypt".
Text is printed as is, bytes as base64 and structured values as JSON literals.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: valuePreRun(cfg),
		RunE: func(cmd *cobra.Command, args []string) error {
			return logic.DecryptValue(cfg, args[0], kind, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&kind, "kind", false, "Print the kind of the value before it")

	return cmd
}

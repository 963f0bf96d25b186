// Command listcrypt obfuscates files and values with a key while preserving
// their type.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/listcrypt/internal/commands"
	"github.com/idelchi/listcrypt/internal/config"
)

// version is set at build time.
var version = "unknown - unofficial & generated by unknown"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		if errors.Is(err, cobraext.ErrExitGracefully) {
			os.Exit(0)
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

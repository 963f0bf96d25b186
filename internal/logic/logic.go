// Package logic implements the file and value workflows behind the commands.
package logic

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/idelchi/listcrypt/internal/config"
	"github.com/idelchi/listcrypt/internal/filter"
)

// Run is the main logic of the application.
func Run(cfg *config.Config) error {
	scanned, excluded, start, done, err := preamble(cfg)
	if done || err != nil {
		return err
	}

	proc, err := NewProcessor(cfg, Logger(cfg))
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	processed, errored, totalSize, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(scanned, excluded, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// Logger builds the diagnostic logger for cfg. It writes to stderr and
// stays quiet below warnings unless verbose output was requested.
func Logger(cfg *config.Config) zerolog.Logger {
	level := zerolog.WarnLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// preamble resolves files and handles dry run. Returns done=true if dry run was executed.
func preamble(cfg *config.Config) (int, int, time.Time, bool, error) {
	start := time.Now()

	scanned, err := resolveFiles(cfg)
	if err != nil {
		return 0, 0, start, false, fmt.Errorf("resolving files: %w", err)
	}

	excluded := scanned - len(cfg.Files)

	if cfg.Dry {
		dryRun(cfg, scanned, excluded, start)

		return scanned, excluded, start, true, nil
	}

	return scanned, excluded, start, false, nil
}

// resolveFiles expands directories in cfg.Files and replaces them with the
// selected files. Returns the total number of files scanned.
func resolveFiles(cfg *config.Config) (int, error) {
	includes, err := patterns(cfg.Patterns.Include, cfg.Patterns.IncludeFrom)
	if err != nil {
		return 0, err
	}

	excludes, err := patterns(cfg.Patterns.Exclude, cfg.Patterns.ExcludeFrom)
	if err != nil {
		return 0, err
	}

	flt, err := filter.NewFilter(cfg.Suffixes.Encrypt, cfg.Decrypt, includes, excludes)
	if err != nil {
		return 0, fmt.Errorf("building filter: %w", err)
	}

	files, scanned, err := filter.Resolve(cfg.Files, flt)
	if err != nil {
		return scanned, fmt.Errorf("filtering files: %w", err)
	}

	cfg.Files = files

	return scanned, nil
}

// patterns merges patterns given on the command line with those read from file.
func patterns(inline []string, file string) ([]string, error) {
	if file == "" {
		return inline, nil
	}

	loaded, err := filter.LoadPatterns(file)
	if err != nil {
		return nil, err
	}

	return append(slices.Clone(inline), loaded...), nil
}

// dryRun previews what would be processed without actually encrypting/decrypting.
func dryRun(cfg *config.Config, scanned, excluded int, start time.Time) {
	var totalSize int64

	for _, file := range cfg.Files {
		if !cfg.Quiet {
			fmt.Printf("Processed %q -> %q\n", file, cfg.OutputPath(file)) //nolint:forbidigo
		}

		if cfg.Stats {
			if info, err := os.Stat(file); err == nil {
				totalSize += info.Size()
			}
		}
	}

	if cfg.Stats {
		printStats(scanned, excluded, len(cfg.Files), 0, totalSize, time.Since(start))
	}
}

func printStats(scanned, excluded, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(os.Stderr, "  Excluded:  %d\n", excluded)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}

package logic

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/listcrypt/internal/config"
	"github.com/idelchi/listcrypt/pkg/listcrypt"
)

// RunCheck validates that every selected file decrypts with the configured
// key. Nothing is written.
func RunCheck(cfg *config.Config) error {
	if _, err := resolveFiles(cfg); err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	proc, err := NewProcessor(cfg, Logger(cfg))
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	failures := proc.CheckFiles()
	if failures > 0 {
		return fmt.Errorf("%d file(s) failed verification", failures)
	}

	return nil
}

// CheckFiles decrypts every configured file in memory and reports the
// outcome. Returns the number of files that failed.
func (p *Processor) CheckFiles() int {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	var failures int

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			switch {
			case errors.Is(result.Error, listcrypt.ErrKeyMismatch):
				failures++

				fmt.Fprintf(os.Stderr, "Key mismatch %q\n", result.Input)
			case result.Error != nil:
				failures++

				fmt.Fprintf(os.Stderr, "Error checking %q: %v\n", result.Input, result.Error)
			case !p.cfg.Quiet:
				fmt.Printf("Verified %q (%s)\n", result.Input, result.Kind) //nolint:forbidigo
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			p.results <- p.checkFile(file)

			return nil
		})
	}

	_ = group.Wait() //nolint:errcheck // tasks report through results

	close(p.results)

	<-done

	return failures
}

func (p *Processor) checkFile(filename string) Result {
	data, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return Result{Input: filename, Error: fmt.Errorf("reading input file: %w", err)}
	}

	val, err := listcrypt.Decrypt(p.key, data, p.options(filename)...)
	if err != nil {
		return Result{Input: filename, Error: err}
	}

	return Result{Input: filename, Kind: val.Kind()}
}

package logic

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/listcrypt/internal/config"
	"github.com/idelchi/listcrypt/internal/fileutil"
	"github.com/idelchi/listcrypt/internal/value"
	"github.com/idelchi/listcrypt/pkg/listcrypt"
)

// Processor handles the encryption and decryption of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// key is the resolved key material
	key string

	// logger receives per-file diagnostics
	logger zerolog.Logger

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor creates a new Processor with the given configuration.
func NewProcessor(cfg *config.Config, logger zerolog.Logger) (*Processor, error) {
	key, err := cfg.ResolveKey()
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	return &Processor{
		cfg:     cfg,
		key:     key,
		logger:  logger,
		results: make(chan Result, len(cfg.Files)),
	}, nil
}

// ProcessFiles concurrently processes all files specified in the configuration.
// It encrypts or decrypts files based on the configuration settings.
// Returns the number of successfully processed files and the number of errors.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)
			} else {
				processed++

				totalSize += result.OutputSize

				if !p.cfg.Quiet {
					fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo
				}
			}

			if p.cfg.Delete && result.Error == nil {
				if err := os.Remove(result.Input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err)
				} else if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", result.Input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := p.cfg.OutputPath(file)

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// processFile transforms a single file and atomically writes the result to outPath.
func (p *Processor) processFile(filename, outPath string) (int64, error) {
	data, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("reading input file: %w", err)
	}

	var out []byte

	if p.cfg.Decrypt {
		out, err = p.decrypt(filename, data)
	} else {
		out, err = p.encrypt(filename, data)
	}

	if err != nil {
		return 0, err
	}

	size, err := fileutil.WriteAtomic(filename, outPath, out, p.cfg.PreserveTimestamps)
	if err != nil {
		return 0, fmt.Errorf("writing output: %w", err)
	}

	return size, nil
}

// encrypt obfuscates file contents. Valid UTF-8 is carried as text, anything
// else as bytes.
func (p *Processor) encrypt(filename string, data []byte) ([]byte, error) {
	var input any = data
	if utf8.Valid(data) {
		input = string(data)
	}

	out, err := listcrypt.Encrypt(p.key, input, p.options(filename)...)
	if err != nil {
		return nil, fmt.Errorf("encrypting file: %w", err)
	}

	return out, nil
}

// decrypt recovers file contents from a blob.
func (p *Processor) decrypt(filename string, data []byte) ([]byte, error) {
	val, err := listcrypt.Decrypt(p.key, data, p.options(filename)...)
	if err != nil {
		return nil, fmt.Errorf("decrypting file: %w", err)
	}

	out, err := Render(val)
	if err != nil {
		return nil, fmt.Errorf("decrypting file: %w", err)
	}

	return out, nil
}

func (p *Processor) options(filename string) []listcrypt.Option {
	return []listcrypt.Option{
		listcrypt.WithWorkers(p.cfg.Workers),
		listcrypt.WithLogger(p.logger.With().Str("file", filename).Logger()),
	}
}

// Render turns a recovered value into the bytes written to a file or stdout.
// Structured values are written as their literal text.
func Render(val value.Value) ([]byte, error) {
	switch val.Kind() {
	case value.KindText:
		s, _ := val.Str()

		return []byte(s), nil
	case value.KindBytes:
		b, _ := val.Raw()

		return b, nil
	default:
		literal, err := value.FormatLiteral(val.Interface())
		if err != nil {
			return nil, fmt.Errorf("rendering structured value: %w", err)
		}

		return []byte(literal), nil
	}
}

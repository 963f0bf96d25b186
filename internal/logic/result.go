package logic

import "github.com/idelchi/listcrypt/internal/value"

// Result represents the outcome of processing a single file.
type Result struct {
	// Input file path
	Input string

	// Output file path, empty when nothing was written
	Output string

	// Output file size in bytes
	OutputSize int64

	// Kind of the recovered value when decrypting or checking
	Kind value.Kind

	// Any error that occurred during processing
	Error error
}

package listcrypt

import (
	"github.com/idelchi/listcrypt/internal/metadata"
	"github.com/idelchi/listcrypt/internal/parallel"
	"github.com/idelchi/listcrypt/internal/value"
)

var (
	// ErrKeyMismatch is returned by Decrypt when the key is wrong or the
	// ciphertext was altered. Callers may retry with another key.
	ErrKeyMismatch = metadata.ErrKeyMismatch
	// ErrMalformed is returned by Decrypt when the ciphertext framing is broken,
	// regardless of the key.
	ErrMalformed = metadata.ErrMalformed
	// ErrUnrepresentable is returned by Encrypt for input that fails every text encoding.
	ErrUnrepresentable = value.ErrUnrepresentable
	// ErrWorker is returned when a segment worker crashes.
	ErrWorker = parallel.ErrWorker
)

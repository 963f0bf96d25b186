package parallel_test

import (
	"bytes"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/listcrypt/internal/keystream"
	"github.com/idelchi/listcrypt/internal/modular"
	"github.com/idelchi/listcrypt/internal/parallel"
)

func encryptWith(modulus int) parallel.Transform {
	return func(dst, data, key []byte) error {
		return modular.EncryptSegment(dst, data, key, modulus)
	}
}

func decryptWith(modulus int) parallel.Transform {
	return func(dst, data, key []byte) error {
		return modular.DecryptSegment(dst, data, key, modulus)
	}
}

func TestRunWorkerInvariance(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("39segment invariance \xff\x00"), 97)
	key := keystream.Derive("workers", len(data))
	modulus := modular.Modulus(data)

	reference, err := modular.Encrypt(data, key, modulus)
	require.NoError(t, err)

	for _, workers := range []int{1, 2, 3, 7, 16, 64, len(data) + 5} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			t.Parallel()

			encrypted, err := parallel.Run(data, key, workers, encryptWith(modulus))
			require.NoError(t, err)
			assert.Equal(t, reference, encrypted)

			decrypted, err := parallel.Run(encrypted, key, 5, decryptWith(modulus))
			require.NoError(t, err)
			assert.Equal(t, data, decrypted)
		})
	}
}

func TestRunEmpty(t *testing.T) {
	t.Parallel()

	out, err := parallel.Run(nil, nil, 4, encryptWith(130))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunShortKey(t *testing.T) {
	t.Parallel()

	_, err := parallel.Run([]byte("abcdef"), []byte("abc"), 2, encryptWith(130))
	require.Error(t, err)
}

func TestRunPropagatesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	var calls atomic.Int32

	failing := func(dst, data, key []byte) error {
		if calls.Add(1) == 2 {
			return boom
		}

		return nil
	}

	out, err := parallel.Run(bytes.Repeat([]byte("x"), 40), bytes.Repeat([]byte("k"), 40), 4, failing)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}

func TestRunRecoversPanic(t *testing.T) {
	t.Parallel()

	panicking := func(dst, data, key []byte) error {
		panic("worker crashed")
	}

	for _, workers := range []int{1, 4} {
		out, err := parallel.Run([]byte("abcdefgh"), []byte("abcdefgh"), workers, panicking)
		require.ErrorIs(t, err, parallel.ErrWorker)
		assert.Nil(t, out)
	}
}

func TestLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, parallel.Limit(0))
	assert.Equal(t, 1, parallel.Limit(-3))
	assert.Equal(t, 1, parallel.Limit(1))
	assert.LessOrEqual(t, parallel.Limit(1<<20), 1<<20)
	assert.GreaterOrEqual(t, parallel.Limit(1<<20), 1)
}

// Package parallel runs one transform per segment across a bounded set of
// goroutines and reassembles the results in segment order.
package parallel

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/listcrypt/internal/segment"
)

// ErrWorker is returned when a segment task panics.
var ErrWorker = errors.New("segment worker failed")

// Transform writes the transformed data segment into dst. key is the
// keystream slice co-indexed with data.
type Transform func(dst, data, key []byte) error

// Limit returns the number of segments allowed to run at once for the
// requested worker count: min(workers, NumCPU), at least one.
func Limit(workers int) int {
	return max(1, min(workers, runtime.NumCPU()))
}

// Run splits data into workers segments, applies fn to each paired with the
// same range of key, and returns the joined output.
//
// Each task writes exactly one slot, indexed by its segment, and slots are read
// only after every task has returned. The first failing task fails the whole
// call and all partial output is discarded.
func Run(data, key []byte, workers int, fn Transform) ([]byte, error) {
	if len(key) < len(data) {
		return nil, fmt.Errorf("keystream of %d bytes cannot cover %d bytes of data", len(key), len(data))
	}

	ranges := segment.Bounds(len(data), workers)
	slots := make([][]byte, len(ranges))

	if Limit(workers) == 1 || len(ranges) == 1 {
		for _, r := range ranges {
			out, err := runSegment(r, data, key, fn)
			if err != nil {
				return nil, err
			}

			slots[r.Index] = out
		}

		return segment.Join(slots), nil
	}

	group := errgroup.Group{}
	group.SetLimit(Limit(workers))

	for _, r := range ranges {
		group.Go(func() error {
			out, err := runSegment(r, data, key, fn)
			if err != nil {
				return err
			}

			slots[r.Index] = out

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return segment.Join(slots), nil
}

func runSegment(r segment.Range, data, key []byte, fn Transform) (out []byte, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			out = nil
			err = fmt.Errorf("%w: segment %d: %v", ErrWorker, r.Index, recovered)
		}
	}()

	out = make([]byte, r.Len())

	if err := fn(out, data[r.Lo:r.Hi], key[r.Lo:r.Hi]); err != nil {
		return nil, fmt.Errorf("segment %d: %w", r.Index, err)
	}

	return out, nil
}

// Package segment partitions a byte sequence into contiguous, near-equal
// ranges so that independent workers can transform them in parallel.
//
// The same ranges are applied to the data and to its keystream, which keeps
// both aligned byte for byte regardless of how many segments are used.
package segment

// Range is the half-open interval [Lo, Hi) of segment Index.
type Range struct {
	Index int
	Lo    int
	Hi    int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.Hi - r.Lo
}

// Bounds partitions length bytes into at most n contiguous ranges.
// A count below one is treated as one. When n exceeds length, length
// one-byte ranges are returned. The first length%k ranges are one byte longer
// than the rest, and none is empty.
func Bounds(length, n int) []Range {
	if length <= 0 {
		return nil
	}

	n = max(1, min(n, length))

	size, extra := length/n, length%n
	ranges := make([]Range, n)

	lo := 0

	for i := range ranges {
		hi := lo + size
		if i < extra {
			hi++
		}

		ranges[i] = Range{Index: i, Lo: lo, Hi: hi}
		lo = hi
	}

	return ranges
}

// Split returns the contiguous segments of data described by Bounds(len(data), n).
// The segments alias data.
func Split(data []byte, n int) [][]byte {
	ranges := Bounds(len(data), n)
	segments := make([][]byte, len(ranges))

	for i, r := range ranges {
		segments[i] = data[r.Lo:r.Hi]
	}

	return segments
}

// Join concatenates segments in index order.
func Join(segments [][]byte) []byte {
	total := 0
	for _, s := range segments {
		total += len(s)
	}

	out := make([]byte, 0, total)
	for _, s := range segments {
		out = append(out, s...)
	}

	return out
}

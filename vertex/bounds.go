package vertex

import "encoding/binary"

// IndexBounds returns the smallest and largest of the first count indices.
// The index width comes from t. Without an index format the indices are
// implicit and the bounds are 0 and count-1. count is clipped to the
// indices actually present; an empty range yields (0, -1).
func IndexBounds(indices []byte, count int, t Type) (lo, hi int) {
	f := t.IndexFormat()
	if f == IndexNone {
		return 0, count - 1
	}
	count = min(count, len(indices)/f.Size())
	if count <= 0 {
		return 0, -1
	}

	lo, hi = IndexAt(indices, f, 0), IndexAt(indices, f, 0)
	for i := 1; i < count; i++ {
		v := IndexAt(indices, f, i)
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// IndexAt returns element i of an index buffer of format f.
// The caller guarantees i is within the buffer.
func IndexAt(indices []byte, f IndexFormat, i int) int {
	if f == IndexUint16 {
		return int(binary.LittleEndian.Uint16(indices[2*i:]))
	}
	return int(indices[i])
}

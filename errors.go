package spline

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by every *OutOfRangeError.
	ErrOutOfRange = errors.New("spline: control point reference out of range")

	// ErrScratchFull is returned when the generated geometry does not fit
	// into the scratch buffer. Nothing is written in that case.
	ErrScratchFull = errors.New("spline: scratch buffer full")

	// ErrInvalidStride is returned for a non-positive vertex stride.
	ErrInvalidStride = errors.New("spline: invalid vertex stride")

	// ErrIndexFormat is returned when indices are supplied with a vertex
	// type that carries no index format.
	ErrIndexFormat = errors.New("spline: indices without index format")
)

// OutOfRangeError reports a control point reference that falls outside the
// control point buffer, or a grid position the index buffer does not cover.
type OutOfRangeError struct {
	PatchU, PatchV int // patch position in the grid
	Point          int // local control point, 0..15
	Index          int // logical grid index
	Ordinal        int // resolved control point, -1 if the index buffer is too short
	Count          int // control points (or indices) available
}

func (e *OutOfRangeError) Error() string {
	if e.Ordinal < 0 {
		return fmt.Sprintf("spline: patch (%d,%d) point %d: grid index %d beyond index buffer of %d entries",
			e.PatchU, e.PatchV, e.Point, e.Index, e.Count)
	}
	return fmt.Sprintf("spline: patch (%d,%d) point %d: control point %d beyond buffer of %d points",
		e.PatchU, e.PatchV, e.Point, e.Ordinal, e.Count)
}

// Is reports whether target is ErrOutOfRange.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

package spline

import "github.com/gogpu/spline/vertex"

// PatchPoints is the number of control points of one patch (4x4).
const PatchPoints = 16

// Patch is one 4x4 window of a control point grid.
//
// Points[p] holds the raw record of the control point at local column p%4
// and row p/4. The slices alias the caller's control point buffer and are
// valid only for the duration of the call that built them.
type Patch struct {
	U, V   int
	Points [PatchPoints][]byte
	Edges  EdgeMask
}

// IndexBuffer is an optional index list into the control point buffer.
// A nil Data or IndexNone format addresses control points linearly.
type IndexBuffer struct {
	Data   []byte
	Format vertex.IndexFormat
}

// Len returns the number of indices, 0 if the buffer is absent.
func (ib IndexBuffer) Len() int {
	if !ib.present() {
		return 0
	}
	return len(ib.Data) / ib.Format.Size()
}

func (ib IndexBuffer) present() bool {
	return ib.Data != nil && ib.Format != vertex.IndexNone
}

// Grid is a CountU x CountV matrix of control point references.
type Grid struct {
	ControlPoints []byte
	Indices       IndexBuffer
	CountU        int
	CountV        int
	OpenU         Boundary
	OpenV         Boundary
}

// NumPatches returns the number of patches along each axis of the grid.
// Axes with fewer than four control points have none.
func (g Grid) NumPatches() (numU, numV int) {
	return max(g.CountU-3, 0), max(g.CountV-3, 0)
}

// BuildPatches appends the (CountU-3) x (CountV-3) overlapping patches of g
// to dst, row by row along v, and returns the extended slice. Adjacent
// patches share three of their four control point columns or rows.
//
// Every reference is checked against the control point buffer; the first
// reference outside it fails the whole build with an *OutOfRangeError and
// dst is returned unextended.
func BuildPatches(dst []Patch, g Grid, stride int) ([]Patch, error) {
	if stride <= 0 {
		return dst, ErrInvalidStride
	}
	numU, numV := g.NumPatches()
	if numU == 0 || numV == 0 {
		return dst, nil
	}

	base := len(dst)
	points := len(g.ControlPoints) / stride
	indexed := g.Indices.present()
	indexLen := g.Indices.Len()

	for patchV := 0; patchV < numV; patchV++ {
		for patchU := 0; patchU < numU; patchU++ {
			p := Patch{
				U:     patchU,
				V:     patchV,
				Edges: Classify(patchU, patchV, numU, numV, g.OpenU, g.OpenV),
			}
			for point := 0; point < PatchPoints; point++ {
				idx := (patchU + point%4) + (patchV+point/4)*g.CountU
				ordinal := idx
				if indexed {
					if idx >= indexLen {
						return dst[:base], &OutOfRangeError{
							PatchU: patchU, PatchV: patchV, Point: point,
							Index: idx, Ordinal: -1, Count: indexLen,
						}
					}
					ordinal = vertex.IndexAt(g.Indices.Data, g.Indices.Format, idx)
				}
				if ordinal >= points {
					return dst[:base], &OutOfRangeError{
						PatchU: patchU, PatchV: patchV, Point: point,
						Index: idx, Ordinal: ordinal, Count: points,
					}
				}
				off := ordinal * stride
				p.Points[point] = g.ControlPoints[off : off+stride : off+stride]
			}
			dst = append(dst, p)
		}
	}
	return dst, nil
}

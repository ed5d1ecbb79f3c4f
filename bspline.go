package spline

import "github.com/gogpu/spline/vertex"

// bsplineBasis returns the four uniform cubic B-spline weights at t in [0, 1].
func bsplineBasis(t float32) [4]float32 {
	t2 := t * t
	t3 := t2 * t
	it := 1 - t
	return [4]float32{
		it * it * it / 6,
		(3*t3 - 6*t2 + 4) / 6,
		(-3*t3 + 3*t2 + 3*t + 1) / 6,
		t3 / 6,
	}
}

// bsplineTessellator evaluates patches as uniform cubic B-spline surfaces.
// Every component of the vertex record is blended, so colors, texture
// coordinates and normals follow the surface along with the position.
//
// Its buffers are reused between calls; it is not safe for concurrent use.
type bsplineTessellator struct {
	segments int
	ctrl     []float32 // 16 control points, NumComponents floats each
	comps    []float32
	grid     []byte // (segments+1)^2 evaluated records
}

func newBSplineTessellator(segments int) *bsplineTessellator {
	return &bsplineTessellator{segments: max(segments, 1)}
}

// trianglesPerPatch is the triangle count of one evaluated patch.
func (bt *bsplineTessellator) trianglesPerPatch() int {
	return 2 * bt.segments * bt.segments
}

// bytes returns the scratch space needed for n patches.
func (bt *bsplineTessellator) bytes(n, stride int) int {
	return n * bt.trianglesPerPatch() * 3 * stride
}

// tessellate evaluates p on a (segments+1) x (segments+1) parameter grid
// and writes two triangles per grid cell into s. The triangles follow the
// orientation of the first control point triangle (v0, v1, v2).
func (bt *bsplineTessellator) tessellate(p *Patch, dec *vertex.Decoder, s *Scratch) (int, error) {
	stride := dec.Size()
	nc := dec.NumComponents()
	side := bt.segments + 1

	out, err := s.Reserve(bt.trianglesPerPatch() * 3 * stride)
	if err != nil {
		return 0, err
	}

	bt.ctrl = bt.ctrl[:0]
	for _, rec := range p.Points {
		bt.ctrl = dec.ReadComponents(bt.ctrl, rec)
	}
	if need := side * side * stride; cap(bt.grid) < need {
		bt.grid = make([]byte, need)
	} else {
		bt.grid = bt.grid[:need]
	}
	if cap(bt.comps) < nc {
		bt.comps = make([]float32, nc)
	}
	comps := bt.comps[:nc]

	step := 1 / float32(bt.segments)
	for j := 0; j < side; j++ {
		bv := bsplineBasis(float32(j) * step)
		for i := 0; i < side; i++ {
			bu := bsplineBasis(float32(i) * step)
			clear(comps)
			for row := 0; row < 4; row++ {
				for col := 0; col < 4; col++ {
					w := bu[col] * bv[row]
					cp := bt.ctrl[(row*4+col)*nc : (row*4+col+1)*nc]
					for k, c := range cp {
						comps[k] += w * c
					}
				}
			}
			rec := bt.grid[(j*side+i)*stride : (j*side+i+1)*stride]
			// Padding bytes stay zero so output is deterministic.
			clear(rec)
			dec.WriteComponents(rec, comps)
		}
	}

	at := func(i, j int) []byte {
		return bt.grid[(j*side+i)*stride : (j*side+i+1)*stride]
	}
	o := 0
	for j := 0; j < bt.segments; j++ {
		for i := 0; i < bt.segments; i++ {
			v0, v1, v2, v3 := at(i, j), at(i+1, j), at(i, j+1), at(i+1, j+1)
			o += copy(out[o:], v0)
			o += copy(out[o:], v1)
			o += copy(out[o:], v2)
			o += copy(out[o:], v2)
			o += copy(out[o:], v1)
			o += copy(out[o:], v3)
		}
	}
	return bt.trianglesPerPatch(), nil
}

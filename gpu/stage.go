//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/spline"
	"github.com/gogpu/spline/vertex"
)

// ErrBadIndex is returned when a primitive references a vertex outside
// its vertex data.
var ErrBadIndex = errors.New("gpu: index out of range")

// batch is one draw of decoded, non-indexed vertices.
type batch struct {
	layout vertex.Type // index bits cleared
	offset int         // byte offset in the upload
	count  int         // vertices
}

// stage appends the decoded vertices of p to dst, expanding indices.
// It returns the grown buffer and the batch describing the new bytes.
func stage(dst []byte, p spline.Primitive) ([]byte, batch, error) {
	if p.Topology != gputypes.PrimitiveTopologyTriangleList {
		return dst, batch{}, fmt.Errorf("gpu: unsupported topology %v", p.Topology)
	}
	dec, err := vertex.Lookup(p.Type)
	if err != nil {
		return dst, batch{}, fmt.Errorf("gpu: %w", err)
	}
	size, stride := dec.Size(), dec.DecodedStride()
	records := len(p.Vertices) / size

	b := batch{layout: p.Type.WithoutIndex(), offset: len(dst), count: p.Count}
	need := len(dst) + p.Count*stride
	if cap(dst) < need {
		grown := make([]byte, len(dst), max(need, 2*cap(dst)))
		copy(grown, dst)
		dst = grown
	}
	out := dst[:need]

	if !p.Indexed() {
		first := p.BaseVertex
		if first < 0 || first+p.Count > records {
			return dst, batch{}, fmt.Errorf("%w: vertices %d..%d of %d", ErrBadIndex, first, first+p.Count-1, records)
		}
		if err := dec.Decode(out[b.offset:], p.Vertices[first*size:], p.Count); err != nil {
			return dst, batch{}, fmt.Errorf("gpu: %w", err)
		}
		return out, b, nil
	}

	if p.Count > len(p.Indices) {
		return dst, batch{}, fmt.Errorf("%w: %d indices, count %d", ErrBadIndex, len(p.Indices), p.Count)
	}
	for i, idx := range p.Indices[:p.Count] {
		v := p.BaseVertex + int(idx)
		if v < 0 || v >= records {
			return dst, batch{}, fmt.Errorf("%w: vertex %d of %d", ErrBadIndex, v, records)
		}
		o := b.offset + i*stride
		if err := dec.Decode(out[o:o+stride], p.Vertices[v*size:(v+1)*size], 1); err != nil {
			return dst, batch{}, fmt.Errorf("gpu: %w", err)
		}
	}
	return out, b, nil
}

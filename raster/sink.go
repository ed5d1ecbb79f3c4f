// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/spline"
	"github.com/gogpu/spline/recording"
	"github.com/gogpu/spline/vertex"
)

// ErrBadIndex is returned when a primitive references a vertex outside
// its vertex data.
var ErrBadIndex = errors.New("raster: index out of range")

func init() {
	recording.Register("raster", func() recording.Backend {
		return New(0, 0)
	})
}

// Sink rasterizes triangle lists into an alpha image.
//
// A Sink is not safe for concurrent use.
type Sink struct {
	// CTM maps vertex positions to device space. The zero matrix is
	// treated as the identity.
	CTM matrix.Matrix

	img *image.Alpha
	ras *vector.Rasterizer

	pending []vec.Vec2 // device space, three per triangle, counter-clockwise
	drawn   int
	dropped int
}

var _ recording.ImageBackend = (*Sink)(nil)

// New creates a sink with a cleared width x height image and the
// identity transform.
func New(width, height int) *Sink {
	s := &Sink{CTM: matrix.Identity}
	s.resize(width, height)
	return s
}

func (s *Sink) resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	s.img = image.NewAlpha(image.Rect(0, 0, width, height))
	if s.ras == nil {
		s.ras = vector.NewRasterizer(width, height)
	} else {
		s.ras.Reset(width, height)
	}
}

// SetTransform maps a vertex position (x, y) to device (x*scale+dx, y*scale+dy).
func (s *Sink) SetTransform(scale, dx, dy float64) {
	s.CTM = matrix.Matrix{scale, 0, 0, scale, dx, dy}
}

// apply maps (x, y) through the CTM.
func (s *Sink) apply(x, y float32) vec.Vec2 {
	m := s.CTM
	if m == (matrix.Matrix{}) {
		m = matrix.Identity
	}
	px, py := float64(x), float64(y)
	return vec.Vec2{
		X: m[0]*px + m[2]*py + m[4],
		Y: m[1]*px + m[3]*py + m[5],
	}
}

// Begin implements recording.Backend. It clears the image and resizes it
// to width x height.
func (s *Sink) Begin(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("raster: invalid size %dx%d", width, height)
	}
	s.resize(width, height)
	s.pending = s.pending[:0]
	s.drawn, s.dropped = 0, 0
	return nil
}

// End implements recording.Backend by flushing pending triangles.
func (s *Sink) End() error { return s.Flush() }

// Image returns the coverage image.
func (s *Sink) Image() image.Image { return s.img }

// Alpha returns the coverage image without conversion.
func (s *Sink) Alpha() *image.Alpha { return s.img }

// Triangles returns the number of triangles rasterized so far.
func (s *Sink) Triangles() int { return s.drawn }

// Dropped returns the number of primitives skipped because they were not
// triangle lists or had no positions.
func (s *Sink) Dropped() int { return s.dropped }

// Submit queues the triangles of p. The vertex data is read immediately,
// so p may be reused once Submit returns. A primitive with a bad index
// queues nothing.
func (s *Sink) Submit(p spline.Primitive) error {
	if p.Topology != gputypes.PrimitiveTopologyTriangleList || !p.Type.HasPosition() {
		s.dropped++
		spline.Logger().Warn("raster: dropped primitive",
			"topology", p.Topology, "type", p.Type)
		return nil
	}
	dec, err := vertex.Lookup(p.Type)
	if err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	size := dec.Size()
	records := len(p.Vertices) / size

	n := p.Count - p.Count%3
	mark := len(s.pending)
	var tri [3]vec.Vec2
	for i := 0; i < n; i++ {
		v := p.BaseVertex + i
		if p.Indexed() {
			if i >= len(p.Indices) {
				s.pending = s.pending[:mark]
				return fmt.Errorf("%w: index %d of %d", ErrBadIndex, i, len(p.Indices))
			}
			v = p.BaseVertex + int(p.Indices[i])
		}
		if v < 0 || v >= records {
			s.pending = s.pending[:mark]
			return fmt.Errorf("%w: vertex %d of %d", ErrBadIndex, v, records)
		}
		x, y, _, _ := dec.Position(p.Vertices[v*size:])
		tri[i%3] = s.apply(x, y)
		if i%3 == 2 {
			s.queue(tri)
		}
	}
	return nil
}

// queue appends tri with counter-clockwise winding. Degenerate triangles
// are skipped.
func (s *Sink) queue(tri [3]vec.Vec2) {
	area := (tri[1].X-tri[0].X)*(tri[2].Y-tri[0].Y) - (tri[2].X-tri[0].X)*(tri[1].Y-tri[0].Y)
	switch {
	case area == 0:
		return
	case area < 0:
		tri[1], tri[2] = tri[2], tri[1]
	}
	s.pending = append(s.pending, tri[:]...)
}

// Flush rasterizes all queued triangles onto the image.
//
// Every queued triangle has the same winding, so overlapping triangles
// (including the reversed duplicates a spline produces) accumulate instead
// of cancelling, and nonzero coverage saturates at full alpha.
func (s *Sink) Flush() error {
	if len(s.pending) == 0 {
		return nil
	}
	bounds := s.img.Bounds()
	s.ras.Reset(bounds.Dx(), bounds.Dy())
	for i := 0; i+2 < len(s.pending); i += 3 {
		a, b, c := s.pending[i], s.pending[i+1], s.pending[i+2]
		s.ras.MoveTo(float32(a.X), float32(a.Y))
		s.ras.LineTo(float32(b.X), float32(b.Y))
		s.ras.LineTo(float32(c.X), float32(c.Y))
		s.ras.ClosePath()
	}
	if !bounds.Empty() {
		s.ras.Draw(s.img, bounds, image.NewUniform(color.Alpha{A: 255}), image.Point{})
	}
	s.drawn += len(s.pending) / 3
	s.pending = s.pending[:0]
	return nil
}

// Coverage returns the fraction of pixels with nonzero alpha.
func (s *Sink) Coverage() float64 {
	if len(s.img.Pix) == 0 {
		return 0
	}
	n := 0
	for _, a := range s.img.Pix {
		if a != 0 {
			n++
		}
	}
	return float64(n) / float64(len(s.img.Pix))
}

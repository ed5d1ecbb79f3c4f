// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/spline"
	"github.com/gogpu/spline/recording"
	"github.com/gogpu/spline/vertex"
)

// gridPoints returns a 4x4 grid of float positions spaced by step.
func gridPoints(step float32) []byte {
	buf := make([]byte, 16*12)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*12:], math.Float32bits(float32(i%4)*step))
		binary.LittleEndian.PutUint32(buf[i*12+4:], math.Float32bits(float32(i/4)*step))
	}
	return buf
}

func alphaAt(s *Sink, x, y int) uint8 {
	return s.Alpha().AlphaAt(x, y).A
}

func TestSinkClosedPatch(t *testing.T) {
	s := New(16, 16)
	e := spline.NewEngine(spline.WithSubmitter(s))
	n, err := e.SubmitSpline(spline.SplineRequest{
		ControlPoints: gridPoints(4), CountU: 4, CountV: 4, Type: vertex.PositionFloat,
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 || s.Triangles() != 4 {
		t.Fatalf("submitted %d, rasterized %d; want 4, 4", n, s.Triangles())
	}

	// The inner tile spans (4,4)-(8,8). Reversed duplicates must not cancel.
	tests := []struct {
		x, y int
		want uint8
	}{
		{4, 4, 255},
		{7, 7, 255},
		{2, 2, 0},
		{8, 8, 0},
		{12, 5, 0},
	}
	for _, tt := range tests {
		if got := alphaAt(s, tt.x, tt.y); got != tt.want {
			t.Errorf("alpha(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSinkTransform(t *testing.T) {
	s := New(32, 32)
	s.SetTransform(2, 0, 0)
	e := spline.NewEngine(spline.WithSubmitter(s))
	if _, err := e.SubmitSpline(spline.SplineRequest{
		ControlPoints: gridPoints(4), CountU: 4, CountV: 4, Type: vertex.PositionFloat,
	}); err != nil {
		t.Fatal(err)
	}
	if got := alphaAt(s, 14, 14); got != 255 {
		t.Errorf("alpha(14,14) = %d, want 255", got)
	}
	if got := alphaAt(s, 5, 5); got != 0 {
		t.Errorf("alpha(5,5) = %d, want 0", got)
	}
}

func TestSinkFlipCTM(t *testing.T) {
	s := New(16, 16)
	s.CTM = matrix.Matrix{1, 0, 0, -1, 0, 16}
	e := spline.NewEngine(spline.WithSubmitter(s))
	if _, err := e.SubmitSpline(spline.SplineRequest{
		ControlPoints: gridPoints(4), CountU: 4, CountV: 4, Type: vertex.PositionFloat,
	}); err != nil {
		t.Fatal(err)
	}
	// The tile (4,4)-(8,8) lands on rows 8..12.
	if got := alphaAt(s, 5, 9); got != 255 {
		t.Errorf("alpha(5,9) = %d, want 255", got)
	}
	if got := alphaAt(s, 5, 5); got != 0 {
		t.Errorf("alpha(5,5) = %d, want 0", got)
	}
}

func TestSinkBezier(t *testing.T) {
	s := New(16, 16)
	e := spline.NewEngine(spline.WithSubmitter(s), spline.WithReporter(nopReporter{}))
	if _, err := e.DrawBezier(spline.BezierRequest{ControlPoints: gridPoints(4), Type: vertex.PositionFloat}); err != nil {
		t.Fatal(err)
	}
	if s.Triangles() != 18 {
		t.Errorf("Triangles() = %d, want 18", s.Triangles())
	}
	// The fixed mesh covers the whole 12x12 grid.
	if got := alphaAt(s, 1, 10); got != 255 {
		t.Errorf("alpha(1,10) = %d, want 255", got)
	}
	if c := s.Coverage(); c < 0.5 || c > 0.6 {
		t.Errorf("Coverage() = %g, want 144/256", c)
	}
}

type nopReporter struct{}

func (nopReporter) Report(string) {}

func TestSinkDropsUnsupported(t *testing.T) {
	s := New(8, 8)
	err := s.Submit(spline.Primitive{
		Vertices: gridPoints(1),
		Topology: gputypes.PrimitiveTopologyLineList,
		Count:    2,
		Type:     vertex.PositionFloat,
	})
	if err != nil {
		t.Fatal(err)
	}
	err = s.Submit(spline.Primitive{
		Vertices: make([]byte, 12),
		Topology: gputypes.PrimitiveTopologyTriangleList,
		Count:    3,
		Type:     vertex.Color8888,
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", s.Dropped())
	}
}

func TestSinkBadIndex(t *testing.T) {
	s := New(8, 8)
	err := s.Submit(spline.Primitive{
		Vertices: gridPoints(1),
		Indices:  []uint16{0, 1, 16},
		Topology: gputypes.PrimitiveTopologyTriangleList,
		Count:    3,
		Type:     vertex.PositionFloat.WithIndex(vertex.IndexUint16),
	})
	if !errors.Is(err, ErrBadIndex) {
		t.Errorf("err = %v, want ErrBadIndex", err)
	}
}

func TestSinkBadIndexQueuesNothing(t *testing.T) {
	s := New(16, 16)
	prim := spline.Primitive{
		Vertices: gridPoints(4),
		Indices:  []uint16{0, 1, 4, 0, 1, 999},
		Topology: gputypes.PrimitiveTopologyTriangleList,
		Count:    6,
		Type:     vertex.PositionFloat.WithIndex(vertex.IndexUint16),
	}
	if err := s.Submit(prim); !errors.Is(err, ErrBadIndex) {
		t.Fatalf("err = %v, want ErrBadIndex", err)
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if s.Triangles() != 0 || s.Coverage() != 0 {
		t.Fatalf("rejected primitive drew %d triangles, coverage %v", s.Triangles(), s.Coverage())
	}

	prim.Count = 3
	if err := s.Submit(prim); err != nil {
		t.Fatal(err)
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if s.Triangles() != 1 {
		t.Errorf("Triangles() = %d, want 1", s.Triangles())
	}
}

func TestRasterBackendPlayback(t *testing.T) {
	if !recording.IsRegistered("raster") {
		t.Fatal("raster backend not registered")
	}
	rec := recording.NewRecorder(16, 16)
	e := spline.NewEngine(spline.WithSubmitter(rec))
	if _, err := e.SubmitSpline(spline.SplineRequest{
		ControlPoints: gridPoints(4), CountU: 4, CountV: 4, Type: vertex.PositionFloat,
	}); err != nil {
		t.Fatal(err)
	}

	b, err := recording.NewBackend("raster")
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.FinishRecording().Playback(b); err != nil {
		t.Fatal(err)
	}
	img := b.(recording.ImageBackend).Image()
	if img.Bounds().Dx() != 16 {
		t.Fatalf("width = %d, want 16", img.Bounds().Dx())
	}
	if _, _, _, a := img.At(5, 5).RGBA(); a != 0xffff {
		t.Errorf("alpha(5,5) = %#x, want 0xffff", a)
	}
}

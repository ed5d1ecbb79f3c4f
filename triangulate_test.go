package spline

import (
	"bytes"
	"errors"
	"testing"
)

func singlePatch(t *testing.T, cps []byte, edges Boundary) Patch {
	t.Helper()
	g := Grid{ControlPoints: cps, CountU: 4, CountV: 4, OpenU: edges, OpenV: edges}
	patches, err := BuildPatches(nil, g, testStride)
	if err != nil || len(patches) != 1 {
		t.Fatalf("BuildPatches = %d patches, %v", len(patches), err)
	}
	return patches[0]
}

func TestTriangulateClosedPatch(t *testing.T) {
	cps := makeControlPoints(16)
	p := singlePatch(t, cps, BoundaryClosed)
	s := NewScratch(1 << 12)

	n, err := TriangulatePatch(&p, testStride, s)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("got %d triangles, want 4", n)
	}
	if s.Len() != 12*testStride {
		t.Fatalf("cursor = %d, want %d", s.Len(), 12*testStride)
	}

	// The single central tile has corners 5, 6, 9, 10.
	want := []int{5, 6, 9, 9, 6, 5, 9, 6, 10, 10, 6, 9}
	out := s.Bytes()
	for i, cp := range want {
		got := out[i*testStride : (i+1)*testStride]
		if !bytes.Equal(got, record(cps, cp)) {
			t.Errorf("vertex %d: not control point %d", i, cp)
		}
	}
}

func TestTriangulateOpenPatchFidelity(t *testing.T) {
	cps := makeControlPoints(16)
	p := singlePatch(t, cps, BoundaryOpen)
	s := NewScratch(1 << 12)

	n, err := TriangulatePatch(&p, testStride, s)
	if err != nil {
		t.Fatal(err)
	}
	if n != 9*4 {
		t.Fatalf("got %d triangles, want 36", n)
	}

	// Every emitted vertex is a byte-identical copy of a control point,
	// in tile order u-major, then v.
	out := s.Bytes()
	v := 0
	for tu := 0; tu < 3; tu++ {
		for tv := 0; tv < 3; tv++ {
			pi := tu + tv*4
			order := []int{pi, pi + 1, pi + 4, pi + 4, pi + 1, pi, pi + 4, pi + 1, pi + 5, pi + 5, pi + 1, pi + 4}
			for _, cp := range order {
				if !bytes.Equal(out[v*testStride:(v+1)*testStride], record(cps, cp)) {
					t.Errorf("tile (%d,%d) vertex %d: not control point %d", tu, tv, v, cp)
				}
				v++
			}
		}
	}
}

func TestTriangulateScratchFull(t *testing.T) {
	p := singlePatch(t, makeControlPoints(16), BoundaryOpen)
	s := NewScratch(100)
	_, err := TriangulatePatch(&p, testStride, s)
	if !errors.Is(err, ErrScratchFull) {
		t.Fatalf("err = %v, want ErrScratchFull", err)
	}
	if s.Len() != 0 {
		t.Errorf("cursor moved to %d on failure", s.Len())
	}
}

func TestScratchReserve(t *testing.T) {
	s := WrapScratch(make([]byte, 10))
	b, err := s.Reserve(4)
	if err != nil || len(b) != 4 {
		t.Fatalf("Reserve(4) = %d bytes, %v", len(b), err)
	}
	if s.Remaining() != 6 {
		t.Errorf("Remaining = %d, want 6", s.Remaining())
	}
	if _, err := s.Reserve(7); !errors.Is(err, ErrScratchFull) {
		t.Errorf("Reserve(7) err = %v, want ErrScratchFull", err)
	}
	s.Reset()
	if s.Len() != 0 || len(s.Bytes()) != 0 {
		t.Errorf("after Reset: Len = %d", s.Len())
	}
}

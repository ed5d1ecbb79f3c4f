package spline

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/spline/vertex"
)

func TestBezierIndices(t *testing.T) {
	idx := BezierIndices()
	if len(idx) != 54 {
		t.Fatalf("got %d indices, want 54", len(idx))
	}
	// First tile: (0,1,5) and (5,4,0).
	want := []uint16{0, 1, 5, 5, 4, 0}
	for i, w := range want {
		if idx[i] != w {
			t.Errorf("index %d = %d, want %d", i, idx[i], w)
		}
	}
	for i, v := range idx {
		if v > 15 {
			t.Errorf("index %d = %d, outside the 4x4 grid", i, v)
		}
	}
	// Copies are independent.
	idx[0] = 99
	if BezierIndices()[0] != 0 {
		t.Error("BezierIndices returned shared storage")
	}
}

func TestBezierUVs(t *testing.T) {
	uv := BezierUVs()
	at := func(x, y int) (float32, float32) {
		return uv[(y*4+x)*2], uv[(y*4+x)*2+1]
	}
	tests := []struct {
		x, y int
		u, v float32
	}{
		{0, 0, 0, 0},
		{3, 3, 1, 1},
		{3, 0, 1, 0},
		{0, 3, 0, 1},
		{1, 2, float32(1) / 3, float32(2) / 3},
	}
	for _, tt := range tests {
		u, v := at(tt.x, tt.y)
		if u != tt.u || v != tt.v {
			t.Errorf("uv(%d,%d) = (%g,%g), want (%g,%g)", tt.x, tt.y, u, v, tt.u, tt.v)
		}
	}
}

func TestDrawBezierInjectsUVs(t *testing.T) {
	e, sub := newTestEngine()
	cps := makeControlPoints(16)

	n, err := e.DrawBezier(BezierRequest{ControlPoints: cps, Type: testType})
	if err != nil {
		t.Fatal(err)
	}
	if n != 18 {
		t.Errorf("got %d triangles, want 18", n)
	}
	if len(sub.prims) != 1 || sub.flushes != 1 {
		t.Fatalf("got %d primitives, %d flushes; want 1, 1", len(sub.prims), sub.flushes)
	}
	p := sub.prims[0]
	if p.Count != 54 || !p.Indexed() {
		t.Errorf("count = %d, indexed = %v; want 54 indexed", p.Count, p.Indexed())
	}
	wantType := (testType | vertex.TexCoordFloat).WithIndex(vertex.IndexUint16)
	if p.Type != wantType {
		t.Fatalf("type = %v, want %v", p.Type, wantType)
	}

	dec, err := vertex.Lookup(p.Type)
	if err != nil {
		t.Fatal(err)
	}
	tcOff, _ := dec.Offset(vertex.AttrTexCoord)
	posOff, _ := dec.Offset(vertex.AttrPosition)
	uv := func(i int) (float32, float32) {
		rec := p.Vertices[i*dec.Size():]
		return math.Float32frombits(binary.LittleEndian.Uint32(rec[tcOff:])),
			math.Float32frombits(binary.LittleEndian.Uint32(rec[tcOff+4:]))
	}
	if u, v := uv(0); u != 0 || v != 0 {
		t.Errorf("uv(0,0) = (%g,%g), want (0,0)", u, v)
	}
	if u, v := uv(15); u != 1 || v != 1 {
		t.Errorf("uv(3,3) = (%g,%g), want (1,1)", u, v)
	}
	if u, v := uv(3); u != 1 || v != 0 {
		t.Errorf("uv(3,0) = (%g,%g), want (1,0)", u, v)
	}
	// Original attributes survive the injection.
	for i := 0; i < 16; i++ {
		rec := p.Vertices[i*dec.Size():]
		if !bytes.Equal(rec[posOff:posOff+12], record(cps, i)[4:16]) {
			t.Errorf("record %d: position changed", i)
		}
	}
}

func TestDrawBezierKeepsTexCoords(t *testing.T) {
	e, sub := newTestEngine()
	typ := vertex.TexCoordFloat | vertex.PositionFloat
	cps := make([]byte, 16*20)
	for i := range cps {
		cps[i] = byte(i)
	}
	if _, err := e.DrawBezier(BezierRequest{ControlPoints: cps, Type: typ}); err != nil {
		t.Fatal(err)
	}
	p := sub.prims[0]
	if p.Type != typ.WithIndex(vertex.IndexUint16) {
		t.Errorf("type = %v, want %v", p.Type, typ.WithIndex(vertex.IndexUint16))
	}
	if !bytes.Equal(p.Vertices, cps) {
		t.Error("control points should be submitted unchanged")
	}
}

func TestDrawBezierReportsOnce(t *testing.T) {
	rep := &countingReporter{}
	e, _ := newTestEngine(WithReporter(rep))
	for i := 0; i < 5; i++ {
		if _, err := e.DrawBezier(BezierRequest{ControlPoints: makeControlPoints(16), Type: testType}); err != nil {
			t.Fatal(err)
		}
	}
	if len(rep.msgs) != 1 {
		t.Fatalf("reported %d times, want 1", len(rep.msgs))
	}
	if rep.msgs[0] != bezierMessage {
		t.Errorf("message = %q", rep.msgs[0])
	}

	// The latch belongs to the engine, not the process.
	other, _ := newTestEngine(WithReporter(rep))
	if _, err := other.DrawBezier(BezierRequest{ControlPoints: makeControlPoints(16), Type: testType}); err != nil {
		t.Fatal(err)
	}
	if len(rep.msgs) != 2 {
		t.Errorf("second engine: reported %d times in total, want 2", len(rep.msgs))
	}
}

func TestDrawBezierShortBuffer(t *testing.T) {
	e, sub := newTestEngine()
	_, err := e.DrawBezier(BezierRequest{ControlPoints: makeControlPoints(15), Type: testType})
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err = %v, want ErrOutOfRange", err)
	}
	if len(sub.prims) != 0 {
		t.Error("primitive submitted on failure")
	}
}

func TestLogReporterDeduplicates(t *testing.T) {
	r := NewLogReporter()
	r.Report("a")
	r.Report("a")
	r.Report("b")
	if len(r.seen) != 2 {
		t.Errorf("seen %d messages, want 2", len(r.seen))
	}
}

func TestLogReporterZeroValue(t *testing.T) {
	e := NewEngine(WithReporter(&LogReporter{}))
	for i := 0; i < 2; i++ {
		if _, err := e.DrawBezier(BezierRequest{ControlPoints: makeControlPoints(16), Type: testType}); err != nil {
			t.Fatal(err)
		}
	}
	var r LogReporter
	r.Report("a")
	r.Report("a")
	if len(r.seen) != 1 {
		t.Errorf("seen %d messages, want 1", len(r.seen))
	}
}

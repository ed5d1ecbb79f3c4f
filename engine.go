package spline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/spline/vertex"
)

// PatchPrimitive is the surface topology requested for a spline.
type PatchPrimitive int

const (
	PatchTriangles PatchPrimitive = iota
	PatchLines
	PatchPrimitivePoints
)

// String returns the primitive name.
func (p PatchPrimitive) String() string {
	switch p {
	case PatchTriangles:
		return "Triangles"
	case PatchLines:
		return "Lines"
	case PatchPrimitivePoints:
		return "Points"
	default:
		return "Unknown"
	}
}

// bezierMessage is reported the first time an engine draws a fixed grid.
const bezierMessage = "Unsupported bezier curve"

// SplineRequest describes a spline surface drawn with SubmitSpline.
type SplineRequest struct {
	// ControlPoints holds raw records of Type. Its length bounds every
	// control point reference.
	ControlPoints []byte

	// Indices is optional. When set, its width comes from Type.
	Indices []byte

	CountU, CountV int
	OpenU, OpenV   Boundary
	Primitive      PatchPrimitive
	Type           vertex.Type
}

// BezierRequest describes a single 4x4 control point grid drawn with DrawBezier.
type BezierRequest struct {
	ControlPoints []byte
	Type          vertex.Type
}

// Stats counts the work done by an Engine.
type Stats struct {
	Splines   int // SubmitSpline calls that built patches
	Beziers   int // DrawBezier calls
	Ignored   int // spline calls with an unsupported primitive
	Failures  int // calls that returned an error
	Patches   int
	Triangles int
}

// Engine turns control point grids into triangle lists and submits them.
//
// The engine owns one scratch region; every primitive it submits aliases
// that region and is flushed before the call returns. An Engine is not
// safe for concurrent use.
type Engine struct {
	opts      engineOptions
	submitter Submitter
	reporter  Reporter

	scratch *Scratch // splines
	aux     *Scratch // UV-injected fixed grids

	patches []Patch
	bspline *bsplineTessellator

	bezierReported bool
	stats          Stats
}

// NewEngine creates an engine configured by opts.
func NewEngine(opts ...EngineOption) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.reporter == nil {
		o.reporter = NewLogReporter()
	}
	buf := o.scratch
	if buf == nil {
		buf = make([]byte, o.scratchSize)
	}
	half := len(buf) / 2

	return &Engine{
		opts:      o,
		submitter: o.submitter,
		reporter:  o.reporter,
		scratch:   WrapScratch(buf[:half:half]),
		aux:       WrapScratch(buf[half:]),
		bspline:   newBSplineTessellator(o.subdivisions),
	}
}

// Scratch returns the region spline geometry is written to.
func (e *Engine) Scratch() *Scratch { return e.scratch }

// Tessellation returns the configured spline tessellation mode.
func (e *Engine) Tessellation() Tessellation { return e.opts.tessellation }

// Stats returns the engine counters.
func (e *Engine) Stats() Stats { return e.stats }

// SubmitSpline builds the patches of req, triangulates them into scratch
// memory and submits the result as one non-indexed triangle list. It
// returns the number of triangles submitted.
//
// Pending primitives are flushed first, since their memory is about to be
// overwritten. Primitives other than PatchTriangles are ignored. Grids with
// fewer than four control points along an axis produce nothing. A control
// point reference outside req.ControlPoints fails the whole call with an
// *OutOfRangeError before anything is written. Indices given with a Type
// that has no index format fail with ErrIndexFormat.
func (e *Engine) SubmitSpline(req SplineRequest) (int, error) {
	if err := e.submitter.Flush(); err != nil {
		e.stats.Failures++
		return 0, fmt.Errorf("spline: flush: %w", err)
	}
	if req.Primitive != PatchTriangles {
		e.stats.Ignored++
		return 0, nil
	}
	if len(req.Indices) > 0 && req.Type.IndexFormat() == vertex.IndexNone {
		e.stats.Failures++
		return 0, fmt.Errorf("%w: %d index bytes for type %v", ErrIndexFormat, len(req.Indices), req.Type)
	}

	dec, err := vertex.Lookup(req.Type)
	if err != nil {
		e.stats.Failures++
		return 0, fmt.Errorf("spline: %w", err)
	}
	stride := dec.Size()

	grid := Grid{
		ControlPoints: req.ControlPoints,
		Indices:       IndexBuffer{Data: req.Indices, Format: req.Type.IndexFormat()},
		CountU:        req.CountU,
		CountV:        req.CountV,
		OpenU:         req.OpenU,
		OpenV:         req.OpenV,
	}
	e.patches, err = BuildPatches(e.patches[:0], grid, stride)
	if err != nil {
		e.stats.Failures++
		Logger().Warn("spline: rejected control points", "err", err,
			"countU", req.CountU, "countV", req.CountV, "type", req.Type)
		return 0, err
	}
	defer clear(e.patches) // drop references to caller memory
	if len(e.patches) == 0 {
		return 0, nil
	}
	e.stats.Splines++

	var need int
	if e.opts.tessellation == TessellationBSpline {
		need = e.bspline.bytes(len(e.patches), stride)
	} else {
		need = controlPointBytes(e.patches, stride)
	}
	if need > e.scratch.Cap() {
		e.stats.Failures++
		return 0, fmt.Errorf("%w: %d patches need %d bytes, have %d",
			ErrScratchFull, len(e.patches), need, e.scratch.Cap())
	}

	e.scratch.Reset()
	triangles := 0
	for i := range e.patches {
		var n int
		if e.opts.tessellation == TessellationBSpline {
			n, err = e.bspline.tessellate(&e.patches[i], dec, e.scratch)
		} else {
			n, err = TriangulatePatch(&e.patches[i], stride, e.scratch)
		}
		if err != nil {
			e.scratch.Reset()
			e.stats.Failures++
			return 0, err
		}
		triangles += n
	}

	Logger().Debug("spline: tessellated",
		"patches", len(e.patches), "triangles", triangles,
		"bytes", e.scratch.Len(), "mode", e.opts.tessellation)

	prim := Primitive{
		Vertices: e.scratch.Bytes(),
		Topology: gputypes.PrimitiveTopologyTriangleList,
		Count:    triangles * 3,
		Type:     req.Type.WithoutIndex(),
	}
	if err := e.submit(prim); err != nil {
		return 0, err
	}
	e.stats.Patches += len(e.patches)
	e.stats.Triangles += triangles
	return triangles, nil
}

// DrawBezier draws the 4x4 control point grid of req as a fixed 3x3 tile
// mesh of 18 indexed triangles, without evaluating the curve. When req.Type
// has no texture coordinates, coordinates spanning [0,1] x [0,1] are
// injected first. The engine's diagnostic is reported on the first call.
func (e *Engine) DrawBezier(req BezierRequest) (int, error) {
	if !e.bezierReported {
		e.bezierReported = true
		e.reporter.Report(bezierMessage)
	}
	e.stats.Beziers++

	dec, err := vertex.Lookup(req.Type)
	if err != nil {
		e.stats.Failures++
		return 0, fmt.Errorf("spline: %w", err)
	}
	const points = bezierSide * bezierSide
	if have := len(req.ControlPoints) / dec.Size(); have < points {
		e.stats.Failures++
		return 0, &OutOfRangeError{Point: points - 1, Index: points - 1, Ordinal: points - 1, Count: have}
	}

	prim := Primitive{
		Vertices: req.ControlPoints[:points*dec.Size()],
		Indices:  bezierIndices,
		Topology: gputypes.PrimitiveTopologyTriangleList,
		Count:    len(bezierIndices),
		Type:     req.Type.WithIndex(vertex.IndexUint16),
	}
	if !req.Type.HasTexCoord() {
		out, err := vertex.Lookup(req.Type | vertex.TexCoordFloat)
		if err != nil {
			e.stats.Failures++
			return 0, fmt.Errorf("spline: %w", err)
		}
		e.aux.Reset()
		dst, err := e.aux.Reserve(points * out.Size())
		if err != nil {
			e.stats.Failures++
			return 0, err
		}
		newType, err := dec.InjectUVs(dst, req.ControlPoints, bezierUVs, points)
		if err != nil {
			e.aux.Reset()
			e.stats.Failures++
			return 0, fmt.Errorf("spline: inject uvs: %w", err)
		}
		prim.Vertices = dst
		prim.Type = newType.WithIndex(vertex.IndexUint16)
	}

	// Injected records live in scratch memory that only survives one draw.
	if err := e.submit(prim); err != nil {
		return 0, err
	}
	triangles := prim.Triangles()
	e.stats.Triangles += triangles
	return triangles, nil
}

// submit hands prim to the submitter and flushes.
func (e *Engine) submit(prim Primitive) error {
	if err := e.submitter.Submit(prim); err != nil {
		e.stats.Failures++
		return fmt.Errorf("spline: submit: %w", err)
	}
	if err := e.submitter.Flush(); err != nil {
		e.stats.Failures++
		return fmt.Errorf("spline: flush: %w", err)
	}
	return nil
}

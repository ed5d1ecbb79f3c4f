// Package spline turns hardware-style curved surface descriptions into
// triangle lists in the caller's own vertex format.
//
// # Overview
//
// A spline surface is a CountU x CountV grid of control points, addressed
// directly or through an 8- or 16-bit index buffer, plus per-axis flags
// declaring whether the surface is open at the start and end of each axis.
// The grid is cut into (CountU-3) x (CountV-3) overlapping 4x4 patches.
// Each patch gets an edge mask from its grid position (see Classify) that
// keeps neighboring patches from drawing their shared seams twice.
//
// # Quick Start
//
//	e := spline.NewEngine(spline.WithSubmitter(sink))
//
//	n, err := e.SubmitSpline(spline.SplineRequest{
//	    ControlPoints: points,
//	    CountU:        6,
//	    CountV:        5,
//	    OpenU:         spline.BoundaryOpen,
//	    OpenV:         spline.BoundaryOpen,
//	    Type:          vertex.Color8888 | vertex.PositionFloat,
//	})
//
// # Vertex Records
//
// Control points are opaque fixed-stride byte records described by a
// vertex.Type. The default tessellation copies whole records and never
// decodes them; only TessellationBSpline and texture coordinate injection
// go through a vertex.Decoder.
//
// # Scratch Memory
//
// Generated geometry is written to a scratch region owned by the Engine
// and submitted as a Primitive that aliases it. The engine flushes its
// Submitter after every draw and before reusing the region, so a
// Submitter must copy or consume a primitive by the time Flush returns.
//
// # Architecture
//
//   - Classify, EdgeMask: boundary classification of one patch
//   - BuildPatches: sliding 4x4 window over the grid, index resolution
//   - TriangulatePatch: control point triangles per 2x2 tile
//   - Engine: SubmitSpline and DrawBezier over a Submitter
//   - vertex: record layouts, decoding, UV injection, index bounds
//   - recording, raster, gpu: Submitter implementations
package spline

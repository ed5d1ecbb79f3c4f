//go:build !nogpu

// Package gpu draws submitted spline primitives with wgpu.
//
// A Sink is a spline.Submitter backed by a hal.Device. Submit decodes the
// raw records of each primitive into the float layout described by
// vertex.Decoder.Layout and expands indexed batches, so the memory of a
// primitive can be reused as soon as Submit returns. Flush uploads the
// pending geometry into vertex buffers. RecordDraws then encodes one draw
// per batch into a render pass owned by the caller.
//
// Render pipelines are built per vertex layout from a small WGSL preview
// shader compiled with naga, and kept in an LRU cache.
//
// Build with -tags nogpu to exclude this package.
//
// Usage:
//
//	sink, err := gpu.NewSinkFromProvider(provider)
//	if err != nil {
//	    return err
//	}
//	defer sink.Destroy()
//	sink.SetViewport(width, height)
//	e := spline.NewEngine(spline.WithSubmitter(sink))
//	// ... SubmitSpline, DrawBezier ...
//	sink.RecordDraws(renderPass)
package gpu

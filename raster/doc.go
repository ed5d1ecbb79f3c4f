// Package raster draws submitted triangle lists as coverage into an
// 8-bit alpha image on the CPU.
//
// A Sink is a spline.Submitter. Submit decodes vertex positions and queues
// triangles; Flush rasterizes the queue with golang.org/x/image/vector.
// Only x and y are used, mapped to device space through an affine matrix.
//
// Importing the package registers the "raster" recording backend:
//
//	import _ "github.com/gogpu/spline/raster"
//
//	b, _ := recording.NewBackend("raster")
//	r.Playback(b)
//	img := b.(recording.ImageBackend).Image()
package raster

package recording

import (
	"image"

	"github.com/gogpu/spline"
)

// Backend consumes a replayed Recording.
//
// Playback calls Begin once, then Submit and Flush in recorded order, then
// End. Primitives passed to Submit are owned by the Recording and must not
// be modified.
type Backend interface {
	spline.Submitter

	// Begin prepares the backend for output of the given size.
	Begin(width, height int) error

	// End finishes the output.
	End() error
}

// ImageBackend is a Backend that produces an image.
type ImageBackend interface {
	Backend

	// Image returns the rendered output. Valid after End.
	Image() image.Image
}

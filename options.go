package spline

// DefaultScratchSize is the scratch region allocated when none is given.
// The first half holds triangulated splines, the second half UV-injected
// fixed grid control points.
const DefaultScratchSize = 4 << 20

// DefaultSubdivisions is the B-spline segment count per patch axis.
const DefaultSubdivisions = 4

// EngineOption configures an Engine during creation.
//
// Example:
//
//	rec := recording.NewRecorder(640, 480)
//	e := spline.NewEngine(
//	    spline.WithSubmitter(rec),
//	    spline.WithTessellation(spline.TessellationBSpline),
//	)
type EngineOption func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	submitter    Submitter
	reporter     Reporter
	scratch      []byte
	scratchSize  int
	tessellation Tessellation
	subdivisions int
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		submitter:    Discard,
		reporter:     nil, // NewLogReporter() in NewEngine
		scratchSize:  DefaultScratchSize,
		tessellation: TessellationControlPoints,
		subdivisions: DefaultSubdivisions,
	}
}

// WithSubmitter sets the consumer of generated primitives.
func WithSubmitter(s Submitter) EngineOption {
	return func(o *engineOptions) {
		if s != nil {
			o.submitter = s
		}
	}
}

// WithReporter sets the sink for user-visible diagnostics.
func WithReporter(r Reporter) EngineOption {
	return func(o *engineOptions) {
		o.reporter = r
	}
}

// WithScratch makes the engine write into buf instead of allocating.
// buf is split in two halves, see DefaultScratchSize.
func WithScratch(buf []byte) EngineOption {
	return func(o *engineOptions) {
		o.scratch = buf
	}
}

// WithScratchSize sets the size of the allocated scratch region.
// Ignored when WithScratch is given.
func WithScratchSize(n int) EngineOption {
	return func(o *engineOptions) {
		if n > 0 {
			o.scratchSize = n
		}
	}
}

// WithTessellation selects the spline tessellation mode.
func WithTessellation(m Tessellation) EngineOption {
	return func(o *engineOptions) {
		o.tessellation = m
	}
}

// WithSubdivisions sets the B-spline segments per patch axis (minimum 1).
func WithSubdivisions(n int) EngineOption {
	return func(o *engineOptions) {
		o.subdivisions = max(n, 1)
	}
}

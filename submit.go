package spline

import (
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/spline/vertex"
)

// Primitive is one batch of geometry handed to a Submitter.
type Primitive struct {
	// Vertices holds raw records of Type. For primitives produced by an
	// Engine it aliases engine scratch memory and is valid until the next
	// Flush.
	Vertices []byte

	// Indices selects records from Vertices; nil for non-indexed batches.
	Indices []uint16

	Topology gputypes.PrimitiveTopology

	// Count is the number of vertices drawn: indices when Indices is set,
	// records otherwise.
	Count int

	// Type describes the records. Its index bits match Indices.
	Type vertex.Type

	BaseVertex int
}

// Indexed reports whether the primitive draws through Indices.
func (p *Primitive) Indexed() bool { return p.Indices != nil }

// Triangles returns the number of triangles a triangle list draws.
func (p *Primitive) Triangles() int { return p.Count / 3 }

// Submitter consumes primitives. Flush forces everything submitted so far
// to be consumed; after Flush returns, the memory of earlier primitives may
// be reused by the caller.
type Submitter interface {
	Submit(p Primitive) error
	Flush() error
}

// Discard is a Submitter that drops everything.
var Discard Submitter = discard{}

type discard struct{}

func (discard) Submit(Primitive) error { return nil }
func (discard) Flush() error           { return nil }

// Reporter receives user-visible diagnostics.
type Reporter interface {
	Report(msg string)
}

// LogReporter writes each distinct message once, at warn level, to the
// package logger. The zero value is ready to use.
type LogReporter struct {
	mu   sync.Mutex
	seen map[string]bool
}

// NewLogReporter creates an empty LogReporter.
func NewLogReporter() *LogReporter {
	return &LogReporter{seen: make(map[string]bool)}
}

// Report logs msg unless it has been reported before.
func (r *LogReporter) Report(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen[msg] {
		return
	}
	if r.seen == nil {
		r.seen = make(map[string]bool)
	}
	r.seen[msg] = true
	Logger().Warn(msg)
}

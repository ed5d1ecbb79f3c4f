package recording

import (
	"fmt"

	"github.com/gogpu/spline"
)

// Recorder captures submitted primitives as commands.
// Use FinishRecording to obtain an immutable Recording that can be
// replayed to different backends.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command
}

var _ spline.Submitter = (*Recorder)(nil)

// NewRecorder creates a Recorder for output of the given dimensions.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:    width,
		height:   height,
		commands: make([]Command, 0, 16),
	}
}

// Submit records a copy of p.
func (r *Recorder) Submit(p spline.Primitive) error {
	if p.Count < 0 {
		return fmt.Errorf("recording: negative count %d", p.Count)
	}
	r.commands = append(r.commands, SubmitCommand{Primitive: clonePrimitive(p)})
	return nil
}

// Flush records a flush boundary.
func (r *Recorder) Flush() error {
	r.commands = append(r.commands, FlushCommand{})
	return nil
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	clear(r.commands)
	r.commands = r.commands[:0]
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int { return len(r.commands) }

// FinishRecording returns an immutable Recording of all recorded commands.
// After calling FinishRecording, the Recorder should not be used again.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{
		width:    r.width,
		height:   r.height,
		commands: r.commands,
	}
}

// Recording is an immutable sequence of recorded submitter calls.
type Recording struct {
	width, height int
	commands      []Command
}

// Width returns the output width the recording was made for.
func (r *Recording) Width() int { return r.width }

// Height returns the output height the recording was made for.
func (r *Recording) Height() int { return r.height }

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command { return r.commands }

// Primitives returns the recorded primitives in submission order.
func (r *Recording) Primitives() []spline.Primitive {
	var prims []spline.Primitive
	for _, cmd := range r.commands {
		if c, ok := cmd.(SubmitCommand); ok {
			prims = append(prims, c.Primitive)
		}
	}
	return prims
}

// Flushes returns the number of recorded flushes.
func (r *Recording) Flushes() int {
	n := 0
	for _, cmd := range r.commands {
		if cmd.Type() == CmdFlush {
			n++
		}
	}
	return n
}

// TriangleCount returns the number of triangles in all recorded
// triangle lists.
func (r *Recording) TriangleCount() int {
	n := 0
	for _, p := range r.Primitives() {
		n += p.Triangles()
	}
	return n
}

// Playback replays the recording to the given backend.
func (r *Recording) Playback(backend Backend) error {
	if err := backend.Begin(r.width, r.height); err != nil {
		return fmt.Errorf("recording: begin: %w", err)
	}
	for i, cmd := range r.commands {
		var err error
		switch c := cmd.(type) {
		case SubmitCommand:
			err = backend.Submit(c.Primitive)
		case FlushCommand:
			err = backend.Flush()
		}
		if err != nil {
			return fmt.Errorf("recording: command %d (%v): %w", i, cmd.Type(), err)
		}
	}
	return backend.End()
}

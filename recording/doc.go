// Package recording captures the primitives an engine submits so they can
// be inspected or replayed later.
//
// A Recorder is a spline.Submitter. Every primitive it receives is deep
// copied, since engine primitives alias scratch memory that is reused after
// the next flush. Flush boundaries are kept as commands, so replaying a
// Recording reproduces the exact Submit/Flush sequence the engine produced.
//
// # Basic Usage
//
//	rec := recording.NewRecorder(640, 480)
//	e := spline.NewEngine(spline.WithSubmitter(rec))
//	e.SubmitSpline(req)
//	r := rec.FinishRecording()
//	fmt.Println(r.TriangleCount())
//
// # Playback to Backends
//
// Backends register themselves by name, following the database/sql driver
// pattern:
//
//	import _ "github.com/gogpu/spline/raster" // registers "raster"
//
//	b, err := recording.NewBackend("raster")
//	if err != nil {
//	    return err
//	}
//	if err := r.Playback(b); err != nil {
//	    return err
//	}
package recording

// Command splinedemo triangulates a wavy control point grid and writes the
// coverage of the result to a PNG file.
package main

import (
	"encoding/binary"
	"flag"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/spline"
	"github.com/gogpu/spline/recording"
	"github.com/gogpu/spline/vertex"

	_ "github.com/gogpu/spline/raster" // registers the "raster" backend
)

const (
	demoType   = vertex.Color8888 | vertex.PositionFloat
	demoStride = 16
)

type coverageBackend interface {
	recording.ImageBackend
	Coverage() float64
}

func main() {
	var (
		width   = flag.Int("width", 512, "image width")
		height  = flag.Int("height", 512, "image height")
		grid    = flag.Int("grid", 8, "control points per side (at least 4)")
		open    = flag.Bool("open", true, "treat every grid edge as open")
		mode    = flag.String("mode", "points", "tessellation: points or bspline")
		bezier  = flag.Bool("bezier", false, "draw the top-left 4x4 control points as a fixed bezier grid instead")
		output  = flag.String("output", "spline.png", "output file")
		verbose = flag.Bool("v", false, "log engine activity")
	)
	flag.Parse()

	if *verbose {
		spline.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	tess, ok := spline.ParseTessellation(*mode)
	if !ok {
		log.Fatalf("unknown mode %q", *mode)
	}

	n := max(*grid, 4)
	cps := waveGrid(n, float32(*width), float32(*height))

	rec := recording.NewRecorder(*width, *height)
	e := spline.NewEngine(
		spline.WithSubmitter(rec),
		spline.WithTessellation(tess),
	)

	var err error
	if *bezier {
		_, err = e.DrawBezier(spline.BezierRequest{ControlPoints: block4x4(cps, n), Type: demoType})
	} else {
		boundary := spline.BoundaryClosed
		if *open {
			boundary = spline.BoundaryOpen
		}
		_, err = e.SubmitSpline(spline.SplineRequest{
			ControlPoints: cps,
			CountU:        n,
			CountV:        n,
			OpenU:         boundary,
			OpenV:         boundary,
			Type:          demoType,
		})
	}
	if err != nil {
		log.Fatalf("Failed to triangulate: %v", err)
	}

	r := rec.FinishRecording()
	b, err := recording.NewBackend("raster")
	if err != nil {
		log.Fatalf("Failed to create backend: %v", err)
	}
	if err := r.Playback(b); err != nil {
		log.Fatalf("Failed to rasterize: %v", err)
	}
	sink, ok := b.(coverageBackend)
	if !ok {
		log.Fatalf("backend %T does not report coverage", b)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if err := png.Encode(f, sink.Image()); err != nil {
		_ = f.Close()
		log.Fatalf("Failed to save: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	st := e.Stats()
	log.Printf("%d patches, %d triangles, %.1f%% coverage; saved to %s (%dx%d)\n",
		st.Patches, r.TriangleCount(), 100*sink.Coverage(), *output, *width, *height)
}

// waveGrid lays out n*n control points over a w x h image, displaced by a
// sine wave.
func waveGrid(n int, w, h float32) []byte {
	const stride = demoStride
	buf := make([]byte, n*n*stride)
	margin := w / 10
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			u := float32(i) / float32(n-1)
			v := float32(j) / float32(n-1)
			x := margin + u*(w-2*margin)
			y := margin + v*(h-2*margin) + h/16*float32(math.Sin(float64(u)*2*math.Pi))

			rec := buf[(j*n+i)*stride:]
			rec[0], rec[1], rec[2], rec[3] = byte(255*u), byte(255*v), 0x80, 0xFF
			binary.LittleEndian.PutUint32(rec[4:], math.Float32bits(x))
			binary.LittleEndian.PutUint32(rec[8:], math.Float32bits(y))
			binary.LittleEndian.PutUint32(rec[12:], math.Float32bits(0))
		}
	}
	return buf
}

// block4x4 copies the top-left 4x4 control points of an n*n grid.
func block4x4(cps []byte, n int) []byte {
	const row = 4 * demoStride
	buf := make([]byte, 0, 4*row)
	for j := 0; j < 4; j++ {
		off := j * n * demoStride
		buf = append(buf, cps[off:off+row]...)
	}
	return buf
}

package spline_test

import (
	"fmt"

	"github.com/gogpu/spline"
	"github.com/gogpu/spline/recording"
)

func ExampleNewEngine() {
	rec := recording.NewRecorder(640, 480)
	e := spline.NewEngine(
		spline.WithSubmitter(rec),
		spline.WithTessellation(spline.TessellationBSpline),
	)
	fmt.Println(e.Stats().Splines, rec.Len())
	// Output: 0 0
}

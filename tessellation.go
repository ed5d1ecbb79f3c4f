package spline

// Tessellation selects how SubmitSpline turns patches into triangles.
type Tessellation int

const (
	// TessellationControlPoints draws the control points themselves: four
	// triangles per tile, no interpolation. Output is byte-for-byte the
	// control point records. This is the default.
	TessellationControlPoints Tessellation = iota

	// TessellationBSpline evaluates each patch as a uniform cubic B-spline
	// surface with the configured number of segments per axis. Every
	// vertex component is interpolated. Edge openness does not change
	// the output: neighboring patches meet on shared boundary curves.
	TessellationBSpline
)

// String returns the tessellation mode name.
func (m Tessellation) String() string {
	switch m {
	case TessellationControlPoints:
		return "ControlPoints"
	case TessellationBSpline:
		return "BSpline"
	default:
		return "Unknown"
	}
}

// ParseTessellation maps "points" and "bspline" to a mode.
func ParseTessellation(s string) (Tessellation, bool) {
	switch s {
	case "points", "ControlPoints":
		return TessellationControlPoints, true
	case "bspline", "BSpline":
		return TessellationBSpline, true
	default:
		return TessellationControlPoints, false
	}
}

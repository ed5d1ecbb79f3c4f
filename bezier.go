package spline

// bezierSide is the number of control points per side of a fixed grid.
const bezierSide = 4

// bezierIndices is the fixed 3x3 tile mesh over a 4x4 grid: two triangles
// per tile, split along the same diagonal.
var bezierIndices = buildBezierIndices()

// bezierUVs spans [0,1] x [0,1] over the 4x4 grid.
var bezierUVs = buildBezierUVs()

func buildBezierIndices() []uint16 {
	idx := make([]uint16, 0, 3*3*6)
	for y := uint16(0); y < bezierSide-1; y++ {
		for x := uint16(0); x < bezierSide-1; x++ {
			idx = append(idx,
				y*bezierSide+x,
				y*bezierSide+x+1,
				(y+1)*bezierSide+x+1,
				(y+1)*bezierSide+x+1,
				(y+1)*bezierSide+x,
				y*bezierSide+x,
			)
		}
	}
	return idx
}

func buildBezierUVs() []float32 {
	uv := make([]float32, 0, bezierSide*bezierSide*2)
	for y := 0; y < bezierSide; y++ {
		for x := 0; x < bezierSide; x++ {
			uv = append(uv, float32(x)/3.0, float32(y)/3.0)
		}
	}
	return uv
}

// BezierIndices returns a copy of the 54 indices of the fixed grid mesh.
func BezierIndices() []uint16 {
	return append([]uint16(nil), bezierIndices...)
}

// BezierUVs returns a copy of the synthetic texture coordinates of the fixed
// grid, one (u, v) pair per control point in row-major order.
func BezierUVs() []float32 {
	return append([]float32(nil), bezierUVs...)
}

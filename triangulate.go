package spline

// trianglesPerTile is the number of triangles TriangulatePatch emits for
// each 2x2 tile: both windings of both diagonal splits.
const trianglesPerTile = 4

// TriangulatePatch copies the control points of every tile in the patch's
// tile range into s as a triangle list and returns the number of triangles.
//
// No interpolation takes place: each tile with corners v0 = p, v1 = p+1,
// v2 = p+4, v3 = p+5 becomes the triangles (v0,v1,v2), (v2,v1,v0),
// (v2,v1,v3) and (v3,v1,v2), so it stays visible with either front face
// convention. Records are copied whole, stride bytes at a time.
func TriangulatePatch(p *Patch, stride int, s *Scratch) (int, error) {
	if stride <= 0 {
		return 0, ErrInvalidStride
	}
	tiles := p.Edges.Tiles()
	out, err := s.Reserve(tiles * trianglesPerTile * 3 * stride)
	if err != nil {
		return 0, err
	}

	minU, maxU, minV, maxV := p.Edges.TileRange()
	o := 0
	emit := func(a, b, c []byte) {
		o += copy(out[o:], a)
		o += copy(out[o:], b)
		o += copy(out[o:], c)
	}
	for tileU := minU; tileU < maxU; tileU++ {
		for tileV := minV; tileV < maxV; tileV++ {
			pi := tileU + tileV*4
			v0 := p.Points[pi]
			v1 := p.Points[pi+1]
			v2 := p.Points[pi+4]
			v3 := p.Points[pi+5]

			emit(v0, v1, v2)
			emit(v2, v1, v0)
			emit(v2, v1, v3)
			emit(v3, v1, v2)
		}
	}
	return tiles * trianglesPerTile, nil
}

// controlPointBytes returns the scratch space TriangulatePatch needs for patches.
func controlPointBytes(patches []Patch, stride int) int {
	n := 0
	for i := range patches {
		n += patches[i].Edges.Tiles() * trianglesPerTile * 3 * stride
	}
	return n
}

package spline

import "strings"

// EdgeMask records which edges of a patch are open surface boundaries.
// A closed edge is a seam shared with the neighboring patch.
type EdgeMask uint8

const (
	StartOpenU EdgeMask = 1 << iota
	EndOpenU
	StartOpenV
	EndOpenV
)

// AllOpen has every edge open.
const AllOpen = StartOpenU | EndOpenU | StartOpenV | EndOpenV

// Has reports whether every edge in e is open in m.
func (m EdgeMask) Has(e EdgeMask) bool { return m&e == e }

// String lists the open edges, e.g. "start-u|end-v", or "closed".
func (m EdgeMask) String() string {
	var parts []string
	for _, e := range []struct {
		bit  EdgeMask
		name string
	}{
		{StartOpenU, "start-u"}, {EndOpenU, "end-u"}, {StartOpenV, "start-v"}, {EndOpenV, "end-v"},
	} {
		if m&e.bit != 0 {
			parts = append(parts, e.name)
		}
	}
	if len(parts) == 0 {
		return "closed"
	}
	return strings.Join(parts, "|")
}

// TileRange returns the half-open tile ranges [minU, maxU) and [minV, maxV)
// of the 3x3 tile set a patch contributes. A closed start edge drops the
// first tile row or column, a closed end edge the last one.
func (m EdgeMask) TileRange() (minU, maxU, minV, maxV int) {
	minU, maxU, minV, maxV = 1, 2, 1, 2
	if m&StartOpenU != 0 {
		minU = 0
	}
	if m&EndOpenU != 0 {
		maxU = 3
	}
	if m&StartOpenV != 0 {
		minV = 0
	}
	if m&EndOpenV != 0 {
		maxV = 3
	}
	return minU, maxU, minV, maxV
}

// Tiles returns the number of tiles TileRange covers.
func (m EdgeMask) Tiles() int {
	minU, maxU, minV, maxV := m.TileRange()
	return (maxU - minU) * (maxV - minV)
}

// Boundary is the declared topology of one grid axis.
type Boundary struct {
	Start bool // the first patch's start edge is open
	End   bool // the last patch's end edge is open
}

var (
	// BoundaryOpen opens both ends of an axis.
	BoundaryOpen = Boundary{Start: true, End: true}
	// BoundaryClosed wraps an axis: no edge along it is open.
	BoundaryClosed = Boundary{}
)

// BoundaryFromBits decodes the two-bit hardware encoding: bit 0 opens the
// start, bit 1 the end.
func BoundaryFromBits(bits int) Boundary {
	return Boundary{Start: bits&1 != 0, End: bits&2 != 0}
}

// Classify returns the edge mask of the patch at (patchU, patchV) in a grid
// of numU x numV patches. A start edge is open only on the first patch of an
// axis declared open at its start, an end edge only on the last patch of an
// axis declared open at its end.
func Classify(patchU, patchV, numU, numV int, openU, openV Boundary) EdgeMask {
	var m EdgeMask
	if patchU == 0 && openU.Start {
		m |= StartOpenU
	}
	if patchU == numU-1 && openU.End {
		m |= EndOpenU
	}
	if patchV == 0 && openV.Start {
		m |= StartOpenV
	}
	if patchV == numV-1 && openV.End {
		m |= EndOpenV
	}
	return m
}

// Package vertex describes packed hardware vertex records and converts them
// between their raw byte layout and the float layout used for drawing.
//
// A vertex Type is a 32-bit descriptor. Each attribute occupies a small bit
// field selecting its component encoding; records store the enabled
// attributes in a fixed order (weights, texcoord, color, normal, position),
// each aligned to its component size.
package vertex

import (
	"fmt"
	"strings"
)

// Type is a packed vertex type descriptor.
type Type uint32

// Texture coordinate formats (2 components).
const (
	TexCoord8     Type = 1 << 0
	TexCoord16    Type = 2 << 0
	TexCoordFloat Type = 3 << 0
	TexCoordMask  Type = 3 << 0
)

// Color formats (4 components, packed).
const (
	Color565  Type = 4 << 2
	Color5551 Type = 5 << 2
	Color4444 Type = 6 << 2
	Color8888 Type = 7 << 2
	ColorMask Type = 7 << 2
)

// Normal formats (3 components).
const (
	Normal8     Type = 1 << 5
	Normal16    Type = 2 << 5
	NormalFloat Type = 3 << 5
	NormalMask  Type = 3 << 5
)

// Position formats (3 components).
const (
	Position8     Type = 1 << 7
	Position16    Type = 2 << 7
	PositionFloat Type = 3 << 7
	PositionMask  Type = 3 << 7
)

// Skinning weight formats (WeightCount components).
const (
	Weight8     Type = 1 << 9
	Weight16    Type = 2 << 9
	WeightFloat Type = 3 << 9
	WeightMask  Type = 3 << 9
)

// Index formats.
const (
	Index8    Type = 1 << 11
	Index16   Type = 2 << 11
	IndexMask Type = 3 << 11
)

const (
	weightCountShift = 14
	morphCountShift  = 18

	WeightCountMask Type = 7 << weightCountShift
	MorphCountMask  Type = 7 << morphCountShift

	// Through marks pre-transformed screen-space vertices. Integer
	// components are taken as-is instead of being normalized.
	Through Type = 1 << 23
)

// WeightCount returns the descriptor bits for n skinning weights (1..8).
func WeightCount(n int) Type {
	if n < 1 {
		n = 1
	}
	if n > 8 {
		n = 8
	}
	return Type(n-1) << weightCountShift
}

// Weights returns the number of skinning weights, 0 if weights are disabled.
func (t Type) Weights() int {
	if t&WeightMask == 0 {
		return 0
	}
	return int((t&WeightCountMask)>>weightCountShift) + 1
}

// Morphs returns the number of morph targets stored per record.
func (t Type) Morphs() int {
	return int((t&MorphCountMask)>>morphCountShift) + 1
}

// HasTexCoord reports whether records carry texture coordinates.
func (t Type) HasTexCoord() bool { return t&TexCoordMask != 0 }

// HasPosition reports whether records carry a position.
func (t Type) HasPosition() bool { return t&PositionMask != 0 }

// IsThrough reports whether the type is in through (screen space) mode.
func (t Type) IsThrough() bool { return t&Through != 0 }

// IndexFormat returns the width of the indices accompanying this type.
func (t Type) IndexFormat() IndexFormat {
	switch t & IndexMask {
	case Index8:
		return IndexUint8
	case Index16:
		return IndexUint16
	default:
		return IndexNone
	}
}

// WithoutIndex returns t with its index format cleared.
func (t Type) WithoutIndex() Type { return t &^ IndexMask }

// WithIndex returns t with its index format replaced by f.
func (t Type) WithIndex(f IndexFormat) Type {
	t = t.WithoutIndex()
	switch f {
	case IndexUint8:
		t |= Index8
	case IndexUint16:
		t |= Index16
	}
	return t
}

// String returns a compact description such as "tc:f32 col:8888 pos:s16 idx:u16".
func (t Type) String() string {
	var parts []string
	if w := t.Weights(); w > 0 {
		parts = append(parts, fmt.Sprintf("w:%s*%d", formatName((t&WeightMask)>>9, "u"), w))
	}
	if f := (t & TexCoordMask); f != 0 {
		parts = append(parts, "tc:"+formatName(f, "u"))
	}
	switch t & ColorMask {
	case Color565:
		parts = append(parts, "col:565")
	case Color5551:
		parts = append(parts, "col:5551")
	case Color4444:
		parts = append(parts, "col:4444")
	case Color8888:
		parts = append(parts, "col:8888")
	}
	if f := (t & NormalMask) >> 5; f != 0 {
		parts = append(parts, "nrm:"+formatName(f, "s"))
	}
	if f := (t & PositionMask) >> 7; f != 0 {
		parts = append(parts, "pos:"+formatName(f, "s"))
	}
	if f := t.IndexFormat(); f != IndexNone {
		parts = append(parts, "idx:"+f.String())
	}
	if t.IsThrough() {
		parts = append(parts, "through")
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " ")
}

func formatName(f Type, sign string) string {
	switch f {
	case 1:
		return sign + "8"
	case 2:
		return sign + "16"
	case 3:
		return "f32"
	default:
		return "?"
	}
}

// IndexFormat is the element width of an index buffer.
type IndexFormat int

const (
	// IndexNone means control points are addressed linearly.
	IndexNone IndexFormat = iota
	// IndexUint8 is one byte per index.
	IndexUint8
	// IndexUint16 is two little-endian bytes per index.
	IndexUint16
)

// Size returns the byte width of one index, 0 for IndexNone.
func (f IndexFormat) Size() int {
	switch f {
	case IndexUint8:
		return 1
	case IndexUint16:
		return 2
	default:
		return 0
	}
}

// String returns the index format name.
func (f IndexFormat) String() string {
	switch f {
	case IndexNone:
		return "none"
	case IndexUint8:
		return "u8"
	case IndexUint16:
		return "u16"
	default:
		return fmt.Sprintf("IndexFormat(%d)", int(f))
	}
}

package vertex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
)

var (
	// ErrUnsupportedType is returned for descriptors the decoder cannot lay out.
	ErrUnsupportedType = errors.New("vertex: unsupported vertex type")

	// ErrShortBuffer is returned when a source or destination buffer is too
	// small for the requested record count.
	ErrShortBuffer = errors.New("vertex: buffer too short")
)

// Attribute identifies one field of a vertex record.
type Attribute int

const (
	AttrWeights Attribute = iota
	AttrTexCoord
	AttrColor
	AttrNormal
	AttrPosition
)

// String returns the attribute name.
func (a Attribute) String() string {
	switch a {
	case AttrWeights:
		return "weights"
	case AttrTexCoord:
		return "texcoord"
	case AttrColor:
		return "color"
	case AttrNormal:
		return "normal"
	case AttrPosition:
		return "position"
	default:
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
}

// Shader locations of the decoded layout. Weights beyond the fourth go to
// locationWeights+1.
const (
	locationPosition = 0
	locationTexCoord = 1
	locationColor    = 2
	locationNormal   = 3
	locationWeights  = 4
)

// field is one attribute of a raw record.
type field struct {
	attr   Attribute
	enc    Type // 1 = 8 bit, 2 = 16 bit, 3 = float; color keeps its Color* value
	count  int  // components
	offset int  // byte offset in the raw record
	size   int  // byte size in the raw record
	dec    int  // byte offset in the decoded record
	scale  float32
	signed bool
}

// Decoder converts records of one vertex Type.
// A Decoder is immutable after creation and safe for concurrent use.
type Decoder struct {
	typ       Type
	size      int
	fields    []field
	comps     int
	decStride int
	layout    gputypes.VertexBufferLayout
}

// NewDecoder computes the record layout of t. The index bits of t are ignored.
func NewDecoder(t Type) (*Decoder, error) {
	if t.Morphs() > 1 {
		return nil, fmt.Errorf("%w: %d morph targets", ErrUnsupportedType, t.Morphs())
	}
	if c := t & ColorMask; c != 0 && c < Color565 {
		return nil, fmt.Errorf("%w: reserved color format %d", ErrUnsupportedType, c>>2)
	}

	d := &Decoder{typ: t}
	through := t.IsThrough()
	if w := t.Weights(); w > 0 {
		d.add(AttrWeights, (t&WeightMask)>>9, w, false, false)
	}
	if enc := t & TexCoordMask; enc != 0 {
		d.add(AttrTexCoord, enc, 2, false, through)
	}
	if c := t & ColorMask; c != 0 {
		d.add(AttrColor, c, 4, false, false)
	}
	if enc := (t & NormalMask) >> 5; enc != 0 {
		d.add(AttrNormal, enc, 3, true, false)
	}
	if enc := (t & PositionMask) >> 7; enc != 0 {
		d.add(AttrPosition, enc, 3, true, through)
	}
	if len(d.fields) == 0 {
		return nil, fmt.Errorf("%w: no attributes", ErrUnsupportedType)
	}

	d.layoutRaw()
	d.layoutDecoded()
	return d, nil
}

func (d *Decoder) add(attr Attribute, enc Type, count int, signed, raw bool) {
	f := field{attr: attr, enc: enc, count: count, signed: signed, scale: 1}
	switch {
	case attr == AttrColor:
		if enc == Color8888 {
			f.size = 4
		} else {
			f.size = 2
		}
	case enc == 1:
		f.size = count
		if !raw {
			f.scale = 1.0 / 128
		}
	case enc == 2:
		f.size = 2 * count
		if !raw {
			f.scale = 1.0 / 32768
		}
	default:
		f.size = 4 * count
	}
	d.fields = append(d.fields, f)
	d.comps += count
}

// layoutRaw aligns every field to its component size and the record to the
// largest alignment.
func (d *Decoder) layoutRaw() {
	offset, maxAlign := 0, 1
	for i := range d.fields {
		f := &d.fields[i]
		align := f.align()
		offset = alignUp(offset, align)
		f.offset = offset
		offset += f.size
		maxAlign = max(maxAlign, align)
	}
	d.size = alignUp(offset, maxAlign)
}

func (f *field) align() int {
	switch {
	case f.attr == AttrColor:
		return f.size
	case f.enc == 1:
		return 1
	case f.enc == 2:
		return 2
	default:
		return 4
	}
}

func (d *Decoder) layoutDecoded() {
	var attrs []gputypes.VertexAttribute
	offset := 0
	for i := range d.fields {
		f := &d.fields[i]
		f.dec = offset
		switch f.attr {
		case AttrColor:
			attrs = append(attrs, gputypes.VertexAttribute{
				Format: gputypes.VertexFormatUnorm8x4, Offset: uint64(offset), ShaderLocation: locationColor,
			})
			offset += 4
		case AttrWeights:
			first := min(f.count, 4)
			attrs = append(attrs, gputypes.VertexAttribute{
				Format: floatFormat(first), Offset: uint64(offset), ShaderLocation: locationWeights,
			})
			if rest := f.count - first; rest > 0 {
				attrs = append(attrs, gputypes.VertexAttribute{
					Format: floatFormat(rest), Offset: uint64(offset + 16), ShaderLocation: locationWeights + 1,
				})
			}
			offset += 4 * f.count
		default:
			attrs = append(attrs, gputypes.VertexAttribute{
				Format: floatFormat(f.count), Offset: uint64(offset), ShaderLocation: attrLocation(f.attr),
			})
			offset += 4 * f.count
		}
	}
	d.decStride = offset
	d.layout = gputypes.VertexBufferLayout{
		ArrayStride: uint64(offset),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

func attrLocation(a Attribute) uint32 {
	switch a {
	case AttrTexCoord:
		return locationTexCoord
	case AttrNormal:
		return locationNormal
	default:
		return locationPosition
	}
}

func floatFormat(n int) gputypes.VertexFormat {
	switch n {
	case 1:
		return gputypes.VertexFormatFloat32
	case 2:
		return gputypes.VertexFormatFloat32x2
	case 3:
		return gputypes.VertexFormatFloat32x3
	default:
		return gputypes.VertexFormatFloat32x4
	}
}

func alignUp(n, a int) int {
	return (n + a - 1) / a * a
}

// Type returns the descriptor this decoder was built for.
func (d *Decoder) Type() Type { return d.typ }

// Size returns the byte size of one raw record.
func (d *Decoder) Size() int { return d.size }

// NumComponents returns the number of float components ReadComponents yields.
func (d *Decoder) NumComponents() int { return d.comps }

// DecodedStride returns the byte size of one decoded record.
func (d *Decoder) DecodedStride() int { return d.decStride }

// Layout describes the decoded records written by Decode.
// Position is at shader location 0, texcoord 1, color 2, normal 3 and
// weights 4 (and 5 for more than four weights).
func (d *Decoder) Layout() gputypes.VertexBufferLayout { return d.layout }

// Offset returns the raw byte offset of attribute a.
func (d *Decoder) Offset(a Attribute) (int, bool) {
	for _, f := range d.fields {
		if f.attr == a {
			return f.offset, true
		}
	}
	return 0, false
}

// Decode converts count raw records from src into the decoded layout in dst.
func (d *Decoder) Decode(dst, src []byte, count int) error {
	if len(src) < count*d.size {
		return fmt.Errorf("%w: src holds %d bytes, need %d", ErrShortBuffer, len(src), count*d.size)
	}
	if len(dst) < count*d.decStride {
		return fmt.Errorf("%w: dst holds %d bytes, need %d", ErrShortBuffer, len(dst), count*d.decStride)
	}

	var comps [8]float32
	for i := 0; i < count; i++ {
		rec := src[i*d.size : (i+1)*d.size]
		out := dst[i*d.decStride : (i+1)*d.decStride]
		for _, f := range d.fields {
			c := f.read(comps[:0], rec)
			o := out[f.dec:]
			if f.attr == AttrColor {
				for j, v := range c {
					o[j] = unorm8(v)
				}
				continue
			}
			for j, v := range c {
				binary.LittleEndian.PutUint32(o[4*j:], math.Float32bits(v))
			}
		}
	}
	return nil
}

// ReadComponents appends every component of rec to dst, field by field in
// record order. Colors yield four values in [0, 1].
func (d *Decoder) ReadComponents(dst []float32, rec []byte) []float32 {
	for _, f := range d.fields {
		dst = f.read(dst, rec)
	}
	return dst
}

// WriteComponents stores comps, laid out as ReadComponents returns them,
// into rec. Integer encodings are rounded and clamped.
func (d *Decoder) WriteComponents(rec []byte, comps []float32) {
	for _, f := range d.fields {
		f.write(rec, comps[:f.count])
		comps = comps[f.count:]
	}
}

// Position returns the position of rec in its decoded scale.
func (d *Decoder) Position(rec []byte) (x, y, z float32, ok bool) {
	for _, f := range d.fields {
		if f.attr != AttrPosition {
			continue
		}
		var buf [3]float32
		p := f.read(buf[:0], rec)
		return p[0], p[1], p[2], true
	}
	return 0, 0, 0, false
}

func (f *field) read(dst []float32, rec []byte) []float32 {
	b := rec[f.offset:]
	if f.attr == AttrColor {
		return readColor(dst, f.enc, b)
	}
	for j := 0; j < f.count; j++ {
		var v float32
		switch f.enc {
		case 1:
			if f.signed {
				v = float32(int8(b[j]))
			} else {
				v = float32(b[j])
			}
		case 2:
			u := binary.LittleEndian.Uint16(b[2*j:])
			if f.signed {
				v = float32(int16(u))
			} else {
				v = float32(u)
			}
		default:
			v = math.Float32frombits(binary.LittleEndian.Uint32(b[4*j:]))
		}
		dst = append(dst, v*f.scale)
	}
	return dst
}

func (f *field) write(rec []byte, comps []float32) {
	b := rec[f.offset:]
	if f.attr == AttrColor {
		writeColor(b, f.enc, comps)
		return
	}
	for j, v := range comps {
		switch f.enc {
		case 1:
			if f.signed {
				b[j] = byte(int8(clampRound(v/f.scale, math.MinInt8, math.MaxInt8)))
			} else {
				b[j] = byte(clampRound(v/f.scale, 0, math.MaxUint8))
			}
		case 2:
			if f.signed {
				binary.LittleEndian.PutUint16(b[2*j:], uint16(int16(clampRound(v/f.scale, math.MinInt16, math.MaxInt16))))
			} else {
				binary.LittleEndian.PutUint16(b[2*j:], uint16(clampRound(v/f.scale, 0, math.MaxUint16)))
			}
		default:
			binary.LittleEndian.PutUint32(b[4*j:], math.Float32bits(v))
		}
	}
}

func readColor(dst []float32, enc Type, b []byte) []float32 {
	switch enc {
	case Color8888:
		return append(dst,
			float32(b[0])/255, float32(b[1])/255, float32(b[2])/255, float32(b[3])/255)
	case Color565:
		v := binary.LittleEndian.Uint16(b)
		return append(dst,
			float32(v&0x1f)/31, float32((v>>5)&0x3f)/63, float32((v>>11)&0x1f)/31, 1)
	case Color5551:
		v := binary.LittleEndian.Uint16(b)
		return append(dst,
			float32(v&0x1f)/31, float32((v>>5)&0x1f)/31, float32((v>>10)&0x1f)/31, float32(v>>15))
	default: // Color4444
		v := binary.LittleEndian.Uint16(b)
		return append(dst,
			float32(v&0xf)/15, float32((v>>4)&0xf)/15, float32((v>>8)&0xf)/15, float32(v>>12)/15)
	}
}

func writeColor(b []byte, enc Type, c []float32) {
	q := func(v float32, maxv int) uint16 {
		return uint16(clampRound(v*float32(maxv), 0, float64(maxv)))
	}
	switch enc {
	case Color8888:
		b[0], b[1], b[2], b[3] = unorm8(c[0]), unorm8(c[1]), unorm8(c[2]), unorm8(c[3])
	case Color565:
		binary.LittleEndian.PutUint16(b, q(c[0], 31)|q(c[1], 63)<<5|q(c[2], 31)<<11)
	case Color5551:
		binary.LittleEndian.PutUint16(b, q(c[0], 31)|q(c[1], 31)<<5|q(c[2], 31)<<10|q(c[3], 1)<<15)
	default:
		binary.LittleEndian.PutUint16(b, q(c[0], 15)|q(c[1], 15)<<4|q(c[2], 15)<<8|q(c[3], 15)<<12)
	}
}

func unorm8(v float32) byte {
	return byte(clampRound(v*255, 0, 255))
}

func clampRound(v float32, lo, hi float64) int64 {
	r := math.Round(float64(v))
	if r < lo {
		r = lo
	}
	if r > hi {
		r = hi
	}
	return int64(r)
}

package vertex

import (
	"encoding/binary"
	"fmt"
	"math"
)

// InjectUVs writes count records to dst that carry every attribute of the
// count records in src plus float texture coordinates taken pairwise from
// uvs. Existing texture coordinates are replaced. It returns the type of the
// records written to dst.
func (d *Decoder) InjectUVs(dst, src []byte, uvs []float32, count int) (Type, error) {
	newType := (d.typ &^ TexCoordMask) | TexCoordFloat
	out, err := Lookup(newType)
	if err != nil {
		return 0, err
	}
	if len(uvs) < 2*count {
		return 0, fmt.Errorf("%w: %d uv values for %d records", ErrShortBuffer, len(uvs), count)
	}
	if len(src) < count*d.size {
		return 0, fmt.Errorf("%w: src holds %d bytes, need %d", ErrShortBuffer, len(src), count*d.size)
	}
	if len(dst) < count*out.size {
		return 0, fmt.Errorf("%w: dst holds %d bytes, need %d", ErrShortBuffer, len(dst), count*out.size)
	}

	for i := 0; i < count; i++ {
		rec := src[i*d.size : (i+1)*d.size]
		o := dst[i*out.size : (i+1)*out.size]
		clear(o)
		for _, f := range out.fields {
			if f.attr == AttrTexCoord {
				binary.LittleEndian.PutUint32(o[f.offset:], math.Float32bits(uvs[2*i]))
				binary.LittleEndian.PutUint32(o[f.offset+4:], math.Float32bits(uvs[2*i+1]))
				continue
			}
			// Every other field keeps its encoding, so it moves byte for byte.
			srcOff, _ := d.Offset(f.attr)
			copy(o[f.offset:f.offset+f.size], rec[srcOff:srcOff+f.size])
		}
	}
	return newType, nil
}

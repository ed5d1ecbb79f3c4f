package spline

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/spline/vertex"
)

// testType is the record layout used by most tests: RGBA8888 color
// followed by a float position, 16 bytes.
const testType = vertex.Color8888 | vertex.PositionFloat

const testStride = 16

// makeControlPoints returns n records of testType. Record i has color
// (i, i>>8, 0xAB, 0xFF) and position (i, -i, 0.5*i).
func makeControlPoints(n int) []byte {
	buf := make([]byte, n*testStride)
	for i := 0; i < n; i++ {
		rec := buf[i*testStride:]
		rec[0], rec[1], rec[2], rec[3] = byte(i), byte(i>>8), 0xAB, 0xFF
		binary.LittleEndian.PutUint32(rec[4:], math.Float32bits(float32(i)))
		binary.LittleEndian.PutUint32(rec[8:], math.Float32bits(float32(-i)))
		binary.LittleEndian.PutUint32(rec[12:], math.Float32bits(0.5*float32(i)))
	}
	return buf
}

// record returns control point i of buf.
func record(buf []byte, i int) []byte {
	return buf[i*testStride : (i+1)*testStride]
}

// captureSubmitter keeps a copy of every primitive and counts flushes.
type captureSubmitter struct {
	prims   []Primitive
	flushes int
	err     error
}

func (c *captureSubmitter) Submit(p Primitive) error {
	if c.err != nil {
		return c.err
	}
	p.Vertices = append([]byte(nil), p.Vertices...)
	if p.Indices != nil {
		p.Indices = append([]uint16(nil), p.Indices...)
	}
	c.prims = append(c.prims, p)
	return nil
}

func (c *captureSubmitter) Flush() error {
	c.flushes++
	return nil
}

// countingReporter counts every Report call without deduplication.
type countingReporter struct {
	msgs []string
}

func (r *countingReporter) Report(msg string) {
	r.msgs = append(r.msgs, msg)
}

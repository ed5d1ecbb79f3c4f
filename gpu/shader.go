//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/naga"
)

// shaderVariant selects the inputs the preview shader reads.
type shaderVariant uint8

const (
	variantPosition shaderVariant = iota // position only, white
	variantColor                         // position and vertex color
)

func (v shaderVariant) String() string {
	if v == variantColor {
		return "color"
	}
	return "position"
}

// shaderSource returns the WGSL preview shader for v. Positions are mapped
// to clip space through the viewport uniform.
func shaderSource(v shaderVariant) string {
	var b strings.Builder
	b.WriteString(`struct Viewport {
    scale: vec2<f32>,
    offset: vec2<f32>,
}

@group(0) @binding(0) var<uniform> viewport: Viewport;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
}

@vertex
fn vs_main(@location(0) pos: vec3<f32>`)
	if v == variantColor {
		b.WriteString(`, @location(2) color: vec4<f32>`)
	}
	b.WriteString(`) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(pos.xy * viewport.scale + viewport.offset, 0.0, 1.0);
`)
	if v == variantColor {
		b.WriteString("    out.color = color;\n")
	} else {
		b.WriteString("    out.color = vec4<f32>(1.0, 1.0, 1.0, 1.0);\n")
	}
	b.WriteString(`    return out;
}

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(input.color.rgb * input.color.a, input.color.a);
}
`)
	return b.String()
}

// compileShader compiles the WGSL source of v to SPIR-V words.
func compileShader(v shaderVariant) ([]uint32, error) {
	spirv, err := naga.Compile(shaderSource(v))
	if err != nil {
		return nil, fmt.Errorf("gpu: compile %v shader: %w", v, err)
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("gpu: compile %v shader: SPIR-V size %d is not a multiple of 4", v, len(spirv))
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return words, nil
}

// viewportSize is the byte size of the viewport uniform.
const viewportSize = 16

// viewportBytes encodes the transform from pixel coordinates in a
// width x height target to clip space, y pointing down.
func viewportBytes(width, height int) []byte {
	sx, sy := float32(0), float32(0)
	if width > 0 {
		sx = 2 / float32(width)
	}
	if height > 0 {
		sy = -2 / float32(height)
	}
	buf := make([]byte, viewportSize)
	for i, v := range [4]float32{sx, sy, -1, 1} {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

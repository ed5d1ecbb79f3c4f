package main

import (
	"bytes"
	"testing"
)

func TestBlock4x4(t *testing.T) {
	const n = 8
	cps := waveGrid(n, 256, 256)
	block := block4x4(cps, n)
	if len(block) != 16*demoStride {
		t.Fatalf("len = %d, want %d", len(block), 16*demoStride)
	}
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			got := block[(j*4+i)*demoStride:][:demoStride]
			want := cps[(j*n+i)*demoStride:][:demoStride]
			if !bytes.Equal(got, want) {
				t.Errorf("point (%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}
}

// Package testutil provides shared fixtures for carving tests: synthetic
// camera matrices and patterned silhouette masks.
package testutil

import (
	"testing"

	"github.com/banshee-data/voxelcarve/internal/camera"
	"github.com/banshee-data/voxelcarve/internal/mask"
)

// OrthoElems returns the 12 row-major elements of a projection matrix with a
// constant homogeneous denominator of 1, mapping (x, y, z) to pixel
// coordinates (sx*x + ox, sy*y + oy). Handy for tests that need every grid
// point to land at a predictable pixel.
func OrthoElems(sx, sy, ox, oy float64) []float64 {
	return []float64{
		sx, 0, 0, ox,
		0, sy, 0, oy,
		0, 0, 0, 1,
	}
}

// OrthoCamera builds a camera.Model from OrthoElems, failing the test on
// construction errors.
func OrthoCamera(t *testing.T, sx, sy, ox, oy float64) *camera.Model {
	t.Helper()
	m, err := camera.New(OrthoElems(sx, sy, ox, oy))
	if err != nil {
		t.Fatalf("build ortho camera: %v", err)
	}
	return m
}

// CheckerMask returns a width×height mask with a checkerboard pattern;
// pixel (x, y) is foreground when x+y is even.
func CheckerMask(t *testing.T, width, height int) *mask.Mask {
	t.Helper()
	bits := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			bits[y*width+x] = (x+y)%2 == 0
		}
	}
	m, err := mask.New(width, height, bits)
	if err != nil {
		t.Fatalf("build checker mask: %v", err)
	}
	return m
}

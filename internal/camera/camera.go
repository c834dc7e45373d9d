// Package camera models calibrated perspective cameras as 3×4 projection
// matrices mapping homogeneous world coordinates to homogeneous image
// coordinates.
package camera

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/voxelcarve/internal/geom"
)

// DefaultEpsilon is the homogeneous-denominator cutoff below which a
// projection is treated as degenerate (point at or behind the camera plane).
const DefaultEpsilon = 1e-12

// Model is one calibrated camera. The projection matrix is fixed at
// construction; Project is a pure function of its input point.
type Model struct {
	m   *mat.Dense // 3×4 projection matrix
	p   [12]float64
	eps float64
}

// New builds a Model from 12 row-major matrix elements.
func New(elems []float64) (*Model, error) {
	if len(elems) != 12 {
		return nil, fmt.Errorf("camera: projection matrix needs 12 elements, got %d", len(elems))
	}
	c := &Model{
		m:   mat.NewDense(3, 4, append([]float64(nil), elems...)),
		eps: DefaultEpsilon,
	}
	// Flatten into a fixed array so Project avoids matrix-vector allocation
	// in the carving hot loop.
	copy(c.p[:], c.m.RawMatrix().Data)
	return c, nil
}

// NewFromDense builds a Model from a 3×4 gonum matrix.
func NewFromDense(m *mat.Dense) (*Model, error) {
	r, ch := m.Dims()
	if r != 3 || ch != 4 {
		return nil, fmt.Errorf("camera: projection matrix must be 3×4, got %d×%d", r, ch)
	}
	return New(append([]float64(nil), m.RawMatrix().Data...))
}

// SetEpsilon overrides the degenerate-projection cutoff. Values <= 0 restore
// the default.
func (c *Model) SetEpsilon(eps float64) {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	c.eps = eps
}

// Matrix returns a copy of the 3×4 projection matrix.
func (c *Model) Matrix() *mat.Dense {
	return mat.DenseCopyOf(c.m)
}

// Project maps the world point p to continuous pixel coordinates (u, v).
// The point is lifted to homogeneous form (x, y, z, 1), multiplied by the
// projection matrix to get (a, b, w), and dehomogenised as u = a/w, v = b/w.
// ok is false when |w| falls below the epsilon cutoff; u and v are then
// meaningless and must not be used.
func (c *Model) Project(pt geom.Point3) (u, v float64, ok bool) {
	p := &c.p
	w := p[8]*pt.X + p[9]*pt.Y + p[10]*pt.Z + p[11]
	if math.Abs(w) < c.eps {
		return 0, 0, false
	}
	a := p[0]*pt.X + p[1]*pt.Y + p[2]*pt.Z + p[3]
	b := p[4]*pt.X + p[5]*pt.Y + p[6]*pt.Z + p[7]
	return a / w, b / w, true
}

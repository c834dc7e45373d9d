// Package mask stores per-view binary silhouettes and answers
// point-in-foreground queries for projected voxel coordinates.
//
// Masks are treated as a supplied oracle: segmentation happens upstream and
// this package only consumes the resulting binary rasters.
package mask

import (
	"fmt"
	"math"
)

// Mask is an immutable height×width binary raster. A set bit marks a
// foreground (object) pixel.
type Mask struct {
	width  int
	height int
	bits   []bool
}

// New builds a Mask from a row-major bit slice of length width*height.
func New(width, height int, bits []bool) (*Mask, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("mask: dimensions %dx%d invalid", width, height)
	}
	if len(bits) != width*height {
		return nil, fmt.Errorf("mask: got %d bits for %dx%d raster", len(bits), width, height)
	}
	return &Mask{width: width, height: height, bits: append([]bool(nil), bits...)}, nil
}

// Uniform returns a width×height mask with every pixel set to fg. Used for
// synthetic silhouettes in tests and calibration runs.
func Uniform(width, height int, fg bool) *Mask {
	m := &Mask{width: width, height: height, bits: make([]bool, width*height)}
	if fg {
		for i := range m.bits {
			m.bits[i] = true
		}
	}
	return m
}

// Width returns the raster width in pixels.
func (m *Mask) Width() int { return m.width }

// Height returns the raster height in pixels.
func (m *Mask) Height() int { return m.height }

// At reports whether the continuous image coordinate (u, v) lands on a
// foreground pixel. Coordinates are rounded to the nearest integer pixel;
// anything mapping outside [0, width) × [0, height) is background, so
// out-of-frame projections never count as occupied.
func (m *Mask) At(u, v float64) bool {
	px := int(math.Round(u))
	py := int(math.Round(v))
	if px < 0 || px >= m.width || py < 0 || py >= m.height {
		return false
	}
	return m.bits[py*m.width+px]
}

// Store holds one Mask per camera view, index-aligned with the camera list.
type Store struct {
	masks []*Mask
}

// NewStore builds a Store over the given view masks.
func NewStore(masks ...*Mask) *Store {
	return &Store{masks: append([]*Mask(nil), masks...)}
}

// Len returns the number of views.
func (s *Store) Len() int { return len(s.masks) }

// IsForeground reports whether (u, v) is a foreground pixel in the given
// view's mask. A view index outside [0, Len()) is a caller bug and panics.
func (s *Store) IsForeground(view int, u, v float64) bool {
	return s.masks[view].At(u, v)
}

// View returns the mask for one view.
func (s *Store) View(view int) *Mask { return s.masks[view] }

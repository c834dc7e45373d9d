// Package geom holds the basic spatial value types shared by the carving
// pipeline: world-space points and axis-aligned bounding boxes.
package geom

import "fmt"

// Point3 is a sample location in world coordinates. Points are plain values
// and never mutated after construction.
type Point3 struct {
	X float64
	Y float64
	Z float64
}

// Bounds is an axis-aligned bounding box in world coordinates. Each axis
// must span a strictly positive range for the box to be usable as a sampling
// region.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// Validate checks that every axis of the box spans a strictly positive range.
func (b Bounds) Validate() error {
	if b.XMin >= b.XMax {
		return fmt.Errorf("x range [%g, %g] is empty or inverted", b.XMin, b.XMax)
	}
	if b.YMin >= b.YMax {
		return fmt.Errorf("y range [%g, %g] is empty or inverted", b.YMin, b.YMax)
	}
	if b.ZMin >= b.ZMax {
		return fmt.Errorf("z range [%g, %g] is empty or inverted", b.ZMin, b.ZMax)
	}
	return nil
}

// Contains reports whether p lies inside the box (inclusive on all faces).
func (b Bounds) Contains(p Point3) bool {
	return p.X >= b.XMin && p.X <= b.XMax &&
		p.Y >= b.YMin && p.Y <= b.YMax &&
		p.Z >= b.ZMin && p.Z <= b.ZMax
}

// Span returns the extent of the box along each axis.
func (b Bounds) Span() (dx, dy, dz float64) {
	return b.XMax - b.XMin, b.YMax - b.YMin, b.ZMax - b.ZMin
}

func (b Bounds) String() string {
	return fmt.Sprintf("x[%g,%g] y[%g,%g] z[%g,%g]",
		b.XMin, b.XMax, b.YMin, b.YMax, b.ZMin, b.ZMax)
}

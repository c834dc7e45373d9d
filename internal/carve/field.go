package carve

import (
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/voxelcarve/internal/geom"
)

// OccupancyField is the finished association of every grid sample with its
// accumulated occupancy count. It is built once after a carve and consumed by
// the exporters; nothing mutates it afterwards.
type OccupancyField struct {
	Bounds     geom.Bounds
	Resolution int
	Views      int // number of views carved; occupancy values lie in [0, Views]

	// Per-axis sample coordinates, each of length Resolution.
	Xs, Ys, Zs []float64

	// Occupancy holds one count per sample in grid order (x fastest).
	Occupancy []int32
}

// Field snapshots the grid into an immutable OccupancyField. views records
// how many camera views contributed to the counters.
func (g *VoxelGrid) Field(views int) *OccupancyField {
	xs, ys, zs := g.AxisSamples()
	return &OccupancyField{
		Bounds:     g.bounds,
		Resolution: g.resolution,
		Views:      views,
		Xs:         xs,
		Ys:         ys,
		Zs:         zs,
		Occupancy:  append([]int32(nil), g.occupancy...),
	}
}

// Len returns the number of samples in the field.
func (f *OccupancyField) Len() int { return len(f.Occupancy) }

// Point reconstructs the world coordinate of sample i from the axis arrays.
func (f *OccupancyField) Point(i int) geom.Point3 {
	n := f.Resolution
	return geom.Point3{
		X: f.Xs[i%n],
		Y: f.Ys[(i/n)%n],
		Z: f.Zs[i/(n*n)],
	}
}

// Filter returns the samples whose occupancy is at least minOccupancy, in
// grid order. It is a pure function of the field.
func (f *OccupancyField) Filter(minOccupancy int) []Entry {
	var out []Entry
	for i, occ := range f.Occupancy {
		if int(occ) >= minOccupancy {
			out = append(out, Entry{Point: f.Point(i), Occupancy: int(occ)})
		}
	}
	return out
}

// FieldStats summarises an occupancy field for run logging and the run
// catalogue.
type FieldStats struct {
	Samples   int
	Views     int
	Mean      float64
	StdDev    float64
	Max       int
	Survivors int // samples meeting the advisory threshold
	Threshold int
}

// Stats computes summary statistics for the field at the given advisory
// threshold.
func (f *OccupancyField) Stats(threshold int) FieldStats {
	vals := make([]float64, len(f.Occupancy))
	s := FieldStats{
		Samples:   len(f.Occupancy),
		Views:     f.Views,
		Threshold: threshold,
	}
	for i, occ := range f.Occupancy {
		vals[i] = float64(occ)
		if int(occ) > s.Max {
			s.Max = int(occ)
		}
		if int(occ) >= threshold {
			s.Survivors++
		}
	}
	if len(vals) > 0 {
		s.Mean = stat.Mean(vals, nil)
		if len(vals) > 1 {
			s.StdDev = stat.StdDev(vals, nil)
		}
	}
	return s
}

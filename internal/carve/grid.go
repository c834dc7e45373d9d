package carve

import (
	"fmt"

	"github.com/banshee-data/voxelcarve/internal/geom"
)

// VoxelGrid is the cubic sample lattice over a world bounding box, plus one
// occupancy counter per sample. The lattice is generated once at construction
// and never resized; only the counters mutate during carving.
//
// Sample order is fixed: z varies slowest, then y, then x, so the flat index
// of sample (ix, iy, iz) is iz*n*n + iy*n + ix. With x fastest this is the
// native point order of a VTK rectilinear grid, which lets the exporter dump
// the counters without reindexing.
type VoxelGrid struct {
	bounds     geom.Bounds
	resolution int

	xs, ys, zs []float64 // per-axis sample coordinates, length = resolution
	points     []geom.Point3
	occupancy  []int32
}

// Entry is one grid sample paired with its accumulated occupancy count.
type Entry struct {
	Point     geom.Point3
	Occupancy int
}

// NewVoxelGrid samples the bounding box into resolution³ points, with
// resolution evenly spaced samples per axis inclusive of both bounds.
// Returns ErrInvalidConfig for a non-positive resolution or a box with any
// empty or inverted axis.
func NewVoxelGrid(bounds geom.Bounds, resolution int) (*VoxelGrid, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("%w: resolution must be >= 1, got %d", ErrInvalidConfig, resolution)
	}
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	g := &VoxelGrid{
		bounds:     bounds,
		resolution: resolution,
		xs:         axisSamples(bounds.XMin, bounds.XMax, resolution),
		ys:         axisSamples(bounds.YMin, bounds.YMax, resolution),
		zs:         axisSamples(bounds.ZMin, bounds.ZMax, resolution),
	}

	n := resolution
	g.points = make([]geom.Point3, 0, n*n*n)
	for iz := 0; iz < n; iz++ {
		for iy := 0; iy < n; iy++ {
			for ix := 0; ix < n; ix++ {
				g.points = append(g.points, geom.Point3{X: g.xs[ix], Y: g.ys[iy], Z: g.zs[iz]})
			}
		}
	}
	g.occupancy = make([]int32, len(g.points))
	return g, nil
}

// axisSamples returns n evenly spaced values covering [min, max] inclusive.
// For n == 1 the single sample sits at min.
func axisSamples(min, max float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = min
		return out
	}
	step := (max - min) / float64(n-1)
	for i := 0; i < n-1; i++ {
		out[i] = min + float64(i)*step
	}
	// Pin the last sample to the exact bound rather than accumulating step error.
	out[n-1] = max
	return out
}

// Len returns the number of grid samples (resolution³).
func (g *VoxelGrid) Len() int { return len(g.points) }

// Resolution returns the per-axis sample count.
func (g *VoxelGrid) Resolution() int { return g.resolution }

// Bounds returns the sampled bounding box.
func (g *VoxelGrid) Bounds() geom.Bounds { return g.bounds }

// Point returns the sample at flat index i.
func (g *VoxelGrid) Point(i int) geom.Point3 { return g.points[i] }

// Occupancy returns the current counter for sample i.
func (g *VoxelGrid) Occupancy(i int) int { return int(g.occupancy[i]) }

// IncrementOccupancy bumps the counter for sample i. The carving engine uses
// the internal slice directly; this entry point exists for external callers
// and checks bounds defensively.
func (g *VoxelGrid) IncrementOccupancy(i int) error {
	if i < 0 || i >= len(g.occupancy) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(g.occupancy))
	}
	g.occupancy[i]++
	return nil
}

// ResetOccupancy zeroes every counter, returning the grid to its
// freshly-constructed state.
func (g *VoxelGrid) ResetOccupancy() {
	for i := range g.occupancy {
		g.occupancy[i] = 0
	}
}

// AxisSamples returns copies of the per-axis coordinate arrays.
func (g *VoxelGrid) AxisSamples() (xs, ys, zs []float64) {
	return append([]float64(nil), g.xs...),
		append([]float64(nil), g.ys...),
		append([]float64(nil), g.zs...)
}

// Export returns a read-only snapshot of every sample with its occupancy
// count, in grid order.
func (g *VoxelGrid) Export() []Entry {
	out := make([]Entry, len(g.points))
	for i, p := range g.points {
		out[i] = Entry{Point: p, Occupancy: int(g.occupancy[i])}
	}
	return out
}

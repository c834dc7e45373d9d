package carve

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/banshee-data/voxelcarve/internal/camera"
	"github.com/banshee-data/voxelcarve/internal/mask"
)

// cancelCheckStride is how many grid samples a worker processes between
// context checks. Coarse on purpose: the per-sample work is a handful of
// multiply-adds and a mask lookup.
const cancelCheckStride = 4096

// Engine runs the carving accumulation: for every grid sample and every view,
// project the sample through the view's camera and bump the sample's counter
// when the projection lands on a foreground mask pixel.
//
// The sample index space is cut into contiguous ranges, one worker per range.
// Each worker writes only its own counters, so no synchronisation is needed
// on the occupancy slice and the result is identical for any worker count.
type Engine struct {
	// Workers is the number of carving goroutines. Zero or negative means
	// runtime.NumCPU().
	Workers int
}

// ViewStats counts projection outcomes for one view across the whole grid.
type ViewStats struct {
	// Projected counts samples with a non-degenerate projection (|w| above
	// the camera epsilon).
	Projected int64
	// Hits counts samples whose projection landed on a foreground pixel.
	Hits int64
}

// Result reports what a carve accumulated.
type Result struct {
	Samples int
	Views   []ViewStats
}

// Carve accumulates occupancy counts into grid. cameras and masks must be
// non-empty and index-aligned; a count mismatch fails with ErrConfigMismatch
// before any work starts. Degenerate and out-of-frame projections contribute
// zero occupancy and are not errors.
//
// Carving a fresh grid twice with the same inputs yields identical counters:
// there is no hidden state and no randomness.
func (e *Engine) Carve(ctx context.Context, grid *VoxelGrid, cameras []*camera.Model, masks *mask.Store) (*Result, error) {
	if grid == nil || grid.Len() == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidConfig)
	}
	if len(cameras) == 0 || masks == nil || masks.Len() == 0 {
		return nil, fmt.Errorf("%w: cameras=%d masks=%d (both must be non-empty)",
			ErrConfigMismatch, len(cameras), storeLen(masks))
	}
	if len(cameras) != masks.Len() {
		return nil, fmt.Errorf("%w: %d cameras vs %d masks (views pair by index)",
			ErrConfigMismatch, len(cameras), masks.Len())
	}

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > grid.Len() {
		workers = grid.Len()
	}

	numViews := len(cameras)
	partials := make([][]ViewStats, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo, hi := indexRange(grid.Len(), workers, w)
		partials[w] = make([]ViewStats, numViews)
		wg.Add(1)
		go func(lo, hi int, stats []ViewStats) {
			defer wg.Done()
			e.carveRange(ctx, grid, cameras, masks, lo, hi, stats)
		}(lo, hi, partials[w])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("carve interrupted: %w", err)
	}

	res := &Result{Samples: grid.Len(), Views: make([]ViewStats, numViews)}
	for _, p := range partials {
		for j := range p {
			res.Views[j].Projected += p[j].Projected
			res.Views[j].Hits += p[j].Hits
		}
	}
	return res, nil
}

// carveRange processes grid samples [lo, hi), writing counters for those
// samples only and accumulating per-view stats into stats.
func (e *Engine) carveRange(ctx context.Context, grid *VoxelGrid, cameras []*camera.Model, masks *mask.Store, lo, hi int, stats []ViewStats) {
	for i := lo; i < hi; i++ {
		if (i-lo)%cancelCheckStride == 0 && ctx.Err() != nil {
			return
		}
		p := grid.points[i]
		for j, cam := range cameras {
			u, v, ok := cam.Project(p)
			if !ok {
				continue
			}
			stats[j].Projected++
			if masks.IsForeground(j, u, v) {
				stats[j].Hits++
				grid.occupancy[i]++
			}
		}
	}
}

// indexRange splits n items into parts contiguous ranges and returns the
// half-open range owned by part w. Earlier ranges absorb the remainder.
func indexRange(n, parts, w int) (lo, hi int) {
	base := n / parts
	rem := n % parts
	lo = w*base + min(w, rem)
	hi = lo + base
	if w < rem {
		hi++
	}
	return lo, hi
}

func storeLen(s *mask.Store) int {
	if s == nil {
		return 0
	}
	return s.Len()
}

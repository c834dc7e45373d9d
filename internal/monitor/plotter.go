// Package monitor renders diagnostic plots of a carved occupancy field:
// an occupancy histogram and a mid-volume slice heatmap. The plots are a
// quick sanity check on carving quality before opening the exported volume
// in ParaView.
package monitor

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/voxelcarve/internal/carve"
)

// Plotter writes diagnostic PNGs for occupancy fields into OutputDir.
type Plotter struct {
	OutputDir string
}

// SaveHistogram renders the distribution of occupancy counts and returns the
// written file path. One bin per possible count keeps the view-agreement
// structure visible.
func (pl *Plotter) SaveHistogram(field *carve.OccupancyField) (string, error) {
	if field == nil || field.Len() == 0 {
		return "", fmt.Errorf("monitor: empty occupancy field")
	}
	if err := os.MkdirAll(pl.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("monitor: create output dir: %w", err)
	}

	vals := make(plotter.Values, field.Len())
	for i, occ := range field.Occupancy {
		vals[i] = float64(occ)
	}

	bins := field.Views + 1
	if bins < 2 {
		bins = 2
	}
	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return "", fmt.Errorf("monitor: build histogram: %w", err)
	}

	p := plot.New()
	p.Title.Text = "Occupancy distribution"
	p.X.Label.Text = "views agreeing"
	p.Y.Label.Text = "samples"
	p.Add(h)

	out := filepath.Join(pl.OutputDir, "occupancy_histogram.png")
	if err := p.Save(6*vg.Inch, 4*vg.Inch, out); err != nil {
		return "", fmt.Errorf("monitor: save histogram: %w", err)
	}
	return out, nil
}

// SaveMidSlice renders the z-midplane of the occupancy volume as a heatmap
// and returns the written file path.
func (pl *Plotter) SaveMidSlice(field *carve.OccupancyField) (string, error) {
	if field == nil || field.Len() == 0 {
		return "", fmt.Errorf("monitor: empty occupancy field")
	}
	if err := os.MkdirAll(pl.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("monitor: create output dir: %w", err)
	}

	hm := plotter.NewHeatMap(&zSlice{field: field, iz: field.Resolution / 2}, palette.Heat(12, 1))

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Occupancy z-midplane (z = %g)", field.Zs[field.Resolution/2])
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(hm)

	out := filepath.Join(pl.OutputDir, "occupancy_midslice.png")
	if err := p.Save(5*vg.Inch, 5*vg.Inch, out); err != nil {
		return "", fmt.Errorf("monitor: save midslice: %w", err)
	}
	return out, nil
}

// zSlice adapts one constant-z plane of the field to plotter.GridXYZ.
type zSlice struct {
	field *carve.OccupancyField
	iz    int
}

func (s *zSlice) Dims() (c, r int) {
	n := s.field.Resolution
	return n, n
}

func (s *zSlice) Z(c, r int) float64 {
	n := s.field.Resolution
	return float64(s.field.Occupancy[s.iz*n*n+r*n+c])
}

func (s *zSlice) X(c int) float64 { return s.field.Xs[c] }

func (s *zSlice) Y(r int) float64 { return s.field.Ys[r] }

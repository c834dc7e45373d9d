// Package config loads run configuration for the carving pipeline. Fields are
// pointers so a partial JSON file only overrides what it names; the Get*
// accessors supply documented defaults for everything else.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/banshee-data/voxelcarve/internal/geom"
)

// RunConfig is the JSON-file configuration for one carve run. The same shape
// is used for defaults files and per-dataset overrides.
type RunConfig struct {
	// Sampling region
	XMin *float64 `json:"x_min,omitempty"`
	XMax *float64 `json:"x_max,omitempty"`
	YMin *float64 `json:"y_min,omitempty"`
	YMax *float64 `json:"y_max,omitempty"`
	ZMin *float64 `json:"z_min,omitempty"`
	ZMax *float64 `json:"z_max,omitempty"`

	// Resolution is the per-axis sample count (grid has Resolution³ points).
	Resolution *int `json:"resolution,omitempty"`

	// Threshold is the advisory minimum occupancy carried into the export.
	Threshold *int `json:"threshold,omitempty"`

	// Workers is the carving goroutine count; 0 means NumCPU.
	Workers *int `json:"workers,omitempty"`

	// Epsilon is the degenerate-projection cutoff on |w|.
	Epsilon *float64 `json:"epsilon,omitempty"`

	// Seed is carried for reproducibility bookkeeping. The carving path is
	// deterministic and never draws from it; it exists so any stochastic
	// pre-processing added around the pipeline shares one explicit seed.
	Seed *int64 `json:"seed,omitempty"`

	// Input/output locations
	CameraFile *string `json:"camera_file,omitempty"`
	MaskDir    *string `json:"mask_dir,omitempty"`
	OutputVTR  *string `json:"output_vtr,omitempty"`
	OutputCSV  *string `json:"output_csv,omitempty"`
	PlotDir    *string `json:"plot_dir,omitempty"`
	DBPath     *string `json:"db_path,omitempty"`
}

// Load reads a RunConfig from a JSON file. Fields omitted from the file keep
// their defaults, so partial configs are safe.
func Load(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &RunConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that any values present are structurally sound. Bounds are
// only cross-checked per axis when both ends are set; full validation happens
// again when the voxel grid is built.
func (c *RunConfig) Validate() error {
	if c.XMin != nil && c.XMax != nil && *c.XMin >= *c.XMax {
		return fmt.Errorf("x_min %g must be < x_max %g", *c.XMin, *c.XMax)
	}
	if c.YMin != nil && c.YMax != nil && *c.YMin >= *c.YMax {
		return fmt.Errorf("y_min %g must be < y_max %g", *c.YMin, *c.YMax)
	}
	if c.ZMin != nil && c.ZMax != nil && *c.ZMin >= *c.ZMax {
		return fmt.Errorf("z_min %g must be < z_max %g", *c.ZMin, *c.ZMax)
	}
	if c.Resolution != nil && *c.Resolution < 1 {
		return fmt.Errorf("resolution must be >= 1, got %d", *c.Resolution)
	}
	if c.Threshold != nil && *c.Threshold < 1 {
		return fmt.Errorf("threshold must be >= 1, got %d", *c.Threshold)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.Epsilon != nil && *c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %g", *c.Epsilon)
	}
	return nil
}

// GetBounds assembles the sampling region, defaulting each axis to [-1, 1].
func (c *RunConfig) GetBounds() geom.Bounds {
	get := func(p *float64, def float64) float64 {
		if p == nil {
			return def
		}
		return *p
	}
	return geom.Bounds{
		XMin: get(c.XMin, -1), XMax: get(c.XMax, 1),
		YMin: get(c.YMin, -1), YMax: get(c.YMax, 1),
		ZMin: get(c.ZMin, -1), ZMax: get(c.ZMax, 1),
	}
}

// GetResolution returns the per-axis sample count or the default.
func (c *RunConfig) GetResolution() int {
	if c.Resolution == nil {
		return 120
	}
	return *c.Resolution
}

// GetThreshold returns the advisory occupancy threshold or the default
// (all views must agree).
func (c *RunConfig) GetThreshold(views int) int {
	if c.Threshold == nil {
		if views < 1 {
			return 1
		}
		return views
	}
	return *c.Threshold
}

// GetWorkers returns the carving goroutine count or NumCPU.
func (c *RunConfig) GetWorkers() int {
	if c.Workers == nil || *c.Workers == 0 {
		return runtime.NumCPU()
	}
	return *c.Workers
}

// GetEpsilon returns the degenerate-projection cutoff or 0 to keep the
// camera package default.
func (c *RunConfig) GetEpsilon() float64 {
	if c.Epsilon == nil {
		return 0
	}
	return *c.Epsilon
}

// GetSeed returns the configured seed or 0.
func (c *RunConfig) GetSeed() int64 {
	if c.Seed == nil {
		return 0
	}
	return *c.Seed
}

// GetString returns *p or empty when unset; helper for the path fields.
func GetString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

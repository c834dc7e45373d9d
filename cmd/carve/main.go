// Command carve reconstructs a 3D occupancy volume from calibrated views of
// an object via silhouette-based voxel carving.
//
// Inputs are an ordered camera matrix file (see internal/camera), a directory
// of binary silhouette images ordered to match, and a sampling configuration.
// The output is a VTK rectilinear grid (.vtr) holding the occupancy scalar
// field; surface extraction happens downstream (e.g. a ParaView contour at
// the advisory threshold). Optional side outputs: a thresholded CSV point
// listing, diagnostic plots, and a row in the run catalogue database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/banshee-data/voxelcarve/internal/camera"
	"github.com/banshee-data/voxelcarve/internal/carve"
	"github.com/banshee-data/voxelcarve/internal/config"
	"github.com/banshee-data/voxelcarve/internal/db"
	"github.com/banshee-data/voxelcarve/internal/geom"
	"github.com/banshee-data/voxelcarve/internal/mask"
	"github.com/banshee-data/voxelcarve/internal/monitor"
	"github.com/banshee-data/voxelcarve/internal/monitoring"
	"github.com/banshee-data/voxelcarve/internal/vtkio"
)

// Options collects the resolved run options after merging the config file
// with command line flags (flags win).
type Options struct {
	CameraFile string
	MaskDir    string
	OutputVTR  string
	OutputCSV  string
	PlotDir    string
	DBPath     string
	Bounds     geom.Bounds
	Resolution int
	Threshold  int // 0 means "all views", resolved once the view count is known
	Workers    int
	Epsilon    float64
	Verbose    bool
}

func main() {
	log.SetPrefix("[carve] ")
	log.SetFlags(log.Ldate | log.Lmicroseconds)

	var (
		configPath = flag.String("config", "", "JSON run configuration file")
		cameraFile = flag.String("cameras", "", "projection matrix file (12 floats per camera)")
		maskDir    = flag.String("masks", "", "directory of binary silhouette images, ordered to match the cameras")
		outVTR     = flag.String("out", "", "output .vtr path (default carve.vtr)")
		outCSV     = flag.String("csv", "", "optional CSV output of thresholded points")
		plotDir    = flag.String("plots", "", "optional directory for diagnostic plots")
		dbPath     = flag.String("db", "", "optional run catalogue database path")
		boundsStr  = flag.String("bounds", "", "sampling box as xmin,xmax,ymin,ymax,zmin,zmax")
		resolution = flag.Int("resolution", 0, "per-axis sample count")
		threshold  = flag.Int("threshold", 0, "advisory minimum occupancy (default: number of views)")
		workers    = flag.Int("workers", 0, "carving goroutines (0 = NumCPU)")
		verbose    = flag.Bool("verbose", false, "log per-view statistics")
		silent     = flag.Bool("silent", false, "suppress non-error output")
	)
	flag.Parse()

	if *silent {
		monitoring.SetLogger(nil)
	}
	monitoring.SetVerbose(*verbose)

	opts, err := resolveOptions(*configPath, *cameraFile, *maskDir, *outVTR, *outCSV,
		*plotDir, *dbPath, *boundsStr, *resolution, *threshold, *workers, *verbose)
	if err != nil {
		log.Fatalf("Error resolving options: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatalf("Error while carving: %v", err)
	}
}

// resolveOptions merges the optional config file with flag overrides.
func resolveOptions(configPath, cameraFile, maskDir, outVTR, outCSV, plotDir, dbPath,
	boundsStr string, resolution, threshold, workers int, verbose bool) (*Options, error) {

	cfg := &config.RunConfig{}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	opts := &Options{
		CameraFile: firstNonEmpty(cameraFile, config.GetString(cfg.CameraFile)),
		MaskDir:    firstNonEmpty(maskDir, config.GetString(cfg.MaskDir)),
		OutputVTR:  firstNonEmpty(outVTR, config.GetString(cfg.OutputVTR), "carve.vtr"),
		OutputCSV:  firstNonEmpty(outCSV, config.GetString(cfg.OutputCSV)),
		PlotDir:    firstNonEmpty(plotDir, config.GetString(cfg.PlotDir)),
		DBPath:     firstNonEmpty(dbPath, config.GetString(cfg.DBPath)),
		Bounds:     cfg.GetBounds(),
		Resolution: cfg.GetResolution(),
		Workers:    cfg.GetWorkers(),
		Epsilon:    cfg.GetEpsilon(),
		Verbose:    verbose,
	}
	if cfg.Threshold != nil {
		opts.Threshold = *cfg.Threshold
	}

	if boundsStr != "" {
		b, err := parseBounds(boundsStr)
		if err != nil {
			return nil, err
		}
		opts.Bounds = b
	}
	if resolution > 0 {
		opts.Resolution = resolution
	}
	if threshold > 0 {
		opts.Threshold = threshold
	}
	if workers > 0 {
		opts.Workers = workers
	}

	if opts.CameraFile == "" {
		return nil, fmt.Errorf("no camera matrix file given (use -cameras or camera_file in the config)")
	}
	if opts.MaskDir == "" {
		return nil, fmt.Errorf("no silhouette directory given (use -masks or mask_dir in the config)")
	}
	return opts, nil
}

func run(ctx context.Context, opts *Options) error {
	start := time.Now()

	cameras, err := camera.LoadMatrices(opts.CameraFile)
	if err != nil {
		return err
	}
	if opts.Epsilon > 0 {
		for _, cam := range cameras {
			cam.SetEpsilon(opts.Epsilon)
		}
	}

	masks, err := mask.LoadDir(opts.MaskDir)
	if err != nil {
		return err
	}
	monitoring.Logf("Loaded %d cameras, %d silhouettes", len(cameras), masks.Len())

	if len(cameras) != masks.Len() {
		return fmt.Errorf("%w: %d cameras vs %d silhouettes in %s",
			carve.ErrConfigMismatch, len(cameras), masks.Len(), opts.MaskDir)
	}

	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = len(cameras)
	}

	grid, err := carve.NewVoxelGrid(opts.Bounds, opts.Resolution)
	if err != nil {
		return err
	}
	monitoring.Logf("Sampling %s at resolution %d (%d points)",
		opts.Bounds, opts.Resolution, grid.Len())

	engine := &carve.Engine{Workers: opts.Workers}
	result, err := engine.Carve(ctx, grid, cameras, masks)
	if err != nil {
		return err
	}
	carveDur := time.Since(start)

	for j, vs := range result.Views {
		monitoring.Debugf("view %d: %d/%d projections in frame and foreground",
			j, vs.Hits, vs.Projected)
	}

	field := grid.Field(len(cameras))
	stats := field.Stats(threshold)
	monitoring.Logf("Carved %d points across %d views in %s: mean occupancy %.2f (max %d), %d points at threshold %d",
		stats.Samples, stats.Views, carveDur.Round(time.Millisecond),
		stats.Mean, stats.Max, stats.Survivors, threshold)

	if err := vtkio.WriteVTRFile(opts.OutputVTR, field, threshold); err != nil {
		return err
	}
	monitoring.Logf("Wrote occupancy volume to %s", opts.OutputVTR)

	if opts.OutputCSV != "" {
		kept := field.Filter(threshold)
		if err := vtkio.WriteCSVFile(opts.OutputCSV, kept); err != nil {
			return err
		}
		monitoring.Logf("Wrote %d thresholded points to %s", len(kept), opts.OutputCSV)
	}

	if opts.PlotDir != "" {
		pl := &monitor.Plotter{OutputDir: opts.PlotDir}
		if path, err := pl.SaveHistogram(field); err != nil {
			monitoring.Logf("Histogram plot failed: %v", err)
		} else {
			monitoring.Logf("Wrote %s", path)
		}
		if path, err := pl.SaveMidSlice(field); err != nil {
			monitoring.Logf("Midslice plot failed: %v", err)
		} else {
			monitoring.Logf("Wrote %s", path)
		}
	}

	if opts.DBPath != "" {
		if err := recordRun(opts, result, stats, start); err != nil {
			return err
		}
	}
	return nil
}

// recordRun stores the run and its per-view stats in the catalogue database.
func recordRun(opts *Options, result *carve.Result, stats carve.FieldStats, start time.Time) error {
	catalogue, err := db.Open(opts.DBPath)
	if err != nil {
		return err
	}
	defer catalogue.Close()

	runID, err := catalogue.RecordRun(&db.CarveRun{
		StartedAt:     start,
		FinishedAt:    time.Now(),
		Bounds:        opts.Bounds,
		Resolution:    opts.Resolution,
		Views:         stats.Views,
		Threshold:     stats.Threshold,
		GridPoints:    stats.Samples,
		Survivors:     stats.Survivors,
		MeanOccupancy: stats.Mean,
		MaxOccupancy:  stats.Max,
		ArtifactPath:  opts.OutputVTR,
	})
	if err != nil {
		return err
	}
	if err := catalogue.RecordViewStats(runID, result.Views); err != nil {
		return err
	}
	monitoring.Logf("Recorded run %s in %s", runID, opts.DBPath)
	return nil
}

// parseBounds parses "xmin,xmax,ymin,ymax,zmin,zmax".
func parseBounds(s string) (geom.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 6 {
		return geom.Bounds{}, fmt.Errorf("bounds need 6 comma-separated values, got %d", len(parts))
	}
	vals := make([]float64, 6)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Bounds{}, fmt.Errorf("bad bounds value %q: %w", p, err)
		}
		vals[i] = v
	}
	return geom.Bounds{
		XMin: vals[0], XMax: vals[1],
		YMin: vals[2], YMax: vals[3],
		ZMin: vals[4], ZMax: vals[5],
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

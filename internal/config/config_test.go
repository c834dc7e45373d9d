package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/banshee-data/voxelcarve/internal/geom"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "run.json", `{
		"x_min": -2, "x_max": 2,
		"resolution": 64,
		"threshold": 5,
		"workers": 3,
		"epsilon": 1e-9,
		"seed": 42,
		"camera_file": "cams.txt",
		"mask_dir": "masks"
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Explicit values come through; omitted axes fall back to [-1, 1].
	want := geom.Bounds{XMin: -2, XMax: 2, YMin: -1, YMax: 1, ZMin: -1, ZMax: 1}
	if got := cfg.GetBounds(); got != want {
		t.Errorf("GetBounds() = %+v, want %+v", got, want)
	}
	if cfg.GetResolution() != 64 {
		t.Errorf("GetResolution() = %d, want 64", cfg.GetResolution())
	}
	if cfg.GetThreshold(8) != 5 {
		t.Errorf("GetThreshold(8) = %d, want 5", cfg.GetThreshold(8))
	}
	if cfg.GetWorkers() != 3 {
		t.Errorf("GetWorkers() = %d, want 3", cfg.GetWorkers())
	}
	if cfg.GetEpsilon() != 1e-9 {
		t.Errorf("GetEpsilon() = %g, want 1e-9", cfg.GetEpsilon())
	}
	if cfg.GetSeed() != 42 {
		t.Errorf("GetSeed() = %d, want 42", cfg.GetSeed())
	}
	if got := GetString(cfg.CameraFile); got != "cams.txt" {
		t.Errorf("camera_file = %q, want cams.txt", got)
	}
	if got := GetString(cfg.OutputVTR); got != "" {
		t.Errorf("unset output_vtr = %q, want empty", got)
	}
}

func TestLoadEmptyConfigDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "empty.json", `{}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := geom.Bounds{XMin: -1, XMax: 1, YMin: -1, YMax: 1, ZMin: -1, ZMax: 1}
	if got := cfg.GetBounds(); got != want {
		t.Errorf("GetBounds() = %+v, want %+v", got, want)
	}
	if cfg.GetResolution() != 120 {
		t.Errorf("GetResolution() = %d, want 120", cfg.GetResolution())
	}
	// Default threshold requires every view to agree.
	if cfg.GetThreshold(6) != 6 {
		t.Errorf("GetThreshold(6) = %d, want 6", cfg.GetThreshold(6))
	}
	if cfg.GetThreshold(0) != 1 {
		t.Errorf("GetThreshold(0) = %d, want 1", cfg.GetThreshold(0))
	}
	if cfg.GetWorkers() != runtime.NumCPU() {
		t.Errorf("GetWorkers() = %d, want NumCPU %d", cfg.GetWorkers(), runtime.NumCPU())
	}
	if cfg.GetEpsilon() != 0 {
		t.Errorf("GetEpsilon() = %g, want 0 (package default)", cfg.GetEpsilon())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"wrong extension", "run.yaml", `{}`},
		{"bad json", "run.json", `{"resolution": `},
		{"invalid values", "run.json", `{"resolution": 0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.file, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file: expected error")
	}
}

func TestValidate(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	i := func(v int) *int { return &v }

	tests := []struct {
		name    string
		cfg     RunConfig
		wantErr bool
	}{
		{"empty", RunConfig{}, false},
		{"good bounds", RunConfig{XMin: f(-1), XMax: f(1)}, false},
		{"inverted x", RunConfig{XMin: f(1), XMax: f(-1)}, true},
		{"equal y", RunConfig{YMin: f(2), YMax: f(2)}, true},
		{"inverted z", RunConfig{ZMin: f(5), ZMax: f(4)}, true},
		{"half-open bound ok", RunConfig{XMin: f(100)}, false},
		{"zero resolution", RunConfig{Resolution: i(0)}, true},
		{"zero threshold", RunConfig{Threshold: i(0)}, true},
		{"negative workers", RunConfig{Workers: i(-1)}, true},
		{"zero workers", RunConfig{Workers: i(0)}, false},
		{"negative epsilon", RunConfig{Epsilon: f(-1e-9)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

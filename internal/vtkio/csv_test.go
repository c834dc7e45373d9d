package vtkio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/voxelcarve/internal/carve"
	"github.com/banshee-data/voxelcarve/internal/geom"
)

func TestWriteCSV(t *testing.T) {
	entries := []carve.Entry{
		{Point: geom.Point3{X: -1, Y: 0.5, Z: 2}, Occupancy: 3},
		{Point: geom.Point3{X: 0.25, Y: -0.75, Z: 1e-3}, Occupancy: 1},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "x,y,z,occ\n-1,0.5,2,3\n0.25,-0.75,0.001,1\n"
	if buf.String() != want {
		t.Errorf("WriteCSV output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if buf.String() != "x,y,z,occ\n" {
		t.Errorf("empty export = %q, want header only", buf.String())
	}
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.csv")
	entries := []carve.Entry{{Point: geom.Point3{X: 1, Y: 2, Z: 3}, Occupancy: 4}}
	if err := WriteCSVFile(path, entries); err != nil {
		t.Fatalf("WriteCSVFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x,y,z,occ\n1,2,3,4\n" {
		t.Errorf("file contents = %q", string(data))
	}
}

package vtkio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/banshee-data/voxelcarve/internal/carve"
)

// WriteCSV writes entries as x,y,z,occ rows with a header line. Callers that
// want only the carved object pass the output of OccupancyField.Filter;
// passing the full export gives the complete field.
func WriteCSV(w io.Writer, entries []carve.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "z", "occ"}); err != nil {
		return fmt.Errorf("vtkio: write csv header: %w", err)
	}
	row := make([]string, 4)
	for _, e := range entries {
		row[0] = strconv.FormatFloat(e.Point.X, 'g', -1, 64)
		row[1] = strconv.FormatFloat(e.Point.Y, 'g', -1, 64)
		row[2] = strconv.FormatFloat(e.Point.Z, 'g', -1, 64)
		row[3] = strconv.Itoa(e.Occupancy)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("vtkio: write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes entries to path, creating or truncating the file.
func WriteCSVFile(path string, entries []carve.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("vtkio: create %s: %w", path, err)
	}
	if err := WriteCSV(f, entries); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("vtkio: close %s: %w", path, err)
	}
	return nil
}

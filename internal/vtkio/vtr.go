// Package vtkio serialises occupancy fields into artifacts external
// visualization tools consume: a VTK XML rectilinear grid (.vtr) for ParaView
// isosurfacing, and a CSV point listing for point-cloud tools.
//
// Thresholding is deliberately deferred to the consumer: the .vtr carries the
// full scalar field with the advisory threshold attached as field data, and
// the downstream contour/threshold filter decides what becomes surface.
package vtkio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/banshee-data/voxelcarve/internal/carve"
)

// occupancyArrayName is the PointData scalar name external tools select on.
const occupancyArrayName = "occupancy"

// WriteVTR writes the full occupancy field as a VTK XML rectilinear grid.
// The grid carries three per-axis coordinate arrays of length Resolution and
// one Int32 point-data array holding the occupancy counts in grid order
// (x fastest), which is exactly the field's native layout. threshold is
// advisory metadata recorded as FieldData; no filtering happens here.
func WriteVTR(w io.Writer, field *carve.OccupancyField, threshold int) error {
	if field == nil || field.Len() == 0 {
		return fmt.Errorf("vtkio: empty occupancy field")
	}
	n := field.Resolution
	if len(field.Xs) != n || len(field.Ys) != n || len(field.Zs) != n || field.Len() != n*n*n {
		return fmt.Errorf("vtkio: inconsistent field: resolution %d, axes %d/%d/%d, %d samples",
			n, len(field.Xs), len(field.Ys), len(field.Zs), field.Len())
	}

	bw := bufio.NewWriter(w)
	extent := fmt.Sprintf("0 %d 0 %d 0 %d", n-1, n-1, n-1)

	fmt.Fprintln(bw, `<?xml version="1.0"?>`)
	fmt.Fprintln(bw, `<VTKFile type="RectilinearGrid" version="1.0" byte_order="LittleEndian">`)
	fmt.Fprintf(bw, "  <RectilinearGrid WholeExtent=\"%s\">\n", extent)

	fmt.Fprintln(bw, `    <FieldData>`)
	writeIntArray(bw, "occupancy_threshold", []int32{int32(threshold)}, 6)
	writeIntArray(bw, "view_count", []int32{int32(field.Views)}, 6)
	fmt.Fprintln(bw, `    </FieldData>`)

	fmt.Fprintf(bw, "    <Piece Extent=\"%s\">\n", extent)

	fmt.Fprintln(bw, `      <Coordinates>`)
	writeFloatArray(bw, "x", field.Xs)
	writeFloatArray(bw, "y", field.Ys)
	writeFloatArray(bw, "z", field.Zs)
	fmt.Fprintln(bw, `      </Coordinates>`)

	fmt.Fprintf(bw, "      <PointData Scalars=%q>\n", occupancyArrayName)
	writeIntArray(bw, occupancyArrayName, field.Occupancy, 8)
	fmt.Fprintln(bw, `      </PointData>`)

	fmt.Fprintln(bw, `    </Piece>`)
	fmt.Fprintln(bw, `  </RectilinearGrid>`)
	fmt.Fprintln(bw, `</VTKFile>`)
	return bw.Flush()
}

// WriteVTRFile writes the field to path, creating or truncating the file.
func WriteVTRFile(path string, field *carve.OccupancyField, threshold int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("vtkio: create %s: %w", path, err)
	}
	if err := WriteVTR(f, field, threshold); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("vtkio: close %s: %w", path, err)
	}
	return nil
}

func writeFloatArray(w io.Writer, name string, vals []float64) {
	fmt.Fprintf(w, "        <DataArray type=\"Float64\" Name=%q format=\"ascii\">\n", name)
	fmt.Fprint(w, "          ")
	for i, v := range vals {
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprint(w, strconv.FormatFloat(v, 'g', -1, 64))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "        </DataArray>")
}

// writeIntArray emits an Int32 ascii DataArray indented by indent spaces.
func writeIntArray(w io.Writer, name string, vals []int32, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += " "
	}
	fmt.Fprintf(w, "%s<DataArray type=\"Int32\" Name=%q", pad, name)
	if indent == 6 {
		// FieldData arrays carry an explicit tuple count.
		fmt.Fprintf(w, " NumberOfTuples=\"%d\"", len(vals))
	}
	fmt.Fprintln(w, ` format="ascii">`)
	fmt.Fprint(w, pad, "  ")
	for i, v := range vals {
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprint(w, v)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, pad+"</DataArray>")
}

package camera

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadMatrices reads an ordered list of 3×4 projection matrices from a plain
// text file. The file is a stream of whitespace-separated floats; every 12
// consecutive values form one matrix in row-major order. Blank lines and
// lines starting with '#' are skipped, so one-matrix-per-line, one-row-per-line
// and annotated calibration dumps all parse the same way.
func LoadMatrices(path string) ([]*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("camera: open matrix file: %w", err)
	}
	defer f.Close()

	models, err := ReadMatrices(f)
	if err != nil {
		return nil, fmt.Errorf("camera: %s: %w", path, err)
	}
	return models, nil
}

// ReadMatrices parses projection matrices from r. See LoadMatrices for the
// format.
func ReadMatrices(r io.Reader) ([]*Model, error) {
	var (
		models []*Model
		buf    []float64
		lineNo int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, field := range strings.Fields(line) {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad value %q: %w", lineNo, field, err)
			}
			buf = append(buf, val)
			if len(buf) == 12 {
				m, err := New(buf)
				if err != nil {
					return nil, err
				}
				models = append(models, m)
				buf = buf[:0]
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(buf) != 0 {
		return nil, fmt.Errorf("trailing values: got %d of 12 elements for matrix %d",
			len(buf), len(models)+1)
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("no matrices found")
	}
	return models, nil
}

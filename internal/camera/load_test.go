package camera

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadMatrices(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{
			name: "one matrix one row per line",
			input: `1 0 0 0
0 1 0 0
0 0 1 0
`,
			want: 1,
		},
		{
			name:  "one matrix single line",
			input: "1 0 0 0 0 1 0 0 0 0 1 0",
			want:  1,
		},
		{
			name: "two matrices with comments and blanks",
			input: `# camera 0
1 0 0 0
0 1 0 0
0 0 1 0

# camera 1
2 0 0 5  0 2 0 5
0 0 0 1
`,
			want: 2,
		},
		{"empty file", "", 0, true},
		{"only comments", "# nothing here\n", 0, true},
		{"trailing values", "1 0 0 0 0 1 0 0 0 0 1", 0, true},
		{"bad float", "1 0 0 zero 0 1 0 0 0 0 1 0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			models, err := ReadMatrices(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadMatrices() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(models) != tt.want {
				t.Errorf("got %d matrices, want %d", len(models), tt.want)
			}
		})
	}
}

func TestReadMatricesValues(t *testing.T) {
	models, err := ReadMatrices(strings.NewReader("1 2 3 4 5 6 7 8 9 10 11 12"))
	if err != nil {
		t.Fatalf("ReadMatrices: %v", err)
	}
	m := models[0].Matrix()
	if got := m.At(1, 2); got != 7 {
		t.Errorf("element (1,2) = %g, want 7", got)
	}
	if got := m.At(2, 3); got != 12 {
		t.Errorf("element (2,3) = %g, want 12", got)
	}
}

func TestLoadMatrices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cameras.txt")
	content := "# test rig\n1 0 0 0\n0 1 0 0\n0 0 0 1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	models, err := LoadMatrices(path)
	if err != nil {
		t.Fatalf("LoadMatrices: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("got %d matrices, want 1", len(models))
	}

	if _, err := LoadMatrices(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("LoadMatrices on missing file: expected error")
	}
}

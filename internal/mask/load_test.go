package mask

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(2, 1, color.Gray{Y: 1}) // any nonzero luminance is foreground

	m := FromImage(img)
	if m.Width() != 3 || m.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", m.Width(), m.Height())
	}
	if !m.At(0, 0) {
		t.Error("white pixel should be foreground")
	}
	if !m.At(2, 1) {
		t.Error("dim nonzero pixel should be foreground")
	}
	if m.At(1, 0) || m.At(1, 1) {
		t.Error("black pixels should be background")
	}
}

func TestFromImageNonZeroOrigin(t *testing.T) {
	img := image.NewGray(image.Rect(5, 7, 8, 9))
	img.SetGray(5, 7, color.Gray{Y: 255})

	m := FromImage(img)
	if m.Width() != 3 || m.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", m.Width(), m.Height())
	}
	if !m.At(0, 0) {
		t.Error("origin pixel should map to (0, 0)")
	}
}

func writePNG(t *testing.T, path string, fg bool) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	if fg {
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestLoadDirOrdersByName(t *testing.T) {
	dir := t.TempDir()
	// Written out of order; the store must come back name-sorted.
	writePNG(t, filepath.Join(dir, "view_02.png"), false)
	writePNG(t, filepath.Join(dir, "view_01.png"), true)
	writePNG(t, filepath.Join(dir, "view_03.png"), true)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if !s.IsForeground(0, 1, 1) {
		t.Error("view_01 should be all foreground")
	}
	if s.IsForeground(1, 1, 1) {
		t.Error("view_02 should be all background")
	}
	if !s.IsForeground(2, 1, 1) {
		t.Error("view_03 should be all foreground")
	}
}

func TestLoadDirEmpty(t *testing.T) {
	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Error("LoadDir on empty dir: expected error")
	}
}

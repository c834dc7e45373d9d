package mask

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// Silhouette rasters arrive as ordinary image files.
	_ "image/jpeg"
	_ "image/png"
)

// FromImage converts a decoded image into a binary mask. Any pixel with
// nonzero luminance is foreground; segmentation upstream is expected to have
// produced a clean black/white raster already.
func FromImage(img image.Image) *Mask {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	bits := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			bits[y*w+x] = g.Y > 0
		}
	}
	return &Mask{width: w, height: h, bits: bits}
}

// LoadFile decodes one silhouette image into a Mask.
func LoadFile(path string) (*Mask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mask: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("mask: decode %s: %w", path, err)
	}
	return FromImage(img), nil
}

// LoadDir loads every PNG/JPEG silhouette in dir, ordered by file name. The
// lexical order must match the camera matrix order: views are paired with
// masks by index.
func LoadDir(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("mask: read dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("mask: no silhouette images in %s", dir)
	}

	masks := make([]*Mask, 0, len(names))
	for _, name := range names {
		m, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		masks = append(masks, m)
	}
	return NewStore(masks...), nil
}

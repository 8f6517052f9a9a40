package raster

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/textmation"
)

// WriteFrames encodes frames as PNG files named <label>_<frame>.png in dir,
// creating dir if needed, and returns the written paths in frame order.
func WriteFrames(dir, label string, frames []textmation.Image) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("raster: mkdir %s: %w", dir, err)
	}
	safe := sanitizeLabel(label)
	width := len(fmt.Sprint(len(frames)))
	width = max(width, 4)

	paths := make([]string, 0, len(frames))
	for i, frame := range frames {
		path := filepath.Join(dir, fmt.Sprintf("%s_%0*d.png", safe, width, i))
		if err := writePNG(path, frame.Image()); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	textmation.Logger().Info("wrote frames", "dir", dir, "count", len(paths))
	return paths, nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("raster: encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "frame" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "frame"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

package raster

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/textmation"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"intro-1", "intro-1"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"special!@#", "special___"},
		{"", "frame"},
		{"   ", "frame"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteFrames(t *testing.T) {
	r := New()
	var frames []textmation.Image
	for range 3 {
		img, err := r.NewImage(textmation.Size{Width: 8, Height: 6}, textmation.ColorBlack)
		if err != nil {
			t.Fatal(err)
		}
		frames = append(frames, img)
	}

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteFrames(dir, "my clip", frames)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"my_clip_0000.png", "my_clip_0001.png", "my_clip_0002.png"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i, p := range paths {
		if filepath.Base(p) != want[i] {
			t.Errorf("path %d = %s, want %s", i, filepath.Base(p), want[i])
		}
		f, err := os.Open(p)
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if cfg.Width != 8 || cfg.Height != 6 {
			t.Errorf("%s: %dx%d, want 8x6", p, cfg.Width, cfg.Height)
		}
	}
}

func TestScale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 4))
	if Scale(src, 1) != image.Image(src) {
		t.Error("factor 1 should return the source")
	}
	if got := Scale(src, 2).Bounds(); got.Dx() != 20 || got.Dy() != 8 {
		t.Errorf("x2 = %v", got)
	}
	if got := Scale(src, 0.01).Bounds(); got.Dx() != 1 || got.Dy() != 1 {
		t.Errorf("tiny = %v, want 1x1", got)
	}
}

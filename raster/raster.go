// Package raster draws textmation scenes with gogpu/gg's software renderer.
//
// A [Rasterizer] creates one [Image] per frame and caches fonts by family
// and size. Built-in families ("sans", "sans-bold", "sans-italic", "mono")
// use the Go fonts; any other family is looked up as a font file, first as
// given and then in the directories passed to [WithFontDir].
package raster

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"strings"

	"github.com/gogpu/gg"
	"github.com/phanxgames/textmation"
)

var _ textmation.Rasterizer = (*Rasterizer)(nil)

// Rasterizer implements textmation.Rasterizer on top of gg.
type Rasterizer struct {
	fonts *fontCache
}

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithFontDir adds a directory searched for font files by family name.
func WithFontDir(dir string) Option {
	return func(r *Rasterizer) { r.fonts.dirs = append(r.fonts.dirs, dir) }
}

// New returns a Rasterizer.
func New(opts ...Option) *Rasterizer {
	r := &Rasterizer{fonts: newFontCache()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewImage creates an image of the given size, rounded up to whole pixels,
// filled with background.
func (r *Rasterizer) NewImage(size textmation.Size, background textmation.Color) (textmation.Image, error) {
	w := int(math.Ceil(size.Width))
	h := int(math.Ceil(size.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: invalid image size %vx%v", size.Width, size.Height)
	}
	dc := gg.NewContext(w, h)
	dc.ClearWithColor(ggColor(background))
	return &Image{dc: dc}, nil
}

// LoadFont returns the face for family at size, loading the font source on
// first use.
func (r *Rasterizer) LoadFont(family string, size float64) (textmation.Font, error) {
	return r.fonts.load(family, size)
}

// RegisterFont makes ttf available under family, replacing any previous
// registration.
func (r *Rasterizer) RegisterFont(family string, ttf []byte) error {
	return r.fonts.register(family, ttf)
}

// Close releases the loaded font sources.
func (r *Rasterizer) Close() error {
	return r.fonts.close()
}

// Image is a frame being drawn into a gg.Context. Frames are owned by the
// caller and must be closed, individually or with [CloseFrames].
type Image struct {
	dc *gg.Context
}

var _ textmation.Image = (*Image)(nil)

// Image returns a copy of the pixels drawn so far.
func (img *Image) Image() image.Image {
	return img.dc.Image()
}

// EncodePNG writes the frame as PNG.
func (img *Image) EncodePNG(w io.Writer) error {
	return img.dc.EncodePNG(w)
}

// Close releases the drawing context.
func (img *Image) Close() error {
	return img.dc.Close()
}

// CloseFrames closes every frame created by this package. Nil entries and
// images from other rasterizers are skipped. Closing a frame twice is
// harmless.
func CloseFrames(frames []textmation.Image) error {
	var errs []error
	for _, f := range frames {
		if img, ok := f.(*Image); ok && img != nil {
			errs = append(errs, img.Close())
		}
	}
	return errors.Join(errs...)
}

// DrawRect fills bounds and strokes its outline.
func (img *Image) DrawRect(b textmation.Bounds, fill, outline textmation.Color, outlineWidth float64) error {
	return img.shape(func() { img.dc.DrawRectangle(b.X, b.Y, b.Width, b.Height) }, fill, outline, outlineWidth)
}

// DrawCircle fills a circle and strokes its outline.
func (img *Image) DrawCircle(center textmation.Point, radius float64, fill, outline textmation.Color, outlineWidth float64) error {
	return img.shape(func() { img.dc.DrawCircle(center.X, center.Y, radius) }, fill, outline, outlineWidth)
}

// DrawEllipse fills an axis-aligned ellipse and strokes its outline.
func (img *Image) DrawEllipse(center textmation.Point, rx, ry float64, fill, outline textmation.Color, outlineWidth float64) error {
	return img.shape(func() { img.dc.DrawEllipse(center.X, center.Y, rx, ry) }, fill, outline, outlineWidth)
}

// DrawLine strokes a line segment.
func (img *Image) DrawLine(start, end textmation.Point, c textmation.Color, width float64) error {
	if width <= 0 || c.A <= 0 {
		return nil
	}
	img.dc.SetLineWidth(width)
	img.dc.SetColor(c.NRGBA())
	img.dc.DrawLine(start.X, start.Y, end.X, end.Y)
	if err := img.dc.Stroke(); err != nil {
		return fmt.Errorf("raster: stroke line: %w", err)
	}
	return nil
}

// shape fills and then outlines the path built by path. Fully transparent
// fills and outlines, and non-positive outline widths, are skipped.
func (img *Image) shape(path func(), fill, outline textmation.Color, outlineWidth float64) error {
	if fill.A > 0 {
		img.dc.SetColor(fill.NRGBA())
		path()
		if err := img.dc.Fill(); err != nil {
			return fmt.Errorf("raster: fill: %w", err)
		}
	}
	if outlineWidth > 0 && outline.A > 0 {
		img.dc.SetLineWidth(outlineWidth)
		img.dc.SetColor(outline.NRGBA())
		path()
		if err := img.dc.Stroke(); err != nil {
			return fmt.Errorf("raster: stroke: %w", err)
		}
	}
	return nil
}

// DrawText draws possibly multi-line text. The anchor places the text block
// relative to position; alignment positions each line within the block.
func (img *Image) DrawText(s string, position textmation.Point, c textmation.Color, font textmation.Font, anchor, alignment string) error {
	f, ok := font.(*Font)
	if !ok {
		return fmt.Errorf("raster: font %T was not loaded by this package", font)
	}
	ax, ay, err := parseAnchor(anchor)
	if err != nil {
		return err
	}
	align, err := parseAlignment(alignment)
	if err != nil {
		return err
	}

	lines := strings.Split(s, "\n")
	m := f.face.Metrics()
	lineHeight := m.LineHeight()
	widths := make([]float64, len(lines))
	blockW := 0.0
	for i, line := range lines {
		widths[i] = f.face.Advance(line)
		blockW = max(blockW, widths[i])
	}
	blockH := m.Ascent + m.Descent + float64(len(lines)-1)*lineHeight

	x0 := position.X - blockW*ax
	var baseline float64
	if ay < 0 {
		baseline = position.Y
	} else {
		baseline = position.Y - blockH*ay + m.Ascent
	}

	img.dc.SetFont(f.face)
	img.dc.SetColor(c.NRGBA())
	for i, line := range lines {
		x := x0 + (blockW-widths[i])*align
		img.dc.DrawString(line, x, baseline+float64(i)*lineHeight)
	}
	return nil
}

// parseAnchor returns the horizontal and vertical fractions of the text
// block placed at the anchor position. A vertical fraction of -1 means the
// first baseline.
func parseAnchor(anchor string) (ax, ay float64, err error) {
	if len(anchor) != 2 {
		return 0, 0, fmt.Errorf("raster: invalid text anchor %q", anchor)
	}
	switch anchor[0] {
	case 'l':
		ax = 0
	case 'm':
		ax = 0.5
	case 'r':
		ax = 1
	default:
		return 0, 0, fmt.Errorf("raster: invalid horizontal anchor in %q", anchor)
	}
	switch anchor[1] {
	case 'a', 't':
		ay = 0
	case 'm':
		ay = 0.5
	case 'b', 'd':
		ay = 1
	case 's':
		ay = -1
	default:
		return 0, 0, fmt.Errorf("raster: invalid vertical anchor in %q", anchor)
	}
	return ax, ay, nil
}

func parseAlignment(alignment string) (float64, error) {
	switch alignment {
	case "left", "":
		return 0, nil
	case "center":
		return 0.5, nil
	case "right":
		return 1, nil
	}
	return 0, fmt.Errorf("raster: invalid text alignment %q", alignment)
}

func ggColor(c textmation.Color) gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// fileExists reports whether path names a regular file.
func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

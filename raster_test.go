package textmation

import (
	"image"
)

// drawCall records one call made on a recordImage.
type drawCall struct {
	op      string
	bounds  Bounds
	points  []Point
	radii   []float64
	fill    Color
	outline Color
	width   float64
	text    string
	font    string
	anchor  string
	align   string
}

// recordRaster is a Rasterizer that records every image and draw call.
type recordRaster struct {
	images  []*recordImage
	fonts   []string
	drawErr error
}

func (r *recordRaster) NewImage(size Size, background Color) (Image, error) {
	img := &recordImage{size: size, background: background, drawErr: r.drawErr}
	r.images = append(r.images, img)
	return img, nil
}

func (r *recordRaster) LoadFont(family string, size float64) (Font, error) {
	r.fonts = append(r.fonts, family)
	return recordFont{family, size}, nil
}

// last returns the most recently created image.
func (r *recordRaster) last() *recordImage {
	return r.images[len(r.images)-1]
}

type recordFont struct {
	family string
	size   float64
}

func (f recordFont) Family() string { return f.family }
func (f recordFont) Size() float64  { return f.size }

type recordImage struct {
	size       Size
	background Color
	calls      []drawCall
	drawErr    error
}

func (img *recordImage) DrawRect(b Bounds, fill, outline Color, w float64) error {
	img.calls = append(img.calls, drawCall{op: "rect", bounds: b, fill: fill, outline: outline, width: w})
	return img.drawErr
}

func (img *recordImage) DrawCircle(c Point, r float64, fill, outline Color, w float64) error {
	img.calls = append(img.calls, drawCall{op: "circle", points: []Point{c}, radii: []float64{r}, fill: fill, outline: outline, width: w})
	return img.drawErr
}

func (img *recordImage) DrawEllipse(c Point, rx, ry float64, fill, outline Color, w float64) error {
	img.calls = append(img.calls, drawCall{op: "ellipse", points: []Point{c}, radii: []float64{rx, ry}, fill: fill, outline: outline, width: w})
	return img.drawErr
}

func (img *recordImage) DrawLine(start, end Point, c Color, w float64) error {
	img.calls = append(img.calls, drawCall{op: "line", points: []Point{start, end}, fill: c, width: w})
	return img.drawErr
}

func (img *recordImage) DrawText(s string, pos Point, c Color, font Font, anchor, align string) error {
	img.calls = append(img.calls, drawCall{op: "text", text: s, points: []Point{pos}, fill: c, font: font.Family(), width: font.Size(), anchor: anchor, align: align})
	return img.drawErr
}

func (img *recordImage) Image() image.Image {
	return image.NewRGBA(image.Rect(0, 0, int(img.size.Width), int(img.size.Height)))
}

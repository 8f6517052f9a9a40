package textmation

import (
	"fmt"
	"image/color"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Common colors used as property defaults.
var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{}
)

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{r, g, b, 1}
}

// NRGBA converts c to an 8-bit non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: unit8(c.R),
		G: unit8(c.G),
		B: unit8(c.B),
		A: unit8(c.A),
	}
}

// ColorOf converts a standard color to a Color.
func ColorOf(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

func unit8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

func (c Color) String() string {
	return fmt.Sprintf("Color(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}

// Point is a 2D position or offset. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Scale returns p with both components multiplied by f.
func (p Point) Scale(f float64) Point {
	return Point{p.X * f, p.Y * f}
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%g, %g)", p.X, p.Y)
}

// Size is a width and height pair.
type Size struct {
	Width, Height float64
}

// Scale returns s with both dimensions multiplied by f.
func (s Size) Scale(f float64) Size {
	return Size{s.Width * f, s.Height * f}
}

func (s Size) String() string {
	return fmt.Sprintf("Size(%g, %g)", s.Width, s.Height)
}

// Bounds is an axis-aligned rectangle.
type Bounds struct {
	X, Y, Width, Height float64
}

// Origin returns the top-left corner of b.
func (b Bounds) Origin() Point {
	return Point{b.X, b.Y}
}

// Size returns the dimensions of b.
func (b Bounds) Size() Size {
	return Size{b.Width, b.Height}
}

// Translate returns b moved by p.
func (b Bounds) Translate(p Point) Bounds {
	return Bounds{b.X + p.X, b.Y + p.Y, b.Width, b.Height}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.Width &&
		y >= b.Y && y <= b.Y+b.Height
}

func (b Bounds) String() string {
	return fmt.Sprintf("Bounds(%g, %g, %g, %g)", b.X, b.Y, b.Width, b.Height)
}

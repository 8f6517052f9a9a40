package textmation

import (
	"fmt"
	"time"
)

// Renderer draws a computed scene through a Rasterizer. It keeps a stack of
// accumulated translations; every push is popped before the call that made
// it returns, so the stack is back at its base after each Render. A Renderer
// may be reused across frames but not shared between goroutines.
type Renderer struct {
	raster       Rasterizer
	image        Image
	translations []Point
	draws        int
}

// NewRenderer returns a renderer drawing through r.
func NewRenderer(r Rasterizer) *Renderer {
	return &Renderer{
		raster:       r,
		translations: []Point{{}},
	}
}

// Translation returns the offset currently applied to drawn geometry.
func (r *Renderer) Translation() Point {
	return r.translations[len(r.translations)-1]
}

// Depth returns the number of translations pushed on top of the base offset.
// It is zero whenever no Render call is in progress.
func (r *Renderer) Depth() int {
	return len(r.translations) - 1
}

// translate runs fn with offset added to the current translation.
func (r *Renderer) translate(offset Point, fn func() error) error {
	r.translations = append(r.translations, r.Translation().Add(offset))
	defer func() { r.translations = r.translations[:len(r.translations)-1] }()
	return fn()
}

// Render draws scene, which must be a Scene element whose subtree has been
// computed, and returns the resulting image. No image is returned on error.
func (r *Renderer) Render(scene Element) (Image, error) {
	if !scene.IsValid() || scene.Kind() != KindScene {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidRoot, scene)
	}
	r.image = nil
	r.draws = 0
	defer func() { r.image = nil }()

	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	if err := r.render(scene); err != nil {
		return nil, err
	}

	if globalDebug {
		Logger().Debug("rendered scene",
			"scene", scene.String(),
			"draws", r.draws,
			"elapsed", time.Since(t0))
	}
	return r.image, nil
}

// renderFunc draws one element kind.
type renderFunc func(r *Renderer, e Element) error

// renderHandlers is the dispatch table, one entry per Kind. It is filled in
// init because the handlers recurse through render.
var renderHandlers [kindCount]renderFunc

func init() {
	renderHandlers = [kindCount]renderFunc{
		KindScene:     (*Renderer).renderScene,
		KindGroup:     (*Renderer).renderGroup,
		KindRectangle: (*Renderer).renderRectangle,
		KindCircle:    (*Renderer).renderCircle,
		KindEllipse:   (*Renderer).renderEllipse,
		KindLine:      (*Renderer).renderLine,
		KindText:      (*Renderer).renderText,
	}
}

func (r *Renderer) render(e Element) error {
	k := e.Kind()
	if k >= kindCount || renderHandlers[k] == nil {
		return &MissingRenderHandlerError{Kind: k}
	}
	return renderHandlers[k](r, e)
}

func (r *Renderer) renderChildren(e Element) error {
	for _, child := range e.Children() {
		if err := r.render(child); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderScene(scene Element) error {
	size, background, err := canvasOf(scene)
	if err != nil {
		return fmt.Errorf("render %s: %w", scene, err)
	}
	img, err := r.raster.NewImage(size, background)
	if err != nil {
		return fmt.Errorf("textmation: create image for %s: %w", scene, err)
	}
	r.image = img
	return r.renderChildren(scene)
}

func (r *Renderer) renderGroup(group Element) error {
	pos, err := group.ReadPoint("position")
	if err != nil {
		return fmt.Errorf("render %s: %w", group, err)
	}
	return r.translate(pos, func() error {
		return r.renderChildren(group)
	})
}

func (r *Renderer) renderRectangle(rect Element) error {
	rd := reader{e: rect}
	bounds := rd.bounds("bounds")
	fill := rd.color("color")
	outline := rd.color("outline_color")
	width := rd.number("outline_width")
	if rd.err != nil {
		return rd.err
	}
	if err := r.draw(rect, r.image.DrawRect(bounds.Translate(r.Translation()), fill, outline, width)); err != nil {
		return err
	}
	return r.renderChildren(rect)
}

func (r *Renderer) renderCircle(circle Element) error {
	rd := reader{e: circle}
	center := rd.point("center")
	radius := rd.number("radius")
	fill := rd.color("color")
	outline := rd.color("outline_color")
	width := rd.number("outline_width")
	if rd.err != nil {
		return rd.err
	}
	if err := r.draw(circle, r.image.DrawCircle(center.Add(r.Translation()), radius, fill, outline, width)); err != nil {
		return err
	}
	return r.renderChildren(circle)
}

func (r *Renderer) renderEllipse(ellipse Element) error {
	rd := reader{e: ellipse}
	center := rd.point("center")
	rx := rd.number("radius_x")
	ry := rd.number("radius_y")
	fill := rd.color("color")
	outline := rd.color("outline_color")
	width := rd.number("outline_width")
	if rd.err != nil {
		return rd.err
	}
	if err := r.draw(ellipse, r.image.DrawEllipse(center.Add(r.Translation()), rx, ry, fill, outline, width)); err != nil {
		return err
	}
	return r.renderChildren(ellipse)
}

func (r *Renderer) renderLine(line Element) error {
	rd := reader{e: line}
	start := rd.point("start_point")
	end := rd.point("end_point")
	c := rd.color("color")
	width := rd.number("width")
	if rd.err != nil {
		return rd.err
	}
	tr := r.Translation()
	if err := r.draw(line, r.image.DrawLine(start.Add(tr), end.Add(tr), c, width)); err != nil {
		return err
	}
	return r.renderChildren(line)
}

func (r *Renderer) renderText(text Element) error {
	rd := reader{e: text}
	s := rd.str("text")
	pos := rd.point("position")
	c := rd.color("color")
	family := rd.str("font")
	size := rd.number("font_size")
	anchor := rd.str("anchor")
	alignment := rd.str("alignment")
	if rd.err != nil {
		return rd.err
	}
	font, err := r.raster.LoadFont(family, size)
	if err != nil {
		return fmt.Errorf("textmation: load font %q for %s: %w", family, text, err)
	}
	if err := r.draw(text, r.image.DrawText(s, pos.Add(r.Translation()), c, font, anchor, alignment)); err != nil {
		return err
	}
	return r.renderChildren(text)
}

// draw counts a draw call and wraps its error with the element drawn.
func (r *Renderer) draw(e Element, err error) error {
	r.draws++
	if err != nil {
		return fmt.Errorf("textmation: draw %s: %w", e, err)
	}
	return nil
}

// reader reads several resolved properties of one element, keeping the first
// error so handlers can check once.
type reader struct {
	e   Element
	err error
}

func (rd *reader) fail(err error) {
	if err != nil && rd.err == nil {
		rd.err = fmt.Errorf("render %s: %w", rd.e, err)
	}
}

func (rd *reader) number(name string) float64 {
	if rd.err != nil {
		return 0
	}
	v, err := rd.e.ReadNumber(name)
	rd.fail(err)
	return v
}

func (rd *reader) str(name string) string {
	if rd.err != nil {
		return ""
	}
	v, err := rd.e.ReadString(name)
	rd.fail(err)
	return v
}

func (rd *reader) point(name string) Point {
	if rd.err != nil {
		return Point{}
	}
	v, err := rd.e.ReadPoint(name)
	rd.fail(err)
	return v
}

func (rd *reader) bounds(name string) Bounds {
	if rd.err != nil {
		return Bounds{}
	}
	v, err := rd.e.ReadBounds(name)
	rd.fail(err)
	return v
}

func (rd *reader) color(name string) Color {
	if rd.err != nil {
		return Color{}
	}
	v, err := rd.e.ReadColor(name)
	rd.fail(err)
	return v
}

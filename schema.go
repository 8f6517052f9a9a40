package textmation

import (
	"fmt"
	"maps"
	"slices"
)

// Allowed type sets of the built-in schemas. Animatable properties also take
// Tween and Keyframes; geometric ones take the relative variants that make
// sense for them.
var (
	numberTypes = TypesOf(TypeNumber, TypePercent, TypeTween, TypeKeyframes)
	stringTypes = TypesOf(TypeString, TypeTween, TypeKeyframes)
	pointTypes  = TypesOf(TypePoint, TypeOffset, TypePercent, TypeTween, TypeKeyframes)
	sizeTypes   = TypesOf(TypeSize, TypePercent, TypeTween, TypeKeyframes)
	boundsTypes = TypesOf(TypeBounds, TypeTween, TypeKeyframes)
	colorTypes  = TypesOf(TypeColor, TypeTween, TypeKeyframes)
)

// Text anchors and alignments accepted by the raster collaborator. Anchors
// are two letters: horizontal l, m or r followed by vertical a (ascender),
// t (top), m (middle), s (baseline), b (bottom) or d (descender).
const (
	DefaultAnchor    = "la"
	DefaultAlignment = "left"
	DefaultFont      = "sans"
	DefaultFontSize  = 16
)

// ElementOption configures an element built by one of the Tree constructors.
type ElementOption func(*elementOptions)

type elementOptions struct {
	name  string
	links map[string]*Property
}

// Named defines the element's "name" property.
func Named(name string) ElementOption {
	return func(o *elementOptions) { o.name = name }
}

// Link defines the schema property prop relative to rel. Relative links are
// fixed at definition time, so they are given at construction.
func Link(prop string, rel *Property) ElementOption {
	return func(o *elementOptions) {
		if o.links == nil {
			o.links = make(map[string]*Property)
		}
		o.links[prop] = rel
	}
}

// schemaProp is one entry of a kind's property schema.
type schemaProp struct {
	name  string
	value Value
	types TypeSet
}

// build creates an element of kind with the given schema. It panics if the
// schema rejects its own defaults or if a Link names a property the schema
// does not have; both are programming errors.
func (t *Tree) build(kind Kind, schema []schemaProp, opts []ElementOption) Element {
	var o elementOptions
	for _, opt := range opts {
		opt(&o)
	}
	e := t.newElement(kind)
	if o.name != "" {
		mustDefine(e.Define("name", String(o.name)))
	}
	for _, sp := range schema {
		dopts := []DefineOption{TypeSetOf(sp.types)}
		if rel, ok := o.links[sp.name]; ok {
			dopts = append(dopts, RelativeTo(rel))
			delete(o.links, sp.name)
		}
		mustDefine(e.Define(sp.name, sp.value, dopts...))
	}
	if len(o.links) > 0 {
		names := slices.Sorted(maps.Keys(o.links))
		panic(fmt.Sprintf("textmation: %s has no properties %q to link", kind, names))
	}
	return e
}

func mustDefine(_ *Property, err error) {
	if err != nil {
		panic(err)
	}
}

// NewGroup creates a group that translates its children by position.
func (t *Tree) NewGroup(position Point, opts ...ElementOption) Element {
	return t.build(KindGroup, []schemaProp{
		{"position", position, pointTypes},
	}, opts)
}

// NewRectangle creates a rectangle filled with fill and no outline.
func (t *Tree) NewRectangle(bounds Bounds, fill Color, opts ...ElementOption) Element {
	return t.build(KindRectangle, []schemaProp{
		{"bounds", bounds, boundsTypes},
		{"color", fill, colorTypes},
		{"outline_color", ColorTransparent, colorTypes},
		{"outline_width", Number(0), numberTypes},
	}, opts)
}

// NewCircle creates a circle filled with fill and no outline.
func (t *Tree) NewCircle(center Point, radius float64, fill Color, opts ...ElementOption) Element {
	return t.build(KindCircle, []schemaProp{
		{"center", center, pointTypes},
		{"radius", Number(radius), numberTypes},
		{"color", fill, colorTypes},
		{"outline_color", ColorTransparent, colorTypes},
		{"outline_width", Number(0), numberTypes},
	}, opts)
}

// NewEllipse creates an axis-aligned ellipse filled with fill and no outline.
func (t *Tree) NewEllipse(center Point, radiusX, radiusY float64, fill Color, opts ...ElementOption) Element {
	return t.build(KindEllipse, []schemaProp{
		{"center", center, pointTypes},
		{"radius_x", Number(radiusX), numberTypes},
		{"radius_y", Number(radiusY), numberTypes},
		{"color", fill, colorTypes},
		{"outline_color", ColorTransparent, colorTypes},
		{"outline_width", Number(0), numberTypes},
	}, opts)
}

// NewLine creates a one pixel wide line.
func (t *Tree) NewLine(start, end Point, c Color, opts ...ElementOption) Element {
	return t.build(KindLine, []schemaProp{
		{"start_point", start, pointTypes},
		{"end_point", end, pointTypes},
		{"color", c, colorTypes},
		{"width", Number(1), numberTypes},
	}, opts)
}

// NewText creates a text element anchored at position with the default font.
func (t *Tree) NewText(text string, position Point, c Color, opts ...ElementOption) Element {
	return t.build(KindText, []schemaProp{
		{"text", String(text), stringTypes},
		{"position", position, pointTypes},
		{"color", c, colorTypes},
		{"font", String(DefaultFont), TypesOf(TypeString)},
		{"font_size", Number(DefaultFontSize), numberTypes},
		{"anchor", String(DefaultAnchor), TypesOf(TypeString)},
		{"alignment", String(DefaultAlignment), TypesOf(TypeString)},
	}, opts)
}

package raster

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/textmation"
)

// ErrUnknownFont is returned when a family is neither built in, registered,
// nor found as a font file.
var ErrUnknownFont = errors.New("raster: unknown font family")

// builtinFonts maps the built-in family names to embedded Go fonts.
var builtinFonts = map[string][]byte{
	"sans":        goregular.TTF,
	"go":          goregular.TTF,
	"sans-bold":   gobold.TTF,
	"go-bold":     gobold.TTF,
	"sans-italic": goitalic.TTF,
	"go-italic":   goitalic.TTF,
	"mono":        gomono.TTF,
	"go-mono":     gomono.TTF,
}

// Font is a font face at a specific size.
type Font struct {
	family string
	size   float64
	face   text.Face
}

var _ textmation.Font = (*Font)(nil)

// Family returns the family name the font was loaded by.
func (f *Font) Family() string { return f.family }

// Size returns the font size in points.
func (f *Font) Size() float64 { return f.size }

// Face returns the underlying gg face.
func (f *Font) Face() text.Face { return f.face }

type faceKey struct {
	family string
	size   float64
}

// fontCache memoizes font sources by family and faces by family and size.
// Font sources are heavyweight; faces are cheap but are still reused so that
// repeated frames hit gg's glyph cache.
type fontCache struct {
	mu      sync.Mutex
	dirs    []string
	sources map[string]*text.FontSource
	faces   map[faceKey]*Font
}

func newFontCache() *fontCache {
	return &fontCache{
		sources: make(map[string]*text.FontSource),
		faces:   make(map[faceKey]*Font),
	}
}

func (c *fontCache) load(family string, size float64) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("raster: invalid font size %v for %q", size, family)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	key := faceKey{family, size}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	src, err := c.sourceLocked(family)
	if err != nil {
		return nil, err
	}
	f := &Font{family: family, size: size, face: src.Face(size)}
	c.faces[key] = f
	textmation.Logger().Debug("loaded font face", "family", family, "size", size, "font", src.Name())
	return f, nil
}

func (c *fontCache) sourceLocked(family string) (*text.FontSource, error) {
	if src, ok := c.sources[family]; ok {
		return src, nil
	}
	var (
		src *text.FontSource
		err error
	)
	if data, ok := builtinFonts[family]; ok {
		src, err = text.NewFontSource(data)
	} else if path, ok := c.findLocked(family); ok {
		src, err = text.NewFontSourceFromFile(path)
	} else {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFont, family)
	}
	if err != nil {
		return nil, fmt.Errorf("raster: load font %q: %w", family, err)
	}
	c.sources[family] = src
	return src, nil
}

// findLocked resolves family to a font file: the name as a path, then the
// name with a .ttf or .otf extension in each font directory.
func (c *fontCache) findLocked(family string) (string, bool) {
	if fileExists(family) {
		return family, true
	}
	for _, dir := range c.dirs {
		for _, name := range []string{family, family + ".ttf", family + ".otf"} {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path, true
			}
		}
	}
	return "", false
}

func (c *fontCache) register(family string, ttf []byte) error {
	src, err := text.NewFontSource(ttf)
	if err != nil {
		return fmt.Errorf("raster: register font %q: %w", family, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.sources[family]; ok {
		_ = old.Close()
	}
	c.sources[family] = src
	for key := range c.faces {
		if key.family == family {
			delete(c.faces, key)
		}
	}
	return nil
}

func (c *fontCache) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	for family, src := range c.sources {
		if err := src.Close(); err != nil {
			errs = append(errs, fmt.Errorf("raster: close font %q: %w", family, err))
		}
	}
	clear(c.sources)
	clear(c.faces)
	return errors.Join(errs...)
}

// Package preview plays rendered textmation frames in an Ebitengine window.
//
//	frames, err := textmation.RenderAnimation(scene, raster.New())
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = preview.Run(frames, preview.RunConfig{Title: "demo", FrameRate: 30, Loop: true})
//
// Space pauses and resumes, the arrow keys step while paused and Escape
// closes the window.
package preview

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/textmation"
	"github.com/phanxgames/textmation/raster"
)

// RunConfig configures the preview window.
type RunConfig struct {
	Title     string
	FrameRate float64 // playback rate; defaults to 30
	Scale     float64 // window scale factor; defaults to 1
	Loop      bool
	ShowFrame bool // overlay the frame counter
}

// Run opens a window and plays frames until it is closed, or until the last
// frame has been shown when Loop is false.
func Run(frames []textmation.Image, cfg RunConfig) error {
	if len(frames) == 0 {
		return errors.New("preview: no frames")
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 30
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}

	sources := make([]image.Image, len(frames))
	for i, f := range frames {
		sources[i] = raster.Scale(f.Image(), cfg.Scale)
	}
	b := sources[0].Bounds()

	g := &game{
		sources: sources,
		images:  make([]*ebiten.Image, len(sources)),
		clock:   newClock(len(frames), cfg.FrameRate, cfg.Loop),
		width:   b.Dx(),
		height:  b.Dy(),
		show:    cfg.ShowFrame,
	}

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(cfg.Title)
	textmation.Logger().Info("starting preview", "frames", len(frames), "frame_rate", cfg.FrameRate)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

// game adapts a clock and its frames to ebiten.Game.
type game struct {
	sources []image.Image
	images  []*ebiten.Image // uploaded lazily on first draw
	clock   *clock
	width   int
	height  int
	show    bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.clock.togglePause()
	}
	if g.clock.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
			g.clock.step(1)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
			g.clock.step(-1)
		}
		return nil
	}
	if g.clock.finished() {
		return ebiten.Termination
	}
	g.clock.advance(1 / float64(ebiten.TPS()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	i := g.clock.index
	if g.images[i] == nil {
		g.images[i] = ebiten.NewImageFromImage(g.sources[i])
	}
	screen.DrawImage(g.images[i], &ebiten.DrawImageOptions{})
	if g.show {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("frame %d/%d", i+1, g.clock.frames))
	}
}

func (g *game) Layout(int, int) (int, int) {
	return g.width, g.height
}

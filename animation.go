package textmation

import (
	"fmt"
	"iter"
	"math"
	"time"
)

// frameEpsilon absorbs float error in duration*frameRate, so 0.1s at 30fps
// counts as 3 frames rather than 2.
const frameEpsilon = 1e-9

// FrameCount returns the number of frames in an animation of duration seconds
// at frameRate frames per second. An inclusive count adds the frame at
// exactly duration. Non-positive frame rates, negative durations and
// products that are not finite or do not fit in an int yield zero frames.
func FrameCount(duration, frameRate float64, inclusive bool) int {
	if !(frameRate > 0) || !(duration >= 0) {
		return 0
	}
	f := math.Floor(duration*frameRate + frameEpsilon)
	if math.IsInf(f, 0) || f >= math.MaxInt32 {
		return 0
	}
	n := int(f)
	if inclusive {
		n++
	}
	return n
}

// Frames yields (frame, time) for every frame of an animation, where time is
// frame/frameRate. The sequence is lazy and can be ranged over any number of
// times.
func Frames(duration, frameRate float64, inclusive bool) iter.Seq2[int, float64] {
	n := FrameCount(duration, frameRate, inclusive)
	return func(yield func(int, float64) bool) {
		for frame := range n {
			if !yield(frame, float64(frame)/frameRate) {
				return
			}
		}
	}
}

// Render resets scene, computes it at time t and renders a single image.
func Render(scene Element, r Rasterizer, t float64) (Image, error) {
	if !scene.IsValid() || scene.Kind() != KindScene {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidRoot, scene)
	}
	scene.Reset()
	return renderAt(NewRenderer(r), scene, t)
}

func renderAt(renderer *Renderer, scene Element, t float64) (Image, error) {
	scene.Compute(t)
	return renderer.Render(scene)
}

// AnimationOption configures RenderAnimation.
type AnimationOption func(*animationOptions)

type animationOptions struct {
	inclusive bool
	progress  func(frame, total int)
}

// Inclusive selects whether the frame at exactly the scene duration is
// rendered. The default is true.
func Inclusive(inclusive bool) AnimationOption {
	return func(o *animationOptions) { o.inclusive = inclusive }
}

// WithProgress registers fn to be called after each frame with the number of
// frames rendered so far and the total.
func WithProgress(fn func(frame, total int)) AnimationOption {
	return func(o *animationOptions) { o.progress = fn }
}

// RenderAnimation resets scene once, then computes and renders it for every
// frame of its duration at its frame rate, reusing one Renderer. The first
// error aborts the sequence and no images are returned.
func RenderAnimation(scene Element, r Rasterizer, opts ...AnimationOption) ([]Image, error) {
	o := animationOptions{inclusive: true}
	for _, opt := range opts {
		opt(&o)
	}

	if !scene.IsValid() || scene.Kind() != KindScene {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidRoot, scene)
	}
	scene.Reset()
	duration, frameRate, err := Timing(scene)
	if err != nil {
		return nil, err
	}

	total := FrameCount(duration, frameRate, o.inclusive)
	log := Logger()
	log.Info("rendering animation",
		"scene", scene.String(),
		"frames", total,
		"duration", duration,
		"frame_rate", frameRate)
	t0 := time.Now()

	renderer := NewRenderer(r)
	images := make([]Image, 0, total)
	for frame, t := range Frames(duration, frameRate, o.inclusive) {
		img, err := renderAt(renderer, scene, t)
		if err != nil {
			return nil, fmt.Errorf("frame %d (t=%gs): %w", frame, t, err)
		}
		images = append(images, img)
		log.Debug("rendered frame", "frame", frame+1, "total", total, "time", t)
		if o.progress != nil {
			o.progress(frame+1, total)
		}
	}

	log.Info("rendered animation", "frames", len(images), "elapsed", time.Since(t0))
	return images, nil
}

package textmation

import (
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// easings maps the names accepted by Tween.Ease and Keyframe.Ease to gween
// easing functions. The empty name is linear.
var easings = map[string]ease.TweenFunc{
	"":               ease.Linear,
	"linear":         ease.Linear,
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"in-back":        ease.InBack,
	"out-back":       ease.OutBack,
	"in-out-back":    ease.InOutBack,
	"in-bounce":      ease.InBounce,
	"out-bounce":     ease.OutBounce,
	"in-out-bounce":  ease.InOutBounce,
	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
}

// Easing returns the easing function registered under name, falling back to
// linear for unknown names.
func Easing(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.Linear
}

// Tween is a time-dependent value that eases from From to To over
// [Start, Start+Duration] seconds. Outside that window it holds the nearest
// end. From and To are themselves evaluated in the reading property's
// context, so they may be relative values.
type Tween struct {
	From, To Value
	Start    float64
	Duration float64
	Ease     string
}

func (Tween) Type() Type { return TypeTween }
func (Tween) isValue()   {}

func (tw Tween) Eval(ctx PropertyContext) Value {
	from := evalOrNil(tw.From, ctx)
	to := evalOrNil(tw.To, ctx)
	return lerp(from, to, tw.progress(ctx.Time))
}

// progress returns the eased progress at time t, 0 before Start and 1 after
// the end. Overshooting easings (back, elastic) may leave [0, 1] in between.
func (tw Tween) progress(t float64) float64 {
	if t <= tw.Start {
		return 0
	}
	if tw.Duration <= 0 || t >= tw.Start+tw.Duration {
		return 1
	}
	g := gween.New(0, 1, float32(tw.Duration), Easing(tw.Ease))
	v, _ := g.Set(float32(t - tw.Start))
	return float64(v)
}

// Keyframe is one sample of a Keyframes value. Ease applies to the segment
// ending at this keyframe.
type Keyframe struct {
	Time  float64
	Value Value
	Ease  string
}

// Keyframes is a piecewise tween through a list of keyframes. Before the first
// keyframe it holds the first value, after the last it holds the last.
type Keyframes struct {
	Frames []Keyframe
}

// NewKeyframes returns Keyframes with frames sorted by time. Frames sharing a
// time keep their given order.
func NewKeyframes(frames ...Keyframe) Keyframes {
	fs := append([]Keyframe(nil), frames...)
	sort.SliceStable(fs, func(i, j int) bool { return fs[i].Time < fs[j].Time })
	return Keyframes{Frames: fs}
}

func (Keyframes) Type() Type { return TypeKeyframes }
func (Keyframes) isValue()   {}

func (k Keyframes) Eval(ctx PropertyContext) Value {
	fs := k.Frames
	if len(fs) == 0 {
		return nil
	}
	if ctx.Time <= fs[0].Time {
		return evalOrNil(fs[0].Value, ctx)
	}
	for i := 1; i < len(fs); i++ {
		if ctx.Time < fs[i].Time {
			seg := Tween{
				From:     fs[i-1].Value,
				To:       fs[i].Value,
				Start:    fs[i-1].Time,
				Duration: fs[i].Time - fs[i-1].Time,
				Ease:     fs[i].Ease,
			}
			return seg.Eval(ctx)
		}
	}
	return evalOrNil(fs[len(fs)-1].Value, ctx)
}

func evalOrNil(v Value, ctx PropertyContext) Value {
	if v == nil {
		return nil
	}
	return v.Eval(ctx)
}

// lerp interpolates between two resolved values. Numbers, points, sizes,
// bounds and colors interpolate component-wise; anything else, including
// mismatched variants, steps to b once t reaches 1.
func lerp(a, b Value, t float64) Value {
	mix := func(x, y float64) float64 { return x + (y-x)*t }
	switch a := a.(type) {
	case Number:
		if b, ok := b.(Number); ok {
			return Number(mix(float64(a), float64(b)))
		}
	case Point:
		if b, ok := b.(Point); ok {
			return Point{mix(a.X, b.X), mix(a.Y, b.Y)}
		}
	case Size:
		if b, ok := b.(Size); ok {
			return Size{mix(a.Width, b.Width), mix(a.Height, b.Height)}
		}
	case Bounds:
		if b, ok := b.(Bounds); ok {
			return Bounds{mix(a.X, b.X), mix(a.Y, b.Y), mix(a.Width, b.Width), mix(a.Height, b.Height)}
		}
	case Color:
		if b, ok := b.(Color); ok {
			return Color{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
		}
	}
	if t >= 1 {
		return b
	}
	return a
}

package textmation

import "fmt"

// NewScene creates a scene of the given size. Background defaults to white,
// duration to one second and frame rate to 30 frames per second.
func (t *Tree) NewScene(size Size, opts ...ElementOption) Element {
	return t.build(KindScene, []schemaProp{
		{"size", size, sizeTypes},
		{"background", ColorWhite, colorTypes},
		{"duration", Number(1), TypesOf(TypeNumber)},
		{"frame_rate", Number(30), TypesOf(TypeNumber)},
	}, opts)
}

// NewScene creates a scene in a fresh tree.
func NewScene(size Size, opts ...ElementOption) Element {
	return NewTree().NewScene(size, opts...)
}

// Timing returns the resolved duration and frame rate of scene.
func Timing(scene Element) (duration, frameRate float64, err error) {
	if !scene.IsValid() || scene.Kind() != KindScene {
		return 0, 0, fmt.Errorf("%w: got %s", ErrInvalidRoot, scene)
	}
	if duration, err = scene.ReadNumber("duration"); err != nil {
		return 0, 0, err
	}
	if frameRate, err = scene.ReadNumber("frame_rate"); err != nil {
		return 0, 0, err
	}
	return duration, frameRate, nil
}

// canvasOf returns the resolved image size and background of scene.
func canvasOf(scene Element) (Size, Color, error) {
	size, err := scene.ReadSize("size")
	if err != nil {
		return Size{}, Color{}, err
	}
	bg, err := scene.ReadColor("background")
	if err != nil {
		return Size{}, Color{}, err
	}
	return size, bg, nil
}

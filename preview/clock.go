package preview

// clock maps elapsed playback time to a frame index.
type clock struct {
	frames    int
	frameRate float64
	loop      bool

	elapsed float64
	index   int
	paused  bool
	done    bool
}

func newClock(frames int, frameRate float64, loop bool) *clock {
	return &clock{frames: frames, frameRate: frameRate, loop: loop}
}

// advance moves playback forward by dt seconds.
func (c *clock) advance(dt float64) {
	if c.paused || c.done || c.frames == 0 {
		return
	}
	c.elapsed += dt
	i := int(c.elapsed * c.frameRate)
	if i >= c.frames {
		if !c.loop {
			c.index = c.frames - 1
			c.done = true
			return
		}
		period := float64(c.frames) / c.frameRate
		for c.elapsed >= period {
			c.elapsed -= period
		}
		i = int(c.elapsed * c.frameRate)
	}
	c.index = i
}

// step moves by n frames while paused, wrapping around.
func (c *clock) step(n int) {
	if c.frames == 0 {
		return
	}
	c.index = ((c.index+n)%c.frames + c.frames) % c.frames
	c.elapsed = float64(c.index) / c.frameRate
	c.done = false
}

func (c *clock) togglePause() {
	c.paused = !c.paused
}

// finished reports whether a non-looping playback has shown its last frame.
func (c *clock) finished() bool {
	return c.done
}

package preview

import "testing"

func TestClockAdvance(t *testing.T) {
	c := newClock(4, 10, false)
	steps := []struct {
		dt        float64
		wantIndex int
		wantDone  bool
	}{
		{0.05, 0, false},
		{0.06, 1, false},
		{0.2, 3, false},
		{0.2, 3, true},
	}
	for i, s := range steps {
		c.advance(s.dt)
		if c.index != s.wantIndex || c.finished() != s.wantDone {
			t.Errorf("step %d: index=%d done=%v, want %d %v", i, c.index, c.finished(), s.wantIndex, s.wantDone)
		}
	}
}

func TestClockLoops(t *testing.T) {
	c := newClock(4, 10, true)
	c.advance(0.45)
	if c.index != 0 || c.finished() {
		t.Errorf("index=%d done=%v, want wrap to 0", c.index, c.finished())
	}
	c.advance(0.1)
	if c.index != 1 {
		t.Errorf("index=%d, want 1", c.index)
	}
}

func TestClockPauseAndStep(t *testing.T) {
	c := newClock(3, 10, false)
	c.togglePause()
	c.advance(1)
	if c.index != 0 {
		t.Errorf("paused clock advanced to %d", c.index)
	}
	c.step(-1)
	if c.index != 2 {
		t.Errorf("step(-1) = %d, want 2", c.index)
	}
	c.step(2)
	if c.index != 1 {
		t.Errorf("step(2) = %d, want 1", c.index)
	}
	c.togglePause()
	c.advance(0.1)
	if c.index != 2 {
		t.Errorf("resumed index = %d, want 2", c.index)
	}
}

func TestClockEmpty(t *testing.T) {
	c := newClock(0, 30, true)
	c.advance(1)
	c.step(1)
	if c.index != 0 || c.finished() {
		t.Errorf("empty clock changed: %+v", c)
	}
}

package game

import "time"

// FPSLimiter paces frames to a fixed rate. A limit of 0 disables it.
type FPSLimiter struct {
	limit int
	next  time.Time
}

// NewFPSLimiter creates a limiter for the given frames per second.
func NewFPSLimiter(limit int) *FPSLimiter {
	return &FPSLimiter{limit: limit}
}

// Wait blocks until the next frame is due. Sleeps most of the gap and
// spins the last 200µs for precision.
func (f *FPSLimiter) Wait() {
	if f.limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(f.limit)
	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}

	// Resync after a hitch instead of racing to catch up.
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}

// FPSCounter averages frame rate over a sampling window.
type FPSCounter struct {
	window time.Duration
	start  time.Time
	frames int
	fps    float64
}

// NewFPSCounter creates a counter that publishes a new average every window.
func NewFPSCounter(window time.Duration, now time.Time) *FPSCounter {
	return &FPSCounter{window: window, start: now}
}

// Frame records one frame at now and reports whether a new sample was
// published.
func (c *FPSCounter) Frame(now time.Time) bool {
	c.frames++
	elapsed := now.Sub(c.start)
	if elapsed < c.window {
		return false
	}
	c.fps = float64(c.frames) / elapsed.Seconds()
	c.frames = 0
	c.start = now
	return true
}

// FPS returns the last published sample.
func (c *FPSCounter) FPS() float64 {
	return c.fps
}

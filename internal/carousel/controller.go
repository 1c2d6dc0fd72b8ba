// Package carousel implements the slide controller behind the services page.
package carousel

import (
	"sync"
	"time"
)

// TransitionDuration is how long a slide change locks navigation.
const TransitionDuration = 700 * time.Millisecond

// stopper is the part of *time.Timer the controller needs.
type stopper interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) stopper

func timeAfterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// Controller owns the active slide index of a looping slide show and the
// lock held while a transition plays. Navigation while transitioning is
// ignored, not queued.
type Controller struct {
	mu            sync.Mutex
	count         int
	index         int
	transitioning bool
	timer         stopper
	generation    uint64
	closed        bool

	after afterFunc
}

// New returns an idle controller at slide 0 of count slides.
func New(count int) *Controller {
	return &Controller{count: max(count, 0), after: timeAfterFunc}
}

// At returns an idle controller showing slide index of count slides. An
// index outside the sequence shows slide 0.
func At(index, count int) *Controller {
	c := New(count)
	if index >= 0 && index < c.count {
		c.index = index
	}
	return c
}

// Index returns the active slide. It is always a valid index, or 0 when
// there are no slides.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Count returns the number of slides.
func (c *Controller) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Transitioning reports whether a slide change is still playing.
func (c *Controller) Transitioning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transitioning
}

// Next advances to the following slide, wrapping after the last.
func (c *Controller) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count == 0 {
		return false
	}
	return c.moveLocked(nextIndex(c.index, c.count))
}

// Previous moves to the preceding slide, wrapping from the first to the last.
func (c *Controller) Previous() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count == 0 {
		return false
	}
	return c.moveLocked(previousIndex(c.index, c.count))
}

// GoTo jumps to slide i. Jumping to the active slide or outside the
// sequence does nothing.
func (c *Controller) GoTo(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= c.count || i == c.index {
		return false
	}
	return c.moveLocked(i)
}

// moveLocked starts a transition to i and reports whether it did.
func (c *Controller) moveLocked(i int) bool {
	if c.transitioning || c.closed {
		return false
	}
	c.index = i
	c.transitioning = true
	c.generation++
	gen := c.generation
	c.timer = c.after(TransitionDuration, func() { c.settle(gen) })
	return true
}

// settle ends the transition started as generation gen. Callbacks from a
// stopped or superseded timer are ignored.
func (c *Controller) settle(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.closed {
		return
	}
	c.transitioning = false
	c.timer = nil
}

// SetCount replaces the slide count, as when new content arrives. When the
// active index no longer fits it resets to 0 without starting a transition.
func (c *Controller) SetCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = max(n, 0)
	if c.index >= c.count {
		c.index = 0
	}
}

// Close stops a pending transition timer. The controller ignores navigation
// afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.transitioning = false
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func nextIndex(i, count int) int {
	return (i + 1) % count
}

func previousIndex(i, count int) int {
	return (i - 1 + count) % count
}

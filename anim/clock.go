package anim

import (
	"sync"
	"time"
)

// Clock abstracts time so hosts and tests share the same frame pump.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock (monotonic reading included).
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock moved by hand in tests.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock creates a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Pump flushes a FrameQueue with timestamps read from a Clock.
type Pump struct {
	queue  *FrameQueue
	clock  Clock
	origin time.Time
}

// NewPump starts measuring timestamps from the clock's current reading.
func NewPump(q *FrameQueue, c Clock) *Pump {
	if c == nil {
		c = SystemClock{}
	}
	return &Pump{queue: q, clock: c, origin: c.Now()}
}

// Tick delivers one device frame.
func (p *Pump) Tick() int {
	return p.queue.Flush(p.clock.Now().Sub(p.origin))
}

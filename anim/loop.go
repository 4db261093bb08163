package anim

import (
	"sync"
	"time"
)

// State of a Loop.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// FrameFunc advances and draws one frame. elapsed is in seconds since the
// loop's first frame.
type FrameFunc func(elapsed float64)

// Loop runs a FrameFunc once per scheduled frame while Running.
//
// The elapsed-time origin is the first frame ever delivered and survives
// Stop/Start, so restarts after a resize do not jump the wave phase. Reset
// drops it.
type Loop struct {
	sched Scheduler
	frame FrameFunc

	mu         sync.Mutex
	state      State
	epoch      uint64 // bumped on every Start/Stop, stale callbacks compare against it
	pending    FrameID
	hasPending bool
	origin     time.Duration
	hasOrigin  bool
	frames     uint64
	elapsed    float64
}

// NewLoop creates a stopped loop.
func NewLoop(s Scheduler, fn FrameFunc) *Loop {
	return &Loop{sched: s, frame: fn}
}

// Start begins requesting frames. A running loop is stopped first so only one
// chain of callbacks is ever live.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
	l.state = Running
	l.epoch++
	l.scheduleLocked(l.epoch)
}

// Stop cancels the pending frame. It is safe to call at any time, repeatedly.
// When called from the goroutine that flushes the scheduler, including from
// inside a frame, no FrameFunc call starts after Stop returns. A Stop from
// another goroutine can race with a frame that already left the scheduler.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
}

func (l *Loop) stopLocked() {
	if l.state != Running {
		return
	}
	l.state = Stopped
	l.epoch++
	if l.hasPending {
		l.sched.CancelFrame(l.pending)
		l.hasPending = false
	}
}

func (l *Loop) scheduleLocked(epoch uint64) {
	l.pending = l.sched.RequestFrame(func(ts time.Duration) {
		l.tick(epoch, ts)
	})
	l.hasPending = true
}

func (l *Loop) tick(epoch uint64, ts time.Duration) {
	l.mu.Lock()
	if l.state != Running || epoch != l.epoch {
		l.mu.Unlock()
		return
	}
	l.hasPending = false
	if !l.hasOrigin {
		l.origin = ts
		l.hasOrigin = true
	}
	elapsed := (ts - l.origin).Seconds()
	if elapsed < l.elapsed {
		elapsed = l.elapsed
	}
	l.elapsed = elapsed
	l.frames++
	l.mu.Unlock()

	l.frame(elapsed)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == Running && epoch == l.epoch && !l.hasPending {
		l.scheduleLocked(epoch)
	}
}

// Reset forgets the elapsed-time origin; the next frame starts again at 0.
func (l *Loop) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hasOrigin = false
	l.elapsed = 0
}

func (l *Loop) Running() bool {
	return l.State() == Running
}

func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Frames returns how many frames have run.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// Elapsed returns the elapsed time passed to the last frame.
func (l *Loop) Elapsed() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.elapsed
}

package input

import (
	"sync"

	"lockin/particle"
)

// Source tells which device produced the interaction point.
type Source int

const (
	None Source = iota
	Pointer
	Touch
)

func (s Source) String() string {
	switch s {
	case Pointer:
		return "pointer"
	case Touch:
		return "touch"
	default:
		return "none"
	}
}

// State is the interaction the particle field reacts to.
type State struct {
	Point    particle.Vec2
	HasPoint bool
	Source   Source
	Active   bool
}

// Probe converts the state into what a frame reacts to. Only an active
// interaction with a recorded point repels particles.
func (s State) Probe() particle.Probe {
	if !s.Active || !s.HasPoint {
		return particle.Probe{}
	}
	return particle.Probe{Pos: s.Point, Present: true}
}

// Tracker folds pointer and touch events into one State.
// Event handlers and the frame reader may run on different goroutines.
type Tracker struct {
	mu    sync.RWMutex
	state State
	hit   HitTester
}

// NewTracker creates a tracker. hit may be nil when there is no foreground content.
func NewTracker(hit HitTester) *Tracker {
	return &Tracker{hit: hit}
}

// SetHitTester replaces the foreground content query.
func (t *Tracker) SetHitTester(hit HitTester) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hit = hit
}

// PointerMove records a mouse position and activates interaction.
func (t *Tracker) PointerMove(x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = State{
		Point:    particle.Vec2{X: x, Y: y},
		HasPoint: true,
		Source:   Pointer,
		Active:   true,
	}
}

// PointerLeave forgets the mouse position once the cursor leaves the surface.
// Touch state is left alone.
func (t *Tracker) PointerLeave() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Source == Pointer {
		t.state = State{}
	}
}

// TouchStart records the first touch point. Touches landing on foreground
// content pass through: the point is kept but interaction stays inactive.
func (t *Tracker) TouchStart(points []particle.Vec2) {
	if len(points) == 0 {
		return
	}
	p := points[0]

	t.mu.Lock()
	defer t.mu.Unlock()
	onContent := t.hit != nil && t.hit.Contains(p.X, p.Y)
	t.state = State{
		Point:    p,
		HasPoint: true,
		Source:   Touch,
		Active:   !onContent,
	}
}

// TouchMove follows the first touch point without changing whether it is active.
func (t *Tracker) TouchMove(points []particle.Vec2) {
	if len(points) == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Point = points[0]
	t.state.HasPoint = true
	t.state.Source = Touch
}

// TouchEnd deactivates and drops the point so nothing stays repelled.
func (t *Tracker) TouchEnd() {
	t.Reset()
}

// TouchCancel behaves like TouchEnd.
func (t *Tracker) TouchCancel() {
	t.Reset()
}

// Reset returns to the empty state.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = State{}
}

// Snapshot returns a consistent copy for one frame.
func (t *Tracker) Snapshot() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

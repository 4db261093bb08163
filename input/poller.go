package input

import "lockin/particle"

// Frame is the raw device state sampled once per host frame.
type Frame struct {
	Cursor       particle.Vec2
	CursorInside bool
	Touches      []particle.Vec2 // active touches, first one drives interaction
}

// Poller turns per-frame device samples into Tracker events, for hosts that
// poll input instead of receiving callbacks.
type Poller struct {
	tracker *Tracker

	lastCursor particle.Vec2
	hadCursor  bool
	touching   bool
}

// NewPoller feeds the given tracker.
func NewPoller(t *Tracker) *Poller {
	return &Poller{tracker: t}
}

// Apply compares f with the previous frame and emits the matching events.
func (p *Poller) Apply(f Frame) {
	switch {
	case len(f.Touches) > 0 && !p.touching:
		p.tracker.TouchStart(f.Touches)
		p.touching = true
	case len(f.Touches) > 0:
		p.tracker.TouchMove(f.Touches)
	case p.touching:
		p.tracker.TouchEnd()
		p.touching = false
	}
	if p.touching {
		// touch devices report an emulated cursor as well; only real movement
		// after the touch counts as pointer input
		p.lastCursor = f.Cursor
		p.hadCursor = true
		return
	}

	switch {
	case !f.CursorInside:
		if p.hadCursor {
			p.tracker.PointerLeave()
		}
		p.hadCursor = false
	case !p.hadCursor || f.Cursor != p.lastCursor:
		p.tracker.PointerMove(f.Cursor.X, f.Cursor.Y)
		p.hadCursor = true
	}
	p.lastCursor = f.Cursor
}

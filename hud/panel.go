// Package hud lays out the foreground panel drawn over the particle field and
// remembers where it went, so touches on it pass through.
package hud

import (
	"sync"
	"time"

	"lockin/goal"
	"lockin/input"
	"lockin/quote"
)

// Panel geometry in screen pixels
const (
	Padding = 16
	Margin  = 24
)

// Panel is the foreground text: the rotating quote, or the committed goal.
type Panel struct {
	Body   string
	Footer string
}

// QuotePanel formats a quote for the panel.
func QuotePanel(q quote.Quote) Panel {
	return Panel{Body: "“" + q.Text + "”", Footer: "- " + q.Author}
}

// GoalPanel formats a committed goal for the panel.
func GoalPanel(g goal.Goal, now time.Time) Panel {
	footer := g.FormattedDeadline()
	if days := g.DaysLabel(now); days != "" {
		footer = days + " · " + footer
	}
	return Panel{
		Body:   g.Name + ": " + g.ShortMission(),
		Footer: footer,
	}
}

// Place centers a two-line panel above the bottom edge. textWidth is the
// widest line; the panel never gets wider than the screen minus margins.
func Place(screenWidth, screenHeight, textWidth, lineHeight float64) input.Rect {
	width := textWidth + 2*Padding
	if limit := screenWidth - 2*Margin; width > limit {
		width = max(0, limit)
	}
	height := 2*lineHeight + 2*Padding
	return input.Rect{
		X:      (screenWidth - width) / 2,
		Y:      screenHeight - height - Margin,
		Width:  width,
		Height: height,
	}
}

// Region is the last drawn panel rectangle. It is an input.HitTester and is
// safe to update from the draw goroutine while input reads it.
type Region struct {
	mu   sync.RWMutex
	rect input.Rect
}

// Set records where the panel was drawn.
func (r *Region) Set(rect input.Rect) {
	r.mu.Lock()
	r.rect = rect
	r.mu.Unlock()
}

// Rect returns the recorded rectangle.
func (r *Region) Rect() input.Rect {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rect
}

// Contains reports whether (x, y) lies on the panel. Nothing is hit before
// the first draw.
func (r *Region) Contains(x, y float64) bool {
	rect := r.Rect()
	return !rect.Empty() && rect.Contains(x, y)
}

// Package quote holds the motivational quotes shown over the particle field.
package quote

import (
	"math/rand"
	"time"
)

// Quote is one line of text and who said it.
type Quote struct {
	Text   string `yaml:"text"`
	Author string `yaml:"author"`
}

// Fallback is shown when no quote can be picked.
var Fallback = Quote{
	Text:   "Focus on your goal, the journey awaits.",
	Author: "LockIn",
}

// DefaultInterval is how often the panel switches quotes.
const DefaultInterval = 20 * time.Second

// Builtin is the stock quote list.
var Builtin = []Quote{
	{Text: "No cap, you gotta lock in and stay focused on the grind. The bag ain't gonna secure itself.", Author: "Hustle Mindset"},
	{Text: "Respectfully, if you ain't putting in that work, don't be surprised when you stay mid. Lock in!", Author: "Grind Culture"},
	{Text: "It's giving main character energy when you lock in and ignore the opps. Stay toxic to negativity.", Author: "Success Vibes"},
	{Text: "Finna be great, no debate. When you lock in, the universe better watch out, fr fr.", Author: "Winning Mentality"},
	{Text: "Straight bussin' when you lock in and achieve your goals. That's real tea, no shade.", Author: "Achievement Unlocked"},
	{Text: "Sheeesh! When you lock in, you different. They sleep, you grind. Period, pooh.", Author: "Grind Different"},
	{Text: "On God, when you lock in and focus, you're literally that girl/guy. Big flex energy.", Author: "Focus Mode"},
	{Text: "It's the locking in for me. Rent was due yesterday, and the grind don't stop. We outside!", Author: "Hustle Hard"},
	{Text: "Deadass, when you lock in, you unlock levels they ain't even heard of yet. Stay toxic productive.", Author: "Level Up"},
	{Text: "Ain't no way you're not gonna succeed when you lock in. That's just facts, no printer.", Author: "Success Mindset"},
}

// Random picks a quote uniformly, or Fallback from an empty list.
func Random(quotes []Quote, rng *rand.Rand) Quote {
	if len(quotes) == 0 || rng == nil {
		return Fallback
	}
	return quotes[rng.Intn(len(quotes))]
}

// Rotator switches quotes on a fixed interval. Rotation is paused while a goal
// is committed so the user's own words stay on screen.
type Rotator struct {
	quotes   []Quote
	rng      *rand.Rand
	interval time.Duration

	current Quote
	index   int
	next    time.Time
	paused  bool
}

// NewRotator shows a first quote immediately and schedules the next one.
func NewRotator(quotes []Quote, interval time.Duration, rng *rand.Rand, now time.Time) *Rotator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}
	r := &Rotator{quotes: quotes, rng: rng, interval: interval, index: -1}
	r.pick()
	r.next = now.Add(interval)
	return r
}

// pick moves to a random quote other than the current one when possible.
func (r *Rotator) pick() {
	switch n := len(r.quotes); n {
	case 0:
		r.current, r.index = Fallback, -1
	case 1:
		r.current, r.index = r.quotes[0], 0
	default:
		if r.index < 0 {
			r.index = r.rng.Intn(n)
		} else {
			i := r.rng.Intn(n - 1)
			if i >= r.index {
				i++
			}
			r.index = i
		}
		r.current = r.quotes[r.index]
	}
}

// Update switches quotes once the interval elapsed. It reports whether the
// current quote changed.
func (r *Rotator) Update(now time.Time) bool {
	if r.paused || now.Before(r.next) {
		return false
	}
	prev := r.current
	r.pick()
	r.next = now.Add(r.interval)
	return r.current != prev
}

// Pause stops rotation.
func (r *Rotator) Pause() {
	r.paused = true
}

// Resume restarts rotation with a full interval from now.
func (r *Rotator) Resume(now time.Time) {
	if !r.paused {
		return
	}
	r.paused = false
	r.next = now.Add(r.interval)
}

// Paused reports whether rotation is paused.
func (r *Rotator) Paused() bool { return r.paused }

// Current returns the quote on screen.
func (r *Rotator) Current() Quote { return r.current }

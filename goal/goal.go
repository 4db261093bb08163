// Package goal validates a committed goal and renders it for sharing.
package goal

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the deadline format, as produced by a date input.
const DateLayout = "2006-01-02"

// share text limits
const (
	shareMaxRunes  = 80
	shareKeepRunes = 77
	fileGoalRunes  = 10
)

var (
	ErrMissingField = errors.New("goal: please fill out all fields")
	ErrBadDeadline  = errors.New("goal: deadline is not a date")
	ErrDeadlinePast = errors.New("goal: deadline must be today or in the future")
)

// Goal is what the user locks in on.
type Goal struct {
	Name      string
	Mission   string
	Timeframe string
	Deadline  string // YYYY-MM-DD
}

// New trims the fields and validates the result against now.
func New(name, mission, timeframe, deadline string, now time.Time) (Goal, error) {
	g := Goal{
		Name:      strings.TrimSpace(name),
		Mission:   strings.TrimSpace(mission),
		Timeframe: strings.TrimSpace(timeframe),
		Deadline:  strings.TrimSpace(deadline),
	}
	if err := g.Validate(now); err != nil {
		return Goal{}, err
	}
	return g, nil
}

// Validate requires every field and a deadline no earlier than today, where
// today is the calendar date of now in its own location.
func (g Goal) Validate(now time.Time) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", g.Name},
		{"mission", g.Mission},
		{"timeframe", g.Timeframe},
		{"deadline", g.Deadline},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMissingField, strings.Join(missing, ", "))
	}

	d, err := g.DeadlineDate()
	if err != nil {
		return err
	}
	if d.Before(dateOf(now)) {
		return fmt.Errorf("%w: %s", ErrDeadlinePast, g.Deadline)
	}
	return nil
}

// DeadlineDate parses Deadline as a UTC calendar date.
func (g Goal) DeadlineDate() (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(g.Deadline))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDeadline, g.Deadline)
	}
	return d, nil
}

// dateOf returns the calendar date of t as UTC midnight.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysLeft counts whole days from today to the deadline, never below 0.
// ok is false when the deadline does not parse.
func (g Goal) DaysLeft(now time.Time) (days int, ok bool) {
	d, err := g.DeadlineDate()
	if err != nil {
		return 0, false
	}
	diff := d.Sub(dateOf(now)).Hours() / 24
	return max(0, int(math.Ceil(diff))), true
}

// FormattedDeadline renders the deadline like "Mar 9, 2025", or the raw
// string when it does not parse.
func (g Goal) FormattedDeadline() string {
	d, err := g.DeadlineDate()
	if err != nil {
		return g.Deadline
	}
	return d.Format("Jan 2, 2006")
}

// DaysLabel returns "1 Day Left" or "N Days Left".
func (g Goal) DaysLabel(now time.Time) string {
	days, ok := g.DaysLeft(now)
	if !ok {
		return ""
	}
	if days == 1 {
		return "1 Day Left"
	}
	return fmt.Sprintf("%d Days Left", days)
}

// ShortMission cuts missions longer than 80 characters to 77 plus an ellipsis.
func (g Goal) ShortMission() string {
	if utf8.RuneCountInString(g.Mission) <= shareMaxRunes {
		return g.Mission
	}
	return string([]rune(g.Mission)[:shareKeepRunes]) + "..."
}

// ShareText is the message posted when sharing the goal.
func (g Goal) ShareText(site string, now time.Time) string {
	daysText := ""
	if days, ok := g.DaysLeft(now); ok {
		daysText = fmt.Sprintf(" (%d days left!)", days)
	}
	return fmt.Sprintf("%s is locked in! 🚀\n🎯 Goal: \"%s\"\n⏳ Duration: %s\n🗓️ Deadline: %s%s\n\nJoin the #LockIn challenge & focus on your goals: %s",
		g.Name, g.ShortMission(), g.Timeframe, g.FormattedDeadline(), daysText, site)
}

// FileName names the exported card: lockin-goal-<name>-<mission[:10]>-<unix ms>.png
// with every character outside [a-z0-9] replaced by an underscore.
func (g Goal) FileName(now time.Time) string {
	mission := []rune(g.Mission)
	if len(mission) > fileGoalRunes {
		mission = mission[:fileGoalRunes]
	}
	return fmt.Sprintf("lockin-goal-%s-%s-%d.png", sanitize(g.Name), sanitize(string(mission)), now.UnixMilli())
}

func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

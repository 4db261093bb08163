package perf

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Monitor tracks frames per second and asks the profiler for a capture when
// the rate stays under the threshold.
type Monitor struct {
	fps              float64
	fpsUpdateCounter int
	fpsUpdateTimer   float64

	// Window is how much time one FPS sample covers
	Window float64

	threshold float64
	warmup    time.Duration
	cooldown  time.Duration
	started   time.Time
	lastDrop  time.Time

	profiler *Profiler
	logger   *log.Logger

	// Context adds detail to the capture name, e.g. the particle count
	Context func() string
}

// NewMonitor creates a monitor. profiler may be nil to only measure.
func NewMonitor(threshold float64, cooldown time.Duration, profiler *Profiler, logger *log.Logger, now time.Time) *Monitor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Monitor{
		fps:       60,
		Window:    0.5,
		threshold: threshold,
		warmup:    3 * time.Second,
		cooldown:  cooldown,
		started:   now,
		profiler:  profiler,
		logger:    logger,
	}
}

// Frame records one frame that took dt seconds. It reports whether a drop was
// detected on this frame.
func (m *Monitor) Frame(now time.Time, dt float64) bool {
	m.fpsUpdateTimer += dt
	m.fpsUpdateCounter++
	if m.fpsUpdateTimer < m.Window {
		return false
	}
	if m.fpsUpdateCounter > 0 {
		m.fps = float64(m.fpsUpdateCounter) / m.fpsUpdateTimer
	}
	m.fpsUpdateCounter = 0
	m.fpsUpdateTimer = 0

	if m.fps >= m.threshold || now.Sub(m.started) < m.warmup {
		return false
	}
	if !m.lastDrop.IsZero() && now.Sub(m.lastDrop) < m.cooldown {
		return false
	}
	m.lastDrop = now

	reason := fmt.Sprintf("fps%.0f", m.fps)
	if m.Context != nil {
		reason += "-" + m.Context()
	}
	m.logger.Warn("frame rate drop", "fps", fmt.Sprintf("%.1f", m.fps), "reason", reason)
	if m.profiler != nil {
		if err := m.profiler.CaptureProfile(reason, nil); err != nil {
			m.logger.Debug("profile not captured", "err", err)
		}
	}
	return true
}

// FPS returns the last measured rate.
func (m *Monitor) FPS() float64 {
	return m.fps
}

package viewport

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"lockin/glyph"
	"lockin/particle"
)

// Defaults
const (
	DefaultBreakpoint = 768
	DefaultDebounce   = 150 * time.Millisecond
)

// MaskSource rasterizes the words for a viewport.
type MaskSource interface {
	Sample(width, height int, compact bool) (*glyph.Mask, error)
}

// Seeder is the particle store being reseeded.
type Seeder interface {
	Seed(m particle.Mask, p particle.Params) (int, error)
	Clear()
}

// Runner is the animation loop.
type Runner interface {
	Start()
	Stop()
	Running() bool
}

// Resizer resizes the drawing surface the field is rendered on.
type Resizer interface {
	ResizeSurface(width, height int) error
}

// Options tune a Controller. Zero values select the defaults.
type Options struct {
	Breakpoint int
	Debounce   time.Duration
	Params     func(compact bool) particle.Params
	Resizer    Resizer
	Logger     *log.Logger
}

// IsCompact reports whether width falls under the breakpoint.
func IsCompact(width, breakpoint int) bool {
	return width < breakpoint
}

// Blank reports whether a Mount or reseed error left no animated background.
// A low density error comes with a running, sparser field and is not blank.
func Blank(err error) bool {
	return err != nil && !errors.Is(err, particle.ErrLowSeedDensity)
}

type size struct {
	w, h int
}

// Controller owns sizing of the drawing surface and reseeds the field whenever
// the viewport settles on a new size. It is not safe for concurrent use; the
// host drives it from its update goroutine.
type Controller struct {
	sampler MaskSource
	field   Seeder
	loop    Runner
	opts    Options
	logger  *log.Logger

	mounted bool
	current size
	compact bool

	pending    size
	hasPending bool
	deadline   time.Time

	seeded  int
	err     error
	reseeds int
}

// New wires a controller. The loop is not touched until Mount.
func New(sampler MaskSource, field Seeder, loop Runner, opts Options) *Controller {
	if opts.Breakpoint <= 0 {
		opts.Breakpoint = DefaultBreakpoint
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	if opts.Params == nil {
		opts.Params = particle.DefaultParams
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		sampler: sampler,
		field:   field,
		loop:    loop,
		opts:    opts,
		logger:  logger,
	}
}

// Mount sizes the surface and seeds the first field.
func (c *Controller) Mount(width, height int) error {
	c.mounted = true
	c.hasPending = false
	c.apply(size{width, height})
	return c.err
}

// Resize notes a new viewport size. The reseed happens on the first Tick at
// least Debounce after the last size change. Sizes equal to the settled one
// are ignored.
func (c *Controller) Resize(width, height int, now time.Time) {
	if !c.mounted {
		return
	}
	s := size{width, height}
	if s == c.current {
		c.hasPending = false
		return
	}
	if c.hasPending && s == c.pending {
		return
	}
	c.pending = s
	c.hasPending = true
	c.deadline = now.Add(c.opts.Debounce)
	if c.opts.Debounce == 0 {
		c.Tick(now)
	}
}

// Tick applies a settled resize. It reports whether a reseed ran.
func (c *Controller) Tick(now time.Time) bool {
	if !c.mounted || !c.hasPending || now.Before(c.deadline) {
		return false
	}
	c.hasPending = false
	c.apply(c.pending)
	return true
}

// Unmount stops the loop and drops all particles.
func (c *Controller) Unmount() {
	c.loop.Stop()
	c.field.Clear()
	c.mounted = false
	c.hasPending = false
	c.seeded = 0
}

func (c *Controller) apply(s size) {
	compact := IsCompact(s.w, c.opts.Breakpoint)
	if c.reseeds > 0 && compact != c.compact {
		c.logger.Debug("device class changed", "compact", compact, "width", s.w)
	}
	c.current = s
	c.compact = compact
	c.reseeds++
	c.err = c.reseed()
}

// reseed runs stop, resize, sample, seed and start in that order. The loop
// only restarts when at least one particle exists.
func (c *Controller) reseed() error {
	c.loop.Stop()
	c.seeded = 0
	w, h := c.current.w, c.current.h

	if c.opts.Resizer != nil {
		if err := c.opts.Resizer.ResizeSurface(w, h); err != nil {
			c.field.Clear()
			err = fmt.Errorf("resize surface to %dx%d: %w: %v", w, h, glyph.ErrSurfaceUnavailable, err)
			c.logger.Error("surface unavailable", "err", err)
			return err
		}
	}

	mask, err := c.sampler.Sample(w, h, c.compact)
	if err == nil && mask == nil {
		err = glyph.ErrMaskSamplingFailed
	}
	if err != nil {
		c.field.Clear()
		c.logger.Error("glyph sampling failed", "width", w, "height", h, "err", err)
		return fmt.Errorf("sample glyph mask: %w", err)
	}

	n, err := c.field.Seed(mask, c.opts.Params(c.compact))
	c.seeded = n
	switch {
	case errors.Is(err, particle.ErrLowSeedDensity):
		c.logger.Warn("low particle density", "err", err)
	case err != nil:
		c.logger.Error("seeding failed", "width", w, "height", h, "err", err)
		return fmt.Errorf("seed field: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("seed field: %w", particle.ErrNoParticlesSeeded)
	}

	c.loop.Start()
	c.logger.Info("field seeded", "width", w, "height", h, "compact", c.compact, "particles", n)
	return err
}

// Compact reports the current device class.
func (c *Controller) Compact() bool { return c.compact }

// Size returns the settled viewport size.
func (c *Controller) Size() (int, int) { return c.current.w, c.current.h }

// Err returns the outcome of the last reseed. A low density error is
// returned alongside a running loop.
func (c *Controller) Err() error { return c.err }

// Seeded returns the particle count of the last reseed.
func (c *Controller) Seeded() int { return c.seeded }

// Mounted reports whether Mount ran without a later Unmount.
func (c *Controller) Mounted() bool { return c.mounted }

// Pending reports whether a resize is waiting for its debounce to elapse.
func (c *Controller) Pending() bool { return c.hasPending }

package viewport

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"lockin/anim"
	"lockin/glyph"
	"lockin/particle"
)

// recordingSampler wraps a MaskSource and notes what each call saw.
type recordingSampler struct {
	next            MaskSource
	loop            Runner
	calls           int
	fontSizes       []float64
	runningOnSample []bool
	err             error
}

func (r *recordingSampler) Sample(w, h int, compact bool) (*glyph.Mask, error) {
	r.calls++
	r.runningOnSample = append(r.runningOnSample, r.loop.Running())
	if r.err != nil {
		return nil, r.err
	}
	m, err := r.next.Sample(w, h, compact)
	if m != nil {
		r.fontSizes = append(r.fontSizes, m.FontSize)
	}
	return m, err
}

type failingSeeder struct {
	cleared int
}

func (f *failingSeeder) Seed(particle.Mask, particle.Params) (int, error) {
	return 0, particle.ErrNoParticlesSeeded
}

func (f *failingSeeder) Clear() { f.cleared++ }

type resizerFunc func(w, h int) error

func (f resizerFunc) ResizeSurface(w, h int) error { return f(w, h) }

type rig struct {
	ctrl    *Controller
	sampler *recordingSampler
	field   *particle.Field
	loop    *anim.Loop
	queue   *anim.FrameQueue
	resized [][2]int
}

func newRig(t *testing.T, debounce time.Duration) *rig {
	t.Helper()
	r := &rig{
		queue: anim.NewFrameQueue(),
		field: particle.NewField(rand.New(rand.NewSource(1))),
	}
	r.loop = anim.NewLoop(r.queue, func(e float64) { r.field.Advance(e, particle.Probe{}) })
	r.sampler = &recordingSampler{next: glyph.NewSampler(), loop: r.loop}
	r.ctrl = New(r.sampler, r.field, r.loop, Options{
		Debounce: debounce,
		Logger:   log.New(io.Discard),
		Resizer: resizerFunc(func(w, h int) error {
			r.resized = append(r.resized, [2]int{w, h})
			return nil
		}),
	})
	return r
}

func TestResizeAcrossBreakpoint(t *testing.T) {
	r := newRig(t, DefaultDebounce)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := r.ctrl.Mount(1024, 768); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if r.ctrl.Compact() {
		t.Fatal("1024 px wide viewport classified compact")
	}
	if want := particle.DefaultParams(false).TargetCount(1024, 768); !r.loop.Running() || r.field.Len() != want {
		t.Fatalf("after mount running=%v particles=%d, want %d", r.loop.Running(), r.field.Len(), want)
	}
	if r.sampler.fontSizes[0] != glyph.WideFontSize {
		t.Errorf("wide mask font size = %v", r.sampler.fontSizes[0])
	}
	r.queue.Flush(0)

	r.ctrl.Resize(320, 568, now)
	if r.sampler.calls != 1 {
		t.Fatal("resize sampled before the debounce elapsed")
	}
	if r.ctrl.Tick(now.Add(DefaultDebounce / 2)) {
		t.Fatal("Tick reseeded early")
	}
	if !r.ctrl.Tick(now.Add(DefaultDebounce)) {
		t.Fatal("Tick did not reseed after the debounce")
	}

	if !r.ctrl.Compact() {
		t.Error("320 px wide viewport not classified compact")
	}
	if r.sampler.calls != 2 || r.sampler.fontSizes[1] != 60 {
		t.Errorf("resample calls=%d font sizes=%v, want second at 60", r.sampler.calls, r.sampler.fontSizes)
	}
	if r.sampler.runningOnSample[1] {
		t.Error("loop was running while the mask was resampled")
	}
	if got := r.resized[len(r.resized)-1]; got != [2]int{320, 568} {
		t.Errorf("surface resized to %v", got)
	}
	if r.ctrl.Err() != nil {
		t.Errorf("Err() after resize = %v", r.ctrl.Err())
	}
	if want := particle.DefaultParams(true).TargetCount(320, 568); !r.loop.Running() || r.field.Len() != want {
		t.Errorf("after resize running=%v particles=%d, want %d", r.loop.Running(), r.field.Len(), want)
	}
	if p := r.field.Params(); !p.Compact || p.Radius != particle.CompactRadius {
		t.Errorf("field params not compact: %+v", p)
	}
	if w, h := r.ctrl.Size(); w != 320 || h != 568 {
		t.Errorf("Size() = %dx%d", w, h)
	}
	if r.queue.Pending() != 1 {
		t.Errorf("Pending() = %d after restart, want exactly one loop", r.queue.Pending())
	}
}

func TestResizeDebounceCoalesces(t *testing.T) {
	r := newRig(t, 100*time.Millisecond)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r.ctrl.Mount(800, 600)

	for i := 0; i < 10; i++ {
		r.ctrl.Resize(800+i*10, 600, now.Add(time.Duration(i)*20*time.Millisecond))
		r.ctrl.Tick(now.Add(time.Duration(i) * 20 * time.Millisecond))
	}
	if r.sampler.calls != 1 {
		t.Fatalf("continuous resizing sampled %d times", r.sampler.calls)
	}

	r.ctrl.Tick(now.Add(time.Second))
	if r.sampler.calls != 2 {
		t.Fatalf("settled resize sampled %d times, want 2", r.sampler.calls)
	}
	if w, _ := r.ctrl.Size(); w != 890 {
		t.Errorf("settled width = %d, want 890", w)
	}
}

func TestResizeToSameSizeIgnored(t *testing.T) {
	r := newRig(t, 0)
	now := time.Now()
	r.ctrl.Mount(800, 600)

	r.ctrl.Resize(800, 600, now)
	r.ctrl.Tick(now.Add(time.Second))
	if r.sampler.calls != 1 || r.ctrl.Pending() {
		t.Errorf("same size resize sampled %d times, pending=%v", r.sampler.calls, r.ctrl.Pending())
	}

	// a resize that bounces back before settling is dropped too
	r2 := newRig(t, time.Second)
	r2.ctrl.Mount(800, 600)
	r2.ctrl.Resize(900, 600, now)
	r2.ctrl.Resize(800, 600, now)
	r2.ctrl.Tick(now.Add(time.Hour))
	if r2.sampler.calls != 1 {
		t.Errorf("bounced resize sampled %d times", r2.sampler.calls)
	}
}

func TestZeroDebounceAppliesImmediately(t *testing.T) {
	r := newRig(t, 0)
	r.ctrl.Mount(800, 600)
	r.ctrl.Resize(500, 600, time.Now())
	if r.sampler.calls != 2 || !r.ctrl.Compact() {
		t.Errorf("calls=%d compact=%v", r.sampler.calls, r.ctrl.Compact())
	}
}

func TestSamplingFailureLeavesLoopStopped(t *testing.T) {
	r := newRig(t, 0)
	r.ctrl.Mount(800, 600)
	if !r.loop.Running() {
		t.Fatal("loop not running after mount")
	}

	r.sampler.err = glyph.ErrMaskSamplingFailed
	r.ctrl.Resize(640, 480, time.Now())

	if !errors.Is(r.ctrl.Err(), glyph.ErrMaskSamplingFailed) {
		t.Errorf("Err() = %v", r.ctrl.Err())
	}
	if r.loop.Running() || r.field.Len() != 0 {
		t.Errorf("after failure running=%v particles=%d", r.loop.Running(), r.field.Len())
	}

	// the next successful resize recovers
	r.sampler.err = nil
	r.ctrl.Resize(1280, 720, time.Now())
	if r.ctrl.Err() != nil {
		t.Errorf("Err() after recovery = %v", r.ctrl.Err())
	}
	if !r.loop.Running() {
		t.Error("loop did not restart after a successful reseed")
	}
}

func TestZeroAreaMount(t *testing.T) {
	r := newRig(t, 0)
	err := r.ctrl.Mount(0, 0)
	if !errors.Is(err, glyph.ErrMaskSamplingFailed) {
		t.Errorf("Mount(0, 0) error = %v", err)
	}
	if r.loop.Running() {
		t.Error("loop running on a zero-area viewport")
	}
}

func TestNoParticlesKeepsLoopStopped(t *testing.T) {
	q := anim.NewFrameQueue()
	loop := anim.NewLoop(q, func(float64) {})
	seeder := &failingSeeder{}
	c := New(glyph.NewSampler(), seeder, loop, Options{})

	err := c.Mount(800, 600)
	if !errors.Is(err, particle.ErrNoParticlesSeeded) {
		t.Errorf("Mount() error = %v", err)
	}
	if loop.Running() || q.Pending() != 0 {
		t.Error("loop started with no particles")
	}
}

func TestResizerFailure(t *testing.T) {
	q := anim.NewFrameQueue()
	loop := anim.NewLoop(q, func(float64) {})
	field := particle.NewField(rand.New(rand.NewSource(2)))
	c := New(glyph.NewSampler(), field, loop, Options{
		Resizer: resizerFunc(func(int, int) error { return errors.New("context lost") }),
	})

	if err := c.Mount(800, 600); !errors.Is(err, glyph.ErrSurfaceUnavailable) {
		t.Errorf("Mount() error = %v", err)
	}
	if loop.Running() {
		t.Error("loop started without a surface")
	}
}

func TestUnmount(t *testing.T) {
	r := newRig(t, 0)
	r.ctrl.Mount(800, 600)
	r.ctrl.Unmount()

	if r.loop.Running() || r.field.Len() != 0 || r.ctrl.Mounted() {
		t.Errorf("after unmount running=%v particles=%d mounted=%v", r.loop.Running(), r.field.Len(), r.ctrl.Mounted())
	}
	r.ctrl.Resize(1000, 700, time.Now())
	if r.sampler.calls != 1 {
		t.Error("unmounted controller reacted to resize")
	}
}

func TestBlank(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"low density", fmt.Errorf("seed field: %w", &particle.LowDensityError{Created: 10, Target: 900}), false},
		{"no particles", fmt.Errorf("seed field: %w", particle.ErrNoParticlesSeeded), true},
		{"sampling", glyph.ErrMaskSamplingFailed, true},
	}
	for _, tt := range tests {
		if got := Blank(tt.err); got != tt.want {
			t.Errorf("Blank(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsCompact(t *testing.T) {
	tests := []struct {
		width int
		want  bool
	}{
		{320, true}, {767, true}, {768, false}, {1920, false},
	}
	for _, tt := range tests {
		if got := IsCompact(tt.width, DefaultBreakpoint); got != tt.want {
			t.Errorf("IsCompact(%d) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

package particle

import (
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"
)

// Mask is the glyph bitmap particles are anchored on.
type Mask interface {
	// Size returns the mask dimensions in pixels
	Size() (width, height int)

	// AlphaAt returns the coverage of pixel (x, y), 0 outside the mask
	AlphaAt(x, y int) uint8

	// InSecondWord reports whether column x belongs to the second word
	InSecondWord(x float64) bool
}

// Field owns the particle set of one mounted view.
// It is not safe for concurrent use; Advance may fan out internally.
type Field struct {
	particles []Particle
	params    Params
	rng       *rand.Rand
}

// NewField creates an empty field drawing randomness from rng.
// A nil rng is replaced by a time-seeded source.
func NewField(rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Field{rng: rng}
}

// Seed replaces the particle set with particles anchored on opaque mask pixels.
// It returns the number of particles created. A *LowDensityError is returned
// alongside a usable field when fewer than half the target was reached;
// ErrNoParticlesSeeded is returned when the field stays empty.
func (f *Field) Seed(m Mask, p Params) (int, error) {
	f.Clear()
	f.params = p

	if m == nil {
		return 0, fmt.Errorf("seed without mask: %w", ErrNoParticlesSeeded)
	}
	width, height := m.Size()
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("seed on %dx%d mask: %w", width, height, ErrNoParticlesSeeded)
	}

	target := p.TargetCount(width, height)
	if cap(f.particles) < target {
		f.particles = make([]Particle, 0, target)
	}

	attempts := target * p.AttemptFactor
	for i := 0; i < attempts && len(f.particles) < target; i++ {
		x, y, ok := f.pickPixel(m, width, height)
		if !ok {
			continue
		}
		f.particles = append(f.particles, f.newParticle(float64(x), float64(y), m.InSecondWord(float64(x))))
	}

	created := len(f.particles)
	if created == 0 {
		return 0, fmt.Errorf("seed %d attempts on %dx%d mask: %w", attempts, width, height, ErrNoParticlesSeeded)
	}
	if target > 0 && float64(created) < float64(target)*LowDensityRatio {
		return created, &LowDensityError{Created: created, Target: target}
	}
	return created, nil
}

// pickPixel draws up to PixelTries random pixels and returns the first one
// opaque enough to anchor a particle.
func (f *Field) pickPixel(m Mask, width, height int) (int, int, bool) {
	tries := max(1, f.params.PixelTries)
	for range tries {
		x := f.rng.Intn(width)
		y := f.rng.Intn(height)
		if m.AlphaAt(x, y) > f.params.AlphaThreshold {
			return x, y, true
		}
	}
	return 0, 0, false
}

// newParticle randomizes the look and motion of a particle anchored at (x, y).
func (f *Field) newParticle(x, y float64, second bool) Particle {
	p := f.params
	accent := p.FirstAccent
	if second {
		accent = p.SecondAccent
	}
	base := Vec2{X: x, Y: y}
	return Particle{
		Pos:         base,
		Base:        base,
		Size:        p.SizeMin + f.rng.Float64()*p.SizeSpan,
		BaseColor:   p.BaseColor,
		AccentColor: accent,
		Phase:       f.rng.Float64() * TwoPi,
		Speed:       p.SpeedMin + f.rng.Float64()*p.SpeedSpan,
		Amplitude:   p.AmplitudeMin + f.rng.Float64()*p.AmplitudeSpan,
		SecondWord:  second,
	}
}

// Advance moves every particle one frame at elapsed seconds, reacting to probe.
// probe must be a snapshot taken once for the whole frame.
func (f *Field) Advance(elapsed float64, probe Probe) {
	n := len(f.particles)
	workers := f.params.Workers
	if workers <= 1 || n < parallelThreshold {
		advanceRange(f.particles, &f.params, elapsed, probe)
		return
	}

	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < n; start += chunk {
		part := f.particles[start:min(start+chunk, n)]
		g.Go(func() error {
			advanceRange(part, &f.params, elapsed, probe)
			return nil
		})
	}
	_ = g.Wait()
}

func advanceRange(ps []Particle, p *Params, elapsed float64, probe Probe) {
	for i := range ps {
		pt := &ps[i]
		target := Wave(pt.Base, pt.Phase, pt.Speed, pt.Amplitude, elapsed)

		if push, ok := Repel(pt.Pos, probe, p.Radius, p.Strength); ok {
			pt.Pos = pt.Pos.Add(push.Scale(p.RepelEase))
			pt.Interacting = true
			continue
		}

		pt.Pos = pt.Pos.Lerp(target, p.ReturnEase)
		pt.Interacting = false
	}
}

// Clear drops all particles but keeps the backing storage for the next seed.
func (f *Field) Clear() {
	f.particles = f.particles[:0]
}

// Len returns the number of live particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles exposes the particle slice for renderers. Callers must not modify it
// or keep it across a Seed or Clear.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Params returns the tuning used by the last Seed.
func (f *Field) Params() Params {
	return f.params
}

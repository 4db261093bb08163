package glyph

import (
	"errors"
	"math"
	"testing"
)

type fillCall struct {
	text string
	x, y float64
	size float64
}

// fakeSurface measures every rune as size/2 wide and records what was drawn.
type fakeSurface struct {
	w, h    int
	fills   []fillCall
	cleared int
	readErr error
	short   bool
}

func (f *fakeSurface) Size() (int, int) { return f.w, f.h }

func (f *fakeSurface) MeasureText(s string, size float64) float64 {
	return float64(len(s)) * size / 2
}

func (f *fakeSurface) FillText(s string, x, y, size float64) {
	f.fills = append(f.fills, fillCall{text: s, x: x, y: y, size: size})
}

func (f *fakeSurface) ReadAlpha() ([]uint8, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	n := f.w * f.h
	if f.short {
		n--
	}
	out := make([]uint8, n)
	for i := range out {
		out[i] = 255
	}
	return out, nil
}

func (f *fakeSurface) Clear() { f.cleared++ }

func samplerWith(surf *fakeSurface) *Sampler {
	s := NewSampler()
	s.NewSurface = func(w, h int) (Surface, error) {
		if surf.w == 0 && surf.h == 0 {
			surf.w, surf.h = w, h
		}
		return surf, nil
	}
	return s
}

func TestSampleLayoutMath(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		compact  bool
		fontSize float64
		spacing  float64
	}{
		{"wide", 1024, 768, false, 110, 50},
		{"compact", 320, 568, true, 60, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surf := &fakeSurface{}
			m, err := samplerWith(surf).Sample(tt.w, tt.h, tt.compact)
			if err != nil {
				t.Fatalf("Sample() error = %v", err)
			}

			first := 4 * tt.fontSize / 2
			second := 2 * tt.fontSize / 2
			wantX := (float64(tt.w) - (first + tt.spacing + second)) / 2
			wantY := float64(tt.h)*0.48 + tt.fontSize/3

			if m.FontSize != tt.fontSize || m.Spacing != tt.spacing {
				t.Errorf("layout = %v/%v, want %v/%v", m.FontSize, m.Spacing, tt.fontSize, tt.spacing)
			}
			if math.Abs(m.StartX-wantX) > 1e-9 || math.Abs(m.StartY-wantY) > 1e-9 {
				t.Errorf("start = (%v, %v), want (%v, %v)", m.StartX, m.StartY, wantX, wantY)
			}
			if len(surf.fills) != 2 || surf.fills[0].text != "LOCK" || surf.fills[1].text != "IN" {
				t.Fatalf("fills = %+v", surf.fills)
			}
			if got := surf.fills[1].x; math.Abs(got-(wantX+first+tt.spacing)) > 1e-9 {
				t.Errorf("second word at x=%v, want %v", got, wantX+first+tt.spacing)
			}
			if want := wantX + first + tt.spacing/2; math.Abs(m.BoundaryX()-want) > 1e-9 {
				t.Errorf("BoundaryX() = %v, want %v", m.BoundaryX(), want)
			}
			if surf.cleared != 1 {
				t.Errorf("surface cleared %d times, want 1", surf.cleared)
			}
		})
	}
}

func TestSampleFailures(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		factory SurfaceFactory
		want    error
	}{
		{
			name: "zero area",
			w:    0,
			h:    600,
			want: ErrMaskSamplingFailed,
		},
		{
			name: "factory error",
			w:    800,
			h:    600,
			factory: func(int, int) (Surface, error) { return nil, errors.New("no context") },
			want:    ErrSurfaceUnavailable,
		},
		{
			name: "nil surface",
			w:    800,
			h:    600,
			factory: func(int, int) (Surface, error) { return nil, nil },
			want:    ErrSurfaceUnavailable,
		},
		{
			name: "size mismatch",
			w:    800,
			h:    600,
			factory: func(int, int) (Surface, error) { return &fakeSurface{w: 10, h: 10}, nil },
			want:    ErrSurfaceUnavailable,
		},
		{
			name: "read back fails",
			w:    800,
			h:    600,
			factory: func(w, h int) (Surface, error) {
				return &fakeSurface{w: w, h: h, readErr: errors.New("tainted")}, nil
			},
			want: ErrMaskSamplingFailed,
		},
		{
			name: "short read back",
			w:    800,
			h:    600,
			factory: func(w, h int) (Surface, error) { return &fakeSurface{w: w, h: h, short: true}, nil },
			want:    ErrMaskSamplingFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSampler()
			if tt.factory != nil {
				s.NewSurface = tt.factory
			}
			m, err := s.Sample(tt.w, tt.h, false)
			if !errors.Is(err, tt.want) {
				t.Errorf("Sample() error = %v, want %v", err, tt.want)
			}
			if m != nil {
				t.Errorf("Sample() returned a mask on failure")
			}
		})
	}
}

func TestInSecondWordMonotonic(t *testing.T) {
	m := &Mask{StartX: 100, FirstWidth: 240, Spacing: 50}
	boundary := m.BoundaryX()

	transitions := 0
	prev := m.InSecondWord(0)
	for x := 0.0; x <= 1000; x += 0.25 {
		got := m.InSecondWord(x)
		if got != (x >= boundary) {
			t.Fatalf("InSecondWord(%v) = %v with boundary %v", x, got, boundary)
		}
		if got != prev {
			transitions++
		}
		prev = got
	}
	if transitions != 1 {
		t.Errorf("saw %d transitions, want exactly 1", transitions)
	}
}

func TestMaskAlphaAtBounds(t *testing.T) {
	m := &Mask{Width: 2, Height: 2, Alpha: []uint8{1, 2, 3, 4}}
	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 1}, {1, 0, 2}, {0, 1, 3}, {1, 1, 4},
		{-1, 0, 0}, {2, 0, 0}, {0, 2, 0}, {0, -1, 0},
	}
	for _, tt := range tests {
		if got := m.AlphaAt(tt.x, tt.y); got != tt.want {
			t.Errorf("AlphaAt(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
	if got := m.Coverage(2); got != 2 {
		t.Errorf("Coverage(2) = %d, want 2", got)
	}
}

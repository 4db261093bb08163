package glyph

import (
	"errors"
	"fmt"
	"io"
)

// Text layout per device class
const (
	CompactFontSize = 60.0
	WideFontSize    = 110.0
	CompactSpacing  = 15.0
	WideSpacing     = 50.0

	// baseline sits at BaselineRatio*height + fontSize/3
	BaselineRatio = 0.48

	FirstWord  = "LOCK"
	SecondWord = "IN"
)

// Layout sizes the words on the surface.
type Layout struct {
	FontSize float64
	Spacing  float64
}

// DefaultLayout returns the stock layout for a device class.
func DefaultLayout(compact bool) Layout {
	if compact {
		return Layout{FontSize: CompactFontSize, Spacing: CompactSpacing}
	}
	return Layout{FontSize: WideFontSize, Spacing: WideSpacing}
}

// Sampler turns a viewport size into a glyph Mask.
type Sampler struct {
	First      string
	Second     string
	Compact    Layout
	Wide       Layout
	NewSurface SurfaceFactory
}

// NewSampler returns a sampler drawing LOCK IN with Go Bold on a raster surface.
func NewSampler() *Sampler {
	return &Sampler{
		First:      FirstWord,
		Second:     SecondWord,
		Compact:    DefaultLayout(true),
		Wide:       DefaultLayout(false),
		NewSurface: NewRasterSurface,
	}
}

// Sample rasterizes both words onto a width x height surface using the layout
// of the given device class.
func (s *Sampler) Sample(width, height int, compact bool) (*Mask, error) {
	l := s.Wide
	if compact {
		l = s.Compact
	}
	return s.SampleLayout(width, height, l)
}

// SampleLayout is Sample with an explicit layout.
func (s *Sampler) SampleLayout(width, height int, l Layout) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("sample %dx%d: %w", width, height, ErrMaskSamplingFailed)
	}

	newSurface := s.NewSurface
	if newSurface == nil {
		newSurface = NewRasterSurface
	}
	surf, err := newSurface(width, height)
	if err != nil {
		if errors.Is(err, ErrSurfaceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	if surf == nil {
		return nil, fmt.Errorf("sample %dx%d: nil surface: %w", width, height, ErrSurfaceUnavailable)
	}
	if c, ok := surf.(io.Closer); ok {
		defer c.Close()
	}
	defer surf.Clear()

	if sw, sh := surf.Size(); sw != width || sh != height {
		return nil, fmt.Errorf("surface is %dx%d, want %dx%d: %w", sw, sh, width, height, ErrSurfaceUnavailable)
	}

	firstWidth := surf.MeasureText(s.First, l.FontSize)
	secondWidth := surf.MeasureText(s.Second, l.FontSize)
	total := firstWidth + l.Spacing + secondWidth

	startX := (float64(width) - total) / 2
	startY := float64(height)*BaselineRatio + l.FontSize/3

	surf.FillText(s.First, startX, startY, l.FontSize)
	surf.FillText(s.Second, startX+firstWidth+l.Spacing, startY, l.FontSize)

	alpha, err := surf.ReadAlpha()
	if err != nil {
		if errors.Is(err, ErrMaskSamplingFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMaskSamplingFailed, err)
	}
	if len(alpha) != width*height {
		return nil, fmt.Errorf("read back %d bytes for %dx%d: %w", len(alpha), width, height, ErrMaskSamplingFailed)
	}

	return &Mask{
		Width:      width,
		Height:     height,
		Alpha:      alpha,
		StartX:     startX,
		StartY:     startY,
		FirstWidth: firstWidth,
		Spacing:    l.Spacing,
		FontSize:   l.FontSize,
	}, nil
}

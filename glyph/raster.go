package glyph

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var (
	boldOnce sync.Once
	boldFont *sfnt.Font
	boldErr  error
)

// loadBold parses the embedded Go Bold font once per process.
func loadBold() (*sfnt.Font, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
	})
	return boldFont, boldErr
}

// RasterSurface renders text into an in-memory alpha bitmap.
type RasterSurface struct {
	img   *image.Alpha
	font  *sfnt.Font
	faces map[float64]font.Face
}

// NewRasterSurface allocates a width x height alpha surface using Go Bold.
// A zero-area surface is valid; sampling it fails later.
func NewRasterSurface(width, height int) (Surface, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("raster surface %dx%d: %w", width, height, ErrSurfaceUnavailable)
	}
	f, err := loadBold()
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w: %v", ErrSurfaceUnavailable, err)
	}
	return &RasterSurface{
		img:   image.NewAlpha(image.Rect(0, 0, width, height)),
		font:  f,
		faces: make(map[float64]font.Face),
	}, nil
}

func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// face returns a cached face at size pixels (72 DPI makes points equal pixels).
func (s *RasterSurface) face(size float64) font.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil
	}
	s.faces[size] = f
	return f
}

func (s *RasterSurface) MeasureText(text string, size float64) float64 {
	f := s.face(size)
	if f == nil {
		return 0
	}
	return fixedToFloat(font.MeasureString(f, text))
}

func (s *RasterSurface) FillText(text string, x, y, size float64) {
	f := s.face(size)
	if f == nil {
		return
	}
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.Opaque,
		Face: f,
		Dot:  fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y)},
	}
	d.DrawString(text)
}

func (s *RasterSurface) ReadAlpha() ([]uint8, error) {
	w, h := s.Size()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("read %dx%d surface: %w", w, h, ErrMaskSamplingFailed)
	}
	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		row := s.img.Pix[y*s.img.Stride : y*s.img.Stride+w]
		copy(out[y*w:], row)
	}
	return out, nil
}

func (s *RasterSurface) Clear() {
	clear(s.img.Pix)
}

// Close releases the cached font faces.
func (s *RasterSurface) Close() error {
	for size, f := range s.faces {
		f.Close()
		delete(s.faces, size)
	}
	return nil
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

package glyph

// Surface is an offscreen drawing target the sampler renders words on.
type Surface interface {
	// Size returns the surface dimensions in pixels
	Size() (width, height int)

	// MeasureText returns the advance width of s at the given font size
	MeasureText(s string, size float64) float64

	// FillText draws s with its baseline origin at (x, y)
	FillText(s string, x, y, size float64)

	// ReadAlpha returns a copy of the alpha channel, row-major, width*height bytes
	ReadAlpha() ([]uint8, error)

	// Clear erases everything drawn so far
	Clear()
}

// SurfaceFactory creates a surface of the given size.
type SurfaceFactory func(width, height int) (Surface, error)

package glyph

// Mask is the rasterized alpha bitmap particles are anchored on, plus where each word landed.
type Mask struct {
	Width  int
	Height int
	Alpha  []uint8 // row-major, Width*Height

	StartX     float64 // left edge of the first word
	StartY     float64 // baseline
	FirstWidth float64
	Spacing    float64
	FontSize   float64
}

func (m *Mask) Size() (int, int) {
	return m.Width, m.Height
}

// AlphaAt returns the coverage at (x, y), or 0 outside the bitmap.
func (m *Mask) AlphaAt(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Alpha[y*m.Width+x]
}

// BoundaryX is the first column that belongs to the second word.
func (m *Mask) BoundaryX() float64 {
	return m.StartX + m.FirstWidth + m.Spacing/2
}

// InSecondWord reports whether column x is at or past the word boundary.
func (m *Mask) InSecondWord(x float64) bool {
	return x >= m.BoundaryX()
}

// Coverage counts pixels whose alpha exceeds threshold.
func (m *Mask) Coverage(threshold uint8) int {
	n := 0
	for _, a := range m.Alpha {
		if a > threshold {
			n++
		}
	}
	return n
}

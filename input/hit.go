package input

// HitTester answers whether a screen point lies on foreground content.
type HitTester interface {
	Contains(x, y float64) bool
}

// HitFunc adapts a function to HitTester.
type HitFunc func(x, y float64) bool

func (f HitFunc) Contains(x, y float64) bool {
	return f(x, y)
}

// Rect is an axis-aligned hit area in screen pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

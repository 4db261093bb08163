package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"lockin/input"
	"lockin/particle"
)

// InputProvider samples the pointing devices once per frame.
type InputProvider interface {
	Poll(width, height int) input.Frame
}

// EbitenInput reads the cursor and touches from ebiten.
type EbitenInput struct {
	touchIDs []ebiten.TouchID
	touches  []particle.Vec2
}

// NewEbitenInput creates the default provider.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{
		touchIDs: make([]ebiten.TouchID, 0, 10),
		touches:  make([]particle.Vec2, 0, 10),
	}
}

// Poll returns the device state in screen pixels. The returned touch slice is
// reused by the next call.
func (p *EbitenInput) Poll(width, height int) input.Frame {
	mx, my := ebiten.CursorPosition()
	f := input.Frame{
		Cursor:       particle.Vec2{X: float64(mx), Y: float64(my)},
		CursorInside: ebiten.IsFocused() && mx >= 0 && my >= 0 && mx < width && my < height,
	}

	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	p.touches = p.touches[:0]
	for _, id := range p.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		p.touches = append(p.touches, particle.Vec2{X: float64(tx), Y: float64(ty)})
	}
	f.Touches = p.touches
	return f
}

package particle

import "image/color"

// Particle is one animated dot anchored on the glyph mask.
type Particle struct {
	Pos  Vec2 // rendered position, eased every frame
	Base Vec2 // anchor sampled from the mask, never changes

	Size        float64
	BaseColor   color.NRGBA
	AccentColor color.NRGBA

	Phase     float64
	Speed     float64
	Amplitude float64

	SecondWord  bool
	Interacting bool // repelled on the last frame
}

// Color returns the color the particle should be drawn with this frame.
func (p *Particle) Color() color.NRGBA {
	if p.Interacting {
		return p.AccentColor
	}
	return p.BaseColor
}

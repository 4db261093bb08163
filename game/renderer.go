package game

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/opentype"

	"lockin/hud"
	"lockin/particle"
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	panelColor      = color.RGBA{0, 0, 0, 170}
	panelBorder     = color.RGBA{255, 255, 255, 40}
	quoteColor      = color.RGBA{220, 220, 220, 255}
	authorColor     = color.RGBA{255, 153, 0, 255}
)

const quoteFontSize = 18

// Renderer draws the particle layer and the quote panel.
type Renderer struct {
	layer *ebiten.Image

	panel hud.Region

	face     *text.GoXFace
	faceOnce sync.Once
	faceErr  error
}

// NewRenderer creates a renderer with no layer; ResizeSurface allocates it.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// ResizeSurface reallocates the particle layer for a new outside size.
func (r *Renderer) ResizeSurface(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("particle layer %dx%d", width, height)
	}
	if r.layer != nil {
		bounds := r.layer.Bounds()
		if bounds.Dx() == width && bounds.Dy() == height {
			r.layer.Clear()
			return nil
		}
		r.layer.Deallocate()
	}
	r.layer = ebiten.NewImage(width, height)
	return nil
}

// Paint redraws every particle onto the layer.
func (r *Renderer) Paint(particles []particle.Particle) {
	if r.layer == nil {
		return
	}
	r.layer.Clear()
	for i := range particles {
		p := &particles[i]
		vector.DrawFilledRect(r.layer, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Size), float32(p.Size), p.Color(), false)
	}
}

// ClearLayer blanks the layer, used when the field could not be seeded.
func (r *Renderer) ClearLayer() {
	if r.layer != nil {
		r.layer.Clear()
	}
}

// Draw composes the frame: background, particles, then the panel.
func (r *Renderer) Draw(screen *ebiten.Image, panel hud.Panel) {
	screen.Fill(backgroundColor)
	if r.layer != nil {
		screen.DrawImage(r.layer, nil)
	}
	r.drawPanel(screen, panel)
}

func (r *Renderer) loadFace() (*text.GoXFace, error) {
	r.faceOnce.Do(func() {
		f, err := opentype.Parse(goitalic.TTF)
		if err != nil {
			r.faceErr = err
			return
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    quoteFontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			r.faceErr = err
			return
		}
		r.face = text.NewGoXFace(face)
	})
	return r.face, r.faceErr
}

// drawPanel centers the panel near the bottom edge and records its rectangle
// as the foreground region for touch pass-through.
func (r *Renderer) drawPanel(screen *ebiten.Image, p hud.Panel) {
	face, err := r.loadFace()
	if err != nil {
		return
	}
	bounds := screen.Bounds()
	sw, sh := float64(bounds.Dx()), float64(bounds.Dy())

	body, author := p.Body, p.Footer
	lineHeight := face.Metrics().HAscent + face.Metrics().HDescent + 4

	bw, _ := text.Measure(body, face, lineHeight)
	aw, _ := text.Measure(author, face, lineHeight)
	panel := hud.Place(sw, sh, max(bw, aw), lineHeight)
	r.panel.Set(panel)

	vector.DrawFilledRect(screen, float32(panel.X), float32(panel.Y), float32(panel.Width), float32(panel.Height), panelColor, false)
	vector.StrokeRect(screen, float32(panel.X), float32(panel.Y), float32(panel.Width), float32(panel.Height), 1, panelBorder, false)

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(sw/2, panel.Y+hud.Padding)
	op.ColorScale.ScaleWithColor(quoteColor)
	text.Draw(screen, body, face, op)

	op = &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(sw/2, panel.Y+hud.Padding+lineHeight)
	op.ColorScale.ScaleWithColor(authorColor)
	text.Draw(screen, author, face, op)
}

// Panel is the hit region of the last drawn panel.
func (r *Renderer) Panel() *hud.Region {
	return &r.panel
}

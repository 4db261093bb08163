package goal

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Card geometry
const (
	CardWidth   = 640
	cardPadding = 32
	boxPadding  = 12
	accentBar   = 4
)

// Card palette
var (
	colorCyan       = color.RGBA{0x00, 0xDC, 0xFF, 0xFF}
	colorOrange     = color.RGBA{0xFF, 0x99, 0x00, 0xFF}
	colorCyanSoft   = color.RGBA{0x99, 0xF0, 0xFF, 0xFF}
	colorOrangeSoft = color.RGBA{0xFF, 0xCC, 0x99, 0xFF}
	colorWhite      = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	colorGray       = color.RGBA{0x9C, 0xA3, 0xAF, 0xFF}
	colorBorder     = color.RGBA{0x26, 0x26, 0x26, 0xFF}
	colorBox        = color.RGBA{0x00, 0x00, 0x00, 0x99}
)

type fontSet struct {
	bold, regular, italic *sfnt.Font
}

var (
	fontsOnce sync.Once
	fonts     fontSet
	fontsErr  error
)

func loadFonts() (fontSet, error) {
	fontsOnce.Do(func() {
		parse := func(data []byte) *sfnt.Font {
			if fontsErr != nil {
				return nil
			}
			f, err := opentype.Parse(data)
			if err != nil {
				fontsErr = fmt.Errorf("parse card font: %w", err)
			}
			return f
		}
		fonts = fontSet{
			bold:    parse(gobold.TTF),
			regular: parse(goregular.TTF),
			italic:  parse(goitalic.TTF),
		}
	})
	return fonts, fontsErr
}

// cardFaces are the faces one card is drawn with.
type cardFaces struct {
	title, name, label, mission, body, small, tag, motto font.Face
}

func newCardFaces(fs fontSet) (*cardFaces, error) {
	var err error
	face := func(f *sfnt.Font, size float64) font.Face {
		if err != nil {
			return nil
		}
		var ff font.Face
		ff, err = opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		return ff
	}
	cf := &cardFaces{
		title:   face(fs.bold, 28),
		name:    face(fs.regular, 15),
		label:   face(fs.bold, 11),
		mission: face(fs.bold, 20),
		body:    face(fs.regular, 16),
		small:   face(fs.regular, 12),
		tag:     face(fs.bold, 20),
		motto:   face(fs.italic, 13),
	}
	if err != nil {
		cf.Close()
		return nil, fmt.Errorf("create card face: %w", err)
	}
	return cf, nil
}

func (cf *cardFaces) Close() {
	for _, f := range []font.Face{cf.title, cf.name, cf.label, cf.mission, cf.body, cf.small, cf.tag, cf.motto} {
		if f != nil {
			f.Close()
		}
	}
}

// RenderCard draws the shareable goal card.
func RenderCard(g Goal, now time.Time) (*image.RGBA, error) {
	fs, err := loadFonts()
	if err != nil {
		return nil, err
	}
	faces, err := newCardFaces(fs)
	if err != nil {
		return nil, err
	}
	defer faces.Close()

	inner := CardWidth - 2*cardPadding
	missionLines := wrapText(faces.mission, g.Mission, inner-accentBar-2*boxPadding)
	missionLineH := lineHeight(faces.mission)

	// vertical layout
	headerBottom := 120
	missionTop := headerBottom + 16
	missionBox := boxPadding + 16 + len(missionLines)*missionLineH + boxPadding
	infoTop := missionTop + missionBox + 12
	infoBox := boxPadding + 16 + lineHeight(faces.body) + boxPadding
	footerTop := infoTop + infoBox + 28
	height := footerTop + 80

	img := image.NewRGBA(image.Rect(0, 0, CardWidth, height))
	paintBackground(img)
	strokeRect(img, img.Bounds(), colorBorder)

	// header
	center := CardWidth / 2
	title := "LOCKED IN"
	tw := measure(faces.title, title)
	drawText(img, faces.title, title, center-tw/2, 56, colorWhite)
	fillGradient(img, image.Rect(cardPadding, 46, center-tw/2-12, 47), color.RGBA{}, colorCyan)
	fillGradient(img, image.Rect(center+tw/2+12, 46, CardWidth-cardPadding, 47), colorOrange, color.RGBA{})
	fillGradient(img, image.Rect(center-40, 68, center+40, 70), colorCyan, colorOrange)
	nw := measure(faces.name, g.Name)
	drawText(img, faces.name, g.Name, center-nw/2, 100, colorGray)

	// mission
	box := image.Rect(cardPadding, missionTop, CardWidth-cardPadding, missionTop+missionBox)
	drawBox(img, box, colorCyan)
	x := box.Min.X + accentBar + boxPadding
	y := box.Min.Y + boxPadding + 10
	drawText(img, faces.label, "MISSION:", x, y, colorCyanSoft)
	y += 6
	for _, line := range missionLines {
		y += missionLineH
		drawText(img, faces.mission, line, x, y-4, colorWhite)
	}

	// duration and target date
	half := (inner - 12) / 2
	left := image.Rect(cardPadding, infoTop, cardPadding+half, infoTop+infoBox)
	right := image.Rect(CardWidth-cardPadding-half, infoTop, CardWidth-cardPadding, infoTop+infoBox)
	drawBox(img, left, colorOrange)
	drawBox(img, right, colorCyan)

	lx := left.Min.X + accentBar + boxPadding
	ly := left.Min.Y + boxPadding + 10
	drawText(img, faces.label, "DURATION:", lx, ly, colorOrangeSoft)
	drawText(img, faces.body, fitText(faces.body, g.Timeframe, left.Dx()-accentBar-2*boxPadding), lx, ly+6+lineHeight(faces.body)-4, colorWhite)

	rx := right.Min.X + accentBar + boxPadding
	drawText(img, faces.label, "TARGET DATE:", rx, ly, colorCyanSoft)
	if days := g.DaysLabel(now); days != "" {
		dw := measure(faces.small, days)
		drawText(img, faces.small, days, right.Max.X-boxPadding-dw, ly, colorGray)
	}
	drawText(img, faces.body, g.FormattedDeadline(), rx, ly+6+lineHeight(faces.body)-4, colorWhite)

	// footer
	tag := "#LOCKIN"
	gw := measure(faces.tag, tag)
	drawText(img, faces.tag, tag, center-gw/2, footerTop+20, colorWhite)
	fillGradient(img, image.Rect(center-gw/2, footerTop+25, center+gw/2, footerTop+27), colorCyan, colorOrange)
	motto := "Focus fuels results."
	mw := measure(faces.motto, motto)
	drawText(img, faces.motto, motto, center-mw/2, footerTop+50, colorGray)

	return img, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode card: %w", err)
	}
	return nil
}

// SaveCard renders g into dir under FileName and returns the written path.
func SaveCard(dir string, g Goal, now time.Time) (string, error) {
	img, err := RenderCard(g, now)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, g.FileName(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create card file: %w", err)
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close card file: %w", err)
	}
	return path, nil
}

// paintBackground fills a dark diagonal gradient tinted cyan at the top-left
// corner and orange at the bottom-right one.
func paintBackground(img *image.RGBA) {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	diag := math.Hypot(w, h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			fx, fy := float64(x), float64(y)
			t := (fx + fy) / (w + h)
			base := 0x11 * (1 - math.Abs(2*t-1))

			cyan := math.Max(0, 1-math.Hypot(fx, fy)/(0.6*diag)) * 0.18
			orange := math.Max(0, 1-math.Hypot(w-fx, h-fy)/(0.6*diag)) * 0.18

			r := base + orange*0xFF
			g := base + cyan*0xDC + orange*0x99
			bl := base + cyan*0xFF
			img.SetRGBA(x, y, color.RGBA{clamp8(r), clamp8(g), clamp8(bl), 0xFF})
		}
	}
}

func clamp8(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

func drawBox(img *image.RGBA, r image.Rectangle, accent color.Color) {
	draw.Draw(img, r, image.NewUniform(colorBox), image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+accentBar, r.Max.Y), image.NewUniform(accent), image.Point{}, draw.Src)
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	u := image.NewUniform(c)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// fillGradient blends from a to b left to right.
func fillGradient(img *image.RGBA, r image.Rectangle, a, b color.RGBA) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	span := float64(max(1, r.Dx()-1))
	for x := r.Min.X; x < r.Max.X; x++ {
		t := float64(x-r.Min.X) / span
		c := color.RGBA{
			R: lerp8(a.R, b.R, t),
			G: lerp8(a.G, b.G, t),
			B: lerp8(a.B, b.B, t),
			A: lerp8(a.A, b.A, t),
		}
		draw.Draw(img, image.Rect(x, r.Min.Y, x+1, r.Max.Y), image.NewUniform(c), image.Point{}, draw.Over)
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func drawText(img *image.RGBA, face font.Face, s string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

func lineHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil() + 4
}

// wrapText breaks s into lines no wider than width, splitting words that do
// not fit on their own.
func wrapText(face font.Face, s string, width int) []string {
	var lines []string
	var cur string
	for _, word := range strings.Fields(s) {
		for measure(face, word) > width && len([]rune(word)) > 1 {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			head := fitText(face, word, width)
			lines = append(lines, head)
			word = strings.TrimPrefix(word, head)
		}
		next := word
		if cur != "" {
			next = cur + " " + word
		}
		if measure(face, next) <= width {
			cur = next
			continue
		}
		lines = append(lines, cur)
		cur = word
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

// fitText returns the longest prefix of s no wider than width, at least one rune.
func fitText(face font.Face, s string, width int) string {
	runes := []rune(s)
	n := len(runes)
	for n > 1 && measure(face, string(runes[:n])) > width {
		n--
	}
	return string(runes[:n])
}

package particle

import (
	"image/color"
	"math"
)

// Params holds everything a Field needs to seed and animate one device class.
type Params struct {
	// Compact is true for narrow viewports
	Compact bool

	// Seeding
	BaseCount      float64 // particles wanted on ReferenceArea pixels
	ReferenceArea  float64
	MinCount       int
	MaxCount       int
	AttemptFactor  int
	PixelTries     int
	AlphaThreshold uint8

	// Look
	SizeMin       float64
	SizeSpan      float64
	AmplitudeMin  float64
	AmplitudeSpan float64
	SpeedMin      float64
	SpeedSpan     float64
	BaseColor     color.NRGBA
	FirstAccent   color.NRGBA
	SecondAccent  color.NRGBA

	// Interaction
	Radius     float64
	Strength   float64
	RepelEase  float64
	ReturnEase float64

	// Workers splits Advance across goroutines for large fields. 0 or 1 keeps it sequential.
	Workers int
}

// DefaultParams returns the stock tuning for the given device class.
func DefaultParams(compact bool) Params {
	p := Params{
		Compact:        compact,
		BaseCount:      WideBaseCount,
		ReferenceArea:  ReferenceArea,
		MinCount:       MinParticles,
		MaxCount:       MaxParticles,
		AttemptFactor:  AttemptFactor,
		PixelTries:     PixelTries,
		AlphaThreshold: AlphaThreshold,
		SizeMin:        WideSizeMin,
		SizeSpan:       WideSizeSpan,
		AmplitudeMin:   WideAmplitudeMin,
		AmplitudeSpan:  WideAmplitudeSpan,
		SpeedMin:       SpeedMin,
		SpeedSpan:      SpeedSpan,
		BaseColor:      ColorBase,
		FirstAccent:    ColorFirstAccent,
		SecondAccent:   ColorSecondAccent,
		Radius:         WideRadius,
		Strength:       RepulsionStrength,
		RepelEase:      RepelEase,
		ReturnEase:     ReturnEase,
	}
	if compact {
		p.BaseCount = CompactBaseCount
		p.SizeMin = CompactSizeMin
		p.SizeSpan = CompactSizeSpan
		p.AmplitudeMin = CompactAmplitudeMin
		p.AmplitudeSpan = CompactAmplitudeSpan
		p.Radius = CompactRadius
	}
	return p
}

// TargetCount returns how many particles a width x height surface should hold.
// It scales with area and is clamped to [MinCount, MaxCount].
func (p Params) TargetCount(width, height int) int {
	if width <= 0 || height <= 0 || p.ReferenceArea <= 0 {
		return p.MinCount
	}
	density := p.BaseCount / p.ReferenceArea
	n := int(math.Floor(density * float64(width) * float64(height)))
	return max(p.MinCount, min(p.MaxCount, n))
}

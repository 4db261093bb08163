package particle

import (
	"image/color"
	"math"
)

// Seeding constants
const (
	MinParticles     = 900
	MaxParticles     = 10000
	ReferenceArea    = 1920 * 1080 // area the base counts are tuned for
	CompactBaseCount = 7000.0
	WideBaseCount    = 6500.0
	AttemptFactor    = 10  // particle attempts allowed per wanted particle
	PixelTries       = 150 // random pixel picks per particle attempt
	AlphaThreshold   = 128 // mask alpha must exceed this (about 50% opacity)
	LowDensityRatio  = 0.5
)

// Motion constants
const (
	RepulsionStrength = 65.0 // px of push at the interaction point
	CompactRadius     = 110.0
	WideRadius        = 160.0
	RepelEase         = 0.18 // smoothing factor while repelled
	ReturnEase        = 0.07 // smoothing factor back to the wave target
	SpeedMin          = 0.05
	SpeedSpan         = 0.3
	TwoPi             = 2 * math.Pi
)

// Per-class particle look
const (
	CompactSizeMin       = 1.0
	CompactSizeSpan      = 1.5
	WideSizeMin          = 0.5
	WideSizeSpan         = 1.5
	CompactAmplitudeMin  = 2.0
	CompactAmplitudeSpan = 6.0
	WideAmplitudeMin     = 3.0
	WideAmplitudeSpan    = 10.0
)

// parallelThreshold is the field size below which Advance never fans out.
const parallelThreshold = 2048

// Color constants
var (
	ColorBase         = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorFirstAccent  = color.NRGBA{R: 0x00, G: 0xDC, B: 0xFF, A: 255}
	ColorSecondAccent = color.NRGBA{R: 0xFF, G: 0x99, B: 0x00, A: 255}
)

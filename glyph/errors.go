package glyph

import "errors"

var (
	// ErrSurfaceUnavailable means no drawing surface could be created for the viewport.
	ErrSurfaceUnavailable = errors.New("glyph: surface unavailable")

	// ErrMaskSamplingFailed means the surface produced no usable pixel data.
	ErrMaskSamplingFailed = errors.New("glyph: mask sampling failed")
)

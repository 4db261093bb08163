package particle

import (
	"errors"
	"fmt"
)

var (
	// ErrLowSeedDensity marks a seed that produced fewer than half the wanted particles.
	// The field is still usable.
	ErrLowSeedDensity = errors.New("particle: low seed density")

	// ErrNoParticlesSeeded means the field is empty and must not be animated.
	ErrNoParticlesSeeded = errors.New("particle: no particles seeded")
)

// LowDensityError carries the counts behind ErrLowSeedDensity.
type LowDensityError struct {
	Created int
	Target  int
}

func (e *LowDensityError) Error() string {
	return fmt.Sprintf("particle: low seed density: created %d of %d particles", e.Created, e.Target)
}

func (e *LowDensityError) Unwrap() error {
	return ErrLowSeedDensity
}

package particle

import "math"

// Wave returns the oscillation target of a particle anchored at base at time t (seconds).
func Wave(base Vec2, phase, speed, amplitude, t float64) Vec2 {
	a := t*speed + phase
	return Vec2{
		X: base.X + math.Sin(a)*amplitude,
		Y: base.Y + math.Cos(a)*amplitude,
	}
}

// Repel returns how far a particle at pos is pushed away from the probe and whether
// the probe affects it at all. The push fades linearly from strength at the probe to
// zero at radius. A particle exactly under the probe is pushed along +X.
func Repel(pos Vec2, probe Probe, radius, strength float64) (Vec2, bool) {
	if !probe.Present || radius <= 0 {
		return Vec2{}, false
	}

	dx := pos.X - probe.Pos.X
	dy := pos.Y - probe.Pos.Y
	distance := math.Hypot(dx, dy)

	// also rejects NaN
	if !(distance < radius) {
		return Vec2{}, false
	}

	force := (radius - distance) / radius
	if distance == 0 {
		return Vec2{X: force * strength}, true
	}

	angle := math.Atan2(dy, dx)
	return Vec2{
		X: math.Cos(angle) * force * strength,
		Y: math.Sin(angle) * force * strength,
	}, true
}

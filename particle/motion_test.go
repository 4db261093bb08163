package particle

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWaveExactValues(t *testing.T) {
	tests := []struct {
		name      string
		base      Vec2
		phase     float64
		speed     float64
		amplitude float64
		t         float64
		want      Vec2
	}{
		{"origin at t=0", Vec2{}, 0, 1, 10, 0, Vec2{X: 0, Y: 10}},
		{"quarter turn", Vec2{X: 5, Y: 5}, math.Pi / 2, 1, 2, 0, Vec2{X: 7, Y: 5}},
		{"time drives phase", Vec2{X: 100, Y: 50}, 0, 0.5, 4, math.Pi, Vec2{X: 104, Y: 50}},
		{"zero amplitude stays on anchor", Vec2{X: 3, Y: 4}, 1.3, 0.2, 0, 17, Vec2{X: 3, Y: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wave(tt.base, tt.phase, tt.speed, tt.amplitude, tt.t)
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
				t.Errorf("Wave() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWaveIsPure(t *testing.T) {
	base := Vec2{X: 412, Y: 288}
	first := Wave(base, 1.7, 0.21, 6.5, 12.25)
	for i := 0; i < 100; i++ {
		if got := Wave(base, 1.7, 0.21, 6.5, 12.25); got != first {
			t.Fatalf("call %d returned %+v, first call returned %+v", i, got, first)
		}
	}
}

func TestRepelAtProbeHasFullStrength(t *testing.T) {
	pos := Vec2{X: 300, Y: 200}
	push, active := Repel(pos, ProbeAt(300, 200), WideRadius, RepulsionStrength)

	if !active {
		t.Fatal("expected particle under the probe to be active")
	}
	if !push.Finite() {
		t.Fatalf("displacement is not finite: %+v", push)
	}
	if !approx(push.Len(), RepulsionStrength) {
		t.Errorf("displacement magnitude = %v, want %v", push.Len(), RepulsionStrength)
	}
}

func TestRepelDirectionAndFalloff(t *testing.T) {
	probe := ProbeAt(100, 100)

	// halfway to the boundary, straight to the right of the probe
	push, active := Repel(Vec2{X: 180, Y: 100}, probe, 160, 65)
	if !active {
		t.Fatal("expected particle inside radius to be active")
	}
	if !approx(push.X, 0.5*65) || !approx(push.Y, 0) {
		t.Errorf("push = %+v, want (32.5, 0)", push)
	}

	// below the probe pushes down (+Y)
	push, _ = Repel(Vec2{X: 100, Y: 140}, probe, 160, 65)
	if push.Y <= 0 || !approx(push.X, 0) {
		t.Errorf("push = %+v, want straight down", push)
	}
}

func TestRepelInactiveCases(t *testing.T) {
	tests := []struct {
		name   string
		pos    Vec2
		probe  Probe
		radius float64
	}{
		{"no probe", Vec2{X: 10, Y: 10}, Probe{}, 160},
		{"absent probe at same spot", Vec2{X: 10, Y: 10}, Probe{Pos: Vec2{X: 10, Y: 10}}, 160},
		{"on the boundary", Vec2{X: 260, Y: 100}, ProbeAt(100, 100), 160},
		{"outside radius", Vec2{X: 1000, Y: 1000}, ProbeAt(0, 0), 110},
		{"zero radius", Vec2{X: 0, Y: 0}, ProbeAt(0, 0), 0},
		{"NaN position", Vec2{X: math.NaN(), Y: 0}, ProbeAt(0, 0), 160},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			push, active := Repel(tt.pos, tt.probe, tt.radius, RepulsionStrength)
			if active {
				t.Errorf("expected inactive, got push %+v", push)
			}
			if push != (Vec2{}) {
				t.Errorf("expected zero displacement, got %+v", push)
			}
		})
	}
}

func TestRepelIsPure(t *testing.T) {
	pos := Vec2{X: 40, Y: 75}
	probe := ProbeAt(60, 60)
	want, wantActive := Repel(pos, probe, CompactRadius, RepulsionStrength)
	for i := 0; i < 50; i++ {
		got, active := Repel(pos, probe, CompactRadius, RepulsionStrength)
		if got != want || active != wantActive {
			t.Fatalf("call %d returned (%+v, %v), want (%+v, %v)", i, got, active, want, wantActive)
		}
	}
}

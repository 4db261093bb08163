package particle_test

import (
	"math/rand"
	"testing"

	"lockin/glyph"
	"lockin/particle"
)

func TestSeedFillsTargetOnRasterizedWords(t *testing.T) {
	tests := []struct {
		width, height int
		compact       bool
	}{
		{1024, 768, false},
		{1920, 1080, false},
		{320, 568, true},
		{390, 844, true},
	}

	sampler := glyph.NewSampler()
	for _, tt := range tests {
		mask, err := sampler.Sample(tt.width, tt.height, tt.compact)
		if err != nil {
			t.Fatalf("Sample(%d, %d) error = %v", tt.width, tt.height, err)
		}
		p := particle.DefaultParams(tt.compact)
		f := particle.NewField(rand.New(rand.NewSource(int64(tt.width))))

		n, err := f.Seed(mask, p)
		if err != nil {
			t.Errorf("%dx%d: Seed() error = %v", tt.width, tt.height, err)
		}
		if want := p.TargetCount(tt.width, tt.height); n != want || f.Len() != want {
			t.Errorf("%dx%d: Seed() = %d (Len %d), want %d", tt.width, tt.height, n, f.Len(), want)
		}
		for _, pt := range f.Particles() {
			if mask.AlphaAt(int(pt.Base.X), int(pt.Base.Y)) <= p.AlphaThreshold {
				t.Fatalf("%dx%d: particle anchored on transparent pixel %v", tt.width, tt.height, pt.Base)
			}
		}
	}
}

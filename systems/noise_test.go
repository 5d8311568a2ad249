package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// constBasis returns the same raw value everywhere.
type constBasis float64

func (c constBasis) Noise3D(x, y, z float64) float64 { return float64(c) }

func TestPerlinZeroOnLattice(t *testing.T) {
	p := NewPerlinNoise(7)
	for _, pt := range [][3]float64{{0, 0, 0}, {1, 2, 3}, {-4, 5, -6}} {
		if v := p.Noise3D(pt[0], pt[1], pt[2]); v != 0 {
			t.Errorf("Noise3D%v = %v, want 0", pt, v)
		}
	}
}

func TestPerlinDeterministic(t *testing.T) {
	a := NewPerlinNoise(42)
	b := NewPerlinNoise(42)
	c := NewPerlinNoise(43)

	differs := false
	for i := 0; i < 50; i++ {
		x, y, z := float64(i)*0.37, float64(i)*0.11+0.5, float64(i)*-0.23
		va, vb := a.Noise3D(x, y, z), b.Noise3D(x, y, z)
		if va != vb {
			t.Fatalf("same seed produced %v and %v", va, vb)
		}
		if va != c.Noise3D(x, y, z) {
			differs = true
		}
	}
	if !differs {
		t.Error("different seeds should produce different fields")
	}
}

func TestNoiseFieldSampleRange(t *testing.T) {
	for _, basis := range []string{BasisPerlin, BasisSimplex} {
		for _, octaves := range []int{1, 2} {
			cfg := DefaultNoiseConfig()
			cfg.Basis = basis
			cfg.Octaves = octaves
			f, err := NewNoiseField(cfg)
			if err != nil {
				t.Fatalf("NewNoiseField(%s, %d): %v", basis, octaves, err)
			}
			for i := 0; i < 500; i++ {
				pos := mgl64.Vec3{float64(i%17) - 8.3, float64(i%23) * 0.31, float64(i%11)*-1.7 + 0.2}
				for _, scale := range []float64{0.1, 0.2, 0.5, 3} {
					v := f.Sample(pos, scale)
					if v < 0 || v > 1 {
						t.Fatalf("%s/%d: Sample(%v, %v) = %v outside [0,1]", basis, octaves, pos, scale, v)
					}
				}
			}
		}
	}
}

func TestNoiseFieldOriginIsPivot(t *testing.T) {
	for _, octaves := range []int{1, 2} {
		cfg := DefaultNoiseConfig()
		cfg.Octaves = octaves
		f, err := NewNoiseField(cfg)
		if err != nil {
			t.Fatal(err)
		}
		if v := f.Sample(mgl64.Vec3{0, 0, 0}, 0.2); v != 0.5 {
			t.Errorf("octaves=%d: Sample at origin = %v, want pivot 0.5", octaves, v)
		}
	}
}

func TestNoiseFieldClampsNotWraps(t *testing.T) {
	cfg := DefaultNoiseConfig()
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"high clamps to 1", 1, 1},
		{"low clamps to 0", -1, 0},
		{"middle", 0, 0.5},
		{"nan is zero", math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewNoiseFieldWithBasis(constBasis(tt.raw), cfg)
			if got := f.Sample(mgl64.Vec3{1, 2, 3}, 0.2); got != tt.want {
				t.Errorf("Sample = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeSampleIsAdditive(t *testing.T) {
	f, err := NewNoiseField(DefaultNoiseConfig())
	if err != nil {
		t.Fatal(err)
	}
	pos := mgl64.Vec3{0.7, 1.3, -2.1}
	base := f.Sample(pos, 0.2)
	got := f.TimeSample(pos, 0.2, 12.5, 0.1)
	if got != base+12.5*0.1 {
		t.Errorf("TimeSample = %v, want %v", got, base+12.5*0.1)
	}
	if got <= 1 {
		t.Errorf("time contribution must not be clamped, got %v", got)
	}
}

func TestNewNoiseFieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NoiseConfig)
	}{
		{"zero octaves", func(c *NoiseConfig) { c.Octaves = 0 }},
		{"bad basis", func(c *NoiseConfig) { c.Basis = "worley" }},
		{"bad gain", func(c *NoiseConfig) { c.Octaves = 2; c.Gain = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultNoiseConfig()
			tt.mutate(&cfg)
			if _, err := NewNoiseField(cfg); !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

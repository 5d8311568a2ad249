package systems

import (
	"math"
	"testing"
)

func TestRemap(t *testing.T) {
	tests := []struct {
		name                        string
		v, inLo, inHi, outLo, outHi float64
		want                        float64
	}{
		{"identity", 0.3, 0, 1, 0, 1, 0.3},
		{"inverted", 0.25, 1, 0, 0, 1, 0.75},
		{"extrapolates", 2, 0, 1, 0, 1, 2},
		{"degenerate input", 5, 1, 1, 3, 4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Remap(tt.v, tt.inLo, tt.inHi, tt.outLo, tt.outHi)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Remap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemapClamp(t *testing.T) {
	tests := []struct {
		name                        string
		v, inLo, inHi, outLo, outHi float64
		want                        float64
	}{
		{"inside", 0.375, 0, 0.75, 0, 1, 0.5},
		{"below", -1, 0, 0.75, 0, 1, 0},
		{"above", 3, 0, 0.75, 0, 1, 1},
		{"roughness metal", 0, 0, 1, 0.25, 0.5, 0.25},
		{"roughness dielectric", 1, 0, 1, 0.25, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemapClamp(tt.v, tt.inLo, tt.inHi, tt.outLo, tt.outHi)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("RemapClamp = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModFloors(t *testing.T) {
	if got := Mod(-0.25, 1); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("Mod(-0.25, 1) = %v, want 0.75", got)
	}
	if got := Mod(2.5, 1); got != 0.5 {
		t.Errorf("Mod(2.5, 1) = %v, want 0.5", got)
	}
}

func TestStepIsStrict(t *testing.T) {
	if Step(0.5, 0.5) != 0 {
		t.Error("Step at the edge should be 0")
	}
	if Step(0.5, 0.5000001) != 1 {
		t.Error("Step above the edge should be 1")
	}
}

func TestSanitize(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if Sanitize(v) != 0 {
			t.Errorf("Sanitize(%v) should be 0", v)
		}
	}
	if Sanitize(0.4) != 0.4 {
		t.Error("finite values pass through")
	}
}

package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/lattice/components"
)

func TestInfluenceWeight(t *testing.T) {
	origin := mgl64.Vec3{0, 0, 0}
	tests := []struct {
		name  string
		point mgl64.Vec3
		want  float64
	}{
		{"zero distance", origin, 1},
		{"half way", mgl64.Vec3{1, 0, 0}, 0.5},
		{"at max distance", mgl64.Vec3{2, 0, 0}, 0},
		{"beyond max distance", mgl64.Vec3{0, 5, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InfluenceWeight(origin, tt.point, DefaultMaxDistance)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("InfluenceWeight = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInfluenceFieldInactiveIsZero(t *testing.T) {
	f, err := NewInfluenceField(DefaultMaxDistance)
	if err != nil {
		t.Fatal(err)
	}
	pos := mgl64.Vec3{0, 0, 0}

	// An inactive influence at the same location still yields nothing.
	if w := f.Weight(pos, components.Influence{Point: pos}); w != 0 {
		t.Errorf("inactive weight = %v, want 0", w)
	}
	if w := f.Weight(pos, components.InfluenceAt(pos)); w != 1 {
		t.Errorf("active weight at zero distance = %v, want 1", w)
	}
}

func TestInfluenceWeightRange(t *testing.T) {
	point := mgl64.Vec3{0.4, 1.1, -0.3}
	for i := 0; i < 200; i++ {
		pos := mgl64.Vec3{float64(i%7) * 0.31, float64(i%5) * 0.27, float64(i%3) * -0.5}
		w := InfluenceWeight(pos, point, DefaultMaxDistance)
		if w < 0 || w > 1 {
			t.Fatalf("weight %v outside [0,1]", w)
		}
	}
}

func TestNewInfluenceFieldRejectsNonPositive(t *testing.T) {
	for _, d := range []float64{0, -1, math.NaN()} {
		if _, err := NewInfluenceField(d); !errors.Is(err, ErrConfiguration) {
			t.Errorf("NewInfluenceField(%v): expected ErrConfiguration, got %v", d, err)
		}
	}
}

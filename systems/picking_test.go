package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPickInstance(t *testing.T) {
	g, err := BuildGrid(3, 1, 1, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name      string
		ray       Ray
		wantIndex int
		wantDist  float64
	}{
		{"center", Ray{Origin: mgl64.Vec3{0, 0, -5}, Dir: mgl64.Vec3{0, 0, 1}}, 1, 4.85},
		{"left", Ray{Origin: mgl64.Vec3{-1, 0, -5}, Dir: mgl64.Vec3{0, 0, 1}}, 0, 4.85},
		{"nearest along x", Ray{Origin: mgl64.Vec3{5, 0, 0}, Dir: mgl64.Vec3{-1, 0, 0}}, 2, 3.85},
		{"miss above", Ray{Origin: mgl64.Vec3{0, 5, -5}, Dir: mgl64.Vec3{0, 0, 1}}, -1, 0},
		{"miss between", Ray{Origin: mgl64.Vec3{0.5, 0, -5}, Dir: mgl64.Vec3{0, 0, 1}}, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := PickInstance(g, tt.ray, 0.15)
			if res.Index != tt.wantIndex {
				t.Fatalf("Index = %d, want %d", res.Index, tt.wantIndex)
			}
			if res.Hit != (tt.wantIndex >= 0) {
				t.Errorf("Hit = %v", res.Hit)
			}
			if res.Hit && math.Abs(res.Distance-tt.wantDist) > 1e-9 {
				t.Errorf("Distance = %v, want %v", res.Distance, tt.wantDist)
			}
		})
	}
}

func TestRayRotateYRoundTrip(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{1, 2, 3}, Dir: mgl64.Vec3{0, 0, 1}}
	back := r.RotateY(0.7).RotateY(-0.7)
	if !vecNear(back.Origin, r.Origin, 1e-9) || !vecNear(back.Dir, r.Dir, 1e-9) {
		t.Errorf("round trip = %+v, want %+v", back, r)
	}
	if got := r.At(2); got != (mgl64.Vec3{1, 2, 5}) {
		t.Errorf("At(2) = %v", got)
	}
}

package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBuildGridSmall(t *testing.T) {
	g, err := BuildGrid(3, 1, 1, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	want := []mgl64.Vec3{{-1, 0, 0}, {0, 0, 0}, {1, 0, 0}}
	if g.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", g.Len(), len(want))
	}
	for i, w := range want {
		inst := g.At(i)
		if inst.ID != i {
			t.Errorf("instance %d has ID %d", i, inst.ID)
		}
		if inst.Position != w {
			t.Errorf("instance %d at %v, want %v", i, inst.Position, w)
		}
	}
}

func TestBuildGridRowMajor(t *testing.T) {
	g, err := BuildGrid(2, 2, 2, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	i := g.Index(1, 0, 1)
	if i != 5 {
		t.Fatalf("Index(1,0,1) = %d, want 5", i)
	}
	if got, want := g.At(i).Position, (mgl64.Vec3{0.5, 0, 0.5}); got != want {
		t.Errorf("position = %v, want %v", got, want)
	}
	for idx := 0; idx < g.Len(); idx++ {
		x, y, z := g.Coords(idx)
		if g.Index(x, y, z) != idx {
			t.Errorf("Coords(%d) = (%d,%d,%d) does not round-trip", idx, x, y, z)
		}
	}
	if g.Index(2, 0, 0) != -1 || g.Index(0, -1, 0) != -1 {
		t.Error("out of range Index should return -1")
	}
}

func TestBuildGridDefaultLattice(t *testing.T) {
	spacing := 0.3 * 1.025
	g, err := BuildGrid(15, 25, 15, spacing)
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 5625 {
		t.Fatalf("Len = %d, want 5625", g.Len())
	}
	first := g.At(0).Position
	if math.Abs(first[0]+7*spacing) > 1e-12 || first[1] != 0 || math.Abs(first[2]+7*spacing) > 1e-12 {
		t.Errorf("first instance at %v", first)
	}
	last := g.At(g.Len() - 1).Position
	if math.Abs(last[1]-24*spacing) > 1e-12 {
		t.Errorf("top layer at y=%v, want %v", last[1], 24*spacing)
	}
}

func TestBuildGridErrors(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z int
		spacing float64
	}{
		{"zero count", 0, 1, 1, 1},
		{"negative count", 1, -2, 1, 1},
		{"zero spacing", 1, 1, 1, 0},
		{"nan spacing", 1, 1, 1, math.NaN()},
		{"too many", 1 << 10, 1 << 10, 1 << 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildGrid(tt.x, tt.y, tt.z, tt.spacing); !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

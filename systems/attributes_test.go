package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/lattice/components"
	"github.com/pthm-cable/lattice/params"
)

const attrEps = 1e-9

func newTestGraph(t testing.TB, scaleByWeight bool) *AttributeGraph {
	t.Helper()
	noise, err := NewNoiseField(DefaultNoiseConfig())
	if err != nil {
		t.Fatal(err)
	}
	influence, err := NewInfluenceField(DefaultMaxDistance)
	if err != nil {
		t.Fatal(err)
	}
	return NewAttributeGraph(noise, influence, scaleByWeight)
}

func vecNear(a, b mgl64.Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) <= eps && math.Abs(a[1]-b[1]) <= eps && math.Abs(a[2]-b[2]) <= eps
}

func TestScaleFactor(t *testing.T) {
	tests := []struct {
		name string
		n    float64
		want float64
	}{
		{"start of period", 0, 0},
		{"peak plateau", Divisions * 0.5, 1},
		{"rising edge", Divisions * 0.1, 0.5 / 0.75},
		{"falling edge", Divisions * 0.9, 0.5 / 0.75},
		{"low rising", Divisions * 0.05, 0.25 / 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScaleFactor(tt.n); math.Abs(got-tt.want) > attrEps {
				t.Errorf("ScaleFactor(%v) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestScaleFactorPeriodic(t *testing.T) {
	for _, n := range []float64{0.05, 0.21, 0.3} {
		a := ScaleFactor(n)
		b := ScaleFactor(n + Divisions)
		if math.Abs(a-b) > attrEps {
			t.Errorf("ScaleFactor(%v) = %v but ScaleFactor(n+d) = %v", n, a, b)
		}
	}
}

func TestSelectBand(t *testing.T) {
	tests := []struct {
		m    float64
		want components.Band
	}{
		{0, components.BandLow},
		{0.2, components.BandLow},
		{Divisions, components.BandLow},
		{0.5, components.BandMid},
		{2 * Divisions, components.BandMid},
		{0.9, components.BandHigh},
	}
	for _, tt := range tests {
		if got := SelectBand(tt.m); got != tt.want {
			t.Errorf("SelectBand(%v) = %v, want %v", tt.m, got, tt.want)
		}
	}
}

func TestRoughness(t *testing.T) {
	if r := Roughness(0); r != 0.5 {
		t.Errorf("Roughness(0) = %v, want 0.5", r)
	}
	if r := Roughness(1); r != 0.25 {
		t.Errorf("Roughness(1) = %v, want 0.25", r)
	}
}

func TestShadeColor(t *testing.T) {
	c := mgl64.Vec3{1, 0.5, 0.25}
	if got := ShadeColor(c, 1); !vecNear(got, c, attrEps) {
		t.Errorf("ShadeColor(c, 1) = %v, want %v", got, c)
	}
	if got := ShadeColor(c, 0); !vecNear(got, c.Mul(0.2), attrEps) {
		t.Errorf("ShadeColor(c, 0) = %v, want %v", got, c.Mul(0.2))
	}
}

func TestEvaluateOrigin(t *testing.T) {
	g := newTestGraph(t, false)
	p := params.Defaults()
	p.TimeMul = 0

	ev := g.EvaluateDetailed(mgl64.Vec3{0, 0, 0}, 0, p)
	if ev.Band != components.BandMid {
		t.Errorf("band = %v, want color2", ev.Band)
	}
	a := ev.Attributes
	if math.Abs(a.ScaleFactor-1) > attrEps {
		t.Errorf("scale = %v, want 1", a.ScaleFactor)
	}
	if a.Metalness != 0 {
		t.Errorf("metalness = %v, want 0", a.Metalness)
	}
	if a.Roughness != 0.5 {
		t.Errorf("roughness = %v, want 0.5", a.Roughness)
	}
	if !vecNear(a.Color, p.Colors[params.Color2], attrEps) {
		t.Errorf("color = %v, want %v", a.Color, p.Colors[params.Color2])
	}
}

func TestEvaluateInvariants(t *testing.T) {
	g := newTestGraph(t, false)
	p := params.Defaults()

	grid, err := BuildGrid(6, 5, 6, 0.3075)
	if err != nil {
		t.Fatal(err)
	}
	for _, inst := range grid.Instances() {
		for _, tm := range []float64{0, 0.7, 3.3, 41} {
			ev := g.EvaluateDetailed(inst.Position, tm, p)
			a := ev.Attributes
			if a.ScaleFactor < 0 || a.ScaleFactor > 1 {
				t.Fatalf("scale %v outside [0,1]", a.ScaleFactor)
			}
			if a.Metalness != 0 && a.Metalness != 1 {
				t.Fatalf("metalness %v not binary", a.Metalness)
			}
			if (a.Metalness == 1) != (ev.Band == components.BandHigh) {
				t.Fatalf("metalness %v disagrees with band %v", a.Metalness, ev.Band)
			}
			if a.Roughness != 0.25 && a.Roughness != 0.5 {
				t.Fatalf("roughness %v not in {0.25, 0.5}", a.Roughness)
			}
			want := ShadeColor(p.BandColor(ev.Band), a.ScaleFactor)
			if !vecNear(a.Color, want, attrEps) {
				t.Fatalf("color %v, want %v", a.Color, want)
			}
		}
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	g := newTestGraph(t, false)
	p := params.Defaults()
	pos := mgl64.Vec3{1.23, 0.6, -2.46}

	a := g.Evaluate(pos, 5.5, p)
	b := g.Evaluate(pos, 5.5, p)
	if a != b {
		t.Errorf("repeated evaluation differs: %+v vs %+v", a, b)
	}
}

func TestEvaluateVariesWithTime(t *testing.T) {
	g := newTestGraph(t, false)
	p := params.Defaults()
	pos := mgl64.Vec3{0, 0, 0}

	first := g.EvaluateDetailed(pos, 0, p)
	changed := false
	for tm := 1.0; tm <= 10; tm++ {
		if g.EvaluateDetailed(pos, tm, p).Band != first.Band {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("band never changed as time advanced")
	}
}

func TestEvaluateScaleByWeight(t *testing.T) {
	g := newTestGraph(t, true)
	p := params.Defaults()
	p.TimeMul = 0
	pos := mgl64.Vec3{0, 0, 0}

	if a := g.Evaluate(pos, 0, p); a.ScaleFactor != 0 {
		t.Errorf("no influence: scale = %v, want 0", a.ScaleFactor)
	}

	p.Influence = components.InfluenceAt(pos)
	ev := g.EvaluateDetailed(pos, 0, p)
	if ev.Weight != 1 {
		t.Errorf("weight = %v, want 1", ev.Weight)
	}
	if math.Abs(ev.Attributes.ScaleFactor-1) > attrEps {
		t.Errorf("influenced scale = %v, want 1", ev.Attributes.ScaleFactor)
	}
}

func TestEvaluateWeightDoesNotChangeScaleByDefault(t *testing.T) {
	g := newTestGraph(t, false)
	p := params.Defaults()
	pos := mgl64.Vec3{0.9, 0.3, 0.6}

	plain := g.EvaluateDetailed(pos, 2, p)
	p.Influence = components.InfluenceAt(mgl64.Vec3{0.9, 0.3, 0.9})
	influenced := g.EvaluateDetailed(pos, 2, p)

	if influenced.Weight <= 0 {
		t.Fatalf("expected positive weight, got %v", influenced.Weight)
	}
	if plain.Attributes != influenced.Attributes {
		t.Errorf("attributes changed with influence: %+v vs %+v", plain.Attributes, influenced.Attributes)
	}
}

package systems

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/lattice/components"
	"github.com/pthm-cable/lattice/params"
)

// divisionCount is the number of color bands and scale pulses per unit of noise.
const divisionCount = 3

// Divisions is the band width d = 1/3. It is a constant and never zero.
const Divisions = 1.0 / divisionCount

// Tent wave shaping.
const (
	pulseGain    = 5.0
	pulsePlateau = 0.75
	darkenFactor = 0.2
	roughMetal   = 0.25
	roughDefault = 0.5
)

// Evaluation is one instance's full result, including the intermediate
// values telemetry reports on.
type Evaluation struct {
	Attributes components.Attributes
	Band       components.Band
	Noise      float64 // n: noise plus time contribution
	Weight     float64 // influence weight
}

// AttributeGraph composes NoiseField and InfluenceField into per-instance
// attributes. It holds no per-instance state.
type AttributeGraph struct {
	noise         *NoiseField
	influence     InfluenceField
	scaleByWeight bool
}

// NewAttributeGraph creates a graph. When scaleByWeight is set, the scale
// factor is multiplied by the influence weight.
func NewAttributeGraph(noise *NoiseField, influence InfluenceField, scaleByWeight bool) *AttributeGraph {
	return &AttributeGraph{
		noise:         noise,
		influence:     influence,
		scaleByWeight: scaleByWeight,
	}
}

// Noise returns the graph's noise field.
func (g *AttributeGraph) Noise() *NoiseField {
	return g.noise
}

// Evaluate computes the attributes of one instance.
func (g *AttributeGraph) Evaluate(position mgl64.Vec3, time float64, p params.Parameters) components.Attributes {
	return g.EvaluateDetailed(position, time, p).Attributes
}

// EvaluateDetailed computes the attributes and intermediates of one instance.
func (g *AttributeGraph) EvaluateDetailed(position mgl64.Vec3, time float64, p params.Parameters) Evaluation {
	base := g.noise.Sample(position, p.TexScale)
	return g.EvaluateBase(position, base, time, p)
}

// EvaluateBase evaluates from a precomputed Sample(position, p.TexScale).
// Everything downstream derives from the single value n.
func (g *AttributeGraph) EvaluateBase(position mgl64.Vec3, base, time float64, p params.Parameters) Evaluation {
	n := Sanitize(base + time*p.TimeMul)

	weight := g.influence.Weight(position, p.Influence)
	scale := ScaleFactor(n)
	if g.scaleByWeight {
		scale *= weight
	}

	m := Mod(n, 1)
	band := SelectBand(m)
	metal := Metalness(m)

	return Evaluation{
		Attributes: components.Attributes{
			ScaleFactor: scale,
			Color:       ShadeColor(p.BandColor(band), scale),
			Metalness:   metal,
			Roughness:   Roughness(metal),
		},
		Band:   band,
		Noise:  n,
		Weight: weight,
	}
}

// ScaleFactor turns n into a periodic tent pulse in [0, 1].
func ScaleFactor(n float64) float64 {
	v := Mod(n, Divisions) / Divisions
	rising := Remap(v, 0, 1, 0, 1)
	falling := Remap(v, 1, 0, 0, 1)
	tent := Mix(rising, falling, Step(0.5, v))
	return RemapClamp(tent*pulseGain, 0, pulsePlateau, 0, 1)
}

// SelectBand picks the color band for the unit noise value m.
// Comparisons are strict, so exact boundaries fall to the lower band.
func SelectBand(m float64) components.Band {
	switch {
	case m > 2*Divisions:
		return components.BandHigh
	case m > Divisions:
		return components.BandMid
	default:
		return components.BandLow
	}
}

// Metalness is 1 exactly when m selects the high band.
func Metalness(m float64) float64 {
	if SelectBand(m) == components.BandHigh {
		return 1
	}
	return 0
}

// Roughness maps metalness 0 -> 0.5 and 1 -> 0.25.
func Roughness(metalness float64) float64 {
	return RemapClamp(1-metalness, 0, 1, roughMetal, roughDefault)
}

// ShadeColor darkens c toward 20% of itself as scale falls to 0.
func ShadeColor(c mgl64.Vec3, scale float64) mgl64.Vec3 {
	dark := c.Mul(darkenFactor)
	return mgl64.Vec3{
		Mix(dark[0], c[0], scale),
		Mix(dark[1], c[1], scale),
		Mix(dark[2], c[2], scale),
	}
}

package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Noise basis names.
const (
	BasisPerlin  = "perlin"
	BasisSimplex = "simplex"
)

// NoiseConfig fixes the shape of the noise field. None of it is live-tunable.
type NoiseConfig struct {
	Seed       int64
	Basis      string
	Amplitude  float64 // raw noise is scaled by this ...
	Pivot      float64 // ... and offset by this before clamping to [0, 1]
	Octaves    int
	Lacunarity float64
	Gain       float64
}

// DefaultNoiseConfig returns the reference single-octave Perlin field.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Seed:       0,
		Basis:      BasisPerlin,
		Amplitude:  0.75,
		Pivot:      0.5,
		Octaves:    1,
		Lacunarity: 2.0,
		Gain:       0.5,
	}
}

// NoiseField samples coherent noise at scaled instance positions.
type NoiseField struct {
	basis      NoiseBasis
	amplitude  float64
	pivot      float64
	octaves    int
	lacunarity float64
	gain       float64
	norm       float64 // 1 / sum of octave amplitudes
}

// NewNoiseField builds a field from cfg.
func NewNoiseField(cfg NoiseConfig) (*NoiseField, error) {
	if cfg.Octaves < 1 {
		return nil, fmt.Errorf("%w: noise octaves must be >= 1, got %d", ErrConfiguration, cfg.Octaves)
	}
	if cfg.Octaves > 1 && (cfg.Lacunarity <= 0 || cfg.Gain <= 0) {
		return nil, fmt.Errorf("%w: noise lacunarity and gain must be positive", ErrConfiguration)
	}

	var basis NoiseBasis
	switch cfg.Basis {
	case BasisPerlin, "":
		basis = NewPerlinNoise(cfg.Seed)
	case BasisSimplex:
		basis = NewSimplexNoise(cfg.Seed)
	default:
		return nil, fmt.Errorf("%w: unknown noise basis %q", ErrConfiguration, cfg.Basis)
	}

	return NewNoiseFieldWithBasis(basis, cfg), nil
}

// NewNoiseFieldWithBasis builds a field over an explicit basis.
// cfg.Seed and cfg.Basis are ignored.
func NewNoiseFieldWithBasis(basis NoiseBasis, cfg NoiseConfig) *NoiseField {
	octaves := max(cfg.Octaves, 1)
	var ampSum float64
	amp := 1.0
	for o := 0; o < octaves; o++ {
		ampSum += amp
		amp *= cfg.Gain
	}
	return &NoiseField{
		basis:      basis,
		amplitude:  cfg.Amplitude,
		pivot:      cfg.Pivot,
		octaves:    octaves,
		lacunarity: cfg.Lacunarity,
		gain:       cfg.Gain,
		norm:       1 / ampSum,
	}
}

// Raw returns normalized fBm of the basis at p, roughly in [-1, 1].
func (f *NoiseField) Raw(p mgl64.Vec3) float64 {
	if f.octaves == 1 {
		return f.basis.Noise3D(p[0], p[1], p[2])
	}
	var sum float64
	amp := 1.0
	freq := 1.0
	for o := 0; o < f.octaves; o++ {
		sum += amp * f.basis.Noise3D(p[0]*freq, p[1]*freq, p[2]*freq)
		freq *= f.lacunarity
		amp *= f.gain
	}
	return sum * f.norm
}

// Sample returns the noise at position*scale shaped by amplitude/pivot and
// clamped to [0, 1]. NaN maps to 0.
func (f *NoiseField) Sample(position mgl64.Vec3, scale float64) float64 {
	raw := f.Raw(position.Mul(scale))
	return Clamp01(Sanitize(raw*f.amplitude + f.pivot))
}

// TimeSample adds the unbounded time contribution to Sample.
func (f *NoiseField) TimeSample(position mgl64.Vec3, scale, time, timeMul float64) float64 {
	return f.Sample(position, scale) + time*timeMul
}

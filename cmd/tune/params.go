package main

import (
	"github.com/pthm-cable/lattice/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the tunable parameter set. Scalar bounds follow the
// soft ranges of cfg; defaults come from cfg.
func NewParamVector(cfg *config.Config) *ParamVector {
	p := cfg.Params
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "tex_scale", Path: "params.tex_scale", Min: p.TexScaleRange.Min, Max: p.TexScaleRange.Max, Default: p.TexScale},
			{Name: "time_mul", Path: "params.time_mul", Min: p.TimeMulRange.Min, Max: p.TimeMulRange.Max, Default: p.TimeMul},
			{Name: "amplitude", Path: "noise.amplitude", Min: 0.25, Max: 2.0, Default: cfg.Noise.Amplitude},
			{Name: "pivot", Path: "noise.pivot", Min: 0.25, Max: 0.75, Default: cfg.Noise.Pivot},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Names returns the parameter names in vector order.
func (pv *ParamVector) Names() []string {
	names := make([]string, len(pv.Specs))
	for i, spec := range pv.Specs {
		names[i] = spec.Name
	}
	return names
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	cfg.Params.TexScale = clamped[0]
	cfg.Params.TimeMul = clamped[1]
	cfg.Noise.Amplitude = clamped[2]
	cfg.Noise.Pivot = clamped[3]
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Params.TexScale,
		cfg.Params.TimeMul,
		cfg.Noise.Amplitude,
		cfg.Noise.Pivot,
	}
}

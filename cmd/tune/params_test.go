package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/lattice/config"
)

func TestParamVectorRoundTrip(t *testing.T) {
	cfg := config.Defaults()
	pv := NewParamVector(cfg)

	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	assert.InDeltaSlice(t, raw, back, 1e-12)
}

func TestParamVectorClamp(t *testing.T) {
	pv := NewParamVector(config.Defaults())
	low := make([]float64, pv.Dim())
	high := make([]float64, pv.Dim())
	for i := range low {
		low[i] = -100
		high[i] = 100
	}
	for i, spec := range pv.Specs {
		assert.Equal(t, spec.Min, pv.Clamp(low)[i], spec.Name)
		assert.Equal(t, spec.Max, pv.Clamp(high)[i], spec.Name)
	}
}

func TestApplyAndExtract(t *testing.T) {
	cfg := config.Defaults()
	pv := NewParamVector(cfg)
	want := []float64{0.3, 0.5, 1.2, 0.4}

	pv.ApplyToConfig(cfg, want)
	assert.Equal(t, want, pv.ExtractFromConfig(cfg))
	require.NoError(t, cfg.Validate())
}

func TestParseTarget(t *testing.T) {
	got, err := parseTarget("0.5, 0.25,0.25")
	require.NoError(t, err)
	assert.Equal(t, [3]float64{0.5, 0.25, 0.25}, got)

	for _, bad := range []string{"0.5,0.5", "a,b,c", "0.9,0.9,0.1", "-0.1,0.6,0.5"} {
		_, err := parseTarget(bad)
		assert.Error(t, err, bad)
	}
}

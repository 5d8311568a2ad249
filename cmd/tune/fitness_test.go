package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/lattice/config"
)

func smallConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Grid.XCount, cfg.Grid.YCount, cfg.Grid.ZCount = 4, 4, 4
	cfg.ComputeDerived()
	return cfg
}

func TestEvaluateDeterministic(t *testing.T) {
	cfg := smallConfig()
	pv := NewParamVector(cfg)
	fe := NewFitnessEvaluator(pv, 5, []int64{1, 2}, cfg, Target{Bands: [3]float64{0.4, 0.3, 0.3}})

	x := pv.DefaultVector()
	a := fe.Evaluate(x)
	b := fe.Evaluate(x)
	assert.Equal(t, a, b)
	assert.False(t, math.IsInf(a, 0))

	s := fe.LastScore()
	assert.InDelta(t, 1.0, s.Bands[0]+s.Bands[1]+s.Bands[2], 1e-9)
}

func TestEvaluateLeavesBaseConfig(t *testing.T) {
	cfg := smallConfig()
	pv := NewParamVector(cfg)
	fe := NewFitnessEvaluator(pv, 2, []int64{7}, cfg, Target{Bands: [3]float64{1, 0, 0}})

	fe.Evaluate([]float64{0.45, 0.9, 1.5, 0.3})
	assert.Equal(t, config.Defaults().Params.TexScale, cfg.Params.TexScale)
	assert.Equal(t, config.Defaults().Noise.Seed, cfg.Noise.Seed)
}

func TestScoreExactMatch(t *testing.T) {
	fe := &FitnessEvaluator{target: Target{Bands: [3]float64{0.5, 0.25, 0.25}, Scale: 0.8}}
	r := runResult{
		bands: [3][]float64{{0.5, 0.5}, {0.25, 0.25}, {0.25, 0.25}},
		scale: []float64{0.8, 0.8},
	}
	s := fe.score([]runResult{r})
	assert.InDelta(t, 0, s.Fitness, 1e-12)
	assert.InDelta(t, 0, s.Swing, 1e-12)
}

func TestScoreFailedRun(t *testing.T) {
	fe := &FitnessEvaluator{}
	s := fe.score([]runResult{{}})
	assert.True(t, math.IsInf(s.Fitness, 1))
}

package main

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/lattice/config"
	"github.com/pthm-cable/lattice/game"
)

// Target is the desired look of the lattice, averaged over a run.
type Target struct {
	Bands [3]float64 // band fractions in band order (color0, color2, color1)
	Scale float64    // mean scale factor; <= 0 disables the term
}

// Fitness weights.
const (
	weightBands     = 1.0
	weightScale     = 0.5
	weightStability = 0.25 // penalizes band fractions that swing over the run
)

// runResult holds the per-frame series from a single run.
type runResult struct {
	bands [3][]float64
	scale []float64
	err   error
}

// Score summarizes one evaluation.
type Score struct {
	Fitness   float64
	Bands     [3]float64
	ScaleMean float64
	Swing     float64 // mean per-band standard deviation over frames
}

// FitnessEvaluator runs headless lattices and scores them against a Target.
type FitnessEvaluator struct {
	params     *ParamVector
	frames     int
	seeds      []int64
	baseConfig *config.Config
	target     Target

	mu        sync.Mutex
	lastScore Score
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, frames int, seeds []int64, baseCfg *config.Config, target Target) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		frames:     frames,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
	}
}

// LastScore returns the score from the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() Score {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Seeds run in parallel; a run that fails to build scores +Inf.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.run(x, s)
		}(i, seed)
	}
	wg.Wait()

	score := fe.score(results)
	fe.mu.Lock()
	fe.lastScore = score
	fe.mu.Unlock()
	return score.Fitness
}

// run steps one headless lattice for fe.frames frames.
func (fe *FitnessEvaluator) run(x []float64, seed int64) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Noise.Seed = seed
	cfg.ComputeDerived()

	var result runResult
	for b := range result.bands {
		result.bands[b] = make([]float64, 0, fe.frames)
	}
	result.scale = make([]float64, 0, fe.frames)

	g, err := game.New(cfg, game.Options{
		Headless: true,
		OnFrame: func(f game.Frame) {
			for b, v := range f.Stats.BandFractions() {
				result.bands[b] = append(result.bands[b], v)
			}
			result.scale = append(result.scale, f.Stats.ScaleMean)
		},
	})
	if err != nil {
		result.err = fmt.Errorf("seed %d: %w", seed, err)
		return result
	}
	defer g.Close()

	for i := 0; i < fe.frames; i++ {
		g.Step(cfg.Loop.DT)
	}
	return result
}

// score folds the per-seed series into one fitness value.
func (fe *FitnessEvaluator) score(results []runResult) Score {
	var s Score
	var swings []float64
	var scales []float64
	var bands [3][]float64
	for _, r := range results {
		if r.err != nil || len(r.scale) == 0 {
			return Score{Fitness: math.Inf(1)}
		}
		for b := range r.bands {
			bands[b] = append(bands[b], r.bands[b]...)
			_, std := stat.PopMeanStdDev(r.bands[b], nil)
			swings = append(swings, std)
		}
		scales = append(scales, r.scale...)
	}

	var diff [3]float64
	for b := range bands {
		s.Bands[b] = stat.Mean(bands[b], nil)
		diff[b] = s.Bands[b] - fe.target.Bands[b]
	}
	s.ScaleMean = stat.Mean(scales, nil)
	s.Swing = stat.Mean(swings, nil)

	s.Fitness = weightBands*floats.Dot(diff[:], diff[:]) + weightStability*s.Swing*s.Swing
	if fe.target.Scale > 0 {
		d := s.ScaleMean - fe.target.Scale
		s.Fitness += weightScale * d * d
	}
	return s
}

// copyConfig returns an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// Package telemetry provides per-frame attribute statistics, windowed
// aggregation, performance tracking and experiment output.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/lattice/components"
)

// FrameStats summarizes the attributes published in one frame.
type FrameStats struct {
	RunID string  `csv:"run_id"`
	Frame int64   `csv:"frame"`
	Time  float64 `csv:"time"`

	Instances int `csv:"instances"`

	// Scale factor distribution
	ScaleMean float64 `csv:"scale_mean"`
	ScaleStd  float64 `csv:"scale_std"`
	ScaleP10  float64 `csv:"scale_p10"`
	ScaleP50  float64 `csv:"scale_p50"`
	ScaleP90  float64 `csv:"scale_p90"`

	// Fraction of instances in each band (color0, color2, color1)
	BandLow  float64 `csv:"band_color0"`
	BandMid  float64 `csv:"band_color2"`
	BandHigh float64 `csv:"band_color1"`

	MetalFraction float64 `csv:"metal_fraction"`
	Influenced    int     `csv:"influenced"` // instances with weight > 0

	ParamsVersion uint64 `csv:"params_version"`
}

// Percentile returns the empirical p-quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeDistribution returns mean, population std and the 10/50/90th percentiles.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}
	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, std, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// ComputeFrameStats summarizes one frame. bands and weights are indexed like
// samples; weights may be nil.
func ComputeFrameStats(frame int64, time float64, samples []components.Attributes, bands []components.Band, weights []float64) FrameStats {
	fs := FrameStats{Frame: frame, Time: time, Instances: len(samples)}
	n := len(samples)
	if n == 0 {
		return fs
	}

	scales := make([]float64, n)
	var metal float64
	for i, a := range samples {
		scales[i] = a.ScaleFactor
		metal += a.Metalness
	}
	fs.ScaleMean, fs.ScaleStd, fs.ScaleP10, fs.ScaleP50, fs.ScaleP90 = ComputeDistribution(scales)
	fs.MetalFraction = metal / float64(n)

	var counts [3]int
	for _, b := range bands {
		if int(b) < len(counts) {
			counts[b]++
		}
	}
	if len(bands) > 0 {
		fs.BandLow = float64(counts[components.BandLow]) / float64(len(bands))
		fs.BandMid = float64(counts[components.BandMid]) / float64(len(bands))
		fs.BandHigh = float64(counts[components.BandHigh]) / float64(len(bands))
	}

	for _, w := range weights {
		if w > 0 {
			fs.Influenced++
		}
	}
	return fs
}

// BandFractions returns the band fractions in band order.
func (s FrameStats) BandFractions() [3]float64 {
	return [3]float64{s.BandLow, s.BandMid, s.BandHigh}
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frame", s.Frame),
		slog.Float64("time", s.Time),
		slog.Int("instances", s.Instances),
		slog.Float64("scale_mean", s.ScaleMean),
		slog.Float64("scale_std", s.ScaleStd),
		slog.Float64("scale_p50", s.ScaleP50),
		slog.Float64("band_color0", s.BandLow),
		slog.Float64("band_color2", s.BandMid),
		slog.Float64("band_color1", s.BandHigh),
		slog.Float64("metal_fraction", s.MetalFraction),
		slog.Int("influenced", s.Influenced),
	)
}

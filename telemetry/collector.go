package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds frame statistics aggregated over a window of simulated time.
type WindowStats struct {
	RunID      string  `csv:"run_id"`
	StartFrame int64   `csv:"start_frame"`
	EndFrame   int64   `csv:"end_frame"`
	StartTime  float64 `csv:"start_time"`
	EndTime    float64 `csv:"end_time"`
	Frames     int     `csv:"frames"`

	ScaleMean    float64 `csv:"scale_mean"`
	ScaleStdMean float64 `csv:"scale_std_mean"`

	BandLowMean  float64 `csv:"band_color0_mean"`
	BandLowMin   float64 `csv:"band_color0_min"`
	BandLowMax   float64 `csv:"band_color0_max"`
	BandMidMean  float64 `csv:"band_color2_mean"`
	BandMidMin   float64 `csv:"band_color2_min"`
	BandMidMax   float64 `csv:"band_color2_max"`
	BandHighMean float64 `csv:"band_color1_mean"`
	BandHighMin  float64 `csv:"band_color1_min"`
	BandHighMax  float64 `csv:"band_color1_max"`

	MetalMean      float64 `csv:"metal_mean"`
	InfluencedMean float64 `csv:"influenced_mean"`
}

// Collector accumulates FrameStats within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64
	windowStart       float64

	scaleMean  []float64
	scaleStd   []float64
	bandLow    []float64
	bandMid    []float64
	bandHigh   []float64
	metal      []float64
	influenced []float64
	startFrame int64
	endFrame   int64
}

// NewCollector creates a collector flushing every windowDurationSec of
// simulated time. Non-positive durations flush every frame.
func NewCollector(windowDurationSec float64) *Collector {
	return &Collector{windowDurationSec: windowDurationSec, startFrame: -1}
}

// Record adds one frame's statistics to the current window.
func (c *Collector) Record(fs FrameStats) {
	if c.startFrame < 0 {
		c.startFrame = fs.Frame
	}
	c.endFrame = fs.Frame
	c.scaleMean = append(c.scaleMean, fs.ScaleMean)
	c.scaleStd = append(c.scaleStd, fs.ScaleStd)
	c.bandLow = append(c.bandLow, fs.BandLow)
	c.bandMid = append(c.bandMid, fs.BandMid)
	c.bandHigh = append(c.bandHigh, fs.BandHigh)
	c.metal = append(c.metal, fs.MetalFraction)
	c.influenced = append(c.influenced, float64(fs.Influenced))
}

// Frames returns the number of frames recorded in the current window.
func (c *Collector) Frames() int {
	return len(c.scaleMean)
}

// ShouldFlush returns true once the window covers windowDurationSec of simulated time.
func (c *Collector) ShouldFlush(now float64) bool {
	if c.Frames() == 0 {
		return false
	}
	return now-c.windowStart >= c.windowDurationSec
}

// Flush produces a WindowStats and starts a new window at now.
func (c *Collector) Flush(now float64) WindowStats {
	ws := WindowStats{
		StartFrame: c.startFrame,
		EndFrame:   c.endFrame,
		StartTime:  c.windowStart,
		EndTime:    now,
		Frames:     c.Frames(),
	}
	if ws.Frames > 0 {
		ws.ScaleMean = stat.Mean(c.scaleMean, nil)
		ws.ScaleStdMean = stat.Mean(c.scaleStd, nil)
		ws.BandLowMean, ws.BandLowMin, ws.BandLowMax = summarize(c.bandLow)
		ws.BandMidMean, ws.BandMidMin, ws.BandMidMax = summarize(c.bandMid)
		ws.BandHighMean, ws.BandHighMin, ws.BandHighMax = summarize(c.bandHigh)
		ws.MetalMean = stat.Mean(c.metal, nil)
		ws.InfluencedMean = stat.Mean(c.influenced, nil)
	}

	c.windowStart = now
	c.startFrame = -1
	c.scaleMean = c.scaleMean[:0]
	c.scaleStd = c.scaleStd[:0]
	c.bandLow = c.bandLow[:0]
	c.bandMid = c.bandMid[:0]
	c.bandHigh = c.bandHigh[:0]
	c.metal = c.metal[:0]
	c.influenced = c.influenced[:0]

	return ws
}

func summarize(values []float64) (mean, lo, hi float64) {
	return stat.Mean(values, nil), floats.Min(values), floats.Max(values)
}

// BandMeans returns the window's mean band fractions in band order.
func (s WindowStats) BandMeans() [3]float64 {
	return [3]float64{s.BandLowMean, s.BandMidMean, s.BandHighMean}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("start_frame", s.StartFrame),
		slog.Int64("end_frame", s.EndFrame),
		slog.Float64("end_time", s.EndTime),
		slog.Int("frames", s.Frames),
		slog.Float64("scale_mean", s.ScaleMean),
		slog.Float64("band_color0_mean", s.BandLowMean),
		slog.Float64("band_color2_mean", s.BandMidMean),
		slog.Float64("band_color1_mean", s.BandHighMean),
		slog.Float64("metal_mean", s.MetalMean),
		slog.Float64("influenced_mean", s.InfluencedMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}

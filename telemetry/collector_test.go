package telemetry

import (
	"math"
	"testing"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0)

	if c.ShouldFlush(5) {
		t.Error("empty collector should not flush")
	}

	frames := []FrameStats{
		{Frame: 0, ScaleMean: 0.2, BandLow: 0.5, BandMid: 0.25, BandHigh: 0.25, MetalFraction: 0.25},
		{Frame: 1, ScaleMean: 0.4, BandLow: 0.3, BandMid: 0.3, BandHigh: 0.4, MetalFraction: 0.4, Influenced: 10},
	}
	for _, fs := range frames {
		c.Record(fs)
	}

	if c.ShouldFlush(0.5) {
		t.Error("window should not flush before its duration")
	}
	if !c.ShouldFlush(1.0) {
		t.Fatal("window should flush at its duration")
	}

	ws := c.Flush(1.0)
	if ws.Frames != 2 || ws.StartFrame != 0 || ws.EndFrame != 1 {
		t.Errorf("window bounds = %+v", ws)
	}
	if math.Abs(ws.ScaleMean-0.3) > 1e-9 {
		t.Errorf("ScaleMean = %v, want 0.3", ws.ScaleMean)
	}
	if ws.BandLowMin != 0.3 || ws.BandLowMax != 0.5 {
		t.Errorf("band0 min/max = %v/%v", ws.BandLowMin, ws.BandLowMax)
	}
	if math.Abs(ws.BandHighMean-0.325) > 1e-9 {
		t.Errorf("BandHighMean = %v, want 0.325", ws.BandHighMean)
	}
	if ws.InfluencedMean != 5 {
		t.Errorf("InfluencedMean = %v, want 5", ws.InfluencedMean)
	}

	if c.Frames() != 0 {
		t.Errorf("collector not reset, %d frames", c.Frames())
	}
	c.Record(FrameStats{Frame: 2})
	if c.ShouldFlush(1.5) {
		t.Error("new window starts at the previous flush time")
	}
}

package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few ticks
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSnapshot)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseEvaluate)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Verify we got timing data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}

	// Verify phases are tracked
	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}

	if _, ok := stats.PhaseAvg[PhaseSnapshot]; !ok {
		t.Error("expected snapshot phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseEvaluate]; !ok {
		t.Error("expected evaluate phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Fill window completely
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSnapshot)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Should have data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}

	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

// stepClock advances by the next queued step on every read.
type stepClock struct {
	t     time.Time
	steps []time.Duration
}

func (c *stepClock) now() time.Time {
	if len(c.steps) > 0 {
		c.t = c.t.Add(c.steps[0])
		c.steps = c.steps[1:]
	}
	return c.t
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)
	clock := &stepClock{t: time.Unix(0, 0)}
	pc.SetClock(clock.now)

	for i := 0; i < 5; i++ {
		// StartTick, StartPhase(fast), StartPhase(slow), EndTick
		clock.steps = append(clock.steps, 0, 0, 1*time.Millisecond, 9*time.Millisecond)
		pc.StartTick()
		pc.StartPhase("fast")
		pc.StartPhase("slow")
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration != 10*time.Millisecond {
		t.Fatalf("AvgTickDuration = %v, want 10ms", stats.AvgTickDuration)
	}
	if got := stats.PhaseAvg["fast"]; got != time.Millisecond {
		t.Errorf("fast avg = %v, want 1ms", got)
	}
	if got := stats.PhasePct["fast"]; math.Abs(got-10) > 1e-9 {
		t.Errorf("fast pct = %v, want 10", got)
	}
	if got := stats.PhasePct["slow"]; math.Abs(got-90) > 1e-9 {
		t.Errorf("slow pct = %v, want 90", got)
	}
	if stats.TicksPerSecond != 100 {
		t.Errorf("TicksPerSecond = %v, want 100", stats.TicksPerSecond)
	}
}

func TestPerfCollector_RepeatedPhaseAccumulates(t *testing.T) {
	pc := NewPerfCollector(4)
	clock := &stepClock{t: time.Unix(0, 0)}
	pc.SetClock(clock.now)

	clock.steps = []time.Duration{0, 0, 2 * time.Millisecond, 3 * time.Millisecond, 5 * time.Millisecond}
	pc.StartTick()
	pc.StartPhase(PhaseEvaluate)
	pc.StartPhase(PhasePublish)
	pc.StartPhase(PhaseEvaluate)
	pc.EndTick()

	stats := pc.Stats()
	if got := stats.PhaseAvg[PhaseEvaluate]; got != 7*time.Millisecond {
		t.Errorf("evaluate avg = %v, want 7ms", got)
	}
	if got := stats.PhasePct[PhasePublish]; math.Abs(got-30) > 1e-9 {
		t.Errorf("publish pct = %v, want 30", got)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)
	clock := &stepClock{t: time.Unix(0, 0), steps: []time.Duration{0, 16 * time.Millisecond}}
	pc.SetClock(clock.now)

	// First call establishes baseline
	pc.RecordFrame()
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration != 16*time.Millisecond {
		t.Errorf("expected frame duration 16ms, got %v", stats.FrameDuration)
	}
	if math.Abs(stats.FPS-62.5) > 1e-9 {
		t.Errorf("expected 62.5 FPS with 16ms frame time, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 2 * time.Millisecond,
		PhasePct: map[string]float64{
			PhaseEvaluate:  80,
			PhaseTelemetry: 5,
		},
	}

	row := stats.ToCSV(42)

	if row.Frame != 42 {
		t.Errorf("Frame = %d, want 42", row.Frame)
	}
	if row.AvgTickUS != 2000 {
		t.Errorf("AvgTickUS = %d, want 2000", row.AvgTickUS)
	}
	if row.EvaluatePct != 80 || row.TelemetryPct != 5 {
		t.Errorf("unexpected phase pcts: %+v", row)
	}
	if row.InfluencePct != 0 {
		t.Errorf("untracked phase should be 0, got %v", row.InfluencePct)
	}
}

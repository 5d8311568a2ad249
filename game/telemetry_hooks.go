package game

import (
	"log/slog"
)

// recordTelemetry writes the last frame's stats and flushes the stats
// window when it is due.
func (g *Game) recordTelemetry() {
	if g.outputManager != nil {
		if err := g.outputManager.WriteFrame(g.lastStats); err != nil {
			slog.Error("failed to write frame", "error", err)
		}
	}

	g.collector.Record(g.lastStats)
	if !g.collector.ShouldFlush(g.time) {
		return
	}

	stats := g.collector.Flush(g.time)
	perfStats := g.perfCollector.Stats()
	g.lastWindow = stats

	if g.opts.OnWindow != nil {
		g.opts.OnWindow(stats)
	}

	if g.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteWindow(stats); err != nil {
			slog.Error("failed to write window", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.EndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

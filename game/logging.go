package game

import (
	"log/slog"

	"github.com/pthm-cable/lattice/components"
	"github.com/pthm-cable/lattice/params"
)

func logRejectedPointer(inf components.Influence, err error) {
	slog.Warn("pointer hit rejected",
		"x", inf.Point.X(), "y", inf.Point.Y(), "z", inf.Point.Z(),
		"error", err,
	)
}

// LogParams logs the current parameter snapshot.
func (g *Game) LogParams() {
	p := g.store.Snapshot()
	slog.Info("params",
		"version", p.Version,
		"time_mul", p.TimeMul,
		"tex_scale", p.TexScale,
		"color0", p.Colors[params.Color0],
		"color1", p.Colors[params.Color1],
		"color2", p.Colors[params.Color2],
		"influence", p.Influence.Active,
	)
}

// LogFrame logs the last frame's statistics and current performance.
func (g *Game) LogFrame() {
	slog.Info("frame", "stats", g.lastStats, "perf", g.perfCollector.Stats())
}

// logParamChange is subscribed to the store so tuning is visible in the log.
func logParamChange(c params.Change) {
	slog.Debug("param changed", "field", c.Field, "version", c.Version)
}

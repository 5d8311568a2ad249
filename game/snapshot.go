package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/lattice/components"
	"github.com/pthm-cable/lattice/telemetry"
)

// Snapshot captures the published state of every instance.
func (g *Game) Snapshot() *telemetry.Snapshot {
	spec := g.grid.Spec()
	p := g.store.Snapshot()

	snap := &telemetry.Snapshot{
		Version: telemetry.SnapshotVersion,
		RunID:   g.RunID(),
		Seed:    g.cfg.Noise.Seed,
		Frame:   g.frame,
		Time:    g.time,
		Grid: telemetry.GridState{
			XCount:  spec.XCount,
			YCount:  spec.YCount,
			ZCount:  spec.ZCount,
			Spacing: spec.Spacing,
		},
		Params: telemetry.ParamsState{
			TimeMul:         p.TimeMul,
			TexScale:        p.TexScale,
			InfluenceActive: p.Influence.Active,
			InfluencePoint:  [3]float64(p.Influence.Point),
			Version:         p.Version,
		},
		Instances: make([]telemetry.InstanceState, 0, g.grid.Len()),
	}
	for i, c := range p.Colors {
		snap.Params.Colors[i] = [3]float64(c)
	}

	// Instances are listed in flattened grid order, so Instances[i].ID == i.
	for _, e := range g.entities {
		inst, pos, attrs := g.instanceMapper.Get(e)
		snap.Instances = append(snap.Instances, telemetry.NewInstanceState(inst.ID, *pos, *attrs))
	}
	return snap
}

// SaveSnapshot writes a snapshot into the configured snapshot directory.
// Returns "" when snapshots are disabled.
func (g *Game) SaveSnapshot() (string, error) {
	if g.opts.SnapshotDir == "" {
		return "", nil
	}
	path, err := telemetry.SaveSnapshot(g.Snapshot(), g.opts.SnapshotDir)
	if err != nil {
		return "", err
	}
	slog.Info("snapshot saved", "path", path, "frame", g.frame)
	return path, nil
}

// Layer returns the published attributes of horizontal layer y as a
// row-major image slab: width = XCount columns, height = ZCount rows.
func (g *Game) Layer(y int) (samples []components.Attributes, width, height int, err error) {
	spec := g.grid.Spec()
	if y < 0 || y >= spec.YCount {
		return nil, 0, 0, fmt.Errorf("layer %d outside [0, %d)", y, spec.YCount)
	}
	width, height = spec.XCount, spec.ZCount
	samples = make([]components.Attributes, 0, width*height)
	for z := 0; z < spec.ZCount; z++ {
		for x := 0; x < spec.XCount; x++ {
			samples = append(samples, g.samples[g.grid.Index(x, y, z)])
		}
	}
	return samples, width, height, nil
}

// WriteLayerPNG writes layer y of the last frame as a PNG upscaled by factor.
func (g *Game) WriteLayerPNG(path string, y, factor int) error {
	samples, w, h, err := g.Layer(y)
	if err != nil {
		return err
	}
	return telemetry.WriteLayerPNG(path, samples, w, h, factor)
}

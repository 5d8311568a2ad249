package game

import (
	"math"

	"github.com/pthm-cable/lattice/telemetry"
)

// Step runs one frame: advance time, apply the latest pointer event, take
// one parameter snapshot, evaluate every instance against it and publish
// the results. Negative or non-finite dt is treated as 0.
func (g *Game) Step(dt float64) Frame {
	pc := g.perfCollector
	pc.StartTick()

	pc.StartPhase(telemetry.PhaseTimeAdvance)
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = 0
	}
	g.time += dt
	g.rotation = math.Mod(g.rotation+g.cfg.Scene.RotationSpeed, 2*math.Pi)

	pc.StartPhase(telemetry.PhaseInfluence)
	g.applyPointer()

	pc.StartPhase(telemetry.PhaseSnapshot)
	p := g.store.Snapshot()
	refresh := g.cache.validate(p.TexScale)

	pc.StartPhase(telemetry.PhaseEvaluate)
	g.evaluateAll(p, refresh)

	pc.StartPhase(telemetry.PhasePublish)
	g.publish()

	pc.StartPhase(telemetry.PhaseTelemetry)
	index := g.frame
	g.frame++
	g.lastStats = telemetry.ComputeFrameStats(index, g.time, g.samples, g.bands, g.weights)
	g.lastStats.ParamsVersion = p.Version
	g.recordTelemetry()

	pc.EndTick()

	frame := Frame{
		Index:   index,
		Time:    g.time,
		Params:  p,
		Samples: g.samples,
		Stats:   g.lastStats,
	}
	if g.opts.OnFrame != nil {
		g.opts.OnFrame(frame)
	}
	return frame
}

// applyPointer moves the latest pointer event into the store.
func (g *Game) applyPointer() {
	g.pointerMu.Lock()
	ev := g.pointer
	g.pointer.pending = false
	g.pointerMu.Unlock()

	if !ev.pending || ev.inf == g.store.Snapshot().Influence {
		return
	}
	if err := g.store.SetInfluence(ev.inf); err != nil {
		// Non-finite hit points are dropped; the previous influence stays.
		logRejectedPointer(ev.inf, err)
	}
}

// publish copies evaluations into the sample buffers and the ECS world.
func (g *Game) publish() {
	for i := range g.evals {
		ev := &g.evals[i]
		g.samples[i] = ev.Attributes
		g.bands[i] = ev.Band
		g.weights[i] = ev.Weight

		if attrs := g.attrMap.Get(g.entities[i]); attrs != nil {
			*attrs = ev.Attributes
		}
	}
}

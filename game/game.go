// Package game drives the lattice: it owns the instance world, the parameter
// store and the per-frame evaluation loop.
package game

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lattice/components"
	"github.com/pthm-cable/lattice/config"
	"github.com/pthm-cable/lattice/params"
	"github.com/pthm-cable/lattice/systems"
	"github.com/pthm-cable/lattice/telemetry"
)

// Options configures a Game beyond the loaded config.
type Options struct {
	OutputDir   string // CSV/YAML output (empty = disabled)
	SnapshotDir string // JSON snapshots (empty = disabled)
	LogStats    bool   // log window and perf stats via slog
	Headless    bool

	// OnFrame is called at the end of every Step. The Frame's Samples slice
	// is reused by the next Step.
	OnFrame func(Frame)
	// OnWindow is called whenever a stats window is flushed.
	OnWindow func(telemetry.WindowStats)
}

// Frame is the result of one Step.
type Frame struct {
	Index   int64
	Time    float64
	Params  params.Parameters
	Samples []components.Attributes // indexed by flattened instance index
	Stats   telemetry.FrameStats
}

// pointerEvent is the latest interaction reported between frames.
type pointerEvent struct {
	pending bool
	inf     components.Influence
}

// Game holds the complete lattice state.
type Game struct {
	cfg  *config.Config
	opts Options

	world          *ecs.World
	instanceMapper *ecs.Map3[components.Instance, components.Position, components.Attributes]
	instanceFilter *ecs.Filter3[components.Instance, components.Position, components.Attributes]
	attrMap        *ecs.Map[components.Attributes]
	entities       []ecs.Entity

	grid  *systems.InstanceGrid
	noise *systems.NoiseField
	graph *systems.AttributeGraph
	store *params.Store

	parallel *parallelState
	cache    noiseCache

	pointerMu sync.Mutex
	pointer   pointerEvent

	// Per-frame buffers, indexed like the grid
	evals   []systems.Evaluation
	samples []components.Attributes
	bands   []components.Band
	weights []float64

	time     float64
	frame    int64
	rotation float64 // lattice rotation about Y, radians

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	lastStats     telemetry.FrameStats
	lastWindow    telemetry.WindowStats

	unsubscribe func()
}

// New creates a Game from cfg. Grid and noise configuration errors are
// returned wrapped around systems.ErrConfiguration.
func New(cfg *config.Config, opts Options) (*Game, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", systems.ErrConfiguration)
	}
	cfg.ComputeDerived()

	noise, err := systems.NewNoiseField(noiseConfig(cfg))
	if err != nil {
		return nil, err
	}
	influence, err := systems.NewInfluenceField(cfg.Influence.MaxDistance)
	if err != nil {
		return nil, err
	}
	store, err := params.NewStore(initialParams(cfg),
		params.Range{Min: cfg.Params.TimeMulRange.Min, Max: cfg.Params.TimeMulRange.Max},
		params.Range{Min: cfg.Params.TexScaleRange.Min, Max: cfg.Params.TexScaleRange.Max},
	)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:           cfg,
		opts:          opts,
		noise:         noise,
		graph:         systems.NewAttributeGraph(noise, influence, cfg.Influence.ScaleByWeight),
		store:         store,
		parallel:      newParallelState(cfg.Loop.Workers),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
	}

	g.unsubscribe = store.Subscribe(logParamChange)

	spec := systems.GridSpec{
		XCount:  cfg.Grid.XCount,
		YCount:  cfg.Grid.YCount,
		ZCount:  cfg.Grid.ZCount,
		Spacing: cfg.Derived.Spacing,
	}
	if err := g.rebuild(spec); err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if om != nil {
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
		info := telemetry.RunInfo{
			Seed:      cfg.Noise.Seed,
			Started:   time.Now(),
			Instances: g.grid.Len(),
			Headless:  opts.Headless,
		}
		if err := om.WriteRunInfo(info); err != nil {
			slog.Error("failed to write run info", "error", err)
		}
	}

	slog.Info("lattice ready",
		"instances", g.grid.Len(),
		"grid", fmt.Sprintf("%dx%dx%d", spec.XCount, spec.YCount, spec.ZCount),
		"spacing", spec.Spacing,
		"basis", cfg.Noise.Basis,
		"seed", cfg.Noise.Seed,
		"workers", g.parallel.numWorkers,
	)

	return g, nil
}

// rebuild replaces the grid, world and per-instance buffers in one step.
// On error the previous state is kept.
func (g *Game) rebuild(spec systems.GridSpec) error {
	grid, err := systems.NewInstanceGrid(spec)
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	mapper := ecs.NewMap3[components.Instance, components.Position, components.Attributes](world)
	entities := make([]ecs.Entity, grid.Len())
	for i, inst := range grid.Instances() {
		id := components.Instance{ID: inst.ID}
		pos := components.Position{Vec3: inst.Position}
		attrs := components.Attributes{}
		entities[i] = mapper.NewEntity(&id, &pos, &attrs)
	}

	n := grid.Len()
	g.grid = grid
	g.world = world
	g.instanceMapper = mapper
	g.instanceFilter = ecs.NewFilter3[components.Instance, components.Position, components.Attributes](world)
	g.attrMap = ecs.NewMap[components.Attributes](world)
	g.entities = entities
	g.evals = make([]systems.Evaluation, n)
	g.samples = make([]components.Attributes, n)
	g.bands = make([]components.Band, n)
	g.weights = make([]float64, n)
	g.cache.reset(n)
	return nil
}

// Regenerate replaces the whole lattice. The store, time and frame counter
// are kept; the influence point is cleared since it referred to the old grid.
func (g *Game) Regenerate(xCount, yCount, zCount int, spacing float64) error {
	spec := systems.GridSpec{XCount: xCount, YCount: yCount, ZCount: zCount, Spacing: spacing}
	if err := g.rebuild(spec); err != nil {
		return err
	}
	g.ClearPointerHit()
	slog.Info("lattice regenerated", "instances", g.grid.Len(), "spacing", spacing)
	return nil
}

// Reseed swaps the noise field for one with a new seed.
func (g *Game) Reseed(seed int64) error {
	cfg := noiseConfig(g.cfg)
	cfg.Seed = seed
	noise, err := systems.NewNoiseField(cfg)
	if err != nil {
		return err
	}
	influence, err := systems.NewInfluenceField(g.cfg.Influence.MaxDistance)
	if err != nil {
		return err
	}
	g.noise = noise
	g.graph = systems.NewAttributeGraph(noise, influence, g.cfg.Influence.ScaleByWeight)
	g.cache.invalidate()
	slog.Info("noise reseeded", "seed", seed)
	return nil
}

// ResetParams restores the configured colors and scalars. The influence
// point is left as is.
func (g *Game) ResetParams() error {
	initial := initialParams(g.cfg)
	for slot, c := range initial.Colors {
		if err := g.store.SetColor(slot, c); err != nil {
			return err
		}
	}
	if err := g.store.SetScalar(params.TimeMul, initial.TimeMul); err != nil {
		return err
	}
	return g.store.SetScalar(params.TexScale, initial.TexScale)
}

// SetPointerHit reports that the pointer hits the lattice at p (lattice-local
// space). Safe to call from any goroutine; applied at the next Step.
func (g *Game) SetPointerHit(p mgl64.Vec3) {
	g.pointerMu.Lock()
	g.pointer = pointerEvent{pending: true, inf: components.InfluenceAt(p)}
	g.pointerMu.Unlock()
}

// ClearPointerHit reports that the pointer no longer hits the lattice.
func (g *Game) ClearPointerHit() {
	g.pointerMu.Lock()
	g.pointer = pointerEvent{pending: true, inf: components.NoInfluence()}
	g.pointerMu.Unlock()
}

// Close stops the worker pool and closes output files.
func (g *Game) Close() error {
	g.stopParallelWorkers()
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
	if g.opts.LogStats && g.lastWindow.Frames > 0 {
		g.lastWindow.LogStats()
	}
	return g.outputManager.Close()
}

// Config returns the configuration the game was built from.
func (g *Game) Config() *config.Config { return g.cfg }

// Store returns the parameter store collaborators mutate.
func (g *Game) Store() *params.Store { return g.store }

// Grid returns the current instance grid.
func (g *Game) Grid() *systems.InstanceGrid { return g.grid }

// Graph returns the current attribute graph.
func (g *Game) Graph() *systems.AttributeGraph { return g.graph }

// Time returns the accumulated time in seconds.
func (g *Game) Time() float64 { return g.time }

// FrameIndex returns the number of completed frames.
func (g *Game) FrameIndex() int64 { return g.frame }

// Rotation returns the lattice rotation about Y in radians.
func (g *Game) Rotation() float64 { return g.rotation }

// Samples returns the attributes published by the last Step.
func (g *Game) Samples() []components.Attributes { return g.samples }

// Evaluation returns the full evaluation of instance i from the last Step.
func (g *Game) Evaluation(i int) systems.Evaluation { return g.evals[i] }

// LastStats returns the statistics of the last frame.
func (g *Game) LastStats() telemetry.FrameStats { return g.lastStats }

// LastWindow returns the most recently flushed stats window.
func (g *Game) LastWindow() telemetry.WindowStats { return g.lastWindow }

// Perf returns the current performance statistics.
func (g *Game) Perf() telemetry.PerfStats { return g.perfCollector.Stats() }

// PerfCollector exposes the collector so a graphical loop can record frame timing.
func (g *Game) PerfCollector() *telemetry.PerfCollector { return g.perfCollector }

// RunID returns the output run id, or "" when output is disabled.
func (g *Game) RunID() string { return g.outputManager.RunID() }

// EachInstance calls fn with every instance's id, position and attributes
// as stored in the world. Iteration order is the world's, not the index order.
func (g *Game) EachInstance(fn func(id int, pos components.Position, attrs components.Attributes)) {
	query := g.instanceFilter.Query()
	for query.Next() {
		inst, pos, attrs := query.Get()
		fn(inst.ID, *pos, *attrs)
	}
}

func noiseConfig(cfg *config.Config) systems.NoiseConfig {
	return systems.NoiseConfig{
		Seed:       cfg.Noise.Seed,
		Basis:      cfg.Noise.Basis,
		Amplitude:  cfg.Noise.Amplitude,
		Pivot:      cfg.Noise.Pivot,
		Octaves:    cfg.Noise.Octaves,
		Lacunarity: cfg.Noise.Lacunarity,
		Gain:       cfg.Noise.Gain,
	}
}

func initialParams(cfg *config.Config) params.Parameters {
	return params.Parameters{
		Colors: [3]mgl64.Vec3{
			mgl64.Vec3(cfg.Params.Color0),
			mgl64.Vec3(cfg.Params.Color1),
			mgl64.Vec3(cfg.Params.Color2),
		},
		TimeMul:   cfg.Params.TimeMul,
		TexScale:  cfg.Params.TexScale,
		Influence: components.NoInfluence(),
	}
}

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lattice/camera"
	"github.com/pthm-cable/lattice/components"
	"github.com/pthm-cable/lattice/config"
	"github.com/pthm-cable/lattice/game"
	"github.com/pthm-cable/lattice/renderer"
	"github.com/pthm-cable/lattice/systems"
	"github.com/pthm-cable/lattice/ui"
)

const (
	orbitSpeed = 0.005 // radians per pixel
	zoomStep   = 0.1
	controls   = "Drag: orbit | Wheel: zoom | Space: pause | R: reset view | N: reseed | S: snapshot | P: layer PNG | [ ]: layer | Tab: panel | F3: perf"
)

// viewer owns the window-side state around a Game.
type viewer struct {
	g   *game.Game
	cfg *config.Config
	cam *camera.Camera

	background *renderer.BackgroundRenderer
	lattice    *renderer.LatticeRenderer
	hud        *ui.HUD
	perfPanel  *ui.PerfPanel
	inspector  *ui.Inspector
	controls   *ui.ControlsPanel

	picked   systems.PickResult
	paused   bool
	showPerf bool
	layer    int
	outDir   string
}

func runGraphical(cfg *config.Config, opts game.Options, maxFrames int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Lattice")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	v := newViewer(g, cfg, opts.OutputDir)
	for !rl.WindowShouldClose() {
		v.update()
		v.draw()
		g.PerfCollector().RecordFrame()

		if maxFrames > 0 && g.FrameIndex() >= int64(maxFrames) {
			break
		}
	}
	return nil
}

func newViewer(g *game.Game, cfg *config.Config, outDir string) *viewer {
	w, h := float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	timeMulRange, texScaleRange := g.Store().SoftRanges()
	panelWidth, margin := int32(cfg.Screen.PanelWidth), int32(cfg.Screen.PanelMargin)
	panelX := cfg.Screen.PanelX(cfg.Screen.Width)
	v := &viewer{
		g:          g,
		cfg:        cfg,
		cam:        camera.NewDefault(w, h),
		background: renderer.NewBackgroundRenderer(int32(w), int32(h), cfg.Scene.BackgroundInner, cfg.Scene.BackgroundOuter),
		lattice:    renderer.NewLatticeRenderer(cfg.Grid.CubeSize, cfg.Scene.EnvironmentIntensity, cfg.Scene.Ground),
		hud:        ui.NewHUD(),
		perfPanel:  ui.NewPerfPanel(10, 140),
		inspector:  ui.NewInspector(panelX, margin, panelWidth),
		controls:   ui.NewControlsPanel(panelX, margin, panelWidth, timeMulRange, texScaleRange),
		picked: systems.PickResult{Index: -1},
		layer:  cfg.Grid.YCount / 2,
		outDir: outDir,
	}
	if v.outDir == "" {
		v.outDir = "."
	}
	return v
}

func (v *viewer) update() {
	if rl.IsWindowResized() {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		v.cam.Resize(float64(w), float64(h))
		v.background.Resize(int32(w), int32(h))
		v.controls.SetPosition(v.cfg.Screen.PanelX(w), int32(v.cfg.Screen.PanelMargin))
	}

	v.handleKeys()

	mouse := rl.GetMousePosition()
	overUI := v.controls.Contains(mouse)
	if overUI {
		v.g.ClearPointerHit()
		v.picked = systems.PickResult{Index: -1}
	} else {
		v.picked = v.g.HandlePointer(v.cam.Ray(float64(mouse.X), float64(mouse.Y)))
	}

	// Orbit is disabled while the pointer is on an instance.
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && !overUI && !v.picked.Hit {
		d := rl.GetMouseDelta()
		v.cam.Orbit(-float64(d.X)*orbitSpeed, float64(d.Y)*orbitSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overUI {
		v.cam.ZoomBy(1 - zoomStep*float64(wheel))
	}
	v.cam.Update()

	if !v.paused {
		v.g.Step(float64(rl.GetFrameTime()))
	}
}

func (v *viewer) handleKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		v.paused = !v.paused
	case rl.IsKeyPressed(rl.KeyR):
		v.cam.Reset()
	case rl.IsKeyPressed(rl.KeyN):
		v.reseed()
	case rl.IsKeyPressed(rl.KeyS):
		v.snapshot()
	case rl.IsKeyPressed(rl.KeyP):
		v.exportLayer()
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		v.layer = max(v.layer-1, 0)
	case rl.IsKeyPressed(rl.KeyRightBracket):
		v.layer = min(v.layer+1, v.g.Grid().Spec().YCount-1)
	case rl.IsKeyPressed(rl.KeyTab):
		v.controls.Toggle()
	case rl.IsKeyPressed(rl.KeyF3):
		v.showPerf = !v.showPerf
	}
}

func (v *viewer) draw() {
	rl.BeginDrawing()
	v.background.Draw()

	rl.BeginMode3D(renderer.Camera3D(v.cam))
	v.lattice.Draw(v.g, v.g.Rotation(), v.picked.Index)
	rl.EndMode3D()

	snap := v.g.Store().Snapshot()
	var colors [3]rl.Color
	for i, c := range snap.Colors {
		colors[i] = renderer.ColorFromRGB([3]float64(c))
	}
	// Band order is color0, color2, color1.
	colors[1], colors[2] = colors[2], colors[1]

	v.hud.Draw(ui.HUDData{
		Title:     "Lattice",
		Stats:     v.g.LastStats(),
		Colors:    colors,
		FPS:       rl.GetFPS(),
		Paused:    v.paused,
		RunID:     v.g.RunID(),
		Rotation:  v.g.Rotation(),
		Instances: v.g.Grid().Len(),
	})
	if v.showPerf {
		v.perfPanel.Draw(v.g.Perf())
	}

	switch v.controls.Draw(v.g.Store()) {
	case ui.ActionResetParams:
		if err := v.g.ResetParams(); err != nil {
			slog.Error("reset params failed", "error", err)
		}
	case ui.ActionReseed:
		v.reseed()
	case ui.ActionSnapshot:
		v.snapshot()
	}

	if v.picked.Hit {
		v.drawInspector()
	}

	v.hud.DrawControls(int32(rl.GetScreenHeight()), controls)
	rl.EndDrawing()
}

func (v *viewer) drawInspector() {
	i := v.picked.Index
	eval := v.g.Evaluation(i)
	data := ui.InspectorData{
		Index:      i,
		Position:   components.Position{Vec3: v.g.Grid().At(i).Position},
		Attributes: eval.Attributes,
		Band:       eval.Band,
		Noise:      eval.Noise,
		Weight:     eval.Weight,
	}
	margin := int32(v.cfg.Screen.PanelMargin)
	y := margin
	if v.controls.IsVisible() {
		y += v.controls.Height() + margin
	}
	v.inspector.SetPosition(v.cfg.Screen.PanelX(rl.GetScreenWidth()), y)
	v.inspector.Draw(data)
	v.inspector.DrawTooltip(rl.GetMousePosition(), data)
}

func (v *viewer) reseed() {
	seed := int64(rl.GetRandomValue(1, 99999))
	if err := v.g.Reseed(seed); err != nil {
		slog.Error("reseed failed", "error", err)
	}
}

func (v *viewer) snapshot() {
	path, err := v.g.SaveSnapshot()
	if err != nil {
		slog.Error("snapshot failed", "error", err)
		return
	}
	if path == "" {
		slog.Warn("snapshot skipped, no -snapshot-dir set")
	}
}

func (v *viewer) exportLayer() {
	path := filepath.Join(v.outDir, fmt.Sprintf("layer_%d_frame_%d.png", v.layer, v.g.FrameIndex()))
	if err := v.g.WriteLayerPNG(path, v.layer, 8); err != nil {
		slog.Error("layer export failed", "error", err)
		return
	}
	slog.Info("layer exported", "path", path, "layer", v.layer)
}

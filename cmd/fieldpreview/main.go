// Attribute field preview tool - interactive horizontal slices with sliders.
//
// Usage: go run ./cmd/fieldpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/lattice/components"
	"github.com/pthm-cable/lattice/config"
	"github.com/pthm-cable/lattice/params"
	"github.com/pthm-cable/lattice/systems"
	"github.com/pthm-cable/lattice/telemetry"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 128
)

// previewState holds the slider values.
type previewState struct {
	TexScale  float32
	TimeMul   float32
	Amplitude float32
	Pivot     float32
	SliceY    float32
	Seed      int64
	NoiseOnly bool
}

func defaultState(cfg *config.Config) previewState {
	return previewState{
		TexScale:  float32(cfg.Params.TexScale),
		TimeMul:   float32(cfg.Params.TimeMul),
		Amplitude: float32(cfg.Noise.Amplitude),
		Pivot:     float32(cfg.Noise.Pivot),
		SliceY:    float32(cfg.Derived.Spacing * float64(cfg.Grid.YCount-1) / 2),
		Seed:      cfg.Noise.Seed,
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	rl.InitWindow(windowWidth, windowHeight, "Attribute Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	state := defaultState(cfg)
	maxY := float32(cfg.Derived.Spacing * float64(cfg.Grid.YCount-1))
	view := sliceView{
		Size:   gridSize,
		Extent: cfg.Derived.Spacing * float64(max(cfg.Grid.XCount, cfg.Grid.ZCount)) / 2,
	}

	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	graph, err := buildGraph(cfg, state)
	if err != nil {
		log.Fatalf("failed to build field: %v", err)
	}

	var t float64
	animating := false
	needsRegen := true
	needsRebuild := false
	var samples []components.Attributes
	var bands [3]float64

	for !rl.WindowShouldClose() {
		if animating {
			t += float64(rl.GetFrameTime())
			needsRegen = true
		}
		if needsRebuild {
			if g, err := buildGraph(cfg, state); err != nil {
				log.Printf("rebuild failed: %v", err)
			} else {
				graph = g
			}
			needsRebuild = false
			needsRegen = true
		}
		if needsRegen {
			view.Y = float64(state.SliceY)
			samples, bands = view.sample(samples, graph, stateParams(cfg, state), t, state.NoiseOnly)
			updateTexture(texture, samples)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Bands  color0: %.2f  color2: %.2f  color1: %.2f", bands[0], bands[1], bands[2]), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.1f  Seed: %d", t, state.Seed), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Attribute Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		var changed bool
		state.TexScale, changed = slider(panelX, &panelY, "Texture scale", state.TexScale, 0.05, 1.0, "%.2f")
		needsRegen = needsRegen || changed
		state.TimeMul, changed = slider(panelX, &panelY, "Time multiplier", state.TimeMul, 0.0, 1.0, "%.2f")
		needsRegen = needsRegen || changed
		state.SliceY, changed = slider(panelX, &panelY, "Slice height", state.SliceY, 0, maxY, "%.2f")
		needsRegen = needsRegen || changed
		state.Amplitude, changed = slider(panelX, &panelY, "Noise amplitude", state.Amplitude, 0.1, 2.0, "%.2f")
		needsRebuild = needsRebuild || changed
		state.Pivot, changed = slider(panelX, &panelY, "Noise pivot", state.Pivot, 0.0, 1.0, "%.2f")
		needsRebuild = needsRebuild || changed
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			t = 0
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			state.Seed = int64(rl.GetRandomValue(1, 99999))
			needsRebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			state = defaultState(cfg)
			t = 0
			needsRebuild = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 250, Height: 30}, toggleText(state.NoiseOnly, "Show Colors", "Show Noise")) {
			state.NoiseOnly = !state.NoiseOnly
			needsRegen = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(state) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("C: copy YAML | P: export slice PNG", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(state) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}
		if rl.IsKeyPressed(rl.KeyP) {
			path := fmt.Sprintf("slice_y%.2f_t%.1f.png", state.SliceY, t)
			if err := telemetry.WriteLayerPNG(path, samples, gridSize, gridSize, 4); err != nil {
				log.Printf("export failed: %v", err)
			} else {
				log.Printf("slice exported to %s", path)
			}
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider and advances y. It reports whether the value changed.
func slider(x float32, y *float32, label string, value, lo, hi float32, format string) (float32, bool) {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return next, next != value
}

func buildGraph(cfg *config.Config, state previewState) (*systems.AttributeGraph, error) {
	nc := systems.NoiseConfig{
		Seed:       state.Seed,
		Basis:      cfg.Noise.Basis,
		Amplitude:  float64(state.Amplitude),
		Pivot:      float64(state.Pivot),
		Octaves:    cfg.Noise.Octaves,
		Lacunarity: cfg.Noise.Lacunarity,
		Gain:       cfg.Noise.Gain,
	}
	noise, err := systems.NewNoiseField(nc)
	if err != nil {
		return nil, err
	}
	influence, err := systems.NewInfluenceField(cfg.Influence.MaxDistance)
	if err != nil {
		return nil, err
	}
	return systems.NewAttributeGraph(noise, influence, cfg.Influence.ScaleByWeight), nil
}

func stateParams(cfg *config.Config, state previewState) params.Parameters {
	return params.Parameters{
		Colors: [3]mgl64.Vec3{
			mgl64.Vec3(cfg.Params.Color0),
			mgl64.Vec3(cfg.Params.Color1),
			mgl64.Vec3(cfg.Params.Color2),
		},
		TimeMul:   float64(state.TimeMul),
		TexScale:  math.Max(float64(state.TexScale), 1e-3),
		Influence: components.NoInfluence(),
	}
}

func yamlLines(state previewState) []string {
	return []string{
		"noise:",
		fmt.Sprintf("  seed: %d", state.Seed),
		fmt.Sprintf("  amplitude: %.2f", state.Amplitude),
		fmt.Sprintf("  pivot: %.2f", state.Pivot),
		"params:",
		fmt.Sprintf("  tex_scale: %.2f", state.TexScale),
		fmt.Sprintf("  time_mul: %.2f", state.TimeMul),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// updateTexture uploads the slice colors to the GPU texture.
func updateTexture(texture rl.Texture2D, samples []components.Attributes) {
	img, err := telemetry.LayerImage(samples, gridSize, gridSize)
	if err != nil {
		return
	}
	pixels := make([]color.RGBA, gridSize*gridSize)
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			pixels[y*gridSize+x] = img.RGBAAt(x, y)
		}
	}
	rl.UpdateTexture(texture, pixels)
}

package ui

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lattice/components"
	"github.com/pthm-cable/lattice/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Stats     telemetry.FrameStats
	Colors    [3]rl.Color // band colors in band order
	FPS       int32
	Paused    bool
	RunID     string
	Rotation  float64 // radians
	Instances int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	s := data.Stats
	rl.DrawText(
		fmt.Sprintf("Instances: %d | Influenced: %d | Metal: %.0f%%", data.Instances, s.Influenced, s.MetalFraction*100),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Frame: %d | Time: %.2f | FPS: %d", s.Frame, s.Time, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	// Band breakdown with swatches
	y := int32(75)
	x := int32(10)
	fractions := s.BandFractions()
	for i, name := range components.BandNames() {
		rl.DrawRectangle(x, y+2, 12, 12, data.Colors[i])
		label := fmt.Sprintf("%s %.0f%%", name, fractions[i]*100)
		rl.DrawText(label, x+16, y, 14, rl.LightGray)
		x += 16 + rl.MeasureText(label, 14) + 14
	}

	run := data.RunID
	if len(run) > 8 {
		run = run[:8]
	}
	rl.DrawText(fmt.Sprintf("Run: %s | Rotation: %.0f deg", run, data.Rotation*180/math.Pi), 10, 95, 14, rl.Gray)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 113, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase frame timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y
	theme := p.renderer.Theme

	rl.DrawText("Frame Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond)),
		x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]

		color := theme.LabelColor
		if pct > 50 {
			color = theme.HotColor
		} else if pct > 25 {
			color = theme.WarnColor
		}

		rl.DrawText(
			fmt.Sprintf("%-14s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

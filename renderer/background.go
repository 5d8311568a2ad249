package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BackgroundRenderer draws a radial gradient from Inner at the screen
// center to Outer at the edges.
type BackgroundRenderer struct {
	Inner, Outer     rl.Color
	screenW, screenH int32
}

// NewBackgroundRenderer creates a background renderer for the given screen.
func NewBackgroundRenderer(screenW, screenH int32, inner, outer [3]float64) *BackgroundRenderer {
	return &BackgroundRenderer{
		Inner:   ColorFromRGB(inner),
		Outer:   ColorFromRGB(outer),
		screenW: screenW,
		screenH: screenH,
	}
}

// Resize updates the screen size used for the gradient.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW = screenW
	b.screenH = screenH
}

// Draw clears the frame and paints the gradient. Must be called before BeginMode3D.
func (b *BackgroundRenderer) Draw() {
	rl.ClearBackground(b.Outer)

	// The gradient reaches Outer at 0.75 of the half diagonal.
	radius := 0.75 * math.Hypot(float64(b.screenW)/2, float64(b.screenH)/2)
	rl.DrawCircleGradient(b.screenW/2, b.screenH/2, float32(radius), b.Inner, b.Outer)
}

// ColorFromRGB converts linear [0, 1] RGB to an opaque raylib color.
func ColorFromRGB(rgb [3]float64) rl.Color {
	return rl.Color{R: channel(rgb[0]), G: channel(rgb[1]), B: channel(rgb[2]), A: 255}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

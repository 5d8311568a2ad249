package ui

import (
	"fmt"
	"log/slog"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lattice/params"
)

// ControlsAction is a button press reported by the controls panel.
type ControlsAction int

const (
	ActionNone ControlsAction = iota
	ActionResetParams
	ActionReseed
	ActionSnapshot
)

const (
	sliderHeight = 14
	sliderStep   = 0.01
)

// ControlsPanel renders the live parameter sliders and writes accepted
// changes to the parameter store.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	timeMulRange  params.Range
	texScaleRange params.Range
}

// NewControlsPanel creates a controls panel whose scalar sliders span the
// given soft ranges.
func NewControlsPanel(x, y, width int32, timeMulRange, texScaleRange params.Range) *ControlsPanel {
	return &ControlsPanel{
		renderer:      NewRenderer(),
		x:             x,
		y:             y,
		width:         width,
		visible:       true,
		timeMulRange:  timeMulRange,
		texScaleRange: texScaleRange,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Height returns the panel height.
func (c *ControlsPanel) Height() int32 {
	t := c.renderer.Theme
	rows := int32(3*4 + 2*2 + 2)
	return rows*(sliderHeight+4) + t.Padding*2 + 30
}

// Contains reports whether a screen point lies over the visible panel.
func (c *ControlsPanel) Contains(p rl.Vector2) bool {
	if !c.visible {
		return false
	}
	rect := rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.Height())}
	return rl.CheckCollisionPointRec(p, rect)
}

// Draw renders the sliders for the current parameters and applies any
// change to store. It returns the button pressed this frame, if any.
func (c *ControlsPanel) Draw(store *params.Store) ControlsAction {
	if !c.visible {
		return ActionNone
	}

	r := c.renderer
	padding := r.Theme.Padding
	r.Panel(c.x, c.y, c.width, c.Height())

	cur := store.Snapshot()
	x := float32(c.x + padding + 40)
	y := c.y + padding
	w := float32(c.width-padding*2-90)
	row := int32(sliderHeight + 4)

	rl.DrawText("Parameters", c.x+padding, y, 16, rl.White)
	y += 22

	for slot := params.Color0; slot <= params.Color2; slot++ {
		y = r.Header(c.x+padding, y, fmt.Sprintf("color%d", slot))
		rgb := cur.Colors[slot]
		next := rgb
		changed := false
		for ch, name := range []string{"R", "G", "B"} {
			bounds := rl.Rectangle{X: x, Y: float32(y), Width: w, Height: sliderHeight}
			v := quantize(gui.SliderBar(bounds, name, fmt.Sprintf("%.2f", rgb[ch]), float32(rgb[ch]), 0, 1), sliderStep)
			if v != quantize(float32(rgb[ch]), sliderStep) {
				next[ch] = float64(v)
				changed = true
			}
			y += row
		}
		if changed {
			apply(fmt.Sprintf("color%d", slot), store.SetColor(slot, next))
		}
	}

	y = r.Header(c.x+padding, y, "motion")
	y = c.scalarSlider(store, x, y, w, "time", params.TimeMul, cur.TimeMul, c.timeMulRange)
	y = r.Header(c.x+padding, y, "texture")
	y = c.scalarSlider(store, x, y, w, "scale", params.TexScale, cur.TexScale, c.texScaleRange)
	y += 4

	bw := (float32(c.width) - float32(padding)*4) / 3
	bx := float32(c.x + padding)
	action := ActionNone
	if gui.Button(rl.Rectangle{X: bx, Y: float32(y), Width: bw, Height: 22}, "Reset") {
		action = ActionResetParams
	}
	if gui.Button(rl.Rectangle{X: bx + bw + float32(padding), Y: float32(y), Width: bw, Height: 22}, "Reseed") {
		action = ActionReseed
	}
	if gui.Button(rl.Rectangle{X: bx + 2*(bw+float32(padding)), Y: float32(y), Width: bw, Height: 22}, "Snapshot") {
		action = ActionSnapshot
	}
	return action
}

func (c *ControlsPanel) scalarSlider(store *params.Store, x float32, y int32, w float32, label, name string, value float64, rng params.Range) int32 {
	bounds := rl.Rectangle{X: x, Y: float32(y), Width: w, Height: sliderHeight}
	v := quantize(gui.SliderBar(bounds, label, fmt.Sprintf("%.2f", value), float32(value), float32(rng.Min), float32(rng.Max)), sliderStep)
	if v != quantize(float32(value), sliderStep) {
		apply(name, store.SetScalar(name, float64(v)))
	}
	return y + sliderHeight + 4
}

func apply(field string, err error) {
	if err != nil {
		slog.Warn("slider change rejected", "field", field, "error", err)
	}
}

// quantize rounds v to the nearest multiple of step.
func quantize(v, step float32) float32 {
	return float32(math.Round(float64(v/step))) * step
}

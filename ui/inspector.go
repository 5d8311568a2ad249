package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lattice/components"
)

// InspectorData describes the instance under the pointer.
type InspectorData struct {
	Index      int
	Position   components.Position
	Attributes components.Attributes
	Band       components.Band
	Noise      float64
	Weight     float64
}

// Inspector renders the picked-instance panel.
type Inspector struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		sections: append([]SectionDescriptor{instanceSection()}, AttributeSections()...),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Height returns the panel height for the current layout.
func (ins *Inspector) Height() int32 {
	t := ins.renderer.Theme
	lines := int32(1)
	for _, sd := range ins.sections {
		lines += int32(len(sd.Fields))
		if sd.Title != "" {
			lines++
		}
	}
	return lines*(t.LineHeight+2) + t.Padding*2
}

// Draw renders the inspector and returns the Y below it.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	r.Panel(ins.x, ins.y, ins.width, ins.Height())

	x := ins.x + padding
	y := ins.y + padding
	contentWidth := ins.width - padding*2

	y = r.Header(x, y, fmt.Sprintf("Instance #%d", data.Index))
	y = r.Section(x, y, ins.sections[0], data, contentWidth)
	for _, sd := range ins.sections[1:] {
		y = r.Section(x, y, sd, data.Attributes, contentWidth)
	}
	return y
}

// instanceSection lists the per-instance rows. Getters take InspectorData.
func instanceSection() SectionDescriptor {
	d := func(data any) InspectorData { return data.(InspectorData) }
	return SectionDescriptor{
		ID: "instance",
		Fields: []FieldDescriptor{
			{ID: "pos", Label: "Pos", Widget: WidgetText, TextGetter: func(data any) string {
				p := d(data).Position
				return fmt.Sprintf("%.2f, %.2f, %.2f", p.X(), p.Y(), p.Z())
			}},
			{ID: "noise", Label: "Noise", Widget: WidgetText, Format: "%.3f", Getter: func(data any) float32 {
				return float32(d(data).Noise)
			}},
			{ID: "band", Label: "Band", Widget: WidgetText, TextGetter: func(data any) string {
				return d(data).Band.String()
			}},
			{ID: "weight", Label: "Weight", Widget: WidgetBar, Range: DefaultRange(), Getter: func(data any) float32 {
				return float32(d(data).Weight)
			}},
			{Widget: WidgetSpacer},
		},
	}
}

// DrawTooltip renders a short label next to the pointer.
func (ins *Inspector) DrawTooltip(mouse rl.Vector2, data InspectorData) {
	text := fmt.Sprintf("#%d %s", data.Index, data.Band)
	rl.DrawText(text, int32(mouse.X)+14, int32(mouse.Y)+6, 14, rl.White)
}

package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws descriptor rows with a shared theme. Every row method
// takes the row's top Y and returns the Y of the next row.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// Panel fills a bordered panel background.
func (r *Renderer) Panel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// Header draws a section title.
func (r *Renderer) Header(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// label draws "label:" and returns the x where the row content starts.
func (r *Renderer) label(x, y int32, label string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	return x + r.Theme.LabelWidth
}

// Row draws a label followed by a text value.
func (r *Renderer) Row(x, y int32, label, value string) int32 {
	rl.DrawText(value, r.label(x, y, label), y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

func (r *Renderer) bar(x, y int32, fd FieldDescriptor, value float32, width int32) int32 {
	left := r.label(x, y, fd.Label)
	span := width - r.Theme.LabelWidth - 50
	rl.DrawRectangle(left, y+2, span, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(left, y+2, int32(float32(span)*fd.Range.Normalize(value)), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf(fd.format(), value), left+span+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight + 2
}

func (r *Renderer) swatch(x, y int32, label string, c rl.Color) int32 {
	rl.DrawRectangle(r.label(x, y, label), y+1, 12, 12, c)
	return y + r.Theme.LineHeight
}

// Field draws one descriptor row for data.
func (r *Renderer) Field(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	switch fd.Widget {
	case WidgetBar:
		return r.bar(x, y, fd, fd.value(data), width)
	case WidgetColorSwatch:
		c := r.Theme.ValueColor
		if fd.ColorGetter != nil {
			c = fd.ColorGetter(data)
		}
		return r.swatch(x, y, fd.Label, c)
	case WidgetSection:
		return r.Header(x, y, fd.Label)
	case WidgetSpacer:
		return y + 6
	}
	if fd.TextGetter != nil {
		return r.Row(x, y, fd.Label, fd.TextGetter(data))
	}
	return r.Row(x, y, fd.Label, fmt.Sprintf(fd.format(), fd.value(data)))
}

// Section draws a titled group of fields, skipping hidden ones.
func (r *Renderer) Section(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return y
	}
	if sd.Title != "" {
		y = r.Header(x, y, sd.Title)
	}
	for _, fd := range sd.Fields {
		if fd.Visible == nil || fd.Visible(data) {
			y = r.Field(x, y, fd, data, width)
		}
	}
	return y + 4
}

// Package ui provides a descriptor-driven UI for the lattice viewer.
// Panels are built from field metadata so that the displayed attributes
// follow the components they describe.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lattice/components"
)

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar over Range
	WidgetColorSwatch                   // Color preview square
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// Normalize maps v into [0, 1] over the range.
func (r FieldRange) Normalize(v float32) float32 {
	if r.Max <= r.Min {
		return 0
	}
	n := (v - r.Min) / (r.Max - r.Min)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID          string             // Unique identifier for the field
	Label       string             // Display label
	Widget      WidgetType         // How to render
	Format      string             // Printf format for text (e.g., "%.2f")
	Range       FieldRange         // Value range for bars
	Visible     func(any) bool     // Optional visibility check (nil = always visible)
	Getter      func(any) float32  // Value extractor (for numeric fields)
	TextGetter  func(any) string   // Value extractor (for text fields)
	ColorGetter func(any) rl.Color // Color extractor (for color swatches)
}

func (fd FieldDescriptor) value(data any) float32 {
	if fd.Getter == nil {
		return 0
	}
	return fd.Getter(data)
}

func (fd FieldDescriptor) format() string {
	if fd.Format == "" {
		return "%.2f"
	}
	return fd.Format
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string            // Unique identifier
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// AttributeSections groups the Attributes field metadata into sections.
// The data passed to the getters must be a components.Attributes.
func AttributeSections() []SectionDescriptor {
	var sections []SectionDescriptor
	index := map[string]int{}
	for _, cf := range components.AttributeFieldDescriptors() {
		i, ok := index[cf.Group]
		if !ok {
			i = len(sections)
			index[cf.Group] = i
			sections = append(sections, SectionDescriptor{ID: cf.Group, Title: cf.Group})
		}
		sections[i].Fields = append(sections[i].Fields, attributeField(cf))
	}
	return sections
}

func attributeField(cf components.FieldDescriptor) FieldDescriptor {
	fd := FieldDescriptor{
		ID:     cf.ID,
		Label:  cf.Label,
		Format: cf.Format,
		Range:  FieldRange{Min: cf.Min, Max: cf.Max},
	}
	id := cf.ID
	switch {
	case cf.IsBar:
		fd.Widget = WidgetBar
		fd.Getter = func(data any) float32 {
			v, _ := data.(components.Attributes).FieldValue(id)
			return float32(v)
		}
	case cf.Format == "":
		fd.Widget = WidgetColorSwatch
		fd.ColorGetter = func(data any) rl.Color {
			c := data.(components.Attributes).Color
			return rgbColor(c[0], c[1], c[2])
		}
	default:
		fd.Widget = WidgetText
		fd.Getter = func(data any) float32 {
			v, _ := data.(components.Attributes).FieldValue(id)
			return float32(v)
		}
	}
	return fd
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	WarnColor      rl.Color
	HotColor       rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		WarnColor:      rl.Orange,
		HotColor:       rl.Red,
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     60,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

func rgbColor(r, g, b float64) rl.Color {
	return rl.Color{R: unit8(r), G: unit8(g), B: unit8(b), A: 255}
}

func unit8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

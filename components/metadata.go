package components

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID     string  // Unique identifier
	Label  string  // Display name
	Format string  // Printf format (e.g., "%.2f")
	Min    float32 // Minimum value (for bars)
	Max    float32 // Maximum value (for bars)
	IsBar  bool    // True to render as progress bar
	Group  string  // Logical grouping
}

// String returns the display name for a Band.
func (b Band) String() string {
	names := BandNames()
	if int(b) < len(names) {
		return names[b]
	}
	return "Unknown"
}

// BandNames returns the display names for all bands.
// The order matches the Band constants.
func BandNames() []string {
	return []string{"color0", "color2", "color1"}
}

// BandCount returns the number of color bands.
func BandCount() int {
	return len(BandNames())
}

// AttributeFieldDescriptors returns metadata for Attributes fields.
func AttributeFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "scale", Label: "Scale", Format: "%.2f", Min: 0, Max: 1, IsBar: true, Group: "shape"},
		{ID: "metalness", Label: "Metal", Format: "%.0f", Min: 0, Max: 1, IsBar: true, Group: "material"},
		{ID: "roughness", Label: "Rough", Format: "%.2f", Min: 0.25, Max: 0.5, IsBar: true, Group: "material"},
		{ID: "color", Label: "Color", Group: "material"},
	}
}

// FieldValue returns the numeric value of an Attributes field by descriptor ID.
func (a Attributes) FieldValue(id string) (float64, bool) {
	switch id {
	case "scale":
		return a.ScaleFactor, true
	case "metalness":
		return a.Metalness, true
	case "roughness":
		return a.Roughness, true
	}
	return 0, false
}

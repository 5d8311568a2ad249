package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/lattice/components"
)

// DefaultMaxDistance is the reference proximity radius in world units.
const DefaultMaxDistance = 2.0

// InfluenceField weights instances by proximity to the influence point.
type InfluenceField struct {
	maxDistance float64
}

// NewInfluenceField creates a field with the given falloff radius.
func NewInfluenceField(maxDistance float64) (InfluenceField, error) {
	if !(maxDistance > 0) {
		return InfluenceField{}, fmt.Errorf("%w: influence max distance must be positive, got %v", ErrConfiguration, maxDistance)
	}
	return InfluenceField{maxDistance: maxDistance}, nil
}

// MaxDistance returns the falloff radius.
func (f InfluenceField) MaxDistance() float64 {
	return f.maxDistance
}

// Weight returns the proximity weight of position. An inactive influence
// always yields 0, independent of where the grid sits.
func (f InfluenceField) Weight(position mgl64.Vec3, inf components.Influence) float64 {
	if !inf.Active {
		return 0
	}
	return InfluenceWeight(position, inf.Point, f.maxDistance)
}

// InfluenceWeight maps distance [0, maxDistance] to weight [1, 0], clamped.
func InfluenceWeight(position, point mgl64.Vec3, maxDistance float64) float64 {
	d := position.Sub(point).Len()
	if maxDistance <= 0 {
		if d <= 0 {
			return 1
		}
		return 0
	}
	return Sanitize(RemapClamp(d, 0, maxDistance, 1, 0))
}

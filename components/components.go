// Package components defines ECS components for the instance lattice.
package components

import "github.com/go-gl/mathgl/mgl64"

// Instance identifies one element of the lattice by its flattened index.
// The index is stable for the lifetime of a grid and is the same index
// used by every per-frame attribute buffer.
type Instance struct {
	ID int
}

// Position is an instance's lattice-local position. Immutable after creation.
type Position struct {
	mgl64.Vec3
}

// Attributes holds the visual outputs computed for one instance in one pass.
type Attributes struct {
	ScaleFactor float64    // [0, 1]
	Color       mgl64.Vec3 // linear RGB
	Metalness   float64    // exactly 0 or 1
	Roughness   float64    // [0.25, 0.5]
}

// Band is the color band selected by the unit noise value.
type Band uint8

const (
	BandLow  Band = iota // color0
	BandMid              // color2
	BandHigh             // color1
)

// Influence is an optional world-space point that drives proximity weighting.
// Active=false means no pointer/ray hit; weights are then 0 regardless of Point.
type Influence struct {
	Point  mgl64.Vec3
	Active bool
}

// NoInfluence is the inactive influence state.
func NoInfluence() Influence {
	return Influence{}
}

// InfluenceAt returns an active influence at p.
func InfluenceAt(p mgl64.Vec3) Influence {
	return Influence{Point: p, Active: true}
}

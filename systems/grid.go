package systems

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxInstances caps the lattice size.
const MaxInstances = 1 << 24

// Instance is one lattice element. Position never changes after the grid is built.
type Instance struct {
	ID       int
	Position mgl64.Vec3
}

// GridSpec describes a lattice.
type GridSpec struct {
	XCount  int
	YCount  int
	ZCount  int
	Spacing float64
}

// Count returns the number of instances the spec describes.
func (s GridSpec) Count() int {
	return s.XCount * s.YCount * s.ZCount
}

// Validate reports a configuration error for non-positive counts or spacing.
func (s GridSpec) Validate() error {
	if s.XCount <= 0 || s.YCount <= 0 || s.ZCount <= 0 {
		return fmt.Errorf("%w: grid counts must be positive, got %dx%dx%d", ErrConfiguration, s.XCount, s.YCount, s.ZCount)
	}
	if !(s.Spacing > 0) || math.IsInf(s.Spacing, 0) {
		return fmt.Errorf("%w: grid spacing must be positive and finite, got %v", ErrConfiguration, s.Spacing)
	}
	if int64(s.XCount)*int64(s.YCount)*int64(s.ZCount) > MaxInstances {
		return fmt.Errorf("%w: grid of %dx%dx%d exceeds %d instances", ErrConfiguration, s.XCount, s.YCount, s.ZCount, MaxInstances)
	}
	return nil
}

// InstanceGrid is the fixed, row-major (x outer, y middle, z inner) lattice.
type InstanceGrid struct {
	spec      GridSpec
	instances []Instance
}

// BuildGrid generates the lattice. X and Z are centered on 0; Y starts at 0.
func BuildGrid(xCount, yCount, zCount int, spacing float64) (*InstanceGrid, error) {
	return NewInstanceGrid(GridSpec{XCount: xCount, YCount: yCount, ZCount: zCount, Spacing: spacing})
}

// NewInstanceGrid generates the lattice described by spec.
func NewInstanceGrid(spec GridSpec) (*InstanceGrid, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	xOffset := float64(spec.XCount-1) / 2
	zOffset := float64(spec.ZCount-1) / 2

	instances := make([]Instance, 0, spec.Count())
	for x := 0; x < spec.XCount; x++ {
		for y := 0; y < spec.YCount; y++ {
			for z := 0; z < spec.ZCount; z++ {
				instances = append(instances, Instance{
					ID: len(instances),
					Position: mgl64.Vec3{
						(float64(x) - xOffset) * spec.Spacing,
						float64(y) * spec.Spacing,
						(float64(z) - zOffset) * spec.Spacing,
					},
				})
			}
		}
	}

	return &InstanceGrid{spec: spec, instances: instances}, nil
}

// Spec returns the grid's dimensions and spacing.
func (g *InstanceGrid) Spec() GridSpec {
	return g.spec
}

// Len returns the number of instances.
func (g *InstanceGrid) Len() int {
	return len(g.instances)
}

// At returns instance i. Panics if i is out of range.
func (g *InstanceGrid) At(i int) Instance {
	return g.instances[i]
}

// Instances returns the backing slice. Callers must not modify it.
func (g *InstanceGrid) Instances() []Instance {
	return g.instances
}

// Index returns the flattened index of lattice cell (x, y, z), or -1 when
// the cell is outside the grid.
func (g *InstanceGrid) Index(x, y, z int) int {
	s := g.spec
	if x < 0 || y < 0 || z < 0 || x >= s.XCount || y >= s.YCount || z >= s.ZCount {
		return -1
	}
	return (x*s.YCount+y)*s.ZCount + z
}

// Coords is the inverse of Index.
func (g *InstanceGrid) Coords(i int) (x, y, z int) {
	s := g.spec
	z = i % s.ZCount
	y = (i / s.ZCount) % s.YCount
	x = i / (s.ZCount * s.YCount)
	return x, y, z
}

// Bounds returns the axis-aligned box spanning all instance positions,
// grown by pad on every side.
func (g *InstanceGrid) Bounds(pad float64) (lo, hi mgl64.Vec3) {
	first := g.instances[0].Position
	last := g.instances[len(g.instances)-1].Position
	p := mgl64.Vec3{pad, pad, pad}
	return first.Sub(p), last.Add(p)
}

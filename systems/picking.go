package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line in lattice-local space. Dir need not be normalized;
// hit distances are in units of Dir.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// RotateY returns the ray rotated by angle radians about the Y axis.
func (r Ray) RotateY(angle float64) Ray {
	m := mgl64.Rotate3DY(angle)
	return Ray{Origin: m.Mul3x1(r.Origin), Dir: m.Mul3x1(r.Dir)}
}

// PickResult is the nearest instance hit by a ray.
type PickResult struct {
	Index    int
	Distance float64
	Hit      bool
}

// PickInstance intersects ray with every instance cube (half extent
// halfSize, centered on the instance position) and returns the nearest hit.
// The lattice bounding box is tested first.
func PickInstance(grid *InstanceGrid, ray Ray, halfSize float64) PickResult {
	result := PickResult{Index: -1}
	if grid == nil || grid.Len() == 0 || halfSize <= 0 {
		return result
	}

	lo, hi := grid.Bounds(halfSize)
	if _, ok := intersectAABB(ray, lo, hi); !ok {
		return result
	}

	ext := mgl64.Vec3{halfSize, halfSize, halfSize}
	best := math.Inf(1)
	for _, inst := range grid.Instances() {
		t, ok := intersectAABB(ray, inst.Position.Sub(ext), inst.Position.Add(ext))
		if ok && t < best {
			best = t
			result = PickResult{Index: inst.ID, Distance: t, Hit: true}
		}
	}
	return result
}

// intersectAABB is the slab test. It returns the entry parameter (0 when the
// origin is inside the box).
func intersectAABB(ray Ray, lo, hi mgl64.Vec3) (float64, bool) {
	tMin := 0.0
	tMax := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		o := ray.Origin[axis]
		d := ray.Dir[axis]
		if d == 0 {
			if o < lo[axis] || o > hi[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (lo[axis] - o) * inv
		t2 := (hi[axis] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/lattice/systems"
)

// ToLocal converts a world-space ray into lattice-local space. The lattice
// is drawn lifted by half a cube and rotated by Rotation about Y.
func (g *Game) ToLocal(ray systems.Ray) systems.Ray {
	lift := mgl64.Vec3{0, g.cfg.Derived.HalfSize, 0}
	ray.Origin = ray.Origin.Sub(lift)
	return ray.RotateY(-g.rotation)
}

// Pick intersects a world-space ray with the lattice without changing state.
func (g *Game) Pick(ray systems.Ray) systems.PickResult {
	return systems.PickInstance(g.grid, g.ToLocal(ray), g.cfg.Derived.HalfSize)
}

// HandlePointer picks with a world-space ray and reports the result as the
// next frame's influence: the hit instance's position, or none on a miss.
func (g *Game) HandlePointer(ray systems.Ray) systems.PickResult {
	res := g.Pick(ray)
	if res.Hit {
		g.SetPointerHit(g.grid.At(res.Index).Position)
	} else {
		g.ClearPointerHit()
	}
	return res
}

// Package renderer draws the lattice scene with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/lattice/camera"
	"github.com/pthm-cable/lattice/components"
)

// InstanceSource yields every instance with its latest attributes.
type InstanceSource interface {
	EachInstance(fn func(id int, pos components.Position, attrs components.Attributes))
}

// LatticeRenderer draws one cube per instance plus a ground plane.
type LatticeRenderer struct {
	CubeSize             float64
	EnvironmentIntensity float64
	Ground               rl.Color
	Highlight            rl.Color
	LightDir             mgl64.Vec3 // direction toward the light
}

// NewLatticeRenderer creates a renderer lit by a directional light at (0, 10, 0).
func NewLatticeRenderer(cubeSize, envIntensity float64, ground [3]float64) *LatticeRenderer {
	return &LatticeRenderer{
		CubeSize:             cubeSize,
		EnvironmentIntensity: envIntensity,
		Ground:               ColorFromRGB(ground),
		Highlight:            rl.Color{R: 255, G: 220, B: 80, A: 255},
		LightDir:             mgl64.Vec3{0, 10, 0}.Normalize(),
	}
}

// Camera3D converts the orbit camera into a raylib camera.
func Camera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(c.Position()),
		Target:     vec3(c.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(c.FovY),
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the lattice lifted by half a cube and rotated by rotation
// radians about Y. The instance at highlight (or none when negative) gets
// an outline. Must be called between BeginMode3D and EndMode3D.
func (r *LatticeRenderer) Draw(src InstanceSource, rotation float64, highlight int) {
	half := r.CubeSize / 2
	span := r.groundSpan(src)
	rl.DrawPlane(rl.NewVector3(0, 0, 0), rl.NewVector2(span, span), r.Ground)

	rl.PushMatrix()
	rl.Translatef(0, float32(half), 0)
	rl.Rotatef(float32(mgl64.RadToDeg(rotation)), 0, 1, 0)

	src.EachInstance(func(id int, pos components.Position, attrs components.Attributes) {
		size := float32(r.CubeSize * attrs.ScaleFactor)
		center := vec3(pos.Vec3)
		if size > 0 {
			rl.DrawCube(center, size, size, size, r.Shade(attrs))
		}
		if id == highlight {
			edge := float32(r.CubeSize)
			rl.DrawCubeWires(center, edge, edge, edge, r.Highlight)
		}
	})

	rl.PopMatrix()
}

// Shade approximates the material response of one instance under the
// directional light and environment term. Metals reflect more of the light
// and rougher surfaces spread it wider.
func (r *LatticeRenderer) Shade(attrs components.Attributes) rl.Color {
	diffuse := math.Max(0, r.LightDir.Dot(mgl64.Vec3{0, 1, 0}))
	lit := r.EnvironmentIntensity + (1-r.EnvironmentIntensity)*0.6*diffuse
	specular := 0.0
	if attrs.Metalness > 0 {
		lit *= 0.8
		specular = 0.35 * (1 - attrs.Roughness)
	} else {
		specular = 0.1 * (1 - attrs.Roughness)
	}
	c := attrs.Color.Mul(lit).Add(mgl64.Vec3{specular, specular, specular})
	return ColorFromRGB([3]float64(c))
}

// groundSpan sizes the plane to cover the rotating lattice footprint.
func (r *LatticeRenderer) groundSpan(src InstanceSource) float32 {
	var extent float64
	src.EachInstance(func(_ int, pos components.Position, _ components.Attributes) {
		extent = math.Max(extent, math.Hypot(pos.X(), pos.Z()))
	})
	return float32(2*extent + 8*r.CubeSize)
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}

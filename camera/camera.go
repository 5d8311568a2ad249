// Package camera provides an orbit camera around the lattice and converts
// screen positions into picking rays.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/lattice/systems"
)

// Defaults match the reference scene: eye at (0, 15, 25) looking at the origin.
const (
	DefaultFovY     = 30.0 // degrees
	DefaultNear     = 0.1
	DefaultFar      = 100.0
	DefaultDamping  = 0.1
	defaultMinPitch = -1.45
	defaultMaxPitch = 1.45
)

var worldUp = mgl64.Vec3{0, 1, 0}

// Camera orbits Target at Distance. Yaw and Pitch ease toward their goal
// values by Damping per Update, like damped orbit controls.
type Camera struct {
	Target   mgl64.Vec3
	Yaw      float64 // radians, 0 = on +Z looking toward -Z
	Pitch    float64 // radians above the XZ plane
	Distance float64

	FovY      float64 // degrees
	Near, Far float64
	Damping   float64 // fraction of the remaining motion applied per Update; 1 = none

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	MinDistance, MaxDistance float64

	goalYaw, goalPitch, goalDistance float64
	home                             [3]float64 // yaw, pitch, distance for Reset
}

// New creates a camera looking at the origin from eye.
func New(viewportW, viewportH float64, eye mgl64.Vec3) *Camera {
	dist := eye.Len()
	if dist == 0 {
		dist = 1
	}
	yaw := math.Atan2(eye.X(), eye.Z())
	pitch := math.Asin(clamp(eye.Y()/dist, -1, 1))

	c := &Camera{
		Yaw:         yaw,
		Pitch:       pitch,
		Distance:    dist,
		FovY:        DefaultFovY,
		Near:        DefaultNear,
		Far:         DefaultFar,
		Damping:     DefaultDamping,
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		MinDistance: 2,
		MaxDistance: DefaultFar / 2,
	}
	c.home = [3]float64{yaw, pitch, dist}
	c.goalYaw, c.goalPitch, c.goalDistance = yaw, pitch, dist
	return c
}

// NewDefault creates the reference camera at (0, 15, 25).
func NewDefault(viewportW, viewportH float64) *Camera {
	return New(viewportW, viewportH, mgl64.Vec3{0, 15, 25})
}

// Position returns the eye position in world space.
func (c *Camera) Position() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	offset := mgl64.Vec3{
		c.Distance * cp * math.Sin(c.Yaw),
		c.Distance * math.Sin(c.Pitch),
		c.Distance * cp * math.Cos(c.Yaw),
	}
	return c.Target.Add(offset)
}

// Basis returns the camera's forward, right and up unit vectors.
func (c *Camera) Basis() (forward, right, up mgl64.Vec3) {
	forward = c.Target.Sub(c.Position()).Normalize()
	right = forward.Cross(worldUp).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// Aspect returns the viewport aspect ratio.
func (c *Camera) Aspect() float64 {
	if c.ViewportH == 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// Orbit rotates the goal orientation by the given deltas (radians).
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.goalYaw += dYaw
	c.goalPitch = clamp(c.goalPitch+dPitch, defaultMinPitch, defaultMaxPitch)
}

// ZoomBy scales the goal distance by factor (< 1 moves closer).
func (c *Camera) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.goalDistance = clamp(c.goalDistance*factor, c.MinDistance, c.MaxDistance)
}

// Update eases the camera toward its goal orientation.
func (c *Camera) Update() {
	k := clamp(c.Damping, 0, 1)
	if k == 0 {
		k = 1
	}
	c.Yaw += (c.goalYaw - c.Yaw) * k
	c.Pitch += (c.goalPitch - c.Pitch) * k
	c.Distance += (c.goalDistance - c.Distance) * k
}

// Resize updates the viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Reset returns to the initial orientation immediately.
func (c *Camera) Reset() {
	c.Yaw, c.Pitch, c.Distance = c.home[0], c.home[1], c.home[2]
	c.goalYaw, c.goalPitch, c.goalDistance = c.home[0], c.home[1], c.home[2]
}

// ScreenToNDC converts pixel coordinates into [-1, 1] with +Y up.
func (c *Camera) ScreenToNDC(sx, sy float64) (x, y float64) {
	return 2*sx/c.ViewportW - 1, 1 - 2*sy/c.ViewportH
}

// RayNDC returns the world-space ray through normalized device coordinates.
// The direction is normalized.
func (c *Camera) RayNDC(ndcX, ndcY float64) systems.Ray {
	forward, right, up := c.Basis()
	tanHalf := math.Tan(mgl64.DegToRad(c.FovY) / 2)
	dir := forward.
		Add(right.Mul(ndcX * tanHalf * c.Aspect())).
		Add(up.Mul(ndcY * tanHalf))
	return systems.Ray{Origin: c.Position(), Dir: dir.Normalize()}
}

// Ray returns the world-space ray under a screen pixel.
func (c *Camera) Ray(sx, sy float64) systems.Ray {
	return c.RayNDC(c.ScreenToNDC(sx, sy))
}

// WorldToScreen projects p into pixel coordinates. ok is false when p is
// behind the near plane.
func (c *Camera) WorldToScreen(p mgl64.Vec3) (sx, sy float64, ok bool) {
	forward, right, up := c.Basis()
	d := p.Sub(c.Position())
	z := d.Dot(forward)
	if z < c.Near {
		return 0, 0, false
	}
	tanHalf := math.Tan(mgl64.DegToRad(c.FovY) / 2)
	x := d.Dot(right) / (z * tanHalf * c.Aspect())
	y := d.Dot(up) / (z * tanHalf)
	return (x + 1) / 2 * c.ViewportW, (1 - y) / 2 * c.ViewportH, true
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

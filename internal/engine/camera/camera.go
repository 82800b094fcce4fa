// Package camera provides the free-fly camera used to explore the scene.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a translation command along the camera basis.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// String returns a readable name for logging.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Orientation and zoom limits, in degrees.
const (
	MaxPitch = 89.0
	MinZoom  = 1.0
	MaxZoom  = 45.0
)

// Camera is a yaw/pitch fly camera. Right and Up are derived from Front
// on every orientation change; they are never set independently.
type Camera struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3
	worldUp  mgl32.Vec3

	yaw   float32
	pitch float32
	zoom  float32
}

// New creates a camera at position looking toward target.
// Yaw and pitch are recovered from the target direction so that the
// first rotation continues smoothly from the initial view.
func New(position, target, up mgl32.Vec3) *Camera {
	c := &Camera{
		position: position,
		worldUp:  up.Normalize(),
		zoom:     MaxZoom,
	}

	dir := target.Sub(position).Normalize()
	c.pitch = clampPitch(mgl32.RadToDeg(asin32(dir.Y())))
	c.yaw = mgl32.RadToDeg(atan2(dir.Z(), dir.X()))
	c.updateVectors()
	return c
}

// Rotate adds the given deltas (degrees, already sensitivity scaled)
// to pitch and yaw and rebuilds the basis.
func (c *Camera) Rotate(pitchDelta, yawDelta float32) {
	c.yaw += yawDelta
	c.pitch = clampPitch(c.pitch + pitchDelta)
	c.updateVectors()
}

// Move translates the camera by speed units along front or right.
func (c *Camera) Move(dir Direction, speed float32) {
	switch dir {
	case Forward:
		c.position = c.position.Add(c.front.Mul(speed))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(speed))
	case Left:
		c.position = c.position.Sub(c.right.Mul(speed))
	case Right:
		c.position = c.position.Add(c.right.Mul(speed))
	}
}

// Zoom narrows the field of view by delta degrees, clamped to [MinZoom, MaxZoom].
func (c *Camera) Zoom(delta float32) {
	c.zoom -= delta
	if c.zoom < MinZoom {
		c.zoom = MinZoom
	}
	if c.zoom > MaxZoom {
		c.zoom = MaxZoom
	}
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// Position returns the camera position in world space.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// Front returns the unit view direction.
func (c *Camera) Front() mgl32.Vec3 { return c.front }

// Up returns the camera up vector.
func (c *Camera) Up() mgl32.Vec3 { return c.up }

// RightVector returns the camera right vector.
func (c *Camera) RightVector() mgl32.Vec3 { return c.right }

// Yaw returns the yaw angle in degrees.
func (c *Camera) Yaw() float32 { return c.yaw }

// Pitch returns the pitch angle in degrees.
func (c *Camera) Pitch() float32 { return c.pitch }

// FOV returns the vertical field of view in degrees.
func (c *Camera) FOV() float32 { return c.zoom }

func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)

	c.front = mgl32.Vec3{
		cos32(pitch) * cos32(yaw),
		sin32(pitch),
		cos32(pitch) * sin32(yaw),
	}.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

func clampPitch(p float32) float32 {
	if p > MaxPitch {
		return MaxPitch
	}
	if p < -MaxPitch {
		return -MaxPitch
	}
	return p
}

package transform

import "github.com/go-gl/mathgl/mgl32"

// Shadow frustum bounds. The orthographic box is centred on the origin, so
// geometry outside +-ShadowExtent is not captured by the depth map.
const (
	ShadowExtent = 1.0
	ShadowNear   = 0.1
	ShadowFar    = 5.0
)

// Light is the directional light plus the local point light.
type Light struct {
	// Direction points from the scene toward the light, unit length.
	Direction mgl32.Vec3
	// Distance places the light eye at Direction*Distance for the shadow view.
	Distance float32
	Color    mgl32.Vec3
	// PointPosition is used for local lighting only, it casts no shadow.
	PointPosition mgl32.Vec3
}

// DefaultLight returns the stock light rig: eye at (0, 1, 1), white light.
func DefaultLight() Light {
	dir := mgl32.Vec3{0, 1, 1}
	return Light{
		Direction:     dir.Normalize(),
		Distance:      dir.Len(),
		Color:         mgl32.Vec3{1, 1, 1},
		PointPosition: mgl32.Vec3{1.5921, 8.6604, -4.4947},
	}
}

// Eye returns the light view position.
func (l Light) Eye() mgl32.Vec3 {
	return l.Direction.Mul(l.Distance)
}

// View returns the light view matrix, looking at the origin.
func (l Light) View() mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	// a light straight overhead would make lookAt degenerate
	if mgl32.Abs(l.Direction.Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	return mgl32.LookAtV(l.Eye(), mgl32.Vec3{}, up)
}

// Projection returns the fixed orthographic shadow frustum.
func (l Light) Projection() mgl32.Mat4 {
	return mgl32.Ortho(-ShadowExtent, ShadowExtent, -ShadowExtent, ShadowExtent, ShadowNear, ShadowFar)
}

// SpaceMatrix returns projection * view, the world to light clip transform.
func (l Light) SpaceMatrix() mgl32.Mat4 {
	return l.Projection().Mul4(l.View())
}

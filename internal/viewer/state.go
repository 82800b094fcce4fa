package viewer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/yardview/internal/engine/camera"
	"github.com/Faultbox/yardview/internal/engine/input"
	"github.com/Faultbox/yardview/internal/engine/transform"
)

// State is everything that changes between frames.
type State struct {
	Camera     *camera.Camera
	Transforms *transform.Set
	Light      transform.Light
	Toggles    input.Toggles

	// ObjectYaw is the accumulated Q/E rotation of the shared model, degrees.
	ObjectYaw float32

	// Framebuffer size in pixels.
	Width, Height int

	// Frame counts completed frames.
	Frame uint64
}

func vec3(a [3]float32) mgl32.Vec3 {
	return mgl32.Vec3(a)
}

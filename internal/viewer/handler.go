package viewer

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/yardview/internal/engine/camera"
	"github.com/Faultbox/yardview/internal/engine/input"
)

// MoveCamera translates the camera and refreshes the view.
func (v *Viewer) MoveCamera(dir camera.Direction, speed float32) {
	v.state.Camera.Move(dir, speed)
	v.state.Transforms.SetView(v.state.Camera.ViewMatrix())
}

// RotateCamera turns the camera and refreshes the view.
func (v *Viewer) RotateCamera(pitchDelta, yawDelta float32) {
	v.state.Camera.Rotate(pitchDelta, yawDelta)
	v.state.Transforms.SetView(v.state.Camera.ViewMatrix())
}

// ZoomCamera narrows or widens the field of view.
func (v *Viewer) ZoomCamera(delta float32) {
	v.state.Camera.Zoom(delta)
	v.state.Transforms.SetProjection(v.projection())
}

// RotateObject spins the shared model around Y.
func (v *Viewer) RotateObject(deltaDeg float32) {
	v.state.ObjectYaw += deltaDeg
	v.state.Transforms.SetModel(mgl32.HomogRotate3DY(mgl32.DegToRad(v.state.ObjectYaw)))
}

// Toggle flips a render toggle. Wireframe is device state and is applied
// immediately; the rest are read when the frame is built.
func (v *Viewer) Toggle(t input.Toggle) {
	on := v.state.Toggles.Flip(t)
	if t == input.ToggleWireframe {
		v.dev.SetWireframe(v.state.Toggles.Wireframe())
	}
	v.log.Debug("toggle", zap.Stringer("toggle", t), zap.Bool("on", on))
}

// Quit stops the loop after the current event batch and asks the window
// to close.
func (v *Viewer) Quit() {
	v.quit = true
	v.win.RequestClose()
}

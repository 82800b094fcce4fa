// Package transform holds the CPU-side matrices shared by the render passes.
package transform

import "github.com/go-gl/mathgl/mgl32"

// Set is the active model/view/projection state. The normal matrix is
// recomputed inside SetModel and SetView, so it can never lag behind them.
type Set struct {
	model      mgl32.Mat4
	view       mgl32.Mat4
	projection mgl32.Mat4
	normal     mgl32.Mat3
}

// NewSet returns a set with identity model and view.
func NewSet(projection mgl32.Mat4) *Set {
	s := &Set{
		model:      mgl32.Ident4(),
		view:       mgl32.Ident4(),
		projection: projection,
	}
	s.refreshNormal()
	return s
}

// SetModel replaces the shared model matrix.
func (s *Set) SetModel(m mgl32.Mat4) {
	s.model = m
	s.refreshNormal()
}

// SetView replaces the view matrix.
func (s *Set) SetView(v mgl32.Mat4) {
	s.view = v
	s.refreshNormal()
}

// SetProjection replaces the projection matrix. The normal matrix does not
// depend on it.
func (s *Set) SetProjection(p mgl32.Mat4) {
	s.projection = p
}

// Model returns the shared model matrix.
func (s *Set) Model() mgl32.Mat4 { return s.model }

// View returns the view matrix.
func (s *Set) View() mgl32.Mat4 { return s.view }

// Projection returns the projection matrix.
func (s *Set) Projection() mgl32.Mat4 { return s.projection }

// Normal returns the normal matrix for the shared model.
func (s *Set) Normal() mgl32.Mat3 { return s.normal }

// NormalFor returns the normal matrix of an object that overrides the
// shared model, evaluated against the current view.
func (s *Set) NormalFor(model mgl32.Mat4) mgl32.Mat3 {
	return NormalMatrix(s.view, model)
}

func (s *Set) refreshNormal() {
	s.normal = NormalMatrix(s.view, s.model)
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 of view*model.
func NormalMatrix(view, model mgl32.Mat4) mgl32.Mat3 {
	return view.Mul4(model).Mat3().Inv().Transpose()
}

// Perspective builds the camera projection. fovDeg is the vertical field of
// view in degrees; a zero height yields an aspect of 1 so minimized windows
// do not produce NaNs.
func Perspective(fovDeg float32, width, height int, near, far float32) mgl32.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, near, far)
}

// Package scene holds the fixed set of objects the viewer draws.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/yardview/internal/render"
)

// ObjectID identifies one of the fixed scene entities.
type ObjectID int

const (
	MainScene ObjectID = iota
	Skydome
	Gate
	Warehouse
	Vehicle

	objectCount
)

// String returns the object name used in logs and render objects.
func (id ObjectID) String() string {
	switch id {
	case MainScene:
		return "scene"
	case Skydome:
		return "skydome"
	case Gate:
		return "gate"
	case Warehouse:
		return "warehouse"
	case Vehicle:
		return "vehicle"
	}
	return "unknown"
}

// IDs returns every object in draw order.
func IDs() []ObjectID {
	return []ObjectID{MainScene, Skydome, Gate, Warehouse, Vehicle}
}

// GatePivot is the hinge point the gate swings around, in world space.
var GatePivot = mgl32.Vec3{2.4906, 0.5694, 7.9588}

// GateSwingDeg is the open-door rotation around Y.
const GateSwingDeg = -90.0

// HingeModel returns base when closed, and base swung around pivot when
// open: T(pivot) * RotY(-90) * T(-pivot) * base.
func HingeModel(open bool, pivot mgl32.Vec3, base mgl32.Mat4) mgl32.Mat4 {
	if !open {
		return base
	}
	return mgl32.Translate3D(pivot.X(), pivot.Y(), pivot.Z()).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(GateSwingDeg))).
		Mul4(mgl32.Translate3D(-pivot.X(), -pivot.Y(), -pivot.Z())).
		Mul4(base)
}

// Set is the ordered, fixed collection of scene meshes.
type Set struct {
	meshes [objectCount]render.Drawable
}

// NewSet creates an empty set. Every object must be assigned before Objects is used.
func NewSet() *Set {
	return &Set{}
}

// Put assigns the mesh for an object.
func (s *Set) Put(id ObjectID, mesh render.Drawable) {
	if id < 0 || id >= objectCount {
		return
	}
	s.meshes[id] = mesh
}

// Mesh returns the mesh of an object, nil if unassigned.
func (s *Set) Mesh(id ObjectID) render.Drawable {
	if id < 0 || id >= objectCount {
		return nil
	}
	return s.meshes[id]
}

// Complete reports the first object without a mesh.
func (s *Set) Complete() (ObjectID, bool) {
	for _, id := range IDs() {
		if s.meshes[id] == nil {
			return id, false
		}
	}
	return 0, true
}

// Pose is the per-frame transform input for the scene.
type Pose struct {
	// Model is the shared model matrix of the active transform set.
	Model mgl32.Mat4
	// DoorOpen swings the gate around its hinge.
	DoorOpen bool
	// NormalFor computes the normal matrix of a model under the current view.
	NormalFor func(model mgl32.Mat4) mgl32.Mat3
}

// Objects resolves the set into render objects for one frame, reusing dst.
func (s *Set) Objects(pose Pose, dst []render.Object) []render.Object {
	dst = dst[:0]
	for _, id := range IDs() {
		model := pose.Model
		if id == Gate {
			model = HingeModel(pose.DoorOpen, GatePivot, pose.Model)
		}
		dst = append(dst, render.Object{
			Name:        id.String(),
			Mesh:        s.meshes[id],
			Model:       model,
			Normal:      pose.NormalFor(model),
			CastsShadow: id != Skydome,
			Background:  id == Skydome,
		})
	}
	return dst
}

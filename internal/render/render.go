// Package render sequences the shadow and color passes of a frame.
//
// Passes talk to the GPU through the Device and Program interfaces; the
// OpenGL implementations live in internal/engine/gpu and
// internal/engine/shader.
package render

import "github.com/go-gl/mathgl/mgl32"

// ClearMask selects the buffers cleared by Device.Clear.
type ClearMask uint32

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
)

// DefaultFramebuffer is the window's own render target.
const DefaultFramebuffer uint32 = 0

// ShadowTextureUnit is the texture unit the shadow map is bound to while
// drawing the color pass. Units 0 and 1 belong to the mesh materials.
const ShadowTextureUnit uint32 = 3

// Device is the subset of GPU state the passes change.
type Device interface {
	BindFramebuffer(fbo uint32)
	Viewport(x, y, width, height int32)
	Clear(mask ClearMask)
	SetDepthTest(enabled bool)
	SetWireframe(enabled bool)
	BindTexture(unit, texture uint32)
}

// Program is a linked shader program with pre-resolved uniforms.
type Program interface {
	Use()
	SetMat4(u Uniform, m mgl32.Mat4)
	SetMat3(u Uniform, m mgl32.Mat3)
	SetVec3(u Uniform, v mgl32.Vec3)
	SetInt(u Uniform, v int32)
}

// Drawable issues the draw calls of every sub-mesh it owns.
type Drawable interface {
	Draw(p Program)
}

// DepthTarget is an offscreen depth-only render target.
type DepthTarget interface {
	Framebuffer() uint32
	Texture() uint32
	Resolution() int32
}

// Object is one scene entity resolved for the current frame.
type Object struct {
	Name   string
	Mesh   Drawable
	Model  mgl32.Mat4
	Normal mgl32.Mat3

	CastsShadow bool
	// Background objects (the skydome) are drawn after all others.
	Background bool
}

// Frame carries everything the passes read for one frame.
type Frame struct {
	Index uint64

	View       mgl32.Mat4
	Projection mgl32.Mat4
	LightSpace mgl32.Mat4

	LightDir   mgl32.Vec3
	LightColor mgl32.Vec3
	PointLight mgl32.Vec3

	Fog          bool
	AltLight     bool
	DepthPreview bool

	// Framebuffer size in pixels.
	Width, Height int32

	Objects []Object
}

// drawObject runs the per-object contract: program, model, normal matrix
// (skipped for depth-only draws), then the mesh draw calls.
func drawObject(p Program, obj *Object, withNormal bool) {
	p.Use()
	p.SetMat4(UniformModel, obj.Model)
	if withNormal {
		p.SetMat3(UniformNormalMatrix, obj.Normal)
	}
	obj.Mesh.Draw(p)
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

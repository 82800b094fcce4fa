// Package gpu implements the render device on top of OpenGL 4.1 core.
package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/yardview/internal/logger"
	"github.com/Faultbox/yardview/internal/render"
)

// Device issues GL state changes. It must be used from the thread that
// owns the context.
type Device struct{}

// Ensure Device satisfies the render device contract.
var _ render.Device = (*Device)(nil)

// New loads GL entry points and applies the initial pipeline state:
// sRGB output, depth test LESS, back-face culling with CCW front faces.
func New(clearColor [3]float32) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	d := &Device{}

	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], 1.0)
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	return d, nil
}

// BindFramebuffer binds fbo as the draw and read target. 0 is the window.
func (d *Device) BindFramebuffer(fbo uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
}

// Viewport sets the viewport rectangle.
func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

// Clear clears the buffers selected by mask.
func (d *Device) Clear(mask render.ClearMask) {
	var bits uint32
	if mask&render.ClearColor != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&render.ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if bits != 0 {
		gl.Clear(bits)
	}
}

// SetDepthTest toggles GL_DEPTH_TEST.
func (d *Device) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

// SetWireframe switches polygon rasterization between lines and fill.
func (d *Device) SetWireframe(enabled bool) {
	if enabled {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// BindTexture binds a 2D texture to the given texture unit.
func (d *Device) BindTexture(unit, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

// Package shadow provides the depth render target for directional light shadows.
package shadow

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/yardview/internal/render"
)

// DefaultResolution is the default shadow map resolution.
const DefaultResolution = 2048

// ErrIncomplete is returned when the driver rejects the framebuffer.
var ErrIncomplete = errors.New("shadow framebuffer incomplete")

// Map is a depth-only framebuffer sampled as a plain sampler2D, so the
// same texture feeds both the shadow lookup and the depth preview.
type Map struct {
	fbo        uint32
	texture    uint32
	resolution int32
}

var _ render.DepthTarget = (*Map)(nil)

// NewMap creates a square shadow map. Resolution should be a power of 2.
func NewMap(resolution int32) (*Map, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	sm := &Map{resolution: resolution}

	gl.GenFramebuffers(1, &sm.fbo)

	gl.GenTextures(1, &sm.texture)
	gl.BindTexture(gl.TEXTURE_2D, sm.texture)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.DEPTH_COMPONENT,
		resolution,
		resolution,
		0,
		gl.DEPTH_COMPONENT,
		gl.FLOAT,
		nil,
	)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	// Outside the light frustum reads depth 1.0, i.e. lit.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	borderColor := []float32{1.0, 1.0, 1.0, 1.0}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.fbo)
	gl.FramebufferTexture2D(
		gl.FRAMEBUFFER,
		gl.DEPTH_ATTACHMENT,
		gl.TEXTURE_2D,
		sm.texture,
		0,
	)

	// No color buffer for shadow pass
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		sm.Destroy()
		return nil, fmt.Errorf("%w: status 0x%04X", ErrIncomplete, status)
	}

	return sm, nil
}

// Framebuffer returns the FBO name.
func (sm *Map) Framebuffer() uint32 { return sm.fbo }

// Texture returns the depth texture name.
func (sm *Map) Texture() uint32 { return sm.texture }

// Resolution returns the width (= height) of the depth texture.
func (sm *Map) Resolution() int32 { return sm.resolution }

// Destroy releases all GPU resources associated with this shadow map.
func (sm *Map) Destroy() {
	if sm.fbo != 0 {
		gl.DeleteFramebuffers(1, &sm.fbo)
		sm.fbo = 0
	}
	if sm.texture != 0 {
		gl.DeleteTextures(1, &sm.texture)
		sm.texture = 0
	}
}

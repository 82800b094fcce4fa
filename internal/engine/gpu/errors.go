package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// maxQueuedErrors bounds the drain loop; a lost context can report
// errors forever.
const maxQueuedErrors = 32

// Error is one entry of the GL error queue.
type Error struct {
	Code uint32
}

// Name returns the GL enum name of the error code.
func (e Error) Name() string {
	switch e.Code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	}
	return fmt.Sprintf("GL_ERROR_0x%04X", e.Code)
}

func (e Error) Error() string {
	return e.Name()
}

// Errors drains the GL error queue.
func (d *Device) Errors() []error {
	var errs []error
	for i := 0; i < maxQueuedErrors; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		errs = append(errs, Error{Code: code})
	}
	return errs
}

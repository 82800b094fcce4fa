package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/yardview/internal/logger"
	"github.com/Faultbox/yardview/internal/render"
)

// Program is a linked GL program with its uniform locations cached.
type Program struct {
	Name     string
	ID       uint32
	uniforms render.UniformTable
}

var _ render.Program = (*Program)(nil)

// Load compiles and links a program and resolves the given uniforms once.
// Uniforms the linker optimized away are logged and then ignored.
func Load(name, vertexSrc, fragmentSrc string, uniforms ...render.Uniform) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", name, err)
	}

	p := &Program{Name: name, ID: id}
	p.uniforms = render.ResolveUniforms(func(u string) int32 {
		return GetUniform(id, u)
	}, uniforms...)

	if missing := p.uniforms.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, u := range missing {
			names[i] = string(u)
		}
		logger.Warn("inactive uniforms",
			zap.String("program", name),
			zap.Strings("uniforms", names),
		)
	}
	logger.Debug("program linked", zap.String("program", name), zap.Uint32("id", id))

	return p, nil
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// SetMat4 uploads a 4x4 matrix.
func (p *Program) SetMat4(u render.Uniform, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.uniforms.Location(u), 1, false, &m[0])
}

// SetMat3 uploads a 3x3 matrix.
func (p *Program) SetMat3(u render.Uniform, m mgl32.Mat3) {
	gl.UniformMatrix3fv(p.uniforms.Location(u), 1, false, &m[0])
}

// SetVec3 uploads a vector.
func (p *Program) SetVec3(u render.Uniform, v mgl32.Vec3) {
	gl.Uniform3fv(p.uniforms.Location(u), 1, &v[0])
}

// SetInt uploads an integer, also used for sampler units and booleans.
func (p *Program) SetInt(u render.Uniform, v int32) {
	gl.Uniform1i(p.uniforms.Location(u), v)
}

// Delete frees the GL program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// callLog records GPU and program calls in issue order.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) index(call string) int {
	for i, c := range l.calls {
		if c == call {
			return i
		}
	}
	return -1
}

func (l *callLog) count(call string) int {
	n := 0
	for _, c := range l.calls {
		if c == call {
			n++
		}
	}
	return n
}

type fakeDevice struct{ log *callLog }

func (d fakeDevice) BindFramebuffer(fbo uint32)   { d.log.add("fbo %d", fbo) }
func (d fakeDevice) Viewport(x, y, w, h int32)    { d.log.add("viewport %d %d %d %d", x, y, w, h) }
func (d fakeDevice) Clear(m ClearMask)            { d.log.add("clear %d", m) }
func (d fakeDevice) SetDepthTest(on bool)         { d.log.add("depth %v", on) }
func (d fakeDevice) SetWireframe(on bool)         { d.log.add("wireframe %v", on) }
func (d fakeDevice) BindTexture(unit, tex uint32) { d.log.add("texture %d %d", unit, tex) }

type fakeProgram struct {
	name string
	log  *callLog
	mat4 map[Uniform]mgl32.Mat4
	mat3 map[Uniform]mgl32.Mat3
	vec3 map[Uniform]mgl32.Vec3
	ints map[Uniform]int32
}

func newFakeProgram(name string, log *callLog) *fakeProgram {
	return &fakeProgram{
		name: name,
		log:  log,
		mat4: map[Uniform]mgl32.Mat4{},
		mat3: map[Uniform]mgl32.Mat3{},
		vec3: map[Uniform]mgl32.Vec3{},
		ints: map[Uniform]int32{},
	}
}

func (p *fakeProgram) Use() { p.log.add("use %s", p.name) }
func (p *fakeProgram) SetMat4(u Uniform, m mgl32.Mat4) {
	p.mat4[u] = m
	p.log.add("%s.%s", p.name, u)
}
func (p *fakeProgram) SetMat3(u Uniform, m mgl32.Mat3) {
	p.mat3[u] = m
	p.log.add("%s.%s", p.name, u)
}
func (p *fakeProgram) SetVec3(u Uniform, v mgl32.Vec3) {
	p.vec3[u] = v
	p.log.add("%s.%s", p.name, u)
}
func (p *fakeProgram) SetInt(u Uniform, v int32) {
	p.ints[u] = v
	p.log.add("%s.%s", p.name, u)
}

type fakeMesh struct {
	name string
	log  *callLog
}

func (m fakeMesh) Draw(p Program) {
	m.log.add("draw %s with %s", m.name, p.(*fakeProgram).name)
}

type fakeTarget struct{}

func (fakeTarget) Framebuffer() uint32 { return 7 }
func (fakeTarget) Texture() uint32     { return 9 }
func (fakeTarget) Resolution() int32   { return 2048 }

func sceneObjects(log *callLog) []Object {
	obj := func(name string, casts, bg bool) Object {
		return Object{
			Name:        name,
			Mesh:        fakeMesh{name: name, log: log},
			Model:       mgl32.Ident4(),
			Normal:      mgl32.Ident3(),
			CastsShadow: casts,
			Background:  bg,
		}
	}
	return []Object{
		obj("scene", true, false),
		obj("skydome", false, true),
		obj("gate", true, false),
		obj("warehouse", true, false),
		obj("vehicle", true, false),
	}
}

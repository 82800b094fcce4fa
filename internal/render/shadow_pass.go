package render

import "errors"

// ErrNoDepthTarget is returned when the shadow pass has nothing to render into.
var ErrNoDepthTarget = errors.New("render: shadow pass without depth target")

// ShadowPass renders the depth of every shadow caster from the light.
type ShadowPass struct {
	Device  Device
	Program Program
	Target  DepthTarget
}

// NewShadowPass creates the depth-only pass.
func NewShadowPass(dev Device, depthProgram Program, target DepthTarget) *ShadowPass {
	return &ShadowPass{Device: dev, Program: depthProgram, Target: target}
}

func (p *ShadowPass) Name() string       { return "shadow" }
func (p *ShadowPass) Reads() []Resource  { return nil }
func (p *ShadowPass) Writes() []Resource { return []Resource{ShadowDepth} }

// Execute binds the depth target, clears depth, draws the casters with the
// light-space transform and restores the default framebuffer.
func (p *ShadowPass) Execute(f *Frame) error {
	if p.Target == nil {
		return ErrNoDepthTarget
	}

	p.Program.Use()
	p.Program.SetMat4(UniformLightSpace, f.LightSpace)

	res := p.Target.Resolution()
	p.Device.BindFramebuffer(p.Target.Framebuffer())
	p.Device.Viewport(0, 0, res, res)
	p.Device.Clear(ClearDepth)

	for i := range f.Objects {
		obj := &f.Objects[i]
		if !obj.CastsShadow {
			continue
		}
		drawObject(p.Program, obj, false)
	}

	p.Device.BindFramebuffer(DefaultFramebuffer)
	return nil
}

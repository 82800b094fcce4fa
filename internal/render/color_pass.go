package render

// ColorPass draws the scene from the camera, sampling the shadow map.
// With Frame.DepthPreview set it shows the raw depth map instead.
type ColorPass struct {
	Device  Device
	Program Program
	Shadow  DepthTarget
}

// NewColorPass creates the camera pass.
func NewColorPass(dev Device, basicProgram Program, shadow DepthTarget) *ColorPass {
	return &ColorPass{Device: dev, Program: basicProgram, Shadow: shadow}
}

func (p *ColorPass) Name() string       { return "color" }
func (p *ColorPass) Reads() []Resource  { return []Resource{ShadowDepth} }
func (p *ColorPass) Writes() []Resource { return []Resource{Backbuffer} }

// Execute renders the frame in the mode selected by the depth preview flag.
func (p *ColorPass) Execute(f *Frame) error {
	if p.Shadow == nil {
		return ErrNoDepthTarget
	}

	p.Device.BindFramebuffer(DefaultFramebuffer)
	if f.DepthPreview {
		p.preview(f)
		return nil
	}
	p.lit(f)
	return nil
}

// preview shows the depth map on the scene geometry, depth test off.
func (p *ColorPass) preview(f *Frame) {
	p.Device.Viewport(0, 0, f.Width, f.Height)
	p.Device.Clear(ClearColor)

	p.Program.Use()
	p.Device.BindTexture(ShadowTextureUnit, p.Shadow.Texture())
	p.Program.SetInt(UniformShadowMap, int32(ShadowTextureUnit))
	p.Program.SetInt(UniformDepthPreview, 1)
	p.uploadCamera(f)

	p.Device.SetDepthTest(false)
	p.drawAll(f)
	p.Device.SetDepthTest(true)
}

// lit is the normal shaded render.
func (p *ColorPass) lit(f *Frame) {
	p.Device.Clear(ClearColor | ClearDepth)

	p.Program.Use()
	p.Program.SetMat4(UniformLightSpace, f.LightSpace)
	p.uploadCamera(f)
	p.Program.SetVec3(UniformLightDir, f.LightDir)
	p.Program.SetVec3(UniformLightColor, f.LightColor)
	p.Program.SetInt(UniformFog, boolInt(f.Fog))
	p.Program.SetInt(UniformAltLight, boolInt(f.AltLight))
	p.Program.SetInt(UniformDepthPreview, 0)

	p.Device.BindTexture(ShadowTextureUnit, p.Shadow.Texture())
	p.Program.SetInt(UniformShadowMap, int32(ShadowTextureUnit))

	p.Device.Viewport(0, 0, f.Width, f.Height)
	p.drawAll(f)

	p.Program.SetVec3(UniformPointLight, f.PointLight)
}

// uploadCamera refreshes view and projection; the camera may have moved
// since the previous frame.
func (p *ColorPass) uploadCamera(f *Frame) {
	p.Program.SetMat4(UniformView, f.View)
	p.Program.SetMat4(UniformProjection, f.Projection)
}

// drawAll draws foreground objects in order, then background ones.
func (p *ColorPass) drawAll(f *Frame) {
	for i := range f.Objects {
		if obj := &f.Objects[i]; !obj.Background {
			drawObject(p.Program, obj, true)
		}
	}
	for i := range f.Objects {
		if obj := &f.Objects[i]; obj.Background {
			drawObject(p.Program, obj, true)
		}
	}
}

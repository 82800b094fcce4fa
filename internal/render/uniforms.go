package render

import "sort"

// Uniform is a GLSL uniform name.
type Uniform string

const (
	UniformModel        Uniform = "model"
	UniformView         Uniform = "view"
	UniformProjection   Uniform = "projection"
	UniformNormalMatrix Uniform = "normalMatrix"
	UniformLightDir     Uniform = "lightDir"
	UniformLightColor   Uniform = "lightColor"
	UniformLightSpace   Uniform = "lightSpaceTrMatrix"
	UniformShadowMap    Uniform = "shadowMap"
	UniformPointLight   Uniform = "pointLightPos"
	UniformFog          Uniform = "isFog"
	UniformAltLight     Uniform = "changedLight"
	UniformDepthPreview Uniform = "depthPreview"
	UniformDiffuse      Uniform = "diffuseTexture"
	UniformSpecular     Uniform = "specularTexture"
)

// BasicUniforms lists the uniforms of the lit color program.
var BasicUniforms = []Uniform{
	UniformModel, UniformView, UniformProjection, UniformNormalMatrix,
	UniformLightDir, UniformLightColor, UniformLightSpace, UniformShadowMap,
	UniformPointLight, UniformFog, UniformAltLight, UniformDepthPreview,
	UniformDiffuse, UniformSpecular,
}

// DepthUniforms lists the uniforms of the depth-only shadow program.
var DepthUniforms = []Uniform{
	UniformModel, UniformLightSpace,
}

// Locator returns the location of a named uniform, or -1.
type Locator func(name string) int32

// UniformTable maps uniform names to locations resolved once when a
// program is loaded. Setting a location of -1 is a no-op in OpenGL, so
// unknown names are safe to look up.
type UniformTable struct {
	locs map[Uniform]int32
}

// ResolveUniforms queries every name exactly once.
func ResolveUniforms(locate Locator, names ...Uniform) UniformTable {
	t := UniformTable{locs: make(map[Uniform]int32, len(names))}
	for _, n := range names {
		if _, seen := t.locs[n]; seen {
			continue
		}
		t.locs[n] = locate(string(n))
	}
	return t
}

// Location returns the cached location for u, -1 if it was never resolved.
func (t UniformTable) Location(u Uniform) int32 {
	if loc, ok := t.locs[u]; ok {
		return loc
	}
	return -1
}

// Missing returns the resolved names the program does not expose (the
// GLSL compiler drops unused uniforms).
func (t UniformTable) Missing() []Uniform {
	var out []Uniform
	for n, loc := range t.locs {
		if loc < 0 {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Package model uploads parsed meshes to the GPU and draws them.
package model

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/yardview/internal/engine/mesh"
	"github.com/Faultbox/yardview/internal/engine/texture"
	"github.com/Faultbox/yardview/internal/logger"
	"github.com/Faultbox/yardview/internal/render"
)

// Material texture units. The shadow map uses render.ShadowTextureUnit.
const (
	DiffuseUnit  uint32 = 0
	SpecularUnit uint32 = 1
)

type drawGroup struct {
	startIndex int32
	indexCount int32
	diffuse    uint32
	specular   uint32
}

// Model is a mesh resident on the GPU.
type Model struct {
	Name   string
	Bounds mesh.Bounds

	vao, vbo, ebo uint32
	groups        []drawGroup
	textures      []uint32
}

var _ render.Drawable = (*Model)(nil)

// Load parses an OBJ file and uploads it with its material maps.
func Load(path string) (*Model, error) {
	m, err := mesh.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	mdl := Upload(m)
	logger.Info("model loaded",
		zap.String("name", m.Name),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.TriangleCount()),
		zap.Int("groups", len(m.Groups)),
	)
	return mdl, nil
}

// Upload creates GL buffers and textures for a parsed mesh.
func Upload(m *mesh.Mesh) *Model {
	mdl := &Model{Name: m.Name, Bounds: m.Bounds}
	mdl.uploadMesh(m.Vertices, m.Indices)

	cache := map[string]uint32{}
	for _, g := range m.Groups {
		mat := m.Materials[g.Material]
		mdl.groups = append(mdl.groups, drawGroup{
			startIndex: g.StartIndex,
			indexCount: g.IndexCount,
			diffuse:    mdl.texture(cache, mat.DiffuseMap, true),
			specular:   mdl.texture(cache, mat.SpecularMap, false),
		})
	}
	return mdl
}

func (mdl *Model) uploadMesh(vertices []mesh.Vertex, indices []uint32) {
	stride := int32(unsafe.Sizeof(mesh.Vertex{}))

	gl.GenVertexArrays(1, &mdl.vao)
	gl.BindVertexArray(mdl.vao)

	gl.GenBuffers(1, &mdl.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mdl.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(stride), unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &mdl.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mdl.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)

	// TexCoord attribute (location = 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 24)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
}

// texture loads a material map once per path. Missing maps draw white.
func (mdl *Model) texture(cache map[string]uint32, path string, srgb bool) uint32 {
	key := fmt.Sprintf("%t:%s", srgb, path)
	if id, ok := cache[key]; ok {
		return id
	}

	img := texture.White()
	if path != "" {
		loaded, err := texture.Load(path)
		if err != nil {
			logger.Warn("texture fallback to white",
				zap.String("model", mdl.Name),
				zap.String("path", path),
				zap.Error(err),
			)
		} else {
			img = loaded
		}
	}

	id := uploadTexture(img, srgb)
	cache[key] = id
	mdl.textures = append(mdl.textures, id)
	return id
}

func uploadTexture(img *image.RGBA, srgb bool) uint32 {
	if len(img.Pix) == 0 {
		img = texture.White()
	}
	internal := int32(gl.RGBA8)
	if srgb {
		internal = gl.SRGB8_ALPHA8
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.TexImage2D(gl.TEXTURE_2D, 0, internal,
		int32(img.Rect.Dx()), int32(img.Rect.Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texID
}

// Draw binds each group's maps to the material units and draws it with p.
// Programs without material samplers ignore the sampler uniforms.
func (mdl *Model) Draw(p render.Program) {
	p.SetInt(render.UniformDiffuse, int32(DiffuseUnit))
	p.SetInt(render.UniformSpecular, int32(SpecularUnit))

	gl.BindVertexArray(mdl.vao)
	for _, g := range mdl.groups {
		gl.ActiveTexture(gl.TEXTURE0 + DiffuseUnit)
		gl.BindTexture(gl.TEXTURE_2D, g.diffuse)
		gl.ActiveTexture(gl.TEXTURE0 + SpecularUnit)
		gl.BindTexture(gl.TEXTURE_2D, g.specular)

		gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, uintptr(g.startIndex)*4)
	}
	gl.BindVertexArray(0)
}

// Delete frees the GL buffers and textures.
func (mdl *Model) Delete() {
	if len(mdl.textures) > 0 {
		gl.DeleteTextures(int32(len(mdl.textures)), &mdl.textures[0])
		mdl.textures = nil
	}
	if mdl.ebo != 0 {
		gl.DeleteBuffers(1, &mdl.ebo)
		mdl.ebo = 0
	}
	if mdl.vbo != 0 {
		gl.DeleteBuffers(1, &mdl.vbo)
		mdl.vbo = 0
	}
	if mdl.vao != 0 {
		gl.DeleteVertexArrays(1, &mdl.vao)
		mdl.vao = 0
	}
}

// Package mesh parses Wavefront OBJ/MTL files into CPU-side meshes.
package mesh

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Material is one MTL entry. Map paths are resolved against the MTL directory.
type Material struct {
	Name      string
	Ambient   [3]float32
	Diffuse   [3]float32
	Specular  [3]float32
	Shininess float32

	DiffuseMap  string
	SpecularMap string
}

// DefaultMaterial is used for faces without a known usemtl.
func DefaultMaterial() Material {
	return Material{
		Name:      "default",
		Ambient:   [3]float32{0.2, 0.2, 0.2},
		Diffuse:   [3]float32{0.8, 0.8, 0.8},
		Specular:  [3]float32{1, 1, 1},
		Shininess: 32,
	}
}

// Group is a contiguous index range drawn with one material.
type Group struct {
	Material   int
	StartIndex int32
	IndexCount int32
}

// Mesh holds the complete mesh data ready for GPU upload.
type Mesh struct {
	Name      string
	Vertices  []Vertex
	Indices   []uint32
	Groups    []Group
	Materials []Material
	Bounds    Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

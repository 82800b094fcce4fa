package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoGeometry is returned for files without any faces.
var ErrNoGeometry = errors.New("no geometry")

const maxLineSize = 1 << 20

// Load parses an OBJ file and the MTL libraries it references.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	m, err := Parse(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return m, nil
}

// faceVertex holds 0-based pool indices, -1 when absent.
type faceVertex struct {
	v, vt, vn int
}

type objParser struct {
	dir string

	positions [][3]float32
	normals   [][3]float32
	uvs       [][2]float32

	materials []Material
	byName    map[string]int
	current   int

	// triangles per material, in order of first use
	order []int
	tris  map[int][]faceVertex
}

// Parse reads OBJ data. mtllib paths are resolved against dir.
func Parse(r io.Reader, dir string) (*Mesh, error) {
	p := &objParser{
		dir:     dir,
		byName:  map[string]int{},
		current: -1,
		tris:    map[int][]faceVertex{},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := p.line(scanner.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}
	if len(p.order) == 0 {
		return nil, ErrNoGeometry
	}
	return p.build(), nil
}

func (p *objParser) line(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Fields(line)

	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("v: %w", err)
		}
		p.positions = append(p.positions, [3]float32{v[0], v[1], v[2]})

	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("vn: %w", err)
		}
		p.normals = append(p.normals, [3]float32{v[0], v[1], v[2]})

	case "vt":
		v, err := parseFloats(fields[1:], 2)
		if err != nil {
			return fmt.Errorf("vt: %w", err)
		}
		p.uvs = append(p.uvs, [2]float32{v[0], v[1]})

	case "mtllib":
		for _, name := range fields[1:] {
			if err := p.loadLibrary(filepath.Join(p.dir, cleanPath(name))); err != nil {
				return err
			}
		}

	case "usemtl":
		if len(fields) < 2 {
			p.current = -1
			return nil
		}
		idx, ok := p.byName[fields[1]]
		if !ok {
			idx = -1
		}
		p.current = idx

	case "f":
		return p.face(fields[1:])
	}
	// o, g, s and unknown statements do not affect the output
	return nil
}

func (p *objParser) face(tokens []string) error {
	if len(tokens) < 3 {
		return fmt.Errorf("face with %d vertices", len(tokens))
	}
	verts := make([]faceVertex, len(tokens))
	for i, tok := range tokens {
		fv, err := p.faceVertex(tok)
		if err != nil {
			return err
		}
		verts[i] = fv
	}

	mat := p.current
	if mat < 0 {
		mat = p.defaultMaterial()
	}
	if _, ok := p.tris[mat]; !ok {
		p.order = append(p.order, mat)
	}
	// fan triangulation: 0-1-2, 0-2-3, ...
	for i := 1; i+1 < len(verts); i++ {
		p.tris[mat] = append(p.tris[mat], verts[0], verts[i], verts[i+1])
	}
	return nil
}

// faceVertex parses "v", "v/vt", "v//vn" or "v/vt/vn". Negative indices
// are relative to the end of the pool.
func (p *objParser) faceVertex(tok string) (faceVertex, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return faceVertex{}, fmt.Errorf("bad face vertex %q", tok)
	}
	pools := []int{len(p.positions), len(p.uvs), len(p.normals)}
	idx := [3]int{-1, -1, -1}
	for i, s := range parts {
		if s == "" {
			if i == 0 {
				return faceVertex{}, fmt.Errorf("bad face vertex %q", tok)
			}
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return faceVertex{}, fmt.Errorf("bad face vertex %q: %w", tok, err)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n += pools[i]
		default:
			return faceVertex{}, fmt.Errorf("zero index in %q", tok)
		}
		if n < 0 || n >= pools[i] {
			return faceVertex{}, fmt.Errorf("index out of range in %q", tok)
		}
		idx[i] = n
	}
	return faceVertex{v: idx[0], vt: idx[1], vn: idx[2]}, nil
}

func (p *objParser) defaultMaterial() int {
	if idx, ok := p.byName[""]; ok {
		return idx
	}
	p.materials = append(p.materials, DefaultMaterial())
	idx := len(p.materials) - 1
	p.byName[""] = idx
	return idx
}

func (p *objParser) loadLibrary(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open mtl: %w", err)
	}
	defer f.Close()

	mats, err := ParseMTL(f, filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	for _, m := range mats {
		if idx, ok := p.byName[m.Name]; ok {
			p.materials[idx] = m
			continue
		}
		p.materials = append(p.materials, m)
		p.byName[m.Name] = len(p.materials) - 1
	}
	return nil
}

// build deduplicates vertices and lays out one index range per material.
func (p *objParser) build() *Mesh {
	m := &Mesh{Materials: p.materials}
	seen := map[faceVertex]uint32{}
	var missingNormals bool

	for _, mat := range p.order {
		start := int32(len(m.Indices))
		for _, fv := range p.tris[mat] {
			idx, ok := seen[fv]
			if !ok {
				v := Vertex{Position: p.positions[fv.v]}
				if fv.vt >= 0 {
					v.TexCoord = p.uvs[fv.vt]
				}
				if fv.vn >= 0 {
					v.Normal = p.normals[fv.vn]
				} else {
					missingNormals = true
				}
				idx = uint32(len(m.Vertices))
				m.Vertices = append(m.Vertices, v)
				seen[fv] = idx
			}
			m.Indices = append(m.Indices, idx)
		}
		m.Groups = append(m.Groups, Group{
			Material:   mat,
			StartIndex: start,
			IndexCount: int32(len(m.Indices)) - start,
		})
	}

	if missingNormals {
		generateNormals(m.Vertices, m.Indices)
	}
	m.Bounds = computeBounds(m.Vertices)
	return m
}

// generateNormals fills zero normals with area-weighted face normals.
func generateNormals(vertices []Vertex, indices []uint32) {
	accum := make([]mgl32.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0 := mgl32.Vec3(vertices[i0].Position)
		v1 := mgl32.Vec3(vertices[i1].Position)
		v2 := mgl32.Vec3(vertices[i2].Position)
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i := range vertices {
		if vertices[i].Normal != ([3]float32{}) {
			continue
		}
		if accum[i].Len() > 0 {
			vertices[i].Normal = accum[i].Normalize()
		} else {
			vertices[i].Normal = [3]float32{0, 1, 0}
		}
	}
}

func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for a := 0; a < 3; a++ {
			if v.Position[a] < b.Min[a] {
				b.Min[a] = v.Position[a]
			}
			if v.Position[a] > b.Max[a] {
				b.Max[a] = v.Position[a]
			}
		}
	}
	return b
}

// parseFloats parses the first n fields, ignoring any extra (e.g. the w of "v x y z w").
func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// cleanPath converts exporter-written Windows separators.
func cleanPath(p string) string {
	return filepath.FromSlash(strings.ReplaceAll(p, "\\", "/"))
}

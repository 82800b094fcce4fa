package mesh

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ParseMTL reads a material library. Texture map paths are joined to dir.
func ParseMTL(r io.Reader, dir string) ([]Material, error) {
	var mats []Material
	var cur *Material

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: newmtl without name", lineNo)
			}
			m := DefaultMaterial()
			m.Name = fields[1]
			mats = append(mats, m)
			cur = &mats[len(mats)-1]
			continue
		}
		if cur == nil {
			continue
		}

		var err error
		switch fields[0] {
		case "Ka":
			cur.Ambient, err = parseColor(fields[1:])
		case "Kd":
			cur.Diffuse, err = parseColor(fields[1:])
		case "Ks":
			cur.Specular, err = parseColor(fields[1:])
		case "Ns":
			var v []float32
			v, err = parseFloats(fields[1:], 1)
			if err == nil {
				cur.Shininess = max(v[0], 1)
			}
		case "map_Kd":
			cur.DiffuseMap = mapPath(dir, fields[1:])
		case "map_Ks":
			cur.SpecularMap = mapPath(dir, fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNo, fields[0], err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mtl: %w", err)
	}
	return mats, nil
}

func parseColor(fields []string) ([3]float32, error) {
	v, err := parseFloats(fields, 3)
	if err != nil {
		return [3]float32{}, err
	}
	return [3]float32{v[0], v[1], v[2]}, nil
}

// mapPath takes the file name, which is the last field after any options
// such as "-bm 0.5".
func mapPath(dir string, fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return filepath.Join(dir, cleanPath(fields[len(fields)-1]))
}

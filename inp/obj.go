package inp

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Mazchoo/sewsim/geom"
	"github.com/Mazchoo/sewsim/mesh"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// objVertKey identifies one (position, texture, normal) triple, used to
// dedupe vertices the way the reference OBJ parser does with its
// "seen_faces" list
type objVertKey struct{ v, vt, vn int }

// ReadBody parses a body OBJ file plus its sidecar annotations JSON into
// a MeshData. Materials are ignored beyond bucketing triangle ranges by
// the `usemtl` name in effect, since the simulation core never reads
// texture data.
func ReadBody(objPath, annotationsPath string) (*mesh.MeshData, error) {
	raw, err := io.ReadFile(objPath)
	if err != nil {
		return nil, chk.Err("cannot read body OBJ %q:\n%v", objPath, err)
	}

	var (
		positions []geom.Vec3
		texcoords [][2]float64
		normals   []geom.Vec3

		currentMat string
		facesByMat = map[string][][3]int{} // each face list holds the vertex-index triples of that material's triangles
		order      []string

		seen       = map[objVertKey]int{}
		vertexRows [][mesh.VertexStride]float32
		triangles  [][3]uint32
	)

	lines := strings.Split(string(raw), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sp := strings.IndexByte(line, ' ')
		if sp < 0 {
			continue
		}
		flag, rest := line[:sp], strings.TrimSpace(line[sp+1:])

		switch flag {
		case "usemtl":
			currentMat = rest
			if _, ok := facesByMat[currentMat]; !ok {
				facesByMat[currentMat] = nil
				order = append(order, currentMat)
			}
		case "v":
			positions = append(positions, parseVec3(rest))
		case "vn":
			normals = append(normals, parseVec3(rest))
		case "vt":
			texcoords = append(texcoords, parseTexCoord(rest))
		case "f":
			groups := parseFaceGroups(rest)
			for _, tri := range splitFace(groups) {
				var triIdx [3]int
				for k, g := range tri {
					key := objVertKey{g[0], g[1], g[2]}
					idx, ok := seen[key]
					if !ok {
						idx = len(vertexRows)
						var row [mesh.VertexStride]float32
						if g[0]-1 >= 0 && g[0]-1 < len(positions) {
							p := positions[g[0]-1]
							row[0], row[1], row[2] = float32(p.X), float32(p.Y), float32(p.Z)
						}
						if g[1]-1 >= 0 && g[1]-1 < len(texcoords) {
							uv := texcoords[g[1]-1]
							row[3], row[4] = float32(uv[0]), float32(uv[1])
						}
						if g[2]-1 >= 0 && g[2]-1 < len(normals) {
							n := normals[g[2]-1]
							row[5], row[6], row[7] = float32(n.X), float32(n.Y), float32(n.Z)
						}
						vertexRows = append(vertexRows, row)
						seen[key] = idx
					}
					triIdx[k] = idx
				}
				triangles = append(triangles, [3]uint32{uint32(triIdx[0]), uint32(triIdx[1]), uint32(triIdx[2])})
				facesByMat[currentMat] = append(facesByMat[currentMat], triIdx)
			}
		}
	}

	textureData := map[string]mesh.TextureRange{}
	offset := 0
	for _, mat := range order {
		count := len(facesByMat[mat])
		textureData[mat] = mesh.TextureRange{Count: count, Offset: offset}
		offset += count
	}

	annotations, err := readAnnotations(annotationsPath)
	if err != nil {
		return nil, err
	}

	return mesh.NewMeshData(vertexRows, triangles, textureData, annotations, nil)
}

func parseVec3(s string) geom.Vec3 {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return geom.Vec3{}
	}
	x, _ := strconv.ParseFloat(fields[0], 64)
	y, _ := strconv.ParseFloat(fields[1], 64)
	z, _ := strconv.ParseFloat(fields[2], 64)
	return geom.Vec3{X: x, Y: y, Z: z}
}

// parseTexCoord reads a "u v" pair and applies the axis swap the
// reference parser performs: texture.x <- -v, texture.y <- u
func parseTexCoord(s string) [2]float64 {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return [2]float64{}
	}
	u, _ := strconv.ParseFloat(fields[0], 64)
	v, _ := strconv.ParseFloat(fields[1], 64)
	return [2]float64{-v, u}
}

// parseFaceGroups parses "v/vt/vn" triples for each vertex of a face
func parseFaceGroups(s string) [][3]int {
	fields := strings.Fields(s)
	out := make([][3]int, 0, len(fields))
	for _, f := range fields {
		parts := strings.Split(f, "/")
		var g [3]int
		for i := 0; i < 3 && i < len(parts); i++ {
			v, _ := strconv.Atoi(parts[i])
			g[i] = v
		}
		out = append(out, g)
	}
	return out
}

// splitFace triangulates a face, splitting quads via face[:3] +
// (face[2:] + face[0]) the same way the reference OBJ parser does
func splitFace(groups [][3]int) [][3][3]int {
	switch len(groups) {
	case 3:
		return [][3][3]int{{groups[0], groups[1], groups[2]}}
	case 4:
		return [][3][3]int{
			{groups[0], groups[1], groups[2]},
			{groups[2], groups[3], groups[0]},
		}
	default:
		return nil
	}
}

func readAnnotations(path string) (map[string]geom.Vec3, error) {
	raw, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read annotations file %q:\n%v", path, err)
	}
	var named map[string][3]float64
	if err := json.Unmarshal(raw, &named); err != nil {
		return nil, chk.Err("cannot parse annotations file %q:\n%v", path, err)
	}
	out := make(map[string]geom.Vec3, len(named))
	for name, p := range named {
		out[name] = geom.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	return out, nil
}

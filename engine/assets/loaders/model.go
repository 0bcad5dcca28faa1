package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gl/engine/core"
	"github.com/spaghettifunk/anima-gl/engine/math"
)

/** @brief One group of faces sharing a material. */
type ModelSubMesh struct {
	Name         string
	MaterialName string
	Vertices     []math.Vertex3D
	Indices      []uint32
}

/** @brief Geometry decoded from a model file. */
type ModelData struct {
	Name      string
	SubMeshes []*ModelSubMesh
}

// ModelLoader reads Wavefront OBJ files. Polygons are triangulated as fans,
// missing normals are generated per face and tangents are always generated.
type ModelLoader struct{}

func (ml *ModelLoader) Load(path string, params interface{}) (*Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	model, err := ParseOBJ(name, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	size := uint64(0)
	for _, sm := range model.SubMeshes {
		size += uint64(len(sm.Vertices)*math.Vertex3DStride + len(sm.Indices)*4)
	}
	return &Resource{
		Name:     name,
		FullPath: path,
		Type:     ResourceTypeModel,
		DataSize: size,
		Data:     model,
	}, nil
}

func (ml *ModelLoader) Unload(*Resource) error {
	return nil
}

type objCorner struct {
	position, texcoord, normal int
}

type objState struct {
	positions []mgl32.Vec3
	texcoords []mgl32.Vec2
	normals   []mgl32.Vec3

	model   *ModelData
	current *ModelSubMesh
	hasNorm bool
}

// ParseOBJ decodes the subset of OBJ used for static meshes: v, vt, vn, f,
// o, g and usemtl. Other statements are ignored.
func ParseOBJ(name string, r io.Reader) (*ModelData, error) {
	st := &objState{model: &ModelData{Name: name}}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		var err error
		switch fields[0] {
		case "v":
			var v mgl32.Vec3
			v, err = parseVec3(fields[1:])
			st.positions = append(st.positions, v)
		case "vn":
			var v mgl32.Vec3
			v, err = parseVec3(fields[1:])
			st.normals = append(st.normals, v)
		case "vt":
			var v mgl32.Vec2
			v, err = parseVec2(fields[1:])
			st.texcoords = append(st.texcoords, v)
		case "o", "g":
			st.finish()
			st.begin(strings.Join(fields[1:], " "), "")
		case "usemtl":
			mat := strings.Join(fields[1:], " ")
			if st.current != nil && len(st.current.Indices) == 0 {
				st.current.MaterialName = mat
			} else {
				groupName := name
				if st.current != nil {
					groupName = st.current.Name
				}
				st.finish()
				st.begin(groupName, mat)
			}
		case "f":
			err = st.face(fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	st.finish()
	if len(st.model.SubMeshes) == 0 {
		return nil, fmt.Errorf("model %q has no faces", name)
	}
	return st.model, nil
}

func (st *objState) begin(name, material string) {
	if name == "" {
		name = st.model.Name
	}
	st.current = &ModelSubMesh{Name: name, MaterialName: material}
	st.hasNorm = true
}

func (st *objState) finish() {
	sm := st.current
	st.current = nil
	if sm == nil || len(sm.Indices) == 0 {
		return
	}
	if !st.hasNorm {
		math.GenerateNormals(sm.Vertices, sm.Indices)
	}
	math.GenerateTangents(sm.Vertices, sm.Indices)
	before := len(sm.Vertices)
	sm.Vertices = math.DeduplicateVertices(sm.Vertices, sm.Indices)
	core.LogDebug("model submesh %q: %d triangles, %d/%d vertices", sm.Name, len(sm.Indices)/3, len(sm.Vertices), before)
	st.model.SubMeshes = append(st.model.SubMeshes, sm)
}

func (st *objState) face(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(fields))
	}
	if st.current == nil {
		st.begin(st.model.Name, "")
	}
	corners := make([]objCorner, len(fields))
	for i, f := range fields {
		c, err := st.corner(f)
		if err != nil {
			return err
		}
		corners[i] = c
	}
	// faces are unindexed here, deduplication happens in finish
	for i := 1; i+1 < len(corners); i++ {
		for _, c := range []objCorner{corners[0], corners[i], corners[i+1]} {
			st.current.Indices = append(st.current.Indices, uint32(len(st.current.Vertices)))
			st.current.Vertices = append(st.current.Vertices, st.vertex(c))
		}
	}
	return nil
}

func (st *objState) vertex(c objCorner) math.Vertex3D {
	v := math.Vertex3D{Position: st.positions[c.position]}
	if c.texcoord >= 0 {
		v.Texcoord = st.texcoords[c.texcoord]
	}
	if c.normal >= 0 {
		v.Normal = st.normals[c.normal]
	} else {
		st.hasNorm = false
	}
	return v
}

// corner parses "p", "p/t", "p//n" or "p/t/n". Negative indices count from
// the end of the lists read so far.
func (st *objState) corner(field string) (objCorner, error) {
	parts := strings.Split(field, "/")
	c := objCorner{position: -1, texcoord: -1, normal: -1}
	var err error
	if c.position, err = resolveIndex(parts[0], len(st.positions)); err != nil {
		return c, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.texcoord, err = resolveIndex(parts[1], len(st.texcoords)); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.normal, err = resolveIndex(parts[2], len(st.normals)); err != nil {
			return c, err
		}
	}
	return c, nil
}

func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, fmt.Errorf("invalid index %q", s)
	}
	if i < 0 {
		i = n + i
	} else {
		i--
	}
	if i < 0 || i >= n {
		return -1, fmt.Errorf("index %s out of range (%d elements)", s, n)
	}
	return i, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{f[0], f[1], f[2]}, nil
}

func parseVec2(fields []string) (mgl32.Vec2, error) {
	f, err := parseFloats(fields, 2)
	if err != nil {
		return mgl32.Vec2{}, err
	}
	return mgl32.Vec2{f[0], f[1]}, nil
}

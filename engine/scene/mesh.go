package scene

import (
	"maps"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gl/engine/math"
)

// Names of the standard vertex attribute channels.
const (
	AttributePosition  = "POSITION"
	AttributeNormal    = "NORMAL"
	AttributeTexcoord  = "TEXCOORD_0"
	AttributeTangent   = "TANGENT"
	AttributeBitangent = "BITANGENT"
)

// StandardAttributes lists the channels in the order they are bound to
// shader inputs.
var StandardAttributes = []string{
	AttributePosition,
	AttributeNormal,
	AttributeTexcoord,
	AttributeTangent,
	AttributeBitangent,
}

type AttributeFormat uint8

const (
	FormatFloat32 AttributeFormat = iota
	FormatUint32
)

/** @brief Describes one attribute channel inside interleaved vertex data. */
type VertexAttribute struct {
	Format AttributeFormat
	/** @brief Number of components, e.g. 3 for a vec3. */
	Count uint32
	/** @brief Bytes between two consecutive vertices. */
	Stride uint32
	/** @brief Byte offset of the channel inside a vertex. */
	Offset uint32
}

/** @brief A material references textures by uniform name. */
type Material struct {
	Name string
	// Uniform name -> texture asset name.
	Textures     map[string]string
	DiffuseColor mgl32.Vec4
}

func NewMaterial(name string) *Material {
	return &Material{
		Name:         name,
		Textures:     make(map[string]string),
		DiffuseColor: mgl32.Vec4{1, 1, 1, 1},
	}
}

// TextureUniforms returns the uniform names in sorted order.
func (m *Material) TextureUniforms() []string {
	return slices.Sorted(maps.Keys(m.Textures))
}

/**
 * @brief CPU-side geometry chunk: interleaved vertex data, indices, the
 * attribute layout and a material. GPU bindings only read from it.
 */
type SubMesh struct {
	name        string
	vertices    []float32
	vertexCount uint32
	indices     []uint32
	attributes  map[string]VertexAttribute
	positions   []mgl32.Vec3
	material    *Material
	visible     bool
}

// NewSubMesh interleaves vertices and declares every standard attribute.
func NewSubMesh(name string, vertices []math.Vertex3D, indices []uint32, material *Material) *SubMesh {
	attributes := make(map[string]VertexAttribute, len(StandardAttributes))
	counts := []uint32{
		math.PositionComponents,
		math.NormalComponents,
		math.TexcoordComponents,
		math.TangentComponents,
		math.BitangentComponents,
	}
	offset := uint32(0)
	for i, attr := range StandardAttributes {
		attributes[attr] = VertexAttribute{
			Format: FormatFloat32,
			Count:  counts[i],
			Stride: math.Vertex3DStride,
			Offset: offset,
		}
		offset += counts[i] * 4
	}
	return &SubMesh{
		name:        name,
		vertices:    math.Interleave(vertices),
		vertexCount: uint32(len(vertices)),
		indices:     indices,
		attributes:  attributes,
		positions:   math.Positions(vertices),
		material:    material,
		visible:     true,
	}
}

// NewSubMeshFromData wraps already interleaved data with an explicit layout.
// The POSITION attribute, when declared, is used to extract positions.
func NewSubMeshFromData(name string, data []float32, vertexCount uint32, indices []uint32, attributes map[string]VertexAttribute, material *Material) *SubMesh {
	sm := &SubMesh{
		name:        name,
		vertices:    data,
		vertexCount: vertexCount,
		indices:     indices,
		attributes:  attributes,
		material:    material,
		visible:     true,
	}
	if pos, ok := attributes[AttributePosition]; ok && pos.Format == FormatFloat32 && pos.Count == 3 {
		strideFloats := pos.Stride / 4
		offsetFloats := pos.Offset / 4
		for i := uint32(0); i < vertexCount; i++ {
			base := i*strideFloats + offsetFloats
			if int(base+2) >= len(data) {
				break
			}
			sm.positions = append(sm.positions, mgl32.Vec3{data[base], data[base+1], data[base+2]})
		}
	}
	return sm
}

func (sm *SubMesh) Name() string            { return sm.name }
func (sm *SubMesh) Vertices() []float32     { return sm.vertices }
func (sm *SubMesh) VertexCount() uint32     { return sm.vertexCount }
func (sm *SubMesh) Indices() []uint32       { return sm.indices }
func (sm *SubMesh) Positions() []mgl32.Vec3 { return sm.positions }
func (sm *SubMesh) Material() *Material     { return sm.material }
func (sm *SubMesh) SetMaterial(m *Material) { sm.material = m }
func (sm *SubMesh) IsVisible() bool         { return sm.visible }
func (sm *SubMesh) SetVisible(visible bool) { sm.visible = visible }

func (sm *SubMesh) Attribute(name string) (VertexAttribute, bool) {
	attr, ok := sm.attributes[name]
	return attr, ok
}

// Mesh is the renderable component: a list of submeshes drawn with the
// world matrix of the node it is attached to.
type Mesh struct {
	componentBase
	subMeshes []*SubMesh
}

func NewMesh(name string, subMeshes ...*SubMesh) *Mesh {
	return &Mesh{
		componentBase: newComponentBase(name),
		subMeshes:     subMeshes,
	}
}

func (m *Mesh) Kind() Kind {
	return KindMesh
}

func (m *Mesh) SubMeshes() []*SubMesh {
	return m.subMeshes
}

func (m *Mesh) AddSubMesh(sm *SubMesh) {
	m.subMeshes = append(m.subMeshes, sm)
}

// Bounds builds a local space AABB around every submesh.
func (m *Mesh) Bounds() *AABB {
	box := NewAABB(m.name + "_bounds")
	for _, sm := range m.subMeshes {
		// indices are ignored, positions are already the full point cloud
		_ = box.UpdateVertices(sm.positions, nil)
	}
	return box
}

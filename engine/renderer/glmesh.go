package renderer

import (
	"cogentcore.org/core/base/ordmap"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gl/engine/core"
	"github.com/spaghettifunk/anima-gl/engine/scene"
)

// ShaderProgram is what a draw needs from a shader.
type ShaderProgram interface {
	Use()
	SetInt(name string, value int32)
	SetMat4(name string, value mgl32.Mat4)
}

/**
 * @brief The GPU binding of one submesh. The vertex array, vertex buffer and
 * index buffer are created and filled once in NewGLMesh. The submesh is only
 * referenced and must outlive the GLMesh.
 *
 * A GLMesh must not be copied, pass it by pointer.
 */
type GLMesh struct {
	noCopy noCopy

	subMesh      *scene.SubMesh
	vertexArray  *VertexArray
	vertexBuffer *VertexBuffer
	indexBuffer  *IndexBuffer
	device       Device

	// uniform name -> texture, in insertion order
	textures *ordmap.Map[string, *Texture]
}

// NewGLMesh uploads the submesh data and binds the attribute channels it
// declares, in StandardAttributes order. Each channel is bound to the input
// location matching its position in that list.
func NewGLMesh(device Device, subMesh *scene.SubMesh) (*GLMesh, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if subMesh == nil {
		return nil, ErrNilSubMesh
	}

	vao, err := NewVertexArray(device)
	if err != nil {
		return nil, err
	}
	vbo, err := NewVertexBuffer(device, subMesh.Vertices())
	if err != nil {
		vao.Destroy()
		return nil, err
	}
	ibo, err := NewIndexBuffer(device, subMesh.Indices())
	if err != nil {
		vbo.Destroy()
		vao.Destroy()
		return nil, err
	}

	layout := &VertexLayout{}
	for location, name := range scene.StandardAttributes {
		if attr, ok := subMesh.Attribute(name); ok {
			layout.Push(name, uint32(location), attr)
		}
	}
	vao.AddBuffer(vbo, ibo, layout)

	core.LogDebug("GLMesh %q uploaded: %d vertices, %d indices, %d attributes.",
		subMesh.Name(), subMesh.VertexCount(), ibo.Count(), len(layout.Elements()))

	return &GLMesh{
		subMesh:      subMesh,
		vertexArray:  vao,
		vertexBuffer: vbo,
		indexBuffer:  ibo,
		device:       device,
		textures:     ordmap.New[string, *Texture](),
	}, nil
}

func (m *GLMesh) SubMesh() *scene.SubMesh {
	return m.subMesh
}

func (m *GLMesh) VertexCount() uint32 {
	return m.subMesh.VertexCount()
}

func (m *GLMesh) IndexCount() int {
	return m.indexBuffer.Count()
}

func (m *GLMesh) VertexBuffer() *VertexBuffer {
	return m.vertexBuffer
}

func (m *GLMesh) IndexBuffer() *IndexBuffer {
	return m.indexBuffer
}

func (m *GLMesh) Bind() {
	m.vertexArray.Bind()
}

func (m *GLMesh) Unbind() {
	m.vertexArray.Unbind()
}

// SetTexture binds a texture to a sampler uniform. Rebinding a name keeps its
// original unit position.
func (m *GLMesh) SetTexture(name string, texture *Texture) {
	m.textures.Add(name, texture)
}

func (m *GLMesh) Texture(name string) (*Texture, bool) {
	return m.textures.ValueByKeyTry(name)
}

// Textures returns the sampler uniform names in unit order.
func (m *GLMesh) Textures() []string {
	return m.textures.Keys()
}

// Draw issues one indexed triangle draw. Textures take units 0..n-1 in
// insertion order. Nothing happens for an invisible submesh. It reports
// whether a draw call was issued.
func (m *GLMesh) Draw(shader ShaderProgram) bool {
	if m.subMesh == nil || !m.subMesh.IsVisible() || m.vertexArray.Handle() == 0 {
		return false
	}

	m.Bind()
	for unit, kv := range m.textures.Order {
		if kv.Value == nil {
			continue
		}
		kv.Value.Activate(uint32(unit))
		shader.SetInt(kv.Key, int32(unit))
	}
	m.device.DrawElements(int32(m.indexBuffer.Count()))
	m.Unbind()
	return true
}

// Destroy releases the GPU objects. Calling it twice is harmless.
func (m *GLMesh) Destroy() {
	m.vertexArray.Destroy()
	m.vertexBuffer.Destroy()
	m.indexBuffer.Destroy()
}

package renderer

import (
	"encoding/binary"
	"fmt"
	stdmath "math"

	"github.com/spaghettifunk/anima-gl/engine/core"
	"github.com/spaghettifunk/anima-gl/engine/scene"
)

// noCopy marks GPU wrappers that must not be copied once created, go vet's
// copylocks check reports copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

/**
 * @brief A vertex buffer filled once at creation with interleaved float
 * data. It is never resized.
 */
type VertexBuffer struct {
	noCopy noCopy

	device Device
	handle Handle
	size   int
}

func NewVertexBuffer(device Device, data []float32) (*VertexBuffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("vertex buffer: %w", ErrEmptyBuffer)
	}
	bytes := make([]byte, len(data)*4)
	for i, f := range data {
		binary.LittleEndian.PutUint32(bytes[i*4:], stdmath.Float32bits(f))
	}
	h, err := device.CreateBuffer(ArrayBuffer, bytes)
	if err != nil {
		core.LogError("failed to create vertex buffer: %s", err)
		return nil, err
	}
	return &VertexBuffer{device: device, handle: h, size: len(bytes)}, nil
}

func (vb *VertexBuffer) Handle() Handle {
	return vb.handle
}

// Size is the size in bytes of the buffer.
func (vb *VertexBuffer) Size() int {
	return vb.size
}

func (vb *VertexBuffer) Bind() {
	vb.device.BindBuffer(ArrayBuffer, vb.handle)
}

func (vb *VertexBuffer) Unbind() {
	vb.device.BindBuffer(ArrayBuffer, 0)
}

func (vb *VertexBuffer) Destroy() {
	if vb.handle == 0 {
		return
	}
	vb.device.DeleteBuffer(vb.handle)
	vb.handle = 0
}

/** @brief An index buffer of uint32 triangle list indices. */
type IndexBuffer struct {
	noCopy noCopy

	device Device
	handle Handle
	count  int
}

func NewIndexBuffer(device Device, indices []uint32) (*IndexBuffer, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("index buffer: %w", ErrEmptyBuffer)
	}
	bytes := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(bytes[i*4:], idx)
	}
	h, err := device.CreateBuffer(ElementArrayBuffer, bytes)
	if err != nil {
		core.LogError("failed to create index buffer: %s", err)
		return nil, err
	}
	return &IndexBuffer{device: device, handle: h, count: len(indices)}, nil
}

func (ib *IndexBuffer) Handle() Handle {
	return ib.handle
}

// Count is the number of indices stored.
func (ib *IndexBuffer) Count() int {
	return ib.count
}

func (ib *IndexBuffer) Bind() {
	ib.device.BindBuffer(ElementArrayBuffer, ib.handle)
}

func (ib *IndexBuffer) Unbind() {
	ib.device.BindBuffer(ElementArrayBuffer, 0)
}

func (ib *IndexBuffer) Destroy() {
	if ib.handle == 0 {
		return
	}
	ib.device.DeleteBuffer(ib.handle)
	ib.handle = 0
}

// LayoutElement binds one attribute channel to a shader input location.
type LayoutElement struct {
	Name      string
	Location  uint32
	Attribute scene.VertexAttribute
}

// VertexLayout is an ordered list of attribute bindings.
type VertexLayout struct {
	elements []LayoutElement
}

func (l *VertexLayout) Push(name string, location uint32, attr scene.VertexAttribute) {
	l.elements = append(l.elements, LayoutElement{Name: name, Location: location, Attribute: attr})
}

func (l *VertexLayout) Elements() []LayoutElement {
	return l.elements
}

/** @brief Vertex array object: the attribute layout of a vertex buffer. */
type VertexArray struct {
	noCopy noCopy

	device Device
	handle Handle
}

func NewVertexArray(device Device) (*VertexArray, error) {
	h, err := device.CreateVertexArray()
	if err != nil {
		core.LogError("failed to create vertex array: %s", err)
		return nil, err
	}
	return &VertexArray{device: device, handle: h}, nil
}

func (va *VertexArray) Handle() Handle {
	return va.handle
}

// AddBuffer records the layout of vb inside the vertex array. The index
// buffer, when given, is captured by the vertex array too.
func (va *VertexArray) AddBuffer(vb *VertexBuffer, ib *IndexBuffer, layout *VertexLayout) {
	va.Bind()
	vb.Bind()
	for _, e := range layout.Elements() {
		va.device.VertexAttribute(e.Location, e.Attribute)
	}
	if ib != nil {
		ib.Bind()
	}
	va.Unbind()
}

func (va *VertexArray) Bind() {
	va.device.BindVertexArray(va.handle)
}

func (va *VertexArray) Unbind() {
	va.device.BindVertexArray(0)
}

func (va *VertexArray) Destroy() {
	if va.handle == 0 {
		return
	}
	va.device.DeleteVertexArray(va.handle)
	va.handle = 0
}

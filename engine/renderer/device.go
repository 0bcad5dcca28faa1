package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gl/engine/scene"
)

// Handle names a GPU object. Zero is never a valid object.
type Handle uint32

type BufferTarget uint8

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// DeviceConfig is what a device needs to set up its default state.
type DeviceConfig struct {
	Width      int32
	Height     int32
	DepthTest  bool
	CullFaces  bool
	ClearColor mgl32.Vec4
}

// Device is the graphics call surface. Every call must happen on the thread
// that owns the graphics context.
type Device interface {
	Initialize(config DeviceConfig) error
	Shutdown() error
	Resized(width, height int32)

	CreateBuffer(target BufferTarget, data []byte) (Handle, error)
	BindBuffer(target BufferTarget, buffer Handle)
	DeleteBuffer(buffer Handle)

	CreateVertexArray() (Handle, error)
	BindVertexArray(vao Handle)
	DeleteVertexArray(vao Handle)
	VertexAttribute(location uint32, attr scene.VertexAttribute)

	CreateTexture(width, height int32, rgba []uint8) (Handle, error)
	ActiveTexture(unit uint32)
	BindTexture(texture Handle)
	DeleteTexture(texture Handle)

	CreateProgram(vertexSource, fragmentSource string) (Handle, error)
	UseProgram(program Handle)
	DeleteProgram(program Handle)
	UniformLocation(program Handle, name string) int32
	Uniform1i(location int32, value int32)
	Uniform1f(location int32, value float32)
	Uniform3f(location int32, value mgl32.Vec3)
	UniformMatrix4(location int32, value mgl32.Mat4)

	Clear()
	DrawElements(count int32)
}

package opengl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gl/engine/core"
	"github.com/spaghettifunk/anima-gl/engine/renderer"
	"github.com/spaghettifunk/anima-gl/engine/scene"
)

var ErrObjectCreation = errors.New("OpenGL returned no object name")

// Device implements renderer.Device on an OpenGL 4.1 core context. The
// context must be current on the calling thread before Initialize.
type Device struct {
	clearColor mgl32.Vec4
}

func NewDevice() *Device {
	return &Device{}
}

func (d *Device) Initialize(config renderer.DeviceConfig) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	core.LogInfo("OpenGL %s, GLSL %s, %s",
		gl.GoStr(gl.GetString(gl.VERSION)),
		gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		gl.GoStr(gl.GetString(gl.RENDERER)))

	d.clearColor = config.ClearColor
	gl.ClearColor(d.clearColor.X(), d.clearColor.Y(), d.clearColor.Z(), d.clearColor.W())
	if config.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	}
	if config.CullFaces {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
	gl.Viewport(0, 0, config.Width, config.Height)
	return nil
}

func (d *Device) Shutdown() error {
	gl.UseProgram(0)
	gl.BindVertexArray(0)
	return nil
}

func (d *Device) Resized(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func target(t renderer.BufferTarget) uint32 {
	if t == renderer.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func (d *Device) CreateBuffer(t renderer.BufferTarget, data []byte) (renderer.Handle, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, ErrObjectCreation
	}
	gl.BindBuffer(target(t), id)
	gl.BufferData(target(t), len(data), gl.Ptr(data), gl.STATIC_DRAW)
	return renderer.Handle(id), nil
}

func (d *Device) BindBuffer(t renderer.BufferTarget, buffer renderer.Handle) {
	gl.BindBuffer(target(t), uint32(buffer))
}

func (d *Device) DeleteBuffer(buffer renderer.Handle) {
	id := uint32(buffer)
	gl.DeleteBuffers(1, &id)
}

func (d *Device) CreateVertexArray() (renderer.Handle, error) {
	var id uint32
	gl.GenVertexArrays(1, &id)
	if id == 0 {
		return 0, ErrObjectCreation
	}
	return renderer.Handle(id), nil
}

func (d *Device) BindVertexArray(vao renderer.Handle) {
	gl.BindVertexArray(uint32(vao))
}

func (d *Device) DeleteVertexArray(vao renderer.Handle) {
	id := uint32(vao)
	gl.DeleteVertexArrays(1, &id)
}

func (d *Device) VertexAttribute(location uint32, attr scene.VertexAttribute) {
	gl.EnableVertexAttribArray(location)
	switch attr.Format {
	case scene.FormatUint32:
		gl.VertexAttribIPointer(location, int32(attr.Count), gl.UNSIGNED_INT, int32(attr.Stride), gl.PtrOffset(int(attr.Offset)))
	default:
		gl.VertexAttribPointer(location, int32(attr.Count), gl.FLOAT, false, int32(attr.Stride), gl.PtrOffset(int(attr.Offset)))
	}
}

func (d *Device) CreateTexture(width, height int32, rgba []uint8) (renderer.Handle, error) {
	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return 0, ErrObjectCreation
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return renderer.Handle(id), nil
}

func (d *Device) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (d *Device) BindTexture(texture renderer.Handle) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(texture))
}

func (d *Device) DeleteTexture(texture renderer.Handle) {
	id := uint32(texture)
	gl.DeleteTextures(1, &id)
}

func (d *Device) CreateProgram(vertexSource, fragmentSource string) (renderer.Handle, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	if program == 0 {
		return 0, ErrObjectCreation
	}
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	return renderer.Handle(program), nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile: %v", log)
	}
	return shader, nil
}

func (d *Device) UseProgram(program renderer.Handle) {
	gl.UseProgram(uint32(program))
}

func (d *Device) DeleteProgram(program renderer.Handle) {
	gl.DeleteProgram(uint32(program))
}

func (d *Device) UniformLocation(program renderer.Handle, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
}

func (d *Device) Uniform1i(location int32, value int32) {
	gl.Uniform1i(location, value)
}

func (d *Device) Uniform1f(location int32, value float32) {
	gl.Uniform1f(location, value)
}

func (d *Device) Uniform3f(location int32, value mgl32.Vec3) {
	gl.Uniform3f(location, value.X(), value.Y(), value.Z())
}

func (d *Device) UniformMatrix4(location int32, value mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &value[0])
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) DrawElements(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
}

var _ renderer.Device = (*Device)(nil)

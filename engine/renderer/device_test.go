package renderer

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gl/engine/scene"
)

type attributeCall struct {
	location uint32
	attr     scene.VertexAttribute
}

// recordingDevice is a Device double that hands out sequential handles and
// records the calls the renderer makes.
type recordingDevice struct {
	next Handle

	buffers      map[Handle][]byte
	vertexArrays map[Handle]bool
	textures     map[Handle]bool
	programs     map[Handle]bool

	boundVAO      Handle
	attributes    []attributeCall
	activeUnits   []uint32
	boundTextures []Handle
	uniformInts   map[string]int32
	uniformMats   map[string]mgl32.Mat4
	uniformVecs   map[string]mgl32.Vec3
	locations     map[int32]string
	drawCalls     []int32
	drawVAOs      []Handle
	clears        int
	failProgram   bool
	failBuffers   bool
}

func newRecordingDevice() *recordingDevice {
	return &recordingDevice{
		buffers:      make(map[Handle][]byte),
		vertexArrays: make(map[Handle]bool),
		textures:     make(map[Handle]bool),
		programs:     make(map[Handle]bool),
		uniformInts:  make(map[string]int32),
		uniformMats:  make(map[string]mgl32.Mat4),
		uniformVecs:  make(map[string]mgl32.Vec3),
		locations:    make(map[int32]string),
	}
}

func (d *recordingDevice) handle() Handle {
	d.next++
	return d.next
}

func (d *recordingDevice) Initialize(config DeviceConfig) error { return nil }
func (d *recordingDevice) Shutdown() error                      { return nil }
func (d *recordingDevice) Resized(width, height int32)          {}

func (d *recordingDevice) CreateBuffer(target BufferTarget, data []byte) (Handle, error) {
	if d.failBuffers {
		return 0, errors.New("out of memory")
	}
	h := d.handle()
	d.buffers[h] = append([]byte(nil), data...)
	return h, nil
}

func (d *recordingDevice) BindBuffer(target BufferTarget, buffer Handle) {}

func (d *recordingDevice) DeleteBuffer(buffer Handle) {
	if _, ok := d.buffers[buffer]; !ok {
		panic(fmt.Sprintf("double delete of buffer %d", buffer))
	}
	delete(d.buffers, buffer)
}

func (d *recordingDevice) CreateVertexArray() (Handle, error) {
	h := d.handle()
	d.vertexArrays[h] = true
	return h, nil
}

func (d *recordingDevice) BindVertexArray(vao Handle) {
	d.boundVAO = vao
}

func (d *recordingDevice) DeleteVertexArray(vao Handle) {
	if !d.vertexArrays[vao] {
		panic(fmt.Sprintf("double delete of vertex array %d", vao))
	}
	delete(d.vertexArrays, vao)
}

func (d *recordingDevice) VertexAttribute(location uint32, attr scene.VertexAttribute) {
	d.attributes = append(d.attributes, attributeCall{location: location, attr: attr})
}

func (d *recordingDevice) CreateTexture(width, height int32, rgba []uint8) (Handle, error) {
	h := d.handle()
	d.textures[h] = true
	return h, nil
}

func (d *recordingDevice) ActiveTexture(unit uint32) {
	d.activeUnits = append(d.activeUnits, unit)
}

func (d *recordingDevice) BindTexture(texture Handle) {
	d.boundTextures = append(d.boundTextures, texture)
}

func (d *recordingDevice) DeleteTexture(texture Handle) {
	delete(d.textures, texture)
}

func (d *recordingDevice) CreateProgram(vertexSource, fragmentSource string) (Handle, error) {
	if d.failProgram {
		return 0, errors.New("syntax error")
	}
	h := d.handle()
	d.programs[h] = true
	return h, nil
}

func (d *recordingDevice) UseProgram(program Handle) {}

func (d *recordingDevice) DeleteProgram(program Handle) {
	delete(d.programs, program)
}

// UniformLocation reports every uniform as active except "missing".
func (d *recordingDevice) UniformLocation(program Handle, name string) int32 {
	if name == "missing" {
		return -1
	}
	loc := int32(len(d.locations))
	d.locations[loc] = name
	return loc
}

func (d *recordingDevice) Uniform1i(location int32, value int32) {
	d.uniformInts[d.locations[location]] = value
}

func (d *recordingDevice) Uniform1f(location int32, value float32) {}

func (d *recordingDevice) Uniform3f(location int32, value mgl32.Vec3) {
	d.uniformVecs[d.locations[location]] = value
}

func (d *recordingDevice) UniformMatrix4(location int32, value mgl32.Mat4) {
	d.uniformMats[d.locations[location]] = value
}

func (d *recordingDevice) Clear() {
	d.clears++
}

func (d *recordingDevice) DrawElements(count int32) {
	d.drawCalls = append(d.drawCalls, count)
	d.drawVAOs = append(d.drawVAOs, d.boundVAO)
}

func (d *recordingDevice) bufferUint32s(h Handle) []uint32 {
	data := d.buffers[h]
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return out
}

// recordingShader captures what GLMesh.Draw asks of a shader.
type recordingShader struct {
	ints map[string]int32
	uses int
}

func newRecordingShader() *recordingShader {
	return &recordingShader{ints: make(map[string]int32)}
}

func (s *recordingShader) Use()                                  { s.uses++ }
func (s *recordingShader) SetInt(name string, value int32)       { s.ints[name] = value }
func (s *recordingShader) SetMat4(name string, value mgl32.Mat4) {}

package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gl/engine/core"
)

/** @brief A linked vertex + fragment program with a uniform location cache. */
type Shader struct {
	noCopy noCopy

	name      string
	device    Device
	program   Handle
	locations map[string]int32
}

func NewShader(device Device, name, vertexSource, fragmentSource string) (*Shader, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	program, err := device.CreateProgram(vertexSource, fragmentSource)
	if err != nil {
		core.LogError("failed to build shader %q: %s", name, err)
		return nil, err
	}
	return &Shader{
		name:      name,
		device:    device,
		program:   program,
		locations: make(map[string]int32),
	}, nil
}

func (s *Shader) Name() string {
	return s.name
}

func (s *Shader) Program() Handle {
	return s.program
}

// Reload builds a new program from the sources. On failure the current
// program is kept.
func (s *Shader) Reload(vertexSource, fragmentSource string) error {
	program, err := s.device.CreateProgram(vertexSource, fragmentSource)
	if err != nil {
		core.LogError("failed to reload shader %q: %s", s.name, err)
		return err
	}
	if s.program != 0 {
		s.device.DeleteProgram(s.program)
	}
	s.program = program
	s.locations = make(map[string]int32)
	return nil
}

func (s *Shader) Use() {
	s.device.UseProgram(s.program)
}

func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := s.device.UniformLocation(s.program, name)
	if loc < 0 {
		core.LogDebug("shader %q has no active uniform %q", s.name, name)
	}
	s.locations[name] = loc
	return loc
}

func (s *Shader) SetInt(name string, value int32) {
	if loc := s.location(name); loc >= 0 {
		s.device.Uniform1i(loc, value)
	}
}

func (s *Shader) SetFloat(name string, value float32) {
	if loc := s.location(name); loc >= 0 {
		s.device.Uniform1f(loc, value)
	}
}

func (s *Shader) SetVec3(name string, value mgl32.Vec3) {
	if loc := s.location(name); loc >= 0 {
		s.device.Uniform3f(loc, value)
	}
}

func (s *Shader) SetMat4(name string, value mgl32.Mat4) {
	if loc := s.location(name); loc >= 0 {
		s.device.UniformMatrix4(loc, value)
	}
}

func (s *Shader) Destroy() {
	if s.program == 0 {
		return
	}
	s.device.DeleteProgram(s.program)
	s.program = 0
}

package renderer

import (
	"fmt"
	"image"

	"github.com/spaghettifunk/anima-gl/engine/core"
	"github.com/spaghettifunk/anima-gl/engine/scene"
)

/**
 * @brief Registry of everything uploaded to the GPU: shaders and textures by
 * name, and the GLMeshes built for each scene mesh. It is created once at
 * startup and tears every GPU object down in Shutdown.
 */
type GraphicsManager struct {
	device   Device
	shaders  map[string]*Shader
	textures map[string]*Texture
	meshes   map[*scene.Mesh][]*GLMesh
}

func NewGraphicsManager(device Device) (*GraphicsManager, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	return &GraphicsManager{
		device:   device,
		shaders:  make(map[string]*Shader),
		textures: make(map[string]*Texture),
		meshes:   make(map[*scene.Mesh][]*GLMesh),
	}, nil
}

func (gm *GraphicsManager) Device() Device {
	return gm.device
}

// UploadShader builds and registers a shader. An existing shader with the
// same name is rebuilt in place.
func (gm *GraphicsManager) UploadShader(name, vertexSource, fragmentSource string) (*Shader, error) {
	if s, ok := gm.shaders[name]; ok {
		if err := s.Reload(vertexSource, fragmentSource); err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := NewShader(gm.device, name, vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	gm.shaders[name] = s
	core.LogInfo("shader %q uploaded.", name)
	return s, nil
}

func (gm *GraphicsManager) Shader(name string) (*Shader, bool) {
	s, ok := gm.shaders[name]
	return s, ok
}

// ReloadShader rebuilds a registered shader, keeping the old program if the
// new sources fail to build.
func (gm *GraphicsManager) ReloadShader(name, vertexSource, fragmentSource string) error {
	s, ok := gm.shaders[name]
	if !ok {
		return fmt.Errorf("reload %q: %w", name, ErrShaderNotFound)
	}
	if err := s.Reload(vertexSource, fragmentSource); err != nil {
		return err
	}
	core.LogInfo("shader %q reloaded.", name)
	return nil
}

// UploadTexture registers img under name, replacing any previous texture.
// Uploaded meshes whose material refers to name are bound to the new texture.
func (gm *GraphicsManager) UploadTexture(name string, img image.Image) (*Texture, error) {
	t, err := NewTexture(gm.device, name, img)
	if err != nil {
		return nil, err
	}
	old, replaced := gm.textures[name]
	gm.textures[name] = t
	gm.bindTexture(name, t)
	if replaced {
		old.Destroy()
	}
	return t, nil
}

func (gm *GraphicsManager) Texture(name string) (*Texture, bool) {
	t, ok := gm.textures[name]
	return t, ok
}

func (gm *GraphicsManager) bindTexture(name string, texture *Texture) {
	for _, glMeshes := range gm.meshes {
		for _, m := range glMeshes {
			mat := m.SubMesh().Material()
			if mat == nil {
				continue
			}
			for _, uniform := range mat.TextureUniforms() {
				if mat.Textures[uniform] == name {
					m.SetTexture(uniform, texture)
				}
			}
		}
	}
}

// UploadMesh builds one GLMesh per submesh of mesh. Material textures are
// resolved by name among the uploaded textures; missing ones are skipped.
// Uploading the same mesh twice returns the existing bindings.
func (gm *GraphicsManager) UploadMesh(mesh *scene.Mesh) ([]*GLMesh, error) {
	if existing, ok := gm.meshes[mesh]; ok {
		return existing, nil
	}
	glMeshes := make([]*GLMesh, 0, len(mesh.SubMeshes()))
	for _, sm := range mesh.SubMeshes() {
		glMesh, err := NewGLMesh(gm.device, sm)
		if err != nil {
			for _, m := range glMeshes {
				m.Destroy()
			}
			return nil, fmt.Errorf("upload mesh %q: %w", mesh.Name(), err)
		}
		if mat := sm.Material(); mat != nil {
			for _, uniform := range mat.TextureUniforms() {
				texName := mat.Textures[uniform]
				tex, ok := gm.textures[texName]
				if !ok {
					core.LogWarn("mesh %q: texture %q for %q is not loaded", mesh.Name(), texName, uniform)
					continue
				}
				glMesh.SetTexture(uniform, tex)
			}
		}
		glMeshes = append(glMeshes, glMesh)
	}
	gm.meshes[mesh] = glMeshes
	return glMeshes, nil
}

func (gm *GraphicsManager) GLMeshes(mesh *scene.Mesh) []*GLMesh {
	return gm.meshes[mesh]
}

// ReleaseMesh destroys the GPU bindings of mesh.
func (gm *GraphicsManager) ReleaseMesh(mesh *scene.Mesh) {
	for _, m := range gm.meshes[mesh] {
		m.Destroy()
	}
	delete(gm.meshes, mesh)
}

// DrawMesh draws every submesh binding of mesh and returns the number of
// draw calls issued.
func (gm *GraphicsManager) DrawMesh(mesh *scene.Mesh, shader ShaderProgram) int {
	draws := 0
	for _, m := range gm.meshes[mesh] {
		if m.Draw(shader) {
			draws++
		}
	}
	return draws
}

// Shutdown destroys every GPU object the manager knows about.
func (gm *GraphicsManager) Shutdown() error {
	for mesh := range gm.meshes {
		gm.ReleaseMesh(mesh)
	}
	for name, t := range gm.textures {
		t.Destroy()
		delete(gm.textures, name)
	}
	for name, s := range gm.shaders {
		s.Destroy()
		delete(gm.shaders, name)
	}
	return nil
}

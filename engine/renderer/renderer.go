package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gl/engine/core"
	"github.com/spaghettifunk/anima-gl/engine/scene"
)

// Uniform names pushed for every frame and every mesh.
const (
	UniformModel          = "model"
	UniformView           = "view"
	UniformProjection     = "projection"
	UniformViewPosition   = "viewPos"
	UniformLightPosition  = "lightPos"
	UniformLightColor     = "lightColor"
	UniformLightIntensity = "lightIntensity"
)

// Renderer is the frame front end: it clears the target and draws every
// mesh of a scene through a camera.
type Renderer struct {
	device   Device
	graphics *GraphicsManager
	width    int32
	height   int32
	tracked  map[*scene.Scene]struct{}
}

func NewRenderer(graphics *GraphicsManager) *Renderer {
	return &Renderer{
		device:   graphics.Device(),
		graphics: graphics,
		tracked:  make(map[*scene.Scene]struct{}),
	}
}

// Track releases the GPU bindings of every mesh that later leaves s.
// DrawScene tracks the scenes it draws.
func (r *Renderer) Track(s *scene.Scene) {
	if _, ok := r.tracked[s]; ok {
		return
	}
	r.tracked[s] = struct{}{}
	s.OnComponentRemoved(func(c scene.Component) {
		if mesh, ok := c.(*scene.Mesh); ok {
			r.graphics.ReleaseMesh(mesh)
		}
	})
}

func (r *Renderer) Initialize(config DeviceConfig) error {
	if err := r.device.Initialize(config); err != nil {
		core.LogError("failed to initialize graphics device: %s", err)
		return err
	}
	r.width, r.height = config.Width, config.Height
	core.LogInfo("Renderer initialized (%dx%d).", r.width, r.height)
	return nil
}

func (r *Renderer) OnResized(width, height int32) {
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.device.Resized(width, height)
}

// AspectRatio of the current framebuffer, 1 while it has no area.
func (r *Renderer) AspectRatio() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

func (r *Renderer) BeginFrame() {
	r.device.Clear()
}

// DrawScene pushes the camera and light uniforms once, then the model
// matrix and the draw calls of each mesh. Meshes not yet on the GPU are
// uploaded first. It returns the number of draw calls issued.
func (r *Renderer) DrawScene(s *scene.Scene, camera scene.Camera, shader *Shader) (int, error) {
	view, err := camera.View()
	if err != nil {
		return 0, err
	}
	projection := camera.PreRotation().Mul4(camera.Projection())
	r.Track(s)

	shader.Use()
	shader.SetMat4(UniformView, view)
	shader.SetMat4(UniformProjection, projection)
	shader.SetVec3(UniformViewPosition, view.Inv().Col(3).Vec3())

	if lights := scene.Components[*scene.Light](s); len(lights) > 0 {
		light := lights[0]
		shader.SetVec3(UniformLightPosition, light.Position())
		shader.SetVec3(UniformLightColor, light.Color)
		shader.SetFloat(UniformLightIntensity, light.Intensity)
	}

	draws := 0
	for _, mesh := range scene.Components[*scene.Mesh](s) {
		if len(r.graphics.GLMeshes(mesh)) == 0 {
			if _, err := r.graphics.UploadMesh(mesh); err != nil {
				return draws, err
			}
		}
		model := mgl32.Ident4()
		if n := mesh.Node(); n != nil {
			model = n.WorldMatrix()
		}
		shader.SetMat4(UniformModel, model)
		draws += r.graphics.DrawMesh(mesh, shader)
	}
	return draws, nil
}

func (r *Renderer) Shutdown() error {
	if err := r.graphics.Shutdown(); err != nil {
		return err
	}
	return r.device.Shutdown()
}

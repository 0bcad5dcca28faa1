package testbed

import (
	"bytes"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gl/engine"
	"github.com/spaghettifunk/anima-gl/engine/assets"
	"github.com/spaghettifunk/anima-gl/engine/core"
	"github.com/spaghettifunk/anima-gl/engine/math"
	"github.com/spaghettifunk/anima-gl/engine/renderer"
	"github.com/spaghettifunk/anima-gl/engine/scene"
)

const (
	cameraSpeed       = 5.0
	mouseSensitivity  = 0.1
	cameraMinFov      = 1.0
	cameraMaxFov      = 45.0
	cameraPitchLimit  = 89.0
	cubeRotationSpeed = 0.5
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	scene  *scene.Scene
	shader *renderer.Shader

	cameraNode *scene.Node
	camera     *scene.PerspectiveCamera
	yaw        float32
	pitch      float32
	fov        float32

	cubes []*scene.Node
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &gameState{
				yaw:   -90,
				pitch: 0,
				fov:   cameraMaxFov,
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}
	state := g.State.(*gameState)

	shader, err := g.SystemManager.LoadShader("basic")
	if err != nil {
		return err
	}
	state.shader = shader

	material, err := g.SystemManager.LoadMaterial("materials/crate.mat.toml")
	if err != nil {
		core.LogWarn("crate material unavailable, drawing untextured: %s", err)
	}

	s := scene.NewScene("testbed")
	root := scene.NewNode("root")
	if err := s.SetRoot(root); err != nil {
		return err
	}

	// camera
	state.cameraNode = scene.NewNode("camera")
	state.camera = scene.NewPerspectiveCamera("main_camera", math.DegToRad(state.fov), g.SystemManager.Renderer.AspectRatio(), 0.1, 1000.0)
	if err := s.AddChild(state.cameraNode); err != nil {
		return err
	}
	if err := s.AddComponentTo(state.camera, state.cameraNode); err != nil {
		return err
	}
	state.cameraNode.Transform().SetTranslation(mgl32.Vec3{0, 2, 12})

	// light
	lightNode := scene.NewNode("light")
	if err := s.AddChild(lightNode); err != nil {
		return err
	}
	lightNode.Transform().SetTranslation(mgl32.Vec3{4, 8, 6})
	if err := s.AddComponentTo(scene.NewLight("sun", mgl32.Vec3{1, 1, 1}, 1), lightNode); err != nil {
		return err
	}

	// Three cubes, each one the child of the previous.
	parent := root
	offsets := []mgl32.Vec3{{0, 0, 0}, {4, 0, 0}, {2.5, 0, 0}}
	sizes := []float32{2, 1.5, 1}
	for i := range offsets {
		node := scene.NewNode(fmt.Sprintf("cube_%d", i))
		if err := parent.AddChild(node); err != nil {
			return err
		}
		node.Transform().SetTranslation(offsets[i])
		cube := assets.GenerateCube(sizes[i], sizes[i], sizes[i], 1, 1, node.Name(), material)
		if err := s.AddComponentTo(scene.NewMesh(node.Name(), cube), node); err != nil {
			return err
		}
		state.cubes = append(state.cubes, node)
		parent = node
	}

	floor := scene.NewNode("floor")
	if err := s.AddChild(floor); err != nil {
		return err
	}
	floor.Transform().SetPositionRotationScale(
		mgl32.Vec3{0, -2, 0},
		mgl32.QuatRotate(math.DegToRad(-90), mgl32.Vec3{1, 0, 0}),
		mgl32.Vec3{1, 1, 1},
	)
	plane := assets.GeneratePlane(20, 20, 4, 4, 4, 4, "floor", material)
	if err := s.AddComponentTo(scene.NewMesh("floor", plane), floor); err != nil {
		return err
	}

	state.scene = s
	g.SystemManager.Renderer.Track(s)
	g.updateCamera(state)

	var dump bytes.Buffer
	if err := scene.Dump(&dump, s); err != nil {
		return err
	}
	core.LogDebug("scene layout:\n%s", dump.String())
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	input := g.SystemManager.Input
	dt := float32(deltaTime)

	// mouse look
	if input.IsButtonDown(core.BUTTON_RIGHT) {
		dx, dy := input.MouseDelta()
		state.yaw += float32(dx) * mouseSensitivity
		state.pitch -= float32(dy) * mouseSensitivity
		state.pitch = math.Clamp(state.pitch, -cameraPitchLimit, cameraPitchLimit)
	}

	// zoom
	if scroll := input.ScrollDelta(); scroll != 0 {
		state.fov = math.Clamp(state.fov-float32(scroll), cameraMinFov, cameraMaxFov)
		state.camera.SetFov(math.DegToRad(state.fov))
	}

	// movement
	front := math.FrontFromYawPitch(state.yaw, state.pitch)
	right := front.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	velocity := mgl32.Vec3{}
	if input.IsKeyDown(core.KEY_W) {
		velocity = velocity.Add(front)
	}
	if input.IsKeyDown(core.KEY_S) {
		velocity = velocity.Sub(front)
	}
	if input.IsKeyDown(core.KEY_D) {
		velocity = velocity.Add(right)
	}
	if input.IsKeyDown(core.KEY_A) {
		velocity = velocity.Sub(right)
	}
	if velocity.Len() > 0 {
		state.cameraNode.Transform().Translate(velocity.Normalize().Mul(cameraSpeed * dt))
	}
	g.updateCamera(state)

	// spin the cubes, children inherit the parent rotation
	rotation := mgl32.QuatRotate(cubeRotationSpeed*dt, mgl32.Vec3{0, 1, 0})
	for _, cube := range state.cubes {
		cube.Transform().Rotate(rotation)
	}
	return nil
}

func (g *TestGame) updateCamera(state *gameState) {
	front := math.FrontFromYawPitch(state.yaw, state.pitch)
	state.cameraNode.Transform().SetRotation(math.LookRotation(front, mgl32.Vec3{0, 1, 0}))
}

func (g *TestGame) Render(deltaTime float64) (int, error) {
	state := g.State.(*gameState)
	return g.SystemManager.Renderer.DrawScene(state.scene, state.camera, state.shader)
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	if height == 0 {
		return nil
	}
	state.camera.SetAspectRatio(float32(width) / float32(height))
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	if state.scene != nil {
		for _, mesh := range scene.Components[*scene.Mesh](state.scene) {
			g.SystemManager.Graphics.ReleaseMesh(mesh)
		}
	}
	return nil
}

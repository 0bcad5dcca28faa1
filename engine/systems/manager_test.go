package systems

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gl/engine/core"
	"github.com/spaghettifunk/anima-gl/engine/renderer"
	"github.com/spaghettifunk/anima-gl/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingDevice hands out increasing handles and records nothing else.
type countingDevice struct {
	next        renderer.Handle
	initialized bool
	programs    int
}

func (d *countingDevice) handle() renderer.Handle {
	d.next++
	return d.next
}

func (d *countingDevice) Initialize(renderer.DeviceConfig) error { d.initialized = true; return nil }
func (d *countingDevice) Shutdown() error                        { d.initialized = false; return nil }
func (d *countingDevice) Resized(int32, int32)                   {}
func (d *countingDevice) CreateBuffer(renderer.BufferTarget, []byte) (renderer.Handle, error) {
	return d.handle(), nil
}
func (d *countingDevice) BindBuffer(renderer.BufferTarget, renderer.Handle) {}
func (d *countingDevice) DeleteBuffer(renderer.Handle)                      {}
func (d *countingDevice) CreateVertexArray() (renderer.Handle, error)       { return d.handle(), nil }
func (d *countingDevice) BindVertexArray(renderer.Handle)                   {}
func (d *countingDevice) DeleteVertexArray(renderer.Handle)                 {}
func (d *countingDevice) VertexAttribute(uint32, scene.VertexAttribute)     {}
func (d *countingDevice) CreateTexture(int32, int32, []uint8) (renderer.Handle, error) {
	return d.handle(), nil
}
func (d *countingDevice) ActiveTexture(uint32)          {}
func (d *countingDevice) BindTexture(renderer.Handle)   {}
func (d *countingDevice) DeleteTexture(renderer.Handle) {}
func (d *countingDevice) CreateProgram(string, string) (renderer.Handle, error) {
	d.programs++
	return d.handle(), nil
}
func (d *countingDevice) UseProgram(renderer.Handle)                    {}
func (d *countingDevice) DeleteProgram(renderer.Handle)                 {}
func (d *countingDevice) UniformLocation(renderer.Handle, string) int32 { return 0 }
func (d *countingDevice) Uniform1i(int32, int32)                        {}
func (d *countingDevice) Uniform1f(int32, float32)                      {}
func (d *countingDevice) Uniform3f(int32, mgl32.Vec3)                   {}
func (d *countingDevice) UniformMatrix4(int32, mgl32.Mat4)              {}
func (d *countingDevice) Clear()                                        {}
func (d *countingDevice) DrawElements(int32)                            {}

func writeAsset(t *testing.T, root, rel, contents string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func writePNG(t *testing.T, root, rel string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func newTestSystems(t *testing.T) (*SystemManager, *countingDevice) {
	t.Helper()
	dir := t.TempDir()
	writeAsset(t, dir, "shaders/basic.vert", "#version 410 core\nvoid main() {}\n")
	writeAsset(t, dir, "shaders/basic.frag", "#version 410 core\nvoid main() {}\n")
	writeAsset(t, dir, "materials/crate.mat.toml", "name = \"crate\"\nshader = \"basic\"\n\n[textures]\nu_diffuse = \"crate.png\"\n")
	writeAsset(t, dir, "models/box.obj", "o box\nusemtl crate\nv 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 1 1\nvt 0 1\nf 1/1 2/2 3/3 4/4\n")
	writePNG(t, dir, "textures/crate.png")

	dev := &countingDevice{}
	sm, err := NewSystemManager(SystemManagerConfig{AssetsDir: dir, Workers: 2, JobQueueSize: 8}, dev)
	require.NoError(t, err)
	require.NoError(t, sm.Initialize(renderer.DeviceConfig{Width: 640, Height: 480}))
	t.Cleanup(func() { _ = sm.Shutdown() })
	return sm, dev
}

func TestSystemManagerInitialize(t *testing.T) {
	sm, dev := newTestSystems(t)
	assert.True(t, dev.initialized)
	assert.Equal(t, float32(640)/480, sm.Renderer.AspectRatio())
}

func TestSystemManagerLoadShader(t *testing.T) {
	sm, _ := newTestSystems(t)

	shader, err := sm.LoadShader("basic")
	require.NoError(t, err)
	got, ok := sm.Graphics.Shader("basic")
	require.True(t, ok)
	assert.Same(t, shader, got)

	_, err = sm.LoadShader("missing")
	assert.Error(t, err)
}

func TestSystemManagerLoadTextureAsync(t *testing.T) {
	sm, _ := newTestSystems(t)

	var loaded *renderer.Texture
	var loadErr error
	done := false
	require.NoError(t, sm.LoadTexture("crate.png", "textures/crate.png", func(tex *renderer.Texture, err error) {
		loaded, loadErr, done = tex, err, true
	}))
	require.Eventually(t, func() bool {
		sm.Update()
		return done
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, loadErr)
	assert.Equal(t, int32(2), loaded.Width())
	got, ok := sm.Graphics.Texture("crate.png")
	require.True(t, ok)
	assert.Same(t, loaded, got)
}

func TestSystemManagerLoadModelWithMaterial(t *testing.T) {
	sm, _ := newTestSystems(t)

	mesh, err := sm.LoadModel("models/box.obj")
	require.NoError(t, err)
	require.Len(t, mesh.SubMeshes(), 1)
	sub := mesh.SubMeshes()[0]
	assert.Equal(t, "box", sub.Name())
	require.NotNil(t, sub.Material())
	assert.Equal(t, "crate", sub.Material().Name)
	assert.Equal(t, "crate.png", sub.Material().Textures["u_diffuse"])

	glMeshes, err := sm.Graphics.UploadMesh(mesh)
	require.NoError(t, err)

	// the material queued its texture, which binds once decoded
	require.Eventually(t, func() bool {
		sm.Update()
		_, ok := glMeshes[0].Texture("u_diffuse")
		return ok
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSystemManagerReloadsChangedShader(t *testing.T) {
	sm, dev := newTestSystems(t)

	_, err := sm.LoadShader("basic")
	require.NoError(t, err)
	before := dev.programs

	sm.Events.Post(core.EventContext{
		Type: core.EVENT_CODE_ASSET_CHANGED,
		Data: &core.AssetEvent{Path: "shaders/basic.frag"},
	})
	sm.Events.Dispatch()
	assert.Equal(t, before+1, dev.programs)

	// unrelated files are ignored
	sm.Events.Post(core.EventContext{
		Type: core.EVENT_CODE_ASSET_CHANGED,
		Data: &core.AssetEvent{Path: "shaders/other.frag"},
	})
	sm.Events.Dispatch()
	assert.Equal(t, before+1, dev.programs)
}

package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/anima-gl/engine/assets/loaders"
	"github.com/spaghettifunk/anima-gl/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func newTestManager(t *testing.T) (*AssetManager, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "shaders", "basic.vert"), "#version 410 core\nvoid main() {}\n")
	writeFile(t, filepath.Join(dir, "shaders", "basic.frag"), "#version 410 core\nout vec4 c;\nvoid main() { c = vec4(1); }\n")
	writeFile(t, filepath.Join(dir, "materials", "crate.mat.toml"), "name = \"crate\"\nshader = \"basic\"\n")
	writeFile(t, filepath.Join(dir, "README"), "not an asset")

	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	t.Cleanup(func() { _ = am.Shutdown() })
	return am, dir
}

func TestDetermineAssetType(t *testing.T) {
	cases := map[string]loaders.ResourceType{
		"a/b/basic.vert":      loaders.ResourceTypeShader,
		"basic.FRAG":          loaders.ResourceTypeShader,
		"wood.png":            loaders.ResourceTypeImage,
		"wood.jpeg":           loaders.ResourceTypeImage,
		"crate.mat.toml":      loaders.ResourceTypeMaterial,
		"anima.toml":          loaders.ResourceTypeNone,
		"models/teapot.obj":   loaders.ResourceTypeModel,
		"models/teapot.fbx":   loaders.ResourceTypeNone,
		"textures/noext":      loaders.ResourceTypeNone,
		"textures/tile.webp":  loaders.ResourceTypeImage,
		"textures/tile.tiff":  loaders.ResourceTypeImage,
		"shaders/common.glsl": loaders.ResourceTypeShader,
	}
	for path, expected := range cases {
		assert.Equal(t, expected, determineAssetType(path), path)
	}
}

func TestAssetManagerIndexesDirectory(t *testing.T) {
	am, _ := newTestManager(t)

	assert.Equal(t, 3, am.Count())
	assert.ElementsMatch(t, []string{"shaders/basic.vert", "shaders/basic.frag"}, am.Assets(loaders.ResourceTypeShader))
	assert.Equal(t, []string{"materials/crate.mat.toml"}, am.Assets(loaders.ResourceTypeMaterial))
}

func TestAssetManagerLoadAsset(t *testing.T) {
	am, _ := newTestManager(t)

	res, err := am.LoadAsset("materials/crate.mat.toml", nil)
	require.NoError(t, err)
	assert.Equal(t, loaders.ResourceTypeMaterial, res.Type)
	cfg, ok := res.Data.(*loaders.MaterialConfig)
	require.True(t, ok)
	assert.Equal(t, "crate", cfg.Name)
	assert.NoError(t, am.UnloadAsset(res))

	_, err = am.LoadAsset("README", nil)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestAssetManagerLoadShaderSources(t *testing.T) {
	am, _ := newTestManager(t)

	vs, fs, err := am.LoadShaderSources("basic")
	require.NoError(t, err)
	assert.Contains(t, vs, "void main() {}")
	assert.Contains(t, fs, "out vec4 c;")

	_, _, err = am.LoadShaderSources("missing")
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestAssetManagerPostsChanges(t *testing.T) {
	am, dir := newTestManager(t)
	events := core.NewEventSystem(0)

	var changed []string
	_, err := events.Register(core.EVENT_CODE_ASSET_CHANGED, func(ctx core.EventContext) bool {
		changed = append(changed, ctx.Data.(*core.AssetEvent).Path)
		return true
	})
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "shaders", "basic.frag"), "#version 410 core\nvoid main() {}\n")

	require.Eventually(t, func() bool {
		am.PollChanges(events)
		events.Dispatch()
		return len(changed) > 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "shaders/basic.frag", changed[0])
}

func TestAssetManagerShutdownTwice(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	assert.NoError(t, am.Shutdown())
	assert.NoError(t, am.Shutdown())
	assert.ErrorIs(t, am.Initialize(t.TempDir()), ErrClosed)
}

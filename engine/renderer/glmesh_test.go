package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gl/engine/math"
	"github.com/spaghettifunk/anima-gl/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleSubMesh() *scene.SubMesh {
	vertices := []math.Vertex3D{
		{Position: mgl32.Vec3{0, 0, 0}},
		{Position: mgl32.Vec3{1, 0, 0}},
		{Position: mgl32.Vec3{0, 1, 0}},
		{Position: mgl32.Vec3{1, 1, 0}},
	}
	return scene.NewSubMesh("quad", vertices, []uint32{0, 1, 2, 2, 1, 3}, nil)
}

func solidImage(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestNewGLMeshNeedsSubMesh(t *testing.T) {
	_, err := NewGLMesh(newRecordingDevice(), nil)
	assert.ErrorIs(t, err, ErrNilSubMesh)
	_, err = NewGLMesh(nil, triangleSubMesh())
	assert.ErrorIs(t, err, ErrNilDevice)
}

func TestGLMeshBufferCountsRoundTrip(t *testing.T) {
	dev := newRecordingDevice()
	sm := triangleSubMesh()
	m, err := NewGLMesh(dev, sm)
	require.NoError(t, err)

	assert.Equal(t, 6, m.IndexCount())
	assert.Equal(t, 6, m.IndexBuffer().Count())
	assert.Equal(t, uint32(4), m.VertexCount())
	assert.Equal(t, 4*math.Vertex3DStride, m.VertexBuffer().Size())
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 3}, dev.bufferUint32s(m.IndexBuffer().Handle()))
	assert.Same(t, sm, m.SubMesh())
}

func TestGLMeshAttributeOrder(t *testing.T) {
	dev := newRecordingDevice()
	_, err := NewGLMesh(dev, triangleSubMesh())
	require.NoError(t, err)

	require.Len(t, dev.attributes, 5)
	offsets := []uint32{0, 12, 24, 32, 44}
	counts := []uint32{3, 3, 2, 3, 3}
	for i, call := range dev.attributes {
		assert.Equal(t, uint32(i), call.location)
		assert.Equal(t, offsets[i], call.attr.Offset)
		assert.Equal(t, counts[i], call.attr.Count)
		assert.Equal(t, uint32(math.Vertex3DStride), call.attr.Stride)
	}
}

func TestGLMeshSkipsMissingAttributes(t *testing.T) {
	dev := newRecordingDevice()
	sm := scene.NewSubMeshFromData("pos-uv", []float32{
		0, 0, 0, 0, 0,
		1, 0, 0, 1, 0,
		0, 1, 0, 0, 1,
	}, 3, []uint32{0, 1, 2}, map[string]scene.VertexAttribute{
		scene.AttributeTexcoord: {Format: scene.FormatFloat32, Count: 2, Stride: 20, Offset: 12},
		scene.AttributePosition: {Format: scene.FormatFloat32, Count: 3, Stride: 20, Offset: 0},
	}, nil)
	_, err := NewGLMesh(dev, sm)
	require.NoError(t, err)

	require.Len(t, dev.attributes, 2)
	assert.Equal(t, uint32(0), dev.attributes[0].location)
	assert.Equal(t, uint32(2), dev.attributes[1].location)
	assert.Equal(t, uint32(12), dev.attributes[1].attr.Offset)
}

func TestGLMeshInvisibleDrawsNothing(t *testing.T) {
	dev := newRecordingDevice()
	sm := triangleSubMesh()
	m, err := NewGLMesh(dev, sm)
	require.NoError(t, err)

	sm.SetVisible(false)
	assert.False(t, m.Draw(newRecordingShader()))
	assert.Empty(t, dev.drawCalls)

	sm.SetVisible(true)
	assert.True(t, m.Draw(newRecordingShader()))
	assert.Equal(t, []int32{6}, dev.drawCalls)
	assert.Equal(t, m.vertexArray.Handle(), dev.drawVAOs[0])
	assert.Equal(t, Handle(0), dev.boundVAO, "vertex array left bound")
}

func TestGLMeshTextureUnitsFollowInsertionOrder(t *testing.T) {
	dev := newRecordingDevice()
	m, err := NewGLMesh(dev, triangleSubMesh())
	require.NoError(t, err)

	diffuse, err := NewTexture(dev, "diffuse", solidImage(color.White))
	require.NoError(t, err)
	specular, err := NewTexture(dev, "specular", solidImage(color.Black))
	require.NoError(t, err)
	normal, err := NewTexture(dev, "normal", solidImage(color.Gray{Y: 128}))
	require.NoError(t, err)

	m.SetTexture("u_specular", specular)
	m.SetTexture("u_diffuse", diffuse)
	m.SetTexture("u_normal", normal)
	// last write wins and keeps the unit
	m.SetTexture("u_specular", diffuse)

	got, ok := m.Texture("u_specular")
	require.True(t, ok)
	assert.Same(t, diffuse, got)
	_, ok = m.Texture("u_height")
	assert.False(t, ok)
	assert.Equal(t, []string{"u_specular", "u_diffuse", "u_normal"}, m.Textures())

	for i := 0; i < 3; i++ {
		shader := newRecordingShader()
		dev.activeUnits = nil
		dev.boundTextures = nil
		require.True(t, m.Draw(shader))
		assert.Equal(t, map[string]int32{"u_specular": 0, "u_diffuse": 1, "u_normal": 2}, shader.ints)
		assert.Equal(t, []uint32{0, 1, 2}, dev.activeUnits)
		assert.Equal(t, []Handle{diffuse.Handle(), diffuse.Handle(), normal.Handle()}, dev.boundTextures)
	}
}

func TestGLMeshDestroyIsIdempotent(t *testing.T) {
	dev := newRecordingDevice()
	m, err := NewGLMesh(dev, triangleSubMesh())
	require.NoError(t, err)
	require.Len(t, dev.buffers, 2)
	require.Len(t, dev.vertexArrays, 1)

	m.Destroy()
	assert.Empty(t, dev.buffers)
	assert.Empty(t, dev.vertexArrays)
	assert.NotPanics(t, m.Destroy)

	assert.False(t, m.Draw(newRecordingShader()))
	assert.Empty(t, dev.drawCalls)
}

func TestGLMeshCleansUpOnFailure(t *testing.T) {
	dev := newRecordingDevice()
	dev.failBuffers = true
	_, err := NewGLMesh(dev, triangleSubMesh())
	require.Error(t, err)
	assert.Empty(t, dev.vertexArrays)
}

func TestGLMeshRejectsSubMeshWithoutIndices(t *testing.T) {
	dev := newRecordingDevice()
	_, err := NewIndexBuffer(dev, nil)
	assert.ErrorIs(t, err, ErrEmptyBuffer)

	unindexed := scene.NewSubMesh("points", []math.Vertex3D{{Position: mgl32.Vec3{0, 0, 0}}}, nil, nil)
	_, err = NewGLMesh(dev, unindexed)
	assert.ErrorIs(t, err, ErrEmptyBuffer)
	assert.Empty(t, dev.buffers)
	assert.Empty(t, dev.vertexArrays)

	gm, err := NewGraphicsManager(dev)
	require.NoError(t, err)
	mesh := scene.NewMesh("points", triangleSubMesh(), unindexed)
	_, err = gm.UploadMesh(mesh)
	assert.ErrorIs(t, err, ErrEmptyBuffer)
	assert.Empty(t, gm.GLMeshes(mesh))
	assert.Empty(t, dev.buffers)
}

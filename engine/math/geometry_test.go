package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad() ([]Vertex3D, []uint32) {
	vertices := []Vertex3D{
		{Position: mgl32.Vec3{0, 0, 0}, Texcoord: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{1, 0, 0}, Texcoord: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{1, 1, 0}, Texcoord: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{0, 1, 0}, Texcoord: mgl32.Vec2{0, 1}},
	}
	return vertices, []uint32{0, 1, 2, 0, 2, 3}
}

func TestGenerateNormalsAndTangents(t *testing.T) {
	vertices, indices := quad()
	GenerateNormals(vertices, indices)
	GenerateTangents(vertices, indices)

	for i, v := range vertices {
		assertVec3Near(t, mgl32.Vec3{0, 0, 1}, v.Normal, "normal %d: %v", i, v.Normal)
		assertVec3Near(t, mgl32.Vec3{1, 0, 0}, v.Tangent, "tangent %d: %v", i, v.Tangent)
		assertVec3Near(t, mgl32.Vec3{0, 1, 0}, v.Bitangent, "bitangent %d: %v", i, v.Bitangent)
	}
}

func TestDeduplicateVertices(t *testing.T) {
	vertices, _ := quad()
	// unindexed triangles share two corners
	flat := []Vertex3D{vertices[0], vertices[1], vertices[2], vertices[0], vertices[2], vertices[3]}
	indices := []uint32{0, 1, 2, 3, 4, 5}

	unique := DeduplicateVertices(flat, indices)
	require.Len(t, unique, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, indices)
}

func TestDeduplicateVerticesLargeGrid(t *testing.T) {
	// 256x256 quads, four corners each, unindexed sharing
	const n = 256
	vertices := make([]Vertex3D, 0, n*n*4)
	indices := make([]uint32, 0, n*n*6)
	corner := func(x, y int) Vertex3D {
		return Vertex3D{Position: mgl32.Vec3{float32(x), float32(y), 0}}
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			base := uint32(len(vertices))
			vertices = append(vertices, corner(x, y), corner(x+1, y), corner(x+1, y+1), corner(x, y+1))
			indices = append(indices, base, base+1, base+2, base, base+2, base+3)
		}
	}

	unique := DeduplicateVertices(vertices, indices)
	require.Len(t, unique, (n+1)*(n+1))
	for _, idx := range indices {
		require.Less(t, int(idx), len(unique))
	}
	// first quad keeps its corners in order
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, indices[:6])
	// second quad reuses the shared edge (1,0)-(1,1)
	assert.Equal(t, corner(1, 0), unique[indices[6]])
	assert.Equal(t, corner(1, 1), unique[indices[11]])
	assert.Equal(t, indices[1], indices[6])
	assert.Equal(t, indices[2], indices[11])
}

func TestDeduplicateVerticesKeepsDistinctValues(t *testing.T) {
	a := Vertex3D{Position: mgl32.Vec3{1, 0, 0}}
	b := Vertex3D{Position: mgl32.Vec3{1 + 1e-6, 0, 0}}
	indices := []uint32{0, 1, 0}
	unique := DeduplicateVertices([]Vertex3D{a, b, a}, indices)
	require.Len(t, unique, 2)
	assert.Equal(t, []uint32{0, 1, 0}, indices)
}

func TestInterleaveLayout(t *testing.T) {
	v := Vertex3D{
		Position:  mgl32.Vec3{1, 2, 3},
		Normal:    mgl32.Vec3{4, 5, 6},
		Texcoord:  mgl32.Vec2{7, 8},
		Tangent:   mgl32.Vec3{9, 10, 11},
		Bitangent: mgl32.Vec3{12, 13, 14},
	}
	out := Interleave([]Vertex3D{v, v})
	require.Len(t, out, 2*Vertex3DComponents)
	for i := 0; i < Vertex3DComponents; i++ {
		assert.Equal(t, float32(i+1), out[i])
		assert.Equal(t, float32(i+1), out[Vertex3DComponents+i])
	}
	assert.Equal(t, 56, Vertex3DStride)
}

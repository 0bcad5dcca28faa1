package assets

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gl/engine/core"
	"github.com/spaghettifunk/anima-gl/engine/math"
	"github.com/spaghettifunk/anima-gl/engine/scene"
)

// quad corners in face space: bottom-left, top-right, top-left, bottom-right
var quadIndices = [6]uint32{0, 1, 2, 0, 3, 1}

type cubeFace struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3 // unit signs, scaled by the half extents
}

var cubeFaces = [6]cubeFace{
	// front
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-1, -1, 1}, {1, 1, 1}, {-1, 1, 1}, {1, -1, 1}}},
	// back
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {-1, -1, -1}}},
	// left
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-1, -1, -1}, {-1, 1, 1}, {-1, 1, -1}, {-1, -1, 1}}},
	// right
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{1, -1, 1}, {1, 1, -1}, {1, 1, 1}, {1, -1, -1}}},
	// bottom
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{1, -1, 1}, {-1, -1, -1}, {1, -1, -1}, {-1, -1, 1}}},
	// top
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-1, 1, 1}, {1, 1, -1}, {-1, 1, -1}, {1, 1, 1}}},
}

func nonZero(value float32, what string) float32 {
	if value == 0 {
		core.LogWarn("%s must be nonzero. Defaulting to one.", what)
		return 1
	}
	return value
}

// GenerateCube builds an axis aligned box centered on the origin with 4
// vertices per face, so every face has its own normals and texture space.
// tileX and tileY repeat the texture across each face.
func GenerateCube(width, height, depth, tileX, tileY float32, name string, material *scene.Material) *scene.SubMesh {
	half := mgl32.Vec3{
		nonZero(width, "Width") * 0.5,
		nonZero(height, "Height") * 0.5,
		nonZero(depth, "Depth") * 0.5,
	}
	tileX = nonZero(tileX, "tileX")
	tileY = nonZero(tileY, "tileY")
	uvs := [4]mgl32.Vec2{{0, 0}, {tileX, tileY}, {0, tileY}, {tileX, 0}}

	vertices := make([]math.Vertex3D, 0, 4*len(cubeFaces))
	indices := make([]uint32, 0, 6*len(cubeFaces))
	for f, face := range cubeFaces {
		for c, corner := range face.corners {
			vertices = append(vertices, math.Vertex3D{
				Position: mgl32.Vec3{corner[0] * half[0], corner[1] * half[1], corner[2] * half[2]},
				Normal:   face.normal,
				Texcoord: uvs[c],
			})
		}
		offset := uint32(f * 4)
		for _, i := range quadIndices {
			indices = append(indices, offset+i)
		}
	}
	math.GenerateTangents(vertices, indices)
	return scene.NewSubMesh(name, vertices, indices, material)
}

// GeneratePlane builds a plane on the XY axes facing +Z, split into
// xSegments by ySegments quads. Corners shared by neighbouring segments are
// merged.
func GeneratePlane(width, height float32, xSegments, ySegments uint32, tileX, tileY float32, name string, material *scene.Material) *scene.SubMesh {
	width = nonZero(width, "Width")
	height = nonZero(height, "Height")
	tileX = nonZero(tileX, "tileX")
	tileY = nonZero(tileY, "tileY")
	if xSegments < 1 {
		core.LogWarn("xSegments must be a positive number. Defaulting to one.")
		xSegments = 1
	}
	if ySegments < 1 {
		core.LogWarn("ySegments must be a positive number. Defaulting to one.")
		ySegments = 1
	}

	segWidth := width / float32(xSegments)
	segHeight := height / float32(ySegments)
	vertices := make([]math.Vertex3D, 0, xSegments*ySegments*4)
	indices := make([]uint32, 0, xSegments*ySegments*6)
	for y := uint32(0); y < ySegments; y++ {
		for x := uint32(0); x < xSegments; x++ {
			minX := float32(x)*segWidth - width*0.5
			minY := float32(y)*segHeight - height*0.5
			maxX := float32(x+1)*segWidth - width*0.5
			maxY := float32(y+1)*segHeight - height*0.5
			minU := float32(x) / float32(xSegments) * tileX
			minV := float32(y) / float32(ySegments) * tileY
			maxU := float32(x+1) / float32(xSegments) * tileX
			maxV := float32(y+1) / float32(ySegments) * tileY

			offset := uint32(len(vertices))
			normal := mgl32.Vec3{0, 0, 1}
			vertices = append(vertices,
				math.Vertex3D{Position: mgl32.Vec3{minX, minY, 0}, Normal: normal, Texcoord: mgl32.Vec2{minU, minV}},
				math.Vertex3D{Position: mgl32.Vec3{maxX, maxY, 0}, Normal: normal, Texcoord: mgl32.Vec2{maxU, maxV}},
				math.Vertex3D{Position: mgl32.Vec3{minX, maxY, 0}, Normal: normal, Texcoord: mgl32.Vec2{minU, maxV}},
				math.Vertex3D{Position: mgl32.Vec3{maxX, minY, 0}, Normal: normal, Texcoord: mgl32.Vec2{maxU, minV}},
			)
			for _, i := range quadIndices {
				indices = append(indices, offset+i)
			}
		}
	}
	math.GenerateTangents(vertices, indices)
	vertices = math.DeduplicateVertices(vertices, indices)
	return scene.NewSubMesh(name, vertices, indices, material)
}

package math

import "github.com/go-gl/mathgl/mgl32"

// Number of float32 components of an interleaved Vertex3D.
const (
	PositionComponents  = 3
	NormalComponents    = 3
	TexcoordComponents  = 2
	TangentComponents   = 3
	BitangentComponents = 3

	Vertex3DComponents = PositionComponents + NormalComponents + TexcoordComponents + TangentComponents + BitangentComponents
	// Vertex3DStride is the size in bytes of an interleaved Vertex3D.
	Vertex3DStride = Vertex3DComponents * 4
)

/**
 * @brief Represents a single vertex in 3D space.
 */
type Vertex3D struct {
	/** @brief The position of the vertex */
	Position mgl32.Vec3
	/** @brief The normal of the vertex. */
	Normal mgl32.Vec3
	/** @brief The texture coordinate of the vertex. */
	Texcoord mgl32.Vec2
	/** @brief The tangent of the vertex. */
	Tangent mgl32.Vec3
	/** @brief The bitangent of the vertex. */
	Bitangent mgl32.Vec3
}

// Interleave flattens vertices into position, normal, texcoord, tangent,
// bitangent order, Vertex3DComponents floats per vertex.
func Interleave(vertices []Vertex3D) []float32 {
	out := make([]float32, 0, len(vertices)*Vertex3DComponents)
	for _, v := range vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
		out = append(out, v.Texcoord[:]...)
		out = append(out, v.Tangent[:]...)
		out = append(out, v.Bitangent[:]...)
	}
	return out
}

// Positions extracts the position of every vertex.
func Positions(vertices []Vertex3D) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(vertices))
	for i, v := range vertices {
		out[i] = v.Position
	}
	return out
}

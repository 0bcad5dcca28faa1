package math

import "github.com/spaghettifunk/anima-gl/engine/core"

// GenerateNormals assigns face normals to every triangle of the indexed list.
func GenerateNormals(vertices []Vertex3D, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)

		normal := edge1.Cross(edge2).Normalize()

		// NOTE: This just generates a face normal. Smoothing out should be done in a separate pass if desired.
		vertices[i0].Normal = normal
		vertices[i1].Normal = normal
		vertices[i2].Normal = normal
	}
}

// GenerateTangents computes per-triangle tangents and bitangents from
// positions and texture coordinates. Triangles with degenerate UVs are skipped.
func GenerateTangents(vertices []Vertex3D, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)

		deltaU1 := vertices[i1].Texcoord.X() - vertices[i0].Texcoord.X()
		deltaV1 := vertices[i1].Texcoord.Y() - vertices[i0].Texcoord.Y()

		deltaU2 := vertices[i2].Texcoord.X() - vertices[i0].Texcoord.X()
		deltaV2 := vertices[i2].Texcoord.Y() - vertices[i0].Texcoord.Y()

		dividend := deltaU1*deltaV2 - deltaU2*deltaV1
		if dividend == 0 {
			continue
		}
		fc := 1.0 / dividend

		tangent := edge1.Mul(deltaV2).Sub(edge2.Mul(deltaV1)).Mul(fc).Normalize()
		bitangent := edge2.Mul(deltaU1).Sub(edge1.Mul(deltaU2)).Mul(fc).Normalize()

		for _, idx := range []uint32{i0, i1, i2} {
			vertices[idx].Tangent = tangent
			vertices[idx].Bitangent = bitangent
		}
	}
}

func Vertex3DEqual(vert0 Vertex3D, vert1 Vertex3D) bool {
	return vert0.Position.ApproxEqualThreshold(vert1.Position, K_FLOAT_EPSILON) &&
		vert0.Normal.ApproxEqualThreshold(vert1.Normal, K_FLOAT_EPSILON) &&
		vert0.Texcoord.ApproxEqualThreshold(vert1.Texcoord, K_FLOAT_EPSILON) &&
		vert0.Tangent.ApproxEqualThreshold(vert1.Tangent, K_FLOAT_EPSILON) &&
		vert0.Bitangent.ApproxEqualThreshold(vert1.Bitangent, K_FLOAT_EPSILON)
}

// DeduplicateVertices merges bit-identical vertices and rewrites indices to
// point at the surviving copies. The indices slice is modified in place.
// Vertices that only differ within K_FLOAT_EPSILON are kept apart; see
// Vertex3DEqual for the tolerant comparison.
func DeduplicateVertices(vertices []Vertex3D, indices []uint32) []Vertex3D {
	unique := make([]Vertex3D, 0, len(vertices))
	remap := make([]uint32, len(vertices))
	seen := make(map[Vertex3D]uint32, len(vertices))

	for v, vert := range vertices {
		if u, ok := seen[vert]; ok {
			remap[v] = u
			continue
		}
		u := uint32(len(unique))
		seen[vert] = u
		remap[v] = u
		unique = append(unique, vert)
	}
	for i, idx := range indices {
		indices[i] = remap[idx]
	}

	core.LogDebug("DeduplicateVertices: removed %d vertices, orig/now %d/%d.", len(vertices)-len(unique), len(vertices), len(unique))
	return unique
}

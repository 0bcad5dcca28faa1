package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

/**
 * @brief Axis-aligned bounding box. Acts as an accumulator: after Reset the
 * box is empty (min = +Inf, max = -Inf) and the first Update establishes a
 * real box.
 */
type AABB struct {
	componentBase
	min mgl32.Vec3
	max mgl32.Vec3
}

func NewAABB(name string) *AABB {
	a := &AABB{componentBase: newComponentBase(name)}
	a.Reset()
	return a
}

func NewAABBFromBounds(name string, min, max mgl32.Vec3) *AABB {
	return &AABB{
		componentBase: newComponentBase(name),
		min:           min,
		max:           max,
	}
}

func (a *AABB) Kind() Kind {
	return KindAABB
}

// Update grows the box to contain point.
func (a *AABB) Update(point mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		a.min[i] = math32.Min(a.min[i], point[i])
		a.max[i] = math32.Max(a.max[i], point[i])
	}
}

// UpdateVertices grows the box over the vertices referenced by indices, or
// over every vertex when indices is empty.
func (a *AABB) UpdateVertices(vertices []mgl32.Vec3, indices []uint32) error {
	if len(indices) == 0 {
		for _, v := range vertices {
			a.Update(v)
		}
		return nil
	}
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			return fmt.Errorf("vertex index %d of %d: %w", idx, len(vertices), ErrIndexOutOfRange)
		}
	}
	for _, idx := range indices {
		a.Update(vertices[idx])
	}
	return nil
}

// Transform replaces the box with the axis-aligned box around its eight
// corners transformed by m. An empty box stays empty.
func (a *AABB) Transform(m mgl32.Mat4) {
	if !a.IsValid() {
		return
	}
	lo, hi := a.min, a.max
	a.Reset()
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{lo.X(), lo.Y(), lo.Z()}
		if i&1 != 0 {
			corner[0] = hi.X()
		}
		if i&2 != 0 {
			corner[1] = hi.Y()
		}
		if i&4 != 0 {
			corner[2] = hi.Z()
		}
		a.Update(mgl32.TransformCoordinate(corner, m))
	}
}

func (a *AABB) Reset() {
	inf := math32.Inf(1)
	a.min = mgl32.Vec3{inf, inf, inf}
	a.max = mgl32.Vec3{-inf, -inf, -inf}
}

// IsValid reports whether at least one point has been accumulated.
func (a *AABB) IsValid() bool {
	return a.min.X() <= a.max.X() && a.min.Y() <= a.max.Y() && a.min.Z() <= a.max.Z()
}

// Scale is max - min. Meaningless for an empty box.
func (a *AABB) Scale() mgl32.Vec3 {
	return a.max.Sub(a.min)
}

func (a *AABB) Center() mgl32.Vec3 {
	return a.min.Add(a.max).Mul(0.5)
}

func (a *AABB) Min() mgl32.Vec3 {
	return a.min
}

func (a *AABB) Max() mgl32.Vec3 {
	return a.max
}

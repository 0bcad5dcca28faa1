package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gl/engine/math"
)

// Transform is the local translation, rotation and scale of a node. Every
// node owns exactly one; it is never stored in the scene buckets.
type Transform struct {
	componentBase
	math.Transform
}

func newTransform(name string) *Transform {
	return &Transform{
		componentBase: newComponentBase(name),
		Transform:     math.TransformCreate(),
	}
}

func (t *Transform) Kind() Kind {
	return KindTransform
}

// WorldMatrix resolves the world transform through the owning node. A
// detached transform has world == local.
func (t *Transform) WorldMatrix() mgl32.Mat4 {
	if n := t.Node(); n != nil {
		return n.WorldMatrix()
	}
	return t.LocalMatrix()
}

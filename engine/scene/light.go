package scene

import "github.com/go-gl/mathgl/mgl32"

// Light is a point light. Its position is the translation of the node it is
// attached to.
type Light struct {
	componentBase
	Color     mgl32.Vec3
	Intensity float32
}

func NewLight(name string, color mgl32.Vec3, intensity float32) *Light {
	return &Light{
		componentBase: newComponentBase(name),
		Color:         color,
		Intensity:     intensity,
	}
}

func (l *Light) Kind() Kind {
	return KindLight
}

// Position is the world position of the owning node, the origin when
// detached.
func (l *Light) Position() mgl32.Vec3 {
	n := l.Node()
	if n == nil {
		return mgl32.Vec3{}
	}
	return n.WorldMatrix().Col(3).Vec3()
}

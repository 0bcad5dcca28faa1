package scene

import (
	"fmt"

	"github.com/spaghettifunk/anima-gl/engine/core"
)

// Kind is the runtime type tag of a component. Scene storage is keyed by it.
type Kind uint8

const (
	KindTransform Kind = iota
	KindPerspectiveCamera
	KindOrthographicCamera
	KindAABB
	KindMesh
	KindLight

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindTransform:
		return "Transform"
	case KindPerspectiveCamera:
		return "PerspectiveCamera"
	case KindOrthographicCamera:
		return "OrthographicCamera"
	case KindAABB:
		return "AABB"
	case KindMesh:
		return "Mesh"
	case KindLight:
		return "Light"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) valid() bool {
	return k < kindCount
}

// Component is a typed unit of data attached to a Node. The set of
// implementations is closed to this package.
type Component interface {
	ID() core.ID
	Name() string
	SetName(name string)
	Kind() Kind
	// Node returns the node the component is attached to, or nil.
	Node() *Node

	base() *componentBase
}

// componentBase carries what every component shares: identity, name and the
// owning scene plus a validated handle to the node it is attached to.
type componentBase struct {
	id    core.ID
	name  string
	scene *Scene
	node  NodeHandle
}

func newComponentBase(name string) componentBase {
	return componentBase{id: core.NewID(), name: name}
}

func (c *componentBase) ID() core.ID {
	return c.id
}

func (c *componentBase) Name() string {
	return c.name
}

func (c *componentBase) SetName(name string) {
	c.name = name
}

func (c *componentBase) Node() *Node {
	if c.scene == nil {
		return nil
	}
	n, ok := c.scene.Node(c.node)
	if !ok {
		return nil
	}
	return n
}

func (c *componentBase) base() *componentBase {
	return c
}

// kindOf maps a concrete component type to its kind. Interface types have no
// kind.
func kindOf[T Component]() (Kind, bool) {
	var zero T
	switch any(zero).(type) {
	case *Transform:
		return KindTransform, true
	case *PerspectiveCamera:
		return KindPerspectiveCamera, true
	case *OrthographicCamera:
		return KindOrthographicCamera, true
	case *AABB:
		return KindAABB, true
	case *Mesh:
		return KindMesh, true
	case *Light:
		return KindLight, true
	}
	return 0, false
}

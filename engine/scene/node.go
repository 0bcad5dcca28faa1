package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gl/engine/core"
)

// NodeHandle refers to a node inside a scene. A handle stays valid until the
// node is removed or the scene node set is replaced.
type NodeHandle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether the handle was never assigned.
func (h NodeHandle) IsZero() bool {
	return h.generation == 0
}

/**
 * @brief A position in the scene hierarchy. A node owns its transform and
 * its children; components are owned by the scene and only referenced here.
 */
type Node struct {
	id   core.ID
	name string

	scene    *Scene
	handle   NodeHandle
	parent   NodeHandle
	children []NodeHandle

	transform  *Transform
	components []Component
}

func NewNode(name string) *Node {
	n := &Node{
		id:   core.NewID(),
		name: name,
	}
	n.transform = newTransform(name)
	return n
}

func (n *Node) ID() core.ID {
	return n.id
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) SetName(name string) {
	n.name = name
}

// Handle is the zero handle until the node is added to a scene.
func (n *Node) Handle() NodeHandle {
	return n.handle
}

func (n *Node) Scene() *Scene {
	return n.scene
}

func (n *Node) Transform() *Transform {
	return n.transform
}

func (n *Node) Parent() *Node {
	if n.scene == nil {
		return nil
	}
	p, ok := n.scene.Node(n.parent)
	if !ok {
		return nil
	}
	return p
}

func (n *Node) Children() []*Node {
	if n.scene == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.children))
	for _, h := range n.children {
		if c, ok := n.scene.Node(h); ok {
			out = append(out, c)
		}
	}
	return out
}

// Components returns the scene components attached to the node, in
// attachment order. The transform is not part of the list.
func (n *Node) Components() []Component {
	out := make([]Component, len(n.components))
	copy(out, n.components)
	return out
}

// AddChild makes child a child of n, detaching it from its previous parent.
// n must already belong to a scene; a child that belongs to no scene is added
// to it. The scene root can never be a child.
func (n *Node) AddChild(child *Node) error {
	if n.scene == nil {
		return ErrNodeDetached
	}
	if child.scene != nil && child.scene != n.scene {
		return ErrForeignNode
	}
	for p := n; p != nil; p = p.Parent() {
		if p == child {
			return ErrCycle
		}
	}
	if child.scene == n.scene && child.handle == n.scene.root {
		return ErrRootChild
	}
	if child.scene == nil {
		if _, err := n.scene.AddNode(child); err != nil {
			return err
		}
	}
	if old := child.Parent(); old != nil {
		old.dropChild(child.handle)
	}
	child.parent = n.handle
	n.children = append(n.children, child.handle)
	return nil
}

// WorldMatrix is the composition of the local transforms from the root down
// to this node: parent world * local.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	local := n.transform.LocalMatrix()
	if p := n.Parent(); p != nil {
		return p.WorldMatrix().Mul4(local)
	}
	return local
}

// GetComponent returns the first component of type T attached to n.
func GetComponent[T Component](n *Node) (T, bool) {
	if t, ok := any(n.transform).(T); ok {
		return t, true
	}
	for _, c := range n.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func (n *Node) attach(c Component) {
	for _, existing := range n.components {
		if existing == c {
			return
		}
	}
	n.components = append(n.components, c)
}

func (n *Node) detach(c Component) {
	for i, existing := range n.components {
		if existing == c {
			n.components = append(n.components[:i], n.components[i+1:]...)
			return
		}
	}
}

func (n *Node) dropChild(h NodeHandle) {
	for i, c := range n.children {
		if c == h {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

package scene

import (
	"fmt"

	"github.com/spaghettifunk/anima-gl/engine/core"
)

type nodeSlot struct {
	node       *Node
	generation uint32
}

/**
 * @brief The owning container for every node and component of a renderable
 * world. Nodes live in a flat arena addressed by handles; components are
 * partitioned by kind into homogeneous buckets.
 */
type Scene struct {
	id   core.ID
	name string

	root    NodeHandle
	nodes   []nodeSlot
	nextGen uint32

	buckets [kindCount]bucket

	onRemoved []func(Component)
}

func NewScene(name string) *Scene {
	s := &Scene{
		id:   core.NewID(),
		name: name,
	}
	for k := Kind(0); k < kindCount; k++ {
		s.buckets[k] = newBucket(k)
	}
	return s
}

func (s *Scene) ID() core.ID {
	return s.id
}

func (s *Scene) Name() string {
	return s.name
}

func (s *Scene) SetName(name string) {
	s.name = name
}

// OnComponentRemoved registers fn to run whenever a component leaves the
// scene through RemoveComponent, TakeModel or SetComponentsOf. fn sees the
// component already detached.
func (s *Scene) OnComponentRemoved(fn func(Component)) {
	s.onRemoved = append(s.onRemoved, fn)
}

// AddNode takes ownership of node. The hierarchy is not touched: the node is
// neither the root nor anyone's child until wired explicitly.
func (s *Scene) AddNode(node *Node) (NodeHandle, error) {
	if node.scene == s {
		return node.handle, nil
	}
	if node.scene != nil {
		return NodeHandle{}, ErrForeignNode
	}
	s.nextGen++
	h := NodeHandle{index: uint32(len(s.nodes)), generation: s.nextGen}
	s.nodes = append(s.nodes, nodeSlot{node: node, generation: h.generation})

	node.scene = s
	node.handle = h
	node.parent = NodeHandle{}
	node.children = nil
	node.transform.scene = s
	node.transform.node = h
	return h, nil
}

// SetNodes replaces every node of the scene. Previous nodes are released,
// their handles become invalid and the root is cleared. Hierarchy links of
// the new nodes are reset.
func (s *Scene) SetNodes(nodes []*Node) error {
	for _, n := range nodes {
		if n.scene != nil && n.scene != s {
			return ErrForeignNode
		}
	}
	for _, slot := range s.nodes {
		if slot.node != nil {
			s.release(slot.node)
		}
	}
	s.nodes = nil
	s.root = NodeHandle{}
	for _, n := range nodes {
		if _, err := s.AddNode(n); err != nil {
			return err
		}
	}
	return nil
}

// Node resolves a handle. It fails for handles of removed nodes.
func (s *Scene) Node(h NodeHandle) (*Node, bool) {
	if h.IsZero() || int(h.index) >= len(s.nodes) {
		return nil, false
	}
	slot := s.nodes[h.index]
	if slot.node == nil || slot.generation != h.generation {
		return nil, false
	}
	return slot.node, true
}

// Nodes returns the live nodes in insertion order.
func (s *Scene) Nodes() []*Node {
	out := make([]*Node, 0, len(s.nodes))
	for _, slot := range s.nodes {
		if slot.node != nil {
			out = append(out, slot.node)
		}
	}
	return out
}

// SetRoot designates node as the single root, adding it to the scene if
// needed and detaching it from any parent.
func (s *Scene) SetRoot(node *Node) error {
	if _, err := s.AddNode(node); err != nil {
		return err
	}
	if p := node.Parent(); p != nil {
		p.dropChild(node.handle)
		node.parent = NodeHandle{}
	}
	s.root = node.handle
	return nil
}

func (s *Scene) Root() (*Node, error) {
	n, ok := s.Node(s.root)
	if !ok {
		return nil, ErrNoRoot
	}
	return n, nil
}

// AddChild attaches node under the current root.
func (s *Scene) AddChild(node *Node) error {
	root, err := s.Root()
	if err != nil {
		return err
	}
	if node.scene != nil && node.scene != s {
		return ErrForeignNode
	}
	return root.AddChild(node)
}

// FindNode returns the first node with the given name, nil when missing.
func (s *Scene) FindNode(name string) *Node {
	for _, slot := range s.nodes {
		if slot.node != nil && slot.node.name == name {
			return slot.node
		}
	}
	return nil
}

// RemoveNode removes node and its whole subtree. Components stay owned by
// the scene but are detached.
func (s *Scene) RemoveNode(node *Node) error {
	if node.scene != s {
		return ErrForeignNode
	}
	if p := node.Parent(); p != nil {
		p.dropChild(node.handle)
	}
	if node.handle == s.root {
		s.root = NodeHandle{}
	}
	s.removeSubtree(node)
	return nil
}

func (s *Scene) removeSubtree(node *Node) {
	for _, child := range node.Children() {
		s.removeSubtree(child)
	}
	s.nodes[node.handle.index].node = nil
	s.release(node)
}

// release detaches everything a node references and forgets the scene.
func (s *Scene) release(node *Node) {
	for _, c := range node.components {
		b := c.base()
		b.node = NodeHandle{}
	}
	node.components = nil
	node.children = nil
	node.parent = NodeHandle{}
	node.scene = nil
	node.handle = NodeHandle{}
	node.transform.scene = nil
	node.transform.node = NodeHandle{}
}

// AddComponent stores c in the bucket of its kind.
func (s *Scene) AddComponent(c Component) error {
	if c.Kind() == KindTransform {
		return ErrNodeOwnedKind
	}
	if !c.Kind().valid() {
		return fmt.Errorf("unknown component kind %s: %w", c.Kind(), ErrKindMismatch)
	}
	b := c.base()
	if b.scene != nil {
		return ErrComponentOwned
	}
	if !s.buckets[c.Kind()].add(c) {
		return ErrKindMismatch
	}
	b.scene = s
	return nil
}

// AddComponentTo stores c and attaches it to node. A component already owned
// by this scene is moved from its previous node.
func (s *Scene) AddComponentTo(c Component, node *Node) error {
	if node.scene != s {
		return ErrForeignNode
	}
	b := c.base()
	if b.scene != s {
		if err := s.AddComponent(c); err != nil {
			return err
		}
	} else if prev := c.Node(); prev != nil {
		prev.detach(c)
	}
	b.node = node.handle
	node.attach(c)
	return nil
}

// ComponentsOf returns a copy of the bucket for kind, empty when none.
func (s *Scene) ComponentsOf(kind Kind) []Component {
	if !kind.valid() || s.buckets[kind] == nil {
		return nil
	}
	return s.buckets[kind].components()
}

// SetComponentsOf replaces the whole bucket for kind. Components dropped from
// the bucket are detached from their nodes and released.
func (s *Scene) SetComponentsOf(kind Kind, components []Component) error {
	if kind == KindTransform {
		return ErrNodeOwnedKind
	}
	if !kind.valid() {
		return ErrKindMismatch
	}
	seen := make(map[Component]struct{}, len(components))
	for _, c := range components {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%s %q: %w", kind, c.Name(), ErrDuplicateComponent)
		}
		seen[c] = struct{}{}
		if c.Kind() != kind {
			return fmt.Errorf("%s in %s bucket: %w", c.Kind(), kind, ErrKindMismatch)
		}
		if owner := c.base().scene; owner != nil && owner != s {
			return ErrComponentOwned
		}
	}

	b := s.buckets[kind]
	for _, old := range b.components() {
		if _, ok := seen[old]; !ok {
			s.evict(old)
		}
	}
	b.reset()
	for _, c := range components {
		b.add(c)
		c.base().scene = s
	}
	return nil
}

// RemoveComponent removes c from its bucket by identity and detaches it.
func (s *Scene) RemoveComponent(c Component) error {
	if c.base().scene != s || !c.Kind().valid() || s.buckets[c.Kind()] == nil {
		return ErrComponentNotFound
	}
	if !s.buckets[c.Kind()].remove(c) {
		return ErrComponentNotFound
	}
	s.evict(c)
	return nil
}

func (s *Scene) HasComponentOf(kind Kind) bool {
	if !kind.valid() || s.buckets[kind] == nil {
		return false
	}
	return s.buckets[kind].len() > 0
}

// TakeModel removes the mesh at index from the scene and hands it to the
// caller. The mesh is detached from its node and no longer owned by the
// scene.
func (s *Scene) TakeModel(index int) (*Mesh, error) {
	b := s.buckets[KindMesh]
	if index < 0 || index >= b.len() {
		return nil, fmt.Errorf("take model %d of %d: %w", index, b.len(), ErrIndexOutOfRange)
	}
	m := b.removeAt(index).(*Mesh)
	s.evict(m)
	return m, nil
}

// Cameras returns every camera regardless of projection, perspective first.
func (s *Scene) Cameras() []Camera {
	var out []Camera
	for _, c := range Components[*PerspectiveCamera](s) {
		out = append(out, c)
	}
	for _, c := range Components[*OrthographicCamera](s) {
		out = append(out, c)
	}
	return out
}

func (s *Scene) evict(c Component) {
	b := c.base()
	if n := c.Node(); n != nil {
		n.detach(c)
	}
	b.node = NodeHandle{}
	b.scene = nil
	for _, fn := range s.onRemoved {
		fn(c)
	}
}

func typedBucketFor[T Component](s *Scene) *typedBucket[T] {
	k, ok := kindOf[T]()
	if !ok || s.buckets[k] == nil {
		return nil
	}
	tb, _ := s.buckets[k].(*typedBucket[T])
	return tb
}

// Components returns every component of exactly type T in insertion order.
func Components[T Component](s *Scene) []T {
	tb := typedBucketFor[T](s)
	if tb == nil {
		return nil
	}
	return tb.typed()
}

// SetComponents replaces the bucket of T with components.
func SetComponents[T Component](s *Scene, components []T) error {
	k, ok := kindOf[T]()
	if !ok {
		return ErrKindMismatch
	}
	generic := make([]Component, len(components))
	for i, c := range components {
		generic[i] = c
	}
	return s.SetComponentsOf(k, generic)
}

// ClearComponents empties the bucket of T.
func ClearComponents[T Component](s *Scene) error {
	return SetComponents[T](s, nil)
}

func HasComponent[T Component](s *Scene) bool {
	k, ok := kindOf[T]()
	if !ok {
		return false
	}
	return s.HasComponentOf(k)
}

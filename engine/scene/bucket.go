package scene

// bucket is the homogeneous storage for one component kind. Each bucket holds
// concretely typed values so reads never need a downcast.
type bucket interface {
	kind() Kind
	len() int
	at(i int) Component
	add(c Component) bool
	remove(c Component) bool
	removeAt(i int) Component
	components() []Component
	reset()
}

type typedBucket[T Component] struct {
	k     Kind
	items []T
}

func newBucket(k Kind) bucket {
	switch k {
	case KindPerspectiveCamera:
		return &typedBucket[*PerspectiveCamera]{k: k}
	case KindOrthographicCamera:
		return &typedBucket[*OrthographicCamera]{k: k}
	case KindAABB:
		return &typedBucket[*AABB]{k: k}
	case KindMesh:
		return &typedBucket[*Mesh]{k: k}
	case KindLight:
		return &typedBucket[*Light]{k: k}
	}
	return nil
}

func (b *typedBucket[T]) kind() Kind {
	return b.k
}

func (b *typedBucket[T]) len() int {
	return len(b.items)
}

func (b *typedBucket[T]) at(i int) Component {
	return b.items[i]
}

func (b *typedBucket[T]) add(c Component) bool {
	t, ok := c.(T)
	if !ok {
		return false
	}
	b.items = append(b.items, t)
	return true
}

func (b *typedBucket[T]) remove(c Component) bool {
	for i, item := range b.items {
		if Component(item) == c {
			b.removeAt(i)
			return true
		}
	}
	return false
}

func (b *typedBucket[T]) removeAt(i int) Component {
	item := b.items[i]
	b.items = append(b.items[:i], b.items[i+1:]...)
	return item
}

func (b *typedBucket[T]) components() []Component {
	out := make([]Component, len(b.items))
	for i, item := range b.items {
		out[i] = item
	}
	return out
}

func (b *typedBucket[T]) reset() {
	b.items = nil
}

func (b *typedBucket[T]) typed() []T {
	out := make([]T, len(b.items))
	copy(out, b.items)
	return out
}

package cache

// Nop never stores anything.
type Nop[V any] struct{}

func (Nop[V]) Insert(string, V) bool { return false }

func (Nop[V]) Find(string) (v V, ok bool) { return v, false }

func (Nop[V]) Remove(string) (v V, ok bool) { return v, false }

func (Nop[V]) Len() int { return 0 }

func NewNop[V any]() Nop[V] { return Nop[V]{} }

var _ Cache[any] = Nop[any]{}

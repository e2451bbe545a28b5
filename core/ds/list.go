// Package ds provides the small generic data structures the hash index is built from.
package ds

// List is a singly linked association list with unique string keys.
// New entries are prepended. The zero value is an empty list.
//
// All methods are safe to call on a nil *List: reads report not-found and
// mutations report failure.
type List[V any] struct {
	head *listNode[V]
	n    int
}

type listNode[V any] struct {
	key  string
	val  V
	next *listNode[V]
}

func NewList[V any]() *List[V] { return &List[V]{} }

// Len returns the number of entries.
func (l *List[V]) Len() int {
	if l == nil {
		return 0
	}
	return l.n
}

// Insert adds key with val. It returns false if key is already present. (mutates)
func (l *List[V]) Insert(key string, val V) bool {
	if l == nil || l.find(key) != nil {
		return false
	}
	l.head = &listNode[V]{key: key, val: val, next: l.head}
	l.n++
	return true
}

// Find returns the value stored under key.
func (l *List[V]) Find(key string) (val V, ok bool) {
	if l == nil {
		return val, false
	}
	if node := l.find(key); node != nil {
		return node.val, true
	}
	return val, false
}

// Remove unlinks key and hands its value back. (mutates)
func (l *List[V]) Remove(key string) (val V, ok bool) {
	if l == nil {
		return val, false
	}
	for p := &l.head; *p != nil; p = &(*p).next {
		if (*p).key == key {
			node := *p
			*p = node.next
			l.n--
			return node.val, true
		}
	}
	return val, false
}

// RemoveLast unlinks the entry at the end of the chain, i.e. the oldest one,
// and applies destroy to its value if destroy is non-nil. (mutates)
func (l *List[V]) RemoveLast(destroy func(V)) (key string, val V, ok bool) {
	if l == nil || l.head == nil {
		return key, val, false
	}
	p := &l.head
	for (*p).next != nil {
		p = &(*p).next
	}
	node := *p
	*p = nil
	l.n--
	if destroy != nil {
		destroy(node.val)
	}
	return node.key, node.val, true
}

// Clear removes all entries, applying destroy to each value once. (mutates)
func (l *List[V]) Clear(destroy func(V)) {
	if l == nil {
		return
	}
	node := l.head
	l.head, l.n = nil, 0
	for node != nil {
		next := node.next
		if destroy != nil {
			destroy(node.val)
		}
		node.next = nil
		node = next
	}
}

// Each calls fn for every entry in chain order (newest first).
func (l *List[V]) Each(fn func(key string, val V)) {
	if l == nil || fn == nil {
		return
	}
	for node := l.head; node != nil; node = node.next {
		fn(node.key, node.val)
	}
}

func (l *List[V]) find(key string) *listNode[V] {
	for node := l.head; node != nil; node = node.next {
		if node.key == key {
			return node
		}
	}
	return nil
}

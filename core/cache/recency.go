package cache

const noSlot int32 = -1

// slot is one arena node of the recency list.
type slot[V any] struct {
	key        string
	val        V
	prev, next int32
}

// recency is a doubly linked list whose nodes live in a slice and link to each
// other by index. Released slots go to a free list and are reused, so no node
// is ever referenced after it is gone.
//
// head is the most recently inserted (or promoted) node, tail the next one to
// evict.
type recency[V any] struct {
	nodes      []slot[V]
	free       []int32
	head, tail int32
	n          int
}

func newRecency[V any](capacity int) recency[V] {
	return recency[V]{
		nodes: make([]slot[V], 0, capacity),
		head:  noSlot,
		tail:  noSlot,
	}
}

func (r *recency[V]) len() int { return r.n }

// pushFront stores key/val in a free slot and links it at the head.
func (r *recency[V]) pushFront(key string, val V) int32 {
	var i int32
	if n := len(r.free); n > 0 {
		i = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.nodes = append(r.nodes, slot[V]{})
		i = int32(len(r.nodes) - 1)
	}
	r.nodes[i] = slot[V]{key: key, val: val, prev: noSlot, next: noSlot}
	r.linkFront(i)
	r.n++
	return i
}

// remove unlinks slot i and returns it to the free list.
func (r *recency[V]) remove(i int32) {
	r.unlink(i)
	r.nodes[i] = slot[V]{prev: noSlot, next: noSlot}
	r.free = append(r.free, i)
	r.n--
}

func (r *recency[V]) moveToFront(i int32) {
	if r.head == i {
		return
	}
	r.unlink(i)
	r.linkFront(i)
}

func (r *recency[V]) at(i int32) *slot[V] { return &r.nodes[i] }

// each walks head to tail until fn returns false.
func (r *recency[V]) each(fn func(key string, val V) bool) {
	for i := r.head; i != noSlot; {
		s := &r.nodes[i]
		next := s.next
		if !fn(s.key, s.val) {
			return
		}
		i = next
	}
}

// reset drops every node but keeps the allocated arena.
func (r *recency[V]) reset() {
	clear(r.nodes)
	r.nodes = r.nodes[:0]
	r.free = r.free[:0]
	r.head, r.tail = noSlot, noSlot
	r.n = 0
}

func (r *recency[V]) linkFront(i int32) {
	s := &r.nodes[i]
	s.prev = noSlot
	s.next = r.head
	if r.head != noSlot {
		r.nodes[r.head].prev = i
	}
	r.head = i
	if r.tail == noSlot {
		r.tail = i
	}
}

func (r *recency[V]) unlink(i int32) {
	s := &r.nodes[i]
	if s.prev != noSlot {
		r.nodes[s.prev].next = s.next
	} else {
		r.head = s.next
	}
	if s.next != noSlot {
		r.nodes[s.next].prev = s.prev
	} else {
		r.tail = s.prev
	}
	s.prev, s.next = noSlot, noSlot
}

/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package recency

const nilIndex = -1

// Handle is a stable reference to a node of the List.
// The zero Handle is never live.
type Handle struct {
	idx int32
	gen uint32
}

type node[K any] struct {
	key  K
	prev int32
	next int32
	gen  uint32 // odd while the node is in the list, even while the slot is free
}

// List is an ordered sequence of keys. Front is the most recently touched key, back is the least recently touched one.
type List[K any] struct {
	nodes []node[K]
	free  []int32
	head  int32
	tail  int32
	size  int
}

// New creates an empty List.
func New[K any]() *List[K] {
	return &List[K]{head: nilIndex, tail: nilIndex}
}

// Len returns the number of keys in the list.
func (l *List[K]) Len() int {
	return l.size
}

// Contains reports whether the handle refers to a node that is still in the list.
func (l *List[K]) Contains(h Handle) bool {
	if h.idx < 0 || int(h.idx) >= len(l.nodes) {
		return false
	}
	n := &l.nodes[h.idx]
	return n.gen == h.gen && n.gen%2 == 1
}

// Key returns the key stored under the handle.
func (l *List[K]) Key(h Handle) (key K, ok bool) {
	if !l.Contains(h) {
		return key, false
	}
	return l.nodes[h.idx].key, true
}

// PushFront inserts the key at the front of the list and returns its handle.
func (l *List[K]) PushFront(key K) Handle {
	var idx int32
	if n := len(l.free); n > 0 {
		idx = l.free[n-1]
		l.free = l.free[:n-1]
	} else {
		l.nodes = append(l.nodes, node[K]{})
		idx = int32(len(l.nodes) - 1)
	}

	n := &l.nodes[idx]
	n.key = key
	n.gen++
	l.linkFront(idx)
	l.size++
	return Handle{idx: idx, gen: n.gen}
}

// MoveToFront moves the node to the front of the list. Stale handles are ignored.
func (l *List[K]) MoveToFront(h Handle) {
	if !l.Contains(h) || l.head == h.idx {
		return
	}
	l.unlink(h.idx)
	l.linkFront(h.idx)
}

// Touch moves the node referenced by h to the front if it is still live,
// otherwise it inserts the key at the front. It returns the resulting handle.
func (l *List[K]) Touch(h Handle, key K) Handle {
	if l.Contains(h) {
		l.MoveToFront(h)
		return h
	}
	return l.PushFront(key)
}

// Remove removes the node from the list and returns its key.
func (l *List[K]) Remove(h Handle) (key K, ok bool) {
	if !l.Contains(h) {
		return key, false
	}
	return l.release(h.idx), true
}

// Back returns the handle of the least recently touched node.
func (l *List[K]) Back() (Handle, bool) {
	if l.tail == nilIndex {
		return Handle{}, false
	}
	return Handle{idx: l.tail, gen: l.nodes[l.tail].gen}, true
}

// LeastRecent returns the key at the back of the list without removing it.
func (l *List[K]) LeastRecent() (key K, ok bool) {
	if l.tail == nilIndex {
		return key, false
	}
	return l.nodes[l.tail].key, true
}

// PopLeastRecent removes the key at the back of the list and returns it.
func (l *List[K]) PopLeastRecent() (key K, ok bool) {
	if l.tail == nilIndex {
		return key, false
	}
	return l.release(l.tail), true
}

// Reset empties the list. All previously returned handles stop being live.
func (l *List[K]) Reset() {
	// Keep generations so that old handles cannot match reused slots.
	l.free = l.free[:0]
	for i := range l.nodes {
		n := &l.nodes[i]
		if n.gen%2 == 1 {
			n.gen++
		}
		var zero K
		n.key = zero
		n.prev, n.next = nilIndex, nilIndex
		l.free = append(l.free, int32(i))
	}
	l.head, l.tail = nilIndex, nilIndex
	l.size = 0
}

func (l *List[K]) release(idx int32) K {
	l.unlink(idx)
	n := &l.nodes[idx]
	key := n.key
	var zero K
	n.key = zero
	n.gen++
	l.free = append(l.free, idx)
	l.size--
	return key
}

func (l *List[K]) linkFront(idx int32) {
	n := &l.nodes[idx]
	n.prev = nilIndex
	n.next = l.head
	if l.head != nilIndex {
		l.nodes[l.head].prev = idx
	}
	l.head = idx
	if l.tail == nilIndex {
		l.tail = idx
	}
}

func (l *List[K]) unlink(idx int32) {
	n := &l.nodes[idx]
	if n.prev != nilIndex {
		l.nodes[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nilIndex {
		l.nodes[n.next].prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nilIndex, nilIndex
}

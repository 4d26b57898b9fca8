// Package list provides the primitives of an intrusive, circular, doubly linked list.
//
// A Head is embedded in the struct that wants to be linked. A standalone Head acts as the
// sentinel of a list: its next node is the first entry and its prev node is the last one.
// An empty list is a sentinel that points to itself in both directions.
//
// The package performs no allocation and no bookkeeping; all operations are O(1) except
// iteration.
package list

import "unsafe"

// Head is a link node. The zero value is not linked; call Init before using it as a sentinel.
type Head struct {
	next *Head
	prev *Head
}

// Init self-links h, turning it into an empty list.
func (h *Head) Init() {
	h.next = h
	h.prev = h
}

// Next returns the node that follows h.
func (h *Head) Next() *Head { return h.next }

// Prev returns the node that precedes h.
func (h *Head) Prev() *Head { return h.prev }

// SetNext sets the forward reference of h.
func (h *Head) SetNext(n *Head) { h.next = n }

// SetPrev sets the backward reference of h.
func (h *Head) SetPrev(p *Head) { h.prev = p }

// Empty reports whether the list anchored at sentinel h has no entries.
func (h *Head) Empty() bool {
	return h.next == h
}

// AddHead links n right after the sentinel h.
func (h *Head) AddHead(n *Head) {
	insert(n, h, h.next)
}

// AddTail links n right before the sentinel h.
func (h *Head) AddTail(n *Head) {
	insert(n, h.prev, h)
}

// InsertAfter links n right after pos, which may be a sentinel or an entry.
func InsertAfter(pos, n *Head) {
	insert(n, pos, pos.next)
}

// Unlink redirects the neighbors of n around it. The references held by n itself
// are cleared, so an unlinked node can be told apart from a linked one.
func Unlink(n *Head) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next = nil
	n.prev = nil
}

// Linked reports whether n currently sits in a chain.
func Linked(n *Head) bool {
	return n.next != nil
}

// ForEach calls fn for every node of the list anchored at sentinel h, head to tail.
// Iteration stops early when fn returns false. fn must not unlink the node it is given.
func (h *Head) ForEach(fn func(n *Head) bool) {
	for n := h.next; n != h; n = n.next {
		if !fn(n) {
			return
		}
	}
}

// Entry recovers the container of n, where offset is the offset of the embedded Head
// field inside T, as reported by unsafe.Offsetof.
func Entry[T any](n *Head, offset uintptr) *T {
	return (*T)(unsafe.Add(unsafe.Pointer(n), -int(offset)))
}

func insert(n, prev, next *Head) {
	next.prev = n
	n.next = next
	n.prev = prev
	prev.next = n
}

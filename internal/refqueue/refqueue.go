// Package refqueue provides a slice-backed model of the string queue.
//
// It carries the same semantics as the linked queue in a form that is simple enough to be
// obviously right, and serves as an oracle for tests and for the interpreter's verify mode.
package refqueue

import (
	"slices"
	"strings"
)

// Queue is a slice-backed string queue.
type Queue struct {
	items []string
}

// New creates a Queue with room for prealloc items.
func New(prealloc int) *Queue {
	return &Queue{items: make([]string, 0, prealloc)}
}

// InsertHead adds s at the head of the queue.
func (q *Queue) InsertHead(s string) {
	q.items = slices.Insert(q.items, 0, s)
}

// InsertTail adds s at the tail of the queue.
func (q *Queue) InsertTail(s string) {
	q.items = append(q.items, s)
}

// RemoveHead removes and returns the head value.
func (q *Queue) RemoveHead() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	s := q.items[0]
	q.items = q.items[1:]
	return s, true
}

// RemoveTail removes and returns the tail value.
func (q *Queue) RemoveTail() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	last := len(q.items) - 1
	s := q.items[last]
	q.items = q.items[:last]
	return s, true
}

// Size returns the number of items.
func (q *Queue) Size() int {
	return len(q.items)
}

// Values returns a copy of the items from head to tail.
func (q *Queue) Values() []string {
	return slices.Clone(q.items)
}

// Reset empties the queue, keeping the underlying array.
func (q *Queue) Reset() {
	q.items = q.items[:0]
}

// DeleteMid removes the item at index len/2.
func (q *Queue) DeleteMid() bool {
	if len(q.items) == 0 {
		return false
	}
	q.items = slices.Delete(q.items, len(q.items)/2, len(q.items)/2+1)
	return true
}

// DeleteDup drops every run of two or more equal adjacent items.
func (q *Queue) DeleteDup() {
	kept := q.items[:0]
	for i := 0; i < len(q.items); {
		j := i + 1
		for j < len(q.items) && q.items[j] == q.items[i] {
			j++
		}
		if j-i == 1 {
			kept = append(kept, q.items[i])
		}
		i = j
	}
	clear(q.items[len(kept):])
	q.items = kept
}

// Swap exchanges adjacent items pairwise.
func (q *Queue) Swap() {
	for i := 0; i+1 < len(q.items); i += 2 {
		q.items[i], q.items[i+1] = q.items[i+1], q.items[i]
	}
}

// Reverse reverses the items in place.
func (q *Queue) Reverse() {
	slices.Reverse(q.items)
}

// Sort stably sorts the items in ascending byte-wise order.
func (q *Queue) Sort() {
	slices.SortStableFunc(q.items, strings.Compare)
}

// IsSorted reports whether values is in ascending order.
func IsSorted(values []string) bool {
	return slices.IsSorted(values)
}

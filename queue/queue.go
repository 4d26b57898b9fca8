package queue

import (
	"github.com/arloliu/go-qlist/internal/list"
	"github.com/arloliu/go-qlist/logger"
)

// Queue is a string queue anchored at a sentinel list node.
// The zero value is not usable; create queues with New.
type Queue struct {
	head   list.Head
	alloc  *Allocator
	logger logger.Logger
}

// New creates an empty queue.
// It returns nil if the allocator could not provide the sentinel.
func New(opts ...Option) *Queue {
	q := &Queue{
		alloc:  defaultAllocator,
		logger: logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(q)
	}

	if !q.alloc.allocBlock() {
		q.logger.Debug("queue allocation failed")
		return nil
	}
	q.head.Init()

	return q
}

// Free releases every element of q, then q itself. A nil q is a no-op.
//
// Free must be called at most once; q must not be used afterwards.
func (q *Queue) Free() {
	if q == nil {
		return
	}
	for !q.head.Empty() {
		q.RemoveHead(nil).Release()
	}
	q.alloc.freeBlock()
}

// InsertHead inserts a copy of s at the head of q.
// It returns false, leaving q untouched, if q is nil or the allocation failed.
func (q *Queue) InsertHead(s string) bool {
	e := q.newElement(s)
	if e == nil {
		return false
	}
	q.head.AddHead(&e.link)

	return true
}

// InsertTail inserts a copy of s at the tail of q.
// It returns false, leaving q untouched, if q is nil or the allocation failed.
func (q *Queue) InsertTail(s string) bool {
	e := q.newElement(s)
	if e == nil {
		return false
	}
	q.head.AddTail(&e.link)

	return true
}

func (q *Queue) newElement(s string) *Element {
	if q == nil {
		return nil
	}
	e := q.alloc.newElement(s)
	if e == nil {
		q.logger.Debug("element allocation failed", "len", len(s))
	}

	return e
}

// RemoveHead unlinks the head element and returns it; the caller must Release it.
//
// If buf is not empty, the removed value is copied into it, truncated to len(buf)-1 bytes
// and followed by a zero byte. It returns nil if q is nil or empty.
func (q *Queue) RemoveHead(buf []byte) *Element {
	if q == nil || q.head.Empty() {
		return nil
	}
	return q.remove(q.head.Next(), buf)
}

// RemoveTail unlinks the tail element and returns it; the caller must Release it.
//
// buf is handled as in RemoveHead. It returns nil if q is nil or empty.
func (q *Queue) RemoveTail(buf []byte) *Element {
	if q == nil || q.head.Empty() {
		return nil
	}
	return q.remove(q.head.Prev(), buf)
}

func (q *Queue) remove(n *list.Head, buf []byte) *Element {
	e := elementOf(n)
	list.Unlink(n)
	e.copyTo(buf)

	return e
}

// delete unlinks n and releases its element.
func (q *Queue) delete(n *list.Head) {
	list.Unlink(n)
	elementOf(n).Release()
}

// Size returns the number of elements in q, counted by traversal.
func (q *Queue) Size() int {
	if q == nil {
		return 0
	}
	size := 0
	q.head.ForEach(func(_ *list.Head) bool {
		size++
		return true
	})

	return size
}

// Values returns the values of q from head to tail.
func (q *Queue) Values() []string {
	if q == nil {
		return nil
	}
	values := []string{}
	q.head.ForEach(func(n *list.Head) bool {
		values = append(values, valueOf(n))
		return true
	})

	return values
}

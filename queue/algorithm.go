package queue

import "github.com/arloliu/go-qlist/internal/list"

// DeleteMid deletes the element at zero-based index n/2 of a queue holding n elements;
// for six elements that is the fourth one.
// It returns false if q is nil or empty.
func (q *Queue) DeleteMid() bool {
	if q == nil || q.head.Empty() {
		return false
	}

	steps := q.Size()/2 + 1
	cur := &q.head
	for i := 0; i < steps; i++ {
		cur = cur.Next()
	}
	q.delete(cur)

	return true
}

// DeleteDup deletes every element whose value equals one of its neighbors, so that only
// values occurring exactly once survive. q must already be sorted in ascending order.
// It returns false if q is nil.
func (q *Queue) DeleteDup() bool {
	if q == nil {
		return false
	}

	head := &q.head
	for cur := head.Next(); cur != head; {
		end := cur.Next()
		for end != head && valueOf(end) == valueOf(cur) {
			end = end.Next()
		}

		if end != cur.Next() {
			for n := cur; n != end; {
				next := n.Next()
				q.delete(n)
				n = next
			}
		}
		cur = end
	}

	return true
}

// Swap exchanges every two adjacent elements, starting from the head.
// A trailing unpaired element stays in place.
func (q *Queue) Swap() {
	if q == nil {
		return
	}

	head := &q.head
	for first := head.Next(); first != head && first.Next() != head; first = first.Next() {
		second := first.Next()
		list.Unlink(first)
		list.InsertAfter(second, first)
	}
}

// Reverse reverses the order of q by exchanging the references of every node,
// the sentinel included.
func (q *Queue) Reverse() {
	if q == nil {
		return
	}

	n := &q.head
	for {
		next := n.Next()
		n.SetNext(n.Prev())
		n.SetPrev(next)
		n = next
		if n == &q.head {
			return
		}
	}
}

// Sort sorts q in ascending byte-wise order of the values.
//
// Each pass picks the leftmost minimum of the unsorted part and moves it right after the
// sorted part, leaving the unsorted part in its original relative order; equal values
// therefore keep their relative order.
func (q *Queue) Sort() {
	if q == nil || q.head.Empty() {
		return
	}

	head := &q.head
	for last := head; last.Next() != head; {
		minNode := last.Next()
		for n := minNode.Next(); n != head; n = n.Next() {
			if valueOf(n) < valueOf(minNode) {
				minNode = n
			}
		}

		if minNode != last.Next() {
			list.Unlink(minNode)
			list.InsertAfter(last, minNode)
		}
		last = minNode
	}
}

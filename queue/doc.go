// Package queue implements a queue of strings on top of an intrusive, circular, doubly
// linked list anchored at a sentinel node.
//
// Insertion and removal at both ends are O(1). On top of the endpoint operations the
// queue offers whole-list transformations which only relink existing elements and
// never copy values:
//   - DeleteMid: remove the element at zero-based index n/2.
//   - DeleteDup: on a sorted queue, remove every value that occurs more than once.
//   - Swap: exchange adjacent elements pairwise.
//   - Reverse: reverse the order in place.
//   - Sort: stable selection sort by byte-wise string comparison.
//
// Ownership:
//
// A Queue owns all elements linked into it. RemoveHead and RemoveTail detach an element
// and hand it to the caller, who must call Release on it exactly once. Free releases every
// element still linked and must be called at most once.
//
// A nil *Queue is a valid receiver for every method and behaves like an absent queue:
// insertions report false, removals return nil and Size reports 0.
//
// Usage Example:
//
//	q := queue.New()
//	defer q.Free()
//
//	q.InsertTail("b")
//	q.InsertHead("a")
//
//	buf := make([]byte, 16)
//	if e := q.RemoveHead(buf); e != nil {
//	    fmt.Println(e.Value()) // a
//	    e.Release()
//	}
//
// The queue is not safe for concurrent use.
package queue

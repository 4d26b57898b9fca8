package queue

import (
	"unsafe"

	"github.com/arloliu/go-qlist/internal/list"
)

// Element is a queue entry owning a private copy of its string value.
//
// Elements are created by InsertHead and InsertTail. An element obtained from RemoveHead
// or RemoveTail belongs to the caller until Release is called.
type Element struct {
	link  list.Head
	value string
	alloc *Allocator
}

var elementLinkOffset = unsafe.Offsetof(Element{}.link)

func elementOf(n *list.Head) *Element {
	return list.Entry[Element](n, elementLinkOffset)
}

func valueOf(n *list.Head) string {
	return elementOf(n).value
}

// Value returns the stored string.
func (e *Element) Value() string {
	if e == nil {
		return ""
	}
	return e.value
}

// Release gives the element and its value back to the allocator it came from.
//
// The element must already be unlinked from its queue. After calling Release, the element
// should not be accessed or used again, as its memory might be reused for other elements.
func (e *Element) Release() {
	if e == nil || e.alloc == nil {
		return
	}
	e.alloc.release(e)
}

// copyTo writes at most len(buf)-1 bytes of the value into buf followed by a zero byte.
// Longer values are silently truncated.
func (e *Element) copyTo(buf []byte) {
	if len(buf) == 0 {
		return
	}
	n := copy(buf[:len(buf)-1], e.value)
	buf[n] = 0
}

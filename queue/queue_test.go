package queue

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/go-qlist/internal/list"
)

func newTestQueue(t *testing.T, values ...string) (*Queue, *Allocator) {
	t.Helper()

	alloc, err := NewAllocator()
	require.NoError(t, err)
	q := New(WithAllocator(alloc))
	require.NotNil(t, q)
	for _, v := range values {
		require.True(t, q.InsertTail(v))
	}

	return q, alloc
}

// requireLinked checks that backward references exactly invert forward references.
func requireLinked(t *testing.T, q *Queue) {
	t.Helper()

	count := 0
	n := &q.head
	for {
		require.Same(t, n, n.Next().Prev())
		n = n.Next()
		if n == &q.head {
			break
		}
		count++
	}
	require.Equal(t, q.Size(), count)
}

func TestQueue_Lifecycle(t *testing.T) {
	assert := assert.New(t)

	t.Run("New", func(t *testing.T) {
		q, alloc := newTestQueue(t)

		assert.Equal(0, q.Size())
		assert.Empty(q.Values())
		assert.True(q.head.Empty())
		assert.EqualValues(1, alloc.Allocated())

		q.Free()
		assert.EqualValues(0, alloc.Allocated())
	})

	t.Run("Free releases elements", func(t *testing.T) {
		q, alloc := newTestQueue(t, "a", "b", "c")
		assert.EqualValues(7, alloc.Allocated())

		q.Free()
		assert.EqualValues(0, alloc.Allocated())
	})

	t.Run("Default options", func(t *testing.T) {
		q := New()
		require.NotNil(t, q)
		assert.Same(DefaultAllocator(), q.alloc)
		assert.True(q.InsertHead("x"))
		q.Free()
	})

	t.Run("Nil queue", func(t *testing.T) {
		var q *Queue

		assert.False(q.InsertHead("a"))
		assert.False(q.InsertTail("a"))
		assert.Nil(q.RemoveHead(make([]byte, 4)))
		assert.Nil(q.RemoveTail(nil))
		assert.Equal(0, q.Size())
		assert.Nil(q.Values())
		assert.False(q.DeleteMid())
		assert.False(q.DeleteDup())
		assert.NotPanics(func() {
			q.Swap()
			q.Reverse()
			q.Sort()
			q.Free()
		})
	})
}

func TestQueue_InsertRemove(t *testing.T) {
	assert := assert.New(t)

	t.Run("FIFO", func(t *testing.T) {
		q, _ := newTestQueue(t)
		defer q.Free()

		for i := 0; i < 10; i++ {
			require.True(t, q.InsertTail(strconv.Itoa(i)))
		}
		buf := make([]byte, 8)
		for i := 0; i < 10; i++ {
			e := q.RemoveHead(buf)
			require.NotNil(t, e)
			assert.Equal(strconv.Itoa(i), e.Value())
			assert.Equal(strconv.Itoa(i)+"\x00", string(buf[:len(e.Value())+1]))
			e.Release()
		}
		assert.Equal(0, q.Size())
	})

	t.Run("LIFO", func(t *testing.T) {
		q, _ := newTestQueue(t)
		defer q.Free()

		for i := 0; i < 10; i++ {
			require.True(t, q.InsertHead(strconv.Itoa(i)))
		}
		for i := 9; i >= 0; i-- {
			e := q.RemoveHead(nil)
			require.NotNil(t, e)
			assert.Equal(strconv.Itoa(i), e.Value())
			e.Release()
		}
	})

	t.Run("RemoveTail", func(t *testing.T) {
		q, _ := newTestQueue(t, "a", "b", "c")
		defer q.Free()

		e := q.RemoveTail(nil)
		require.NotNil(t, e)
		assert.Equal("c", e.Value())
		e.Release()
		assert.Equal([]string{"a", "b"}, q.Values())
		requireLinked(t, q)
	})

	t.Run("Empty queue", func(t *testing.T) {
		q, _ := newTestQueue(t)
		defer q.Free()

		buf := []byte("keep")
		assert.Nil(q.RemoveHead(buf))
		assert.Nil(q.RemoveTail(buf))
		assert.Equal("keep", string(buf))
		assert.Equal(0, q.Size())
	})

	t.Run("Caller buffer is copied", func(t *testing.T) {
		q, _ := newTestQueue(t)
		defer q.Free()

		src := []byte("hello")
		require.True(t, q.InsertTail(string(src)))
		src[0] = 'j'
		assert.Equal([]string{"hello"}, q.Values())
	})

	t.Run("Removed element is unlinked", func(t *testing.T) {
		q, _ := newTestQueue(t, "a", "b")
		defer q.Free()

		e := q.RemoveHead(nil)
		assert.False(list.Linked(&e.link))
		requireLinked(t, q)
		e.Release()
	})
}

func TestQueue_RemoveTruncation(t *testing.T) {
	tests := []struct {
		description string
		value       string
		bufSize     int
		expected    string
	}{
		{description: "fits", value: "abc", bufSize: 8, expected: "abc"},
		{description: "exact fit", value: "abc", bufSize: 4, expected: "abc"},
		{description: "truncated", value: "abcdef", bufSize: 4, expected: "abc"},
		{description: "terminator only", value: "abc", bufSize: 1, expected: ""},
		{description: "empty value", value: "", bufSize: 4, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			q, _ := newTestQueue(t, tt.value)
			defer q.Free()

			buf := make([]byte, tt.bufSize)
			for i := range buf {
				buf[i] = 0xff
			}
			e := q.RemoveHead(buf)
			require.NotNil(t, e)
			defer e.Release()

			require.Equal(t, tt.value, e.Value())
			require.Equal(t, tt.expected, string(buf[:len(tt.expected)]))
			require.Equal(t, byte(0), buf[len(tt.expected)])
		})
	}
}

func TestQueue_Release(t *testing.T) {
	assert := assert.New(t)
	q, alloc := newTestQueue(t, "a", "b")
	defer q.Free()

	e := q.RemoveTail(nil)
	require.NotNil(t, e)
	assert.EqualValues(5, alloc.Allocated())

	e.Release()
	assert.EqualValues(3, alloc.Allocated())
	assert.Empty(e.Value())

	// released elements are detached from their allocator
	e.Release()
	assert.EqualValues(3, alloc.Allocated())

	var nilElem *Element
	assert.NotPanics(nilElem.Release)
	assert.Empty(nilElem.Value())
}

func TestQueue_Size(t *testing.T) {
	q, _ := newTestQueue(t)
	defer q.Free()

	for i := 1; i <= 5; i++ {
		require.True(t, q.InsertHead("v"))
		require.Equal(t, i, q.Size())
	}
}

package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/go-qlist/internal/list"
)

func TestQueue_DeleteMid(t *testing.T) {
	tests := []struct {
		description string
		input       []string
		expected    []string
	}{
		{description: "one element", input: []string{"a"}, expected: []string{}},
		{description: "two elements", input: []string{"a", "b"}, expected: []string{"a"}},
		{description: "three elements", input: []string{"a", "b", "c"}, expected: []string{"a", "c"}},
		{description: "six elements", input: []string{"a", "b", "c", "d", "e", "f"}, expected: []string{"a", "b", "c", "e", "f"}},
		{description: "seven elements", input: []string{"a", "b", "c", "d", "e", "f", "g"}, expected: []string{"a", "b", "c", "e", "f", "g"}},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			q, alloc := newTestQueue(t, tt.input...)
			defer q.Free()

			require.True(t, q.DeleteMid())
			require.Equal(t, tt.expected, q.Values())
			require.Equal(t, len(tt.expected), q.Size())
			require.EqualValues(t, 1+2*len(tt.expected), alloc.Allocated())
			requireLinked(t, q)
		})
	}

	t.Run("empty queue", func(t *testing.T) {
		q, _ := newTestQueue(t)
		defer q.Free()

		require.False(t, q.DeleteMid())
	})
}

func TestQueue_DeleteDup(t *testing.T) {
	tests := []struct {
		description string
		input       []string
		expected    []string
	}{
		{description: "empty", input: []string{}, expected: []string{}},
		{description: "single", input: []string{"a"}, expected: []string{"a"}},
		{description: "no duplicates", input: []string{"a", "b", "c"}, expected: []string{"a", "b", "c"}},
		{description: "runs removed entirely", input: []string{"1", "1", "2", "3", "3", "3"}, expected: []string{"2"}},
		{description: "all equal", input: []string{"x", "x", "x"}, expected: []string{}},
		{description: "run at head", input: []string{"a", "a", "b", "c"}, expected: []string{"b", "c"}},
		{description: "run at tail", input: []string{"a", "b", "c", "c"}, expected: []string{"a", "b"}},
		{description: "alternating runs", input: []string{"a", "b", "b", "c", "d", "d", "e"}, expected: []string{"a", "c", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			q, alloc := newTestQueue(t, tt.input...)
			defer q.Free()

			require.True(t, q.DeleteDup())
			require.Equal(t, tt.expected, q.Values())
			require.EqualValues(t, 1+2*len(tt.expected), alloc.Allocated())
			requireLinked(t, q)
		})
	}
}

func TestQueue_Swap(t *testing.T) {
	tests := []struct {
		description string
		input       []string
		expected    []string
	}{
		{description: "empty", input: []string{}, expected: []string{}},
		{description: "single", input: []string{"a"}, expected: []string{"a"}},
		{description: "even", input: []string{"a", "b", "c", "d"}, expected: []string{"b", "a", "d", "c"}},
		{description: "odd", input: []string{"a", "b", "c"}, expected: []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			q, _ := newTestQueue(t, tt.input...)
			defer q.Free()

			before := nodes(q)
			q.Swap()
			require.Equal(t, tt.expected, q.Values())
			require.ElementsMatch(t, before, nodes(q))
			requireLinked(t, q)
		})
	}
}

func TestQueue_Reverse(t *testing.T) {
	assert := assert.New(t)

	t.Run("empty", func(t *testing.T) {
		q, _ := newTestQueue(t)
		defer q.Free()

		q.Reverse()
		assert.True(q.head.Empty())
		requireLinked(t, q)
	})

	t.Run("single", func(t *testing.T) {
		q, _ := newTestQueue(t, "a")
		defer q.Free()

		q.Reverse()
		assert.Equal([]string{"a"}, q.Values())
		requireLinked(t, q)
	})

	t.Run("twice restores", func(t *testing.T) {
		input := []string{"a", "b", "c", "d", "e"}
		q, _ := newTestQueue(t, input...)
		defer q.Free()

		before := nodes(q)
		q.Reverse()
		assert.Equal([]string{"e", "d", "c", "b", "a"}, q.Values())
		requireLinked(t, q)

		q.Reverse()
		assert.Equal(input, q.Values())
		assert.Equal(before, nodes(q))
	})

	t.Run("endpoints follow", func(t *testing.T) {
		q, _ := newTestQueue(t, "a", "b", "c")
		defer q.Free()

		q.Reverse()
		e := q.RemoveHead(nil)
		assert.Equal("c", e.Value())
		e.Release()
		e = q.RemoveTail(nil)
		assert.Equal("a", e.Value())
		e.Release()
	})
}

func TestQueue_Sort(t *testing.T) {
	tests := []struct {
		description string
		input       []string
		expected    []string
	}{
		{description: "empty", input: []string{}, expected: []string{}},
		{description: "single", input: []string{"a"}, expected: []string{"a"}},
		{description: "sorted", input: []string{"a", "b", "c"}, expected: []string{"a", "b", "c"}},
		{description: "reversed", input: []string{"c", "b", "a"}, expected: []string{"a", "b", "c"}},
		{description: "duplicates", input: []string{"b", "a", "b", "a", "c"}, expected: []string{"a", "a", "b", "b", "c"}},
		{description: "byte-wise order", input: []string{"b", "B", "ab", "a", ""}, expected: []string{"", "B", "a", "ab", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			q, alloc := newTestQueue(t, tt.input...)
			defer q.Free()

			before := nodes(q)
			q.Sort()
			require.Equal(t, tt.expected, q.Values())
			require.ElementsMatch(t, before, nodes(q))
			require.EqualValues(t, 1+2*len(tt.input), alloc.Allocated())
			requireLinked(t, q)
		})
	}

	t.Run("stable", func(t *testing.T) {
		q, _ := newTestQueue(t, "b", "a", "b", "a", "b")
		defer q.Free()

		before := nodes(q)
		q.Sort()
		// a(1) a(3) b(0) b(2) b(4)
		require.Equal(t, []*Element{before[1], before[3], before[0], before[2], before[4]}, nodes(q))
	})

	t.Run("then DeleteDup", func(t *testing.T) {
		q, _ := newTestQueue(t, "3", "1", "3", "2", "1", "3")
		defer q.Free()

		q.Sort()
		require.True(t, q.DeleteDup())
		require.Equal(t, []string{"2"}, q.Values())
	})
}

func nodes(q *Queue) []*Element {
	elems := []*Element{}
	q.head.ForEach(func(n *list.Head) bool {
		elems = append(elems, elementOf(n))
		return true
	})

	return elems
}

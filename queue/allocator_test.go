package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/go-qlist/logger"
)

func TestAllocator(t *testing.T) {
	assert := assert.New(t)

	t.Run("Fail percent validation", func(t *testing.T) {
		_, err := NewAllocator(WithFailPercent(-1))
		assert.Error(err)
		_, err = NewAllocator(WithFailPercent(101))
		assert.Error(err)

		alloc, err := NewAllocator(WithFailPercent(30))
		require.NoError(t, err)
		assert.Equal(30, alloc.FailPercent())
		assert.Error(alloc.SetFailPercent(200))
		assert.Equal(30, alloc.FailPercent())
	})

	t.Run("Queue allocation failure", func(t *testing.T) {
		alloc, err := NewAllocator(WithFailPercent(100))
		require.NoError(t, err)

		assert.Nil(New(WithAllocator(alloc)))
		assert.EqualValues(0, alloc.Allocated())
	})

	t.Run("Insert failure leaves queue untouched", func(t *testing.T) {
		mockLogger := logger.NewMockLogger()
		mockLogger.On("Debug", "element allocation failed", mock.Anything).Return()

		alloc, err := NewAllocator()
		require.NoError(t, err)
		q := New(WithAllocator(alloc), WithLogger(mockLogger))
		require.NotNil(t, q)
		defer q.Free()
		require.True(t, q.InsertTail("a"))

		require.NoError(t, alloc.SetFailPercent(100))
		assert.False(q.InsertHead("b"))
		assert.False(q.InsertTail("c"))
		assert.Equal([]string{"a"}, q.Values())
		assert.EqualValues(3, alloc.Allocated())
		mockLogger.AssertNumberOfCalls(t, "Debug", 2)

		require.NoError(t, alloc.SetFailPercent(0))
		assert.True(q.InsertTail("c"))
	})

	t.Run("Partial failures never leak", func(t *testing.T) {
		alloc, err := NewAllocator(WithFailPercent(40), WithSeed(7))
		require.NoError(t, err)

		var q *Queue
		for q == nil {
			q = New(WithAllocator(alloc), WithLogger(logger.NewSlog(logger.ErrorLevel, false)))
		}

		inserted := 0
		for i := 0; i < 200; i++ {
			if q.InsertTail("value") {
				inserted++
			}
		}
		assert.Equal(inserted, q.Size())
		assert.EqualValues(1+2*inserted, alloc.Allocated())

		q.Free()
		assert.EqualValues(0, alloc.Allocated())
	})

	t.Run("Seeded failures are reproducible", func(t *testing.T) {
		run := func() []bool {
			alloc, err := NewAllocator(WithFailPercent(50), WithSeed(42))
			require.NoError(t, err)
			results := make([]bool, 32)
			for i := range results {
				results[i] = alloc.allocBlock()
			}
			return results
		}
		assert.Equal(run(), run())
	})
}

package queue

import "github.com/arloliu/go-qlist/logger"

// Option is a functional option for configuring a Queue.
type Option func(*Queue)

// WithAllocator sets the allocator the queue takes its sentinel and elements from.
// A nil allocator keeps the default one.
func WithAllocator(a *Allocator) Option {
	return func(q *Queue) {
		if a != nil {
			q.alloc = a
		}
	}
}

// WithLogger sets the logger of the queue. Default: logger.GetLogger().
func WithLogger(l logger.Logger) Option {
	return func(q *Queue) {
		if l != nil {
			q.logger = l
		}
	}
}

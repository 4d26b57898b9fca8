package queue

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// Fail percent range accepted by WithFailPercent.
const (
	MinFailPercent = 0
	MaxFailPercent = 100
)

// Allocator hands out elements and queue sentinels and accounts for them in blocks:
// a sentinel is one block, an element is two (the element itself and its value buffer).
//
// Elements are recycled through a sync.Pool. Fault injection makes individual block
// allocations fail, which is how the allocation failure paths of the queue are exercised.
type Allocator struct {
	pool        sync.Pool
	live        *xsync.Counter
	failPercent int

	mu  sync.Mutex
	rnd *rand.Rand
}

var defaultAllocator = mustAllocator()

func mustAllocator() *Allocator {
	a, err := NewAllocator()
	if err != nil {
		panic(err)
	}
	return a
}

// DefaultAllocator returns the allocator used by queues created without WithAllocator.
// It never fails.
func DefaultAllocator() *Allocator {
	return defaultAllocator
}

// NewAllocator creates an Allocator. opts are applied in order; see With* functions.
func NewAllocator(opts ...AllocOption) (*Allocator, error) {
	a := &Allocator{
		pool: sync.Pool{New: func() any { return &Element{} }},
		live: xsync.NewCounter(),
		rnd:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec
	}

	for _, opt := range opts {
		if err := opt.apply(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Allocated returns the number of blocks handed out and not yet given back.
func (a *Allocator) Allocated() int64 {
	return a.live.Value()
}

// FailPercent returns the probability, in percent, that a block allocation fails.
func (a *Allocator) FailPercent() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.failPercent
}

// SetFailPercent changes the fault injection probability at runtime.
func (a *Allocator) SetFailPercent(p int) error {
	if p < MinFailPercent || p > MaxFailPercent {
		return fmt.Errorf("queue: fail percent %d out of range [%d, %d]", p, MinFailPercent, MaxFailPercent)
	}
	a.mu.Lock()
	a.failPercent = p
	a.mu.Unlock()

	return nil
}

func (a *Allocator) fail() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.failPercent == 0 {
		return false
	}
	return a.rnd.IntN(100) < a.failPercent
}

func (a *Allocator) allocBlock() bool {
	if a.fail() {
		return false
	}
	a.live.Inc()
	return true
}

func (a *Allocator) freeBlock() {
	a.live.Dec()
}

// newElement returns an unlinked element holding its own copy of value,
// or nil when either block could not be allocated.
func (a *Allocator) newElement(value string) *Element {
	if !a.allocBlock() {
		return nil
	}
	e, _ := a.pool.Get().(*Element)
	if e == nil {
		e = &Element{}
	}

	if !a.allocBlock() {
		a.freeBlock()
		a.pool.Put(e)
		return nil
	}
	e.value = strings.Clone(value)
	e.alloc = a

	return e
}

func (a *Allocator) release(e *Element) {
	e.value = ""
	e.alloc = nil
	a.live.Add(-2)
	a.pool.Put(e)
}

// --- AllocOption ---

// AllocOption is a functional option for configuring an Allocator.
type AllocOption interface {
	apply(*Allocator) error
}

type allocOptFunc func(*Allocator) error

func (f allocOptFunc) apply(a *Allocator) error { return f(a) }

// WithFailPercent makes every block allocation fail with probability p percent.
// Valid range: [0, 100]. Default: 0.
func WithFailPercent(p int) AllocOption {
	return allocOptFunc(func(a *Allocator) error {
		return a.SetFailPercent(p)
	})
}

// WithSeed seeds the fault injection random source, making failures reproducible.
func WithSeed(seed uint64) AllocOption {
	return allocOptFunc(func(a *Allocator) error {
		a.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec
		return nil
	})
}

// Package pool recycles timers used to bound interpreter commands.
//
// WaitTimeout is the entry point for callers; GetTimer and PutTimer expose the pool itself.
package pool

import (
	"sync"
	"time"
)

var timerPool sync.Pool

// GetTimer returns a timer firing after d, reusing a pooled one when available.
//
// Give the timer back with PutTimer.
func GetTimer(d time.Duration) *time.Timer {
	if v := timerPool.Get(); v != nil {
		t, _ := v.(*time.Timer)
		if t.Reset(d) {
			// still active: drop a pending expiry
			select {
			case <-t.C:
			default:
			}
		}
		return t
	}
	return time.NewTimer(d)
}

// PutTimer stops t and returns it to the pool.
//
// t cannot be accessed after returning to the pool.
func PutTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	timerPool.Put(t)
}

// WaitTimeout waits until done is closed or d elapses, using a pooled timer.
// It reports whether done was closed in time.
func WaitTimeout(done <-chan struct{}, d time.Duration) bool {
	select {
	case <-done:
		return true
	default:
	}

	timer := GetTimer(d)
	defer PutTimer(timer)

	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

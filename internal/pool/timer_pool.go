// Package pool provides a shared timer pool for the driver's timeout and
// polling waits, so the engine does not allocate a fresh timer for every
// handshake wait and poll interval.
package pool

import (
	"sync"
	"time"
)

var timerPool sync.Pool

// GetTimer returns a timer set to fire after d, reusing a pooled timer
// when one is available. Return it with PutTimer.
func GetTimer(d time.Duration) *time.Timer {
	if v := timerPool.Get(); v != nil {
		t, _ := v.(*time.Timer) // only *time.Timer ever enters the pool
		if t.Reset(d) {
			// The timer was still active; drain a pending tick so the
			// next receive sees only the new expiry.
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
// t must not be touched after PutTimer.
func PutTimer(t *time.Timer) {
	if !t.Stop() {
		// Drain t.C if the tick was never received.
		select {
		case <-t.C:
		default:
		}
	}
	timerPool.Put(t)
}

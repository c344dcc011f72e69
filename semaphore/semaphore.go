/*
   Package semaphore bounds how many of cmd run's fetch goroutines are
   allowed in flight at once, without tripping up the race detector the way
   a misused WaitGroup does.

   cmd run's dispatch loop pops one Request from the BalancedScheduler at a
   time but fetches in a new goroutine per Request, so nothing upstream
   limits fan-out on its own. A Semaphore seeded to --workers slots bounds
   that fan-out: acquiring a slot is Wait() (block until one is free)
   followed by Done() (consume it), and releasing it back after a fetch
   completes is Add(1).
*/
package semaphore

import (
	"sync"
)

// Semaphore is a counting semaphore: Add raises the count (seeding it with
// the worker budget, or returning a consumed slot), Wait blocks until the
// count is positive, and Done consumes one slot. cmd run pairs Wait+Done to
// acquire a fetch slot before dispatching a fetch goroutine, and Add(1) to
// return the slot when that fetch completes.
type Semaphore struct {
	cond  *sync.Cond
	lock  sync.Mutex
	count int
}

// New returns a Semaphore with a count of zero. Call Add with the desired
// worker budget before the first Wait.
func New() *Semaphore {
	s := &Semaphore{}
	s.cond = sync.NewCond(&s.lock)
	return s
}

// Reset zeroes the count and wakes every blocked Wait. Since the count is
// then zero, woken waiters keep blocking until a later Add raises it above
// zero.
func (sm *Semaphore) Reset() {
	sm.count = 0
	sm.cond.Broadcast()
}

// Add adjusts the count by i, waking blocked waiters once the count rises
// back above zero. cmd run seeds a fetch pool's budget with Add(workers)
// and returns a slot after a fetch completes with Add(1).
func (sm *Semaphore) Add(i int) {
	sm.lock.Lock()
	defer sm.lock.Unlock()

	sm.count += i
	if sm.count > 0 {
		sm.cond.Broadcast()
	}
}

// Done consumes one fetch slot, equivalent to Add(-1). Always pair it with
// a prior Wait; calling it without one can drive the count negative.
func (sm *Semaphore) Done() {
	sm.Add(-1)
}

// Wait blocks until a fetch slot is available (the count is positive).
func (sm *Semaphore) Wait() {
	sm.lock.Lock()
	defer sm.lock.Unlock()

	for sm.count <= 0 {
		sm.cond.Wait()
	}
}

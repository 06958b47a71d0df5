// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"slices"
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock pinned to initial. Time moves only through
// Advance; After and Sleep park their callers until the clock passes
// the requested deadline. Safe for concurrent use.
func Fake(initial time.Time) *FakeClock {
	c := &FakeClock{current: initial}
	c.registered = sync.NewCond(&c.mu)
	return c
}

// FakeClock is the deterministic Clock for tests. The cron runner
// tests and the service digest tests drive it with Advance instead of
// sleeping wall-clock time.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time

	// pending holds parked timers sorted by deadline, FIFO among
	// equal deadlines, so Advance fires them in a stable order.
	pending []*fakeTimer

	// registered broadcasts whenever a timer parks, waking
	// WaitForTimers.
	registered *sync.Cond
}

// fakeTimer is one parked After or Sleep. Timers fire once and are
// dropped from the pending list.
type fakeTimer struct {
	deadline time.Time
	ch       chan time.Time
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// After returns a channel that fires once Advance has carried the
// clock to or past d from now. Non-positive d fires immediately
// without parking a timer.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.current
		return ch
	}

	deadline := c.current.Add(d)
	at := sort.Search(len(c.pending), func(i int) bool {
		return c.pending[i].deadline.After(deadline)
	})
	c.pending = slices.Insert(c.pending, at, &fakeTimer{deadline: deadline, ch: ch})
	c.registered.Broadcast()
	return ch
}

// Sleep parks the calling goroutine until the clock passes d from
// now. Non-positive d returns immediately.
func (c *FakeClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	<-c.After(d)
}

// Advance moves the clock forward by d and fires every parked timer
// the new time reaches, earliest deadline first. Timer channels have
// capacity 1, so firing never blocks on a slow receiver.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	now := c.current

	due := 0
	for due < len(c.pending) && !c.pending[due].deadline.After(now) {
		due++
	}
	fire := c.pending[:due:due]
	c.pending = c.pending[due:]
	c.mu.Unlock()

	// pending is deadline-sorted, so this fires in order.
	for _, timer := range fire {
		timer.ch <- now
	}
}

// WaitForTimers blocks until at least n timers are parked. Advancing
// before a goroutine's After or Sleep has registered would strand it,
// so tests wait for the registration first:
//
//	go func() { fake.Sleep(5 * time.Second) }()
//	fake.WaitForTimers(1)
//	fake.Advance(5 * time.Second)
func (c *FakeClock) WaitForTimers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.pending) < n {
		c.registered.Wait()
	}
}

// PendingCount reports how many timers are currently parked.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

package registrykit

import (
	"sync"
	"time"
)

// SystemClock reads the wall clock in Unix seconds.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// LedgerClock wraps a Clock so its readings never go backwards, the way a
// block timestamp behaves. A base reading older than the last one returned
// is replaced by the last one.
type LedgerClock struct {
	mu   sync.Mutex
	base Clock
	last uint64
}

// NewLedgerClock wraps base. A nil base uses SystemClock.
func NewLedgerClock(base Clock) *LedgerClock {
	if base == nil {
		base = SystemClock{}
	}
	return &LedgerClock{base: base}
}

// Now implements Clock.
func (c *LedgerClock) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t := c.base.Now(); t > c.last {
		c.last = t
	}
	return c.last
}

// ManualClock is a Clock driven by hand, for tests and replays.
type ManualClock struct {
	mu  sync.Mutex
	now uint64
}

// NewManualClock creates a ManualClock reading start.
func NewManualClock(start uint64) *ManualClock {
	return &ManualClock{now: start}
}

// Now implements Clock.
func (c *ManualClock) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d seconds and returns the new reading.
func (c *ManualClock) Advance(d uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
	return c.now
}

// Set moves the clock to t, forwards or backwards.
func (c *ManualClock) Set(t uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

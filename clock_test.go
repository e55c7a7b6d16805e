package registrykit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemClock(t *testing.T) {
	before := uint64(time.Now().Unix())
	now := SystemClock{}.Now()
	assert.GreaterOrEqual(t, now, before)
	assert.LessOrEqual(t, now, uint64(time.Now().Unix()))
}

func TestManualClock(t *testing.T) {
	c := NewManualClock(100)
	assert.Equal(t, uint64(100), c.Now())
	assert.Equal(t, uint64(130), c.Advance(30))
	assert.Equal(t, uint64(130), c.Now())

	c.Set(50)
	assert.Equal(t, uint64(50), c.Now())
}

func TestLedgerClock_NeverGoesBackwards(t *testing.T) {
	base := NewManualClock(1000)
	c := NewLedgerClock(base)

	assert.Equal(t, uint64(1000), c.Now())

	base.Set(900)
	assert.Equal(t, uint64(1000), c.Now())

	base.Set(1200)
	assert.Equal(t, uint64(1200), c.Now())
}

func TestLedgerClock_DefaultsToSystemClock(t *testing.T) {
	c := NewLedgerClock(nil)
	assert.IsType(t, SystemClock{}, c.base)
	assert.NotZero(t, c.Now())
}

func TestLedgerClock_Concurrent(t *testing.T) {
	base := NewManualClock(1)
	c := NewLedgerClock(base)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := uint64(0)
			for j := 0; j < 100; j++ {
				base.Advance(1)
				now := c.Now()
				if now < last {
					t.Errorf("clock went backwards: %d < %d", now, last)
					return
				}
				last = now
			}
		}()
	}
	wg.Wait()
}

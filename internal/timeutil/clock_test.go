package timeutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock(t *testing.T) {
	var c Clock = RealClock{}

	before := time.Now()
	got := c.Now()
	assert.False(t, got.Before(before))
	assert.GreaterOrEqual(t, c.Since(before), time.Duration(0))
}

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	c := NewMockClock(start)

	assert.Equal(t, start, c.Now())
	c.Advance(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, c.Since(start))

	later := start.Add(time.Hour)
	c.Set(later)
	assert.Equal(t, later, c.Now())
	assert.Equal(t, time.Hour, c.Since(start))
}

func TestMockClockConcurrentAdvance(t *testing.T) {
	start := time.Unix(0, 0)
	c := NewMockClock(start)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Advance(time.Millisecond)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50*time.Millisecond, c.Since(start))
}

package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClockNow(t *testing.T) {
	c := RealClock{}
	before := time.Now()
	got := c.Now()
	after := time.Now()

	assert.False(t, got.Before(before), "RealClock.Now should not be before the surrounding calls")
	assert.False(t, got.After(after), "RealClock.Now should not be after the surrounding calls")
}

func TestRealClockNowUnixMilli(t *testing.T) {
	c := RealClock{}
	before := time.Now().UnixMilli()
	got := c.NowUnixMilli()
	after := time.Now().UnixMilli()

	assert.GreaterOrEqual(t, got, before)
	assert.LessOrEqual(t, got, after)
}

func TestMockClockNow(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	m := NewMockClock(fixed)

	assert.Equal(t, fixed, m.Now())
	assert.Equal(t, fixed.UnixMilli(), m.NowUnixMilli())
}

func TestMockClockSet(t *testing.T) {
	m := NewMockClock(time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC))
	updated := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	m.Set(updated)
	assert.Equal(t, updated, m.Now())
}

func TestMockClockAdvance(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	m := NewMockClock(start)

	m.Advance(45 * time.Minute)
	assert.Equal(t, start.Add(45*time.Minute), m.Now())

	m.Advance(-15 * time.Minute)
	assert.Equal(t, start.Add(30*time.Minute), m.Now())
}

func TestMockClockConcurrentAccess(t *testing.T) {
	m := NewMockClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Advance(time.Second)
		}()
		go func() {
			defer wg.Done()
			_ = m.Now()
		}()
	}
	wg.Wait()

	expected := time.Date(2025, 6, 1, 0, 0, 50, 0, time.UTC)
	assert.Equal(t, expected, m.Now())
}

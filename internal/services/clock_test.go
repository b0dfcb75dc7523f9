package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreationClockIsStrictlyIncreasing(t *testing.T) {
	frozen := time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC)
	clock := newCreationClock(func() time.Time { return frozen })

	first := clock.Next()
	second := clock.Next()
	third := clock.Next()

	assert.Equal(t, frozen.Truncate(time.Microsecond), first)
	assert.Equal(t, first.Add(time.Microsecond), second)
	assert.Equal(t, second.Add(time.Microsecond), third)
}

func TestCreationClockFollowsWallTimeWhenAhead(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := newCreationClock(func() time.Time { return now })

	first := clock.Next()
	now = now.Add(time.Second)
	assert.Equal(t, first.Add(time.Second), clock.Next())
}

func TestCreationClockConcurrentCallersGetDistinctTimes(t *testing.T) {
	clock := newCreationClock(time.Now)

	var (
		mu   sync.Mutex
		seen = map[time.Time]bool{}
		wg   sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ts := clock.Next()
			mu.Lock()
			seen[ts] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 50)
}

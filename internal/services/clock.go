package services

import (
	"sync"
	"time"
)

// creationClock hands out strictly increasing UTC timestamps at microsecond
// precision, the finest that postgres keeps. Meals created by one process
// never share a created_at.
type creationClock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func newCreationClock(now func() time.Time) *creationClock {
	return &creationClock{now: now}
}

// Next returns a timestamp after every one handed out before.
func (c *creationClock) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC().Truncate(time.Microsecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}

package controller

import "time"

type IDSource interface {
	NextID() int64
}

// Seeder is implemented by id sources that must never hand out an id at or
// below one already in use.
type Seeder interface {
	Seed(floor int64)
}

// ClockIDs derives ids from the wall-clock millisecond timestamp, bumping
// past the previous id when two calls land in the same millisecond or the
// clock steps backwards.
type ClockIDs struct {
	now  func() time.Time
	last int64
}

func NewClockIDs(now func() time.Time) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now}
}

func (c *ClockIDs) Seed(floor int64) {
	if floor > c.last {
		c.last = floor
	}
}

func (c *ClockIDs) NextID() int64 {
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

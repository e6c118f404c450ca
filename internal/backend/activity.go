package backend

import (
	"fmt"
	"time"
)

// ActivityEntry is one line of the dashboard's recent activity feed.
type ActivityEntry struct {
	At      time.Time
	Message string
}

const activityCap = 50

// recordLocked appends an activity entry. Caller holds c.mu.
func (c *Client) recordLocked(format string, args ...any) {
	c.activity = append(c.activity, ActivityEntry{
		At:      c.now(),
		Message: fmt.Sprintf(format, args...),
	})
	if len(c.activity) > activityCap {
		c.activity = c.activity[len(c.activity)-activityCap:]
	}
}

// RecentActivity returns up to n entries, newest first.
func (c *Client) RecentActivity(n int) ([]ActivityEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n > len(c.activity) {
		n = len(c.activity)
	}
	out := make([]ActivityEntry, 0, n)
	for i := len(c.activity) - 1; i >= len(c.activity)-n; i-- {
		out = append(out, c.activity[i])
	}
	return out, nil
}

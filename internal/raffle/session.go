package raffle

import (
	"sync"
	"time"
)

// UserID is a platform user identifier (a Discord snowflake).
type UserID string

// Tracker holds the start of each user's open voice interval.
type Tracker struct {
	mu     sync.Mutex
	starts map[UserID]time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		starts: make(map[UserID]time.Time),
	}
}

// Start records now as the user's interval start. A second start for the
// same user moves the start instead of opening another interval.
func (t *Tracker) Start(user UserID, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.starts[user] = now
}

// End closes the user's interval and returns its start. ok is false when the
// user had no open interval.
func (t *Tracker) End(user UserID) (start time.Time, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	start, ok = t.starts[user]
	if ok {
		delete(t.starts, user)
	}
	return start, ok
}

func (t *Tracker) Active(user UserID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.starts[user]
	return ok
}

func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.starts)
}

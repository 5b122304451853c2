package raffle

import (
	"iter"
	"sync"
	"time"
)

// Accrual describes a single ledger update.
type Accrual struct {
	User     UserID
	Previous int
	Total    int
	Earned   int
}

// Ledger maps users to their ticket totals. A missing entry means zero.
type Ledger struct {
	mu      sync.Mutex
	tickets map[UserID]int
}

func NewLedger() *Ledger {
	return &Ledger{
		tickets: make(map[UserID]int),
	}
}

// TicketsFor converts an interval length into whole tickets.
func TicketsFor(d, unit time.Duration) int {
	if unit <= 0 || d < unit {
		return 0
	}
	return int(d / unit)
}

// Accrue credits floor(d/unit) tickets to user. When that is zero the ledger
// is left untouched and ok is false.
func (l *Ledger) Accrue(user UserID, d, unit time.Duration) (Accrual, bool) {
	earned := TicketsFor(d, unit)
	if earned == 0 {
		return Accrual{User: user}, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.tickets[user]
	l.tickets[user] = prev + earned
	return Accrual{
		User:     user,
		Previous: prev,
		Total:    prev + earned,
		Earned:   earned,
	}, true
}

func (l *Ledger) Balance(user UserID) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tickets[user]
}

// Reset empties the ledger. Resetting an empty ledger is a no-op.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.tickets)
}

// Drain empties the ledger and returns what it held, in one step.
func (l *Ledger) Drain() map[UserID]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	drained := l.tickets
	l.tickets = make(map[UserID]int)
	return drained
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tickets)
}

// All yields every (user, total) pair in no particular order. Each call
// iterates over a copy taken when iteration begins, so the sequence can be
// ranged over repeatedly and never holds the lock while yielding.
func (l *Ledger) All() iter.Seq2[UserID, int] {
	return func(yield func(UserID, int) bool) {
		l.mu.Lock()
		entries := make(map[UserID]int, len(l.tickets))
		for u, n := range l.tickets {
			entries[u] = n
		}
		l.mu.Unlock()

		for u, n := range entries {
			if !yield(u, n) {
				return
			}
		}
	}
}

package raffle

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketsFor(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		unit time.Duration
		want int
	}{
		{name: "below one unit", d: 59 * time.Second, unit: time.Minute, want: 0},
		{name: "exactly one unit", d: time.Minute, unit: time.Minute, want: 1},
		{name: "floors partial units", d: 530 * time.Second, unit: time.Minute, want: 8},
		{name: "ten minutes and a half", d: 630 * time.Second, unit: time.Minute, want: 10},
		{name: "ten minute unit", d: 95 * time.Minute, unit: 10 * time.Minute, want: 9},
		{name: "zero duration", d: 0, unit: time.Minute, want: 0},
		{name: "negative duration", d: -time.Hour, unit: time.Minute, want: 0},
		{name: "zero unit", d: time.Hour, unit: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TicketsFor(tt.d, tt.unit))
		})
	}
}

func TestLedgerAccrue(t *testing.T) {
	l := NewLedger()

	acc, ok := l.Accrue("1", 25*time.Minute, 10*time.Minute)
	require.True(t, ok)
	assert.Equal(t, Accrual{User: "1", Previous: 0, Total: 2, Earned: 2}, acc)

	acc, ok = l.Accrue("1", 10*time.Minute, 10*time.Minute)
	require.True(t, ok)
	assert.Equal(t, Accrual{User: "1", Previous: 2, Total: 3, Earned: 1}, acc)
	assert.Equal(t, 3, l.Balance("1"))
}

func TestLedgerAccrueBelowUnitLeavesLedgerUntouched(t *testing.T) {
	l := NewLedger()

	_, ok := l.Accrue("1", 9*time.Minute, 10*time.Minute)
	assert.False(t, ok)
	assert.Equal(t, 0, l.Len(), "no entry should be created for a zero accrual")
	assert.Equal(t, 0, l.Balance("1"))
}

func TestLedgerReset(t *testing.T) {
	l := NewLedger()
	l.Accrue("1", time.Hour, time.Minute)
	l.Accrue("2", time.Hour, time.Minute)

	l.Reset()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.Balance("1"))

	l.Reset()
	assert.Equal(t, 0, l.Len())
}

func TestLedgerDrain(t *testing.T) {
	l := NewLedger()
	l.Accrue("1", 3*time.Minute, time.Minute)

	drained := l.Drain()
	assert.Equal(t, map[UserID]int{"1": 3}, drained)
	assert.Equal(t, 0, l.Len())

	l.Accrue("1", time.Minute, time.Minute)
	assert.Equal(t, 3, drained["1"], "drained map must not alias the live ledger")
}

func TestLedgerAllIsRestartable(t *testing.T) {
	l := NewLedger()
	l.Accrue("1", 3*time.Minute, time.Minute)
	l.Accrue("2", 5*time.Minute, time.Minute)

	seq := l.All()
	for range 2 {
		got := make(map[UserID]int)
		for u, n := range seq {
			got[u] = n
		}
		assert.Equal(t, map[UserID]int{"1": 3, "2": 5}, got)
	}

	count := 0
	for range seq {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestLedgerConcurrentAccrue(t *testing.T) {
	l := NewLedger()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Accrue("1", 2*time.Minute, time.Minute)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, l.Balance("1"))
}

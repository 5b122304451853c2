package raffle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackerStartEnd(t *testing.T) {
	tr := NewTracker()
	t0 := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	tr.Start("1", t0)
	assert.True(t, tr.Active("1"))

	start, ok := tr.End("1")
	assert.True(t, ok)
	assert.Equal(t, t0, start)
	assert.False(t, tr.Active("1"))
	assert.Equal(t, 0, tr.Len())
}

func TestTrackerEndWithoutStart(t *testing.T) {
	tr := NewTracker()

	_, ok := tr.End("1")
	assert.False(t, ok)
}

func TestTrackerDuplicateStartMovesStart(t *testing.T) {
	tr := NewTracker()
	t0 := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	tr.Start("1", t0)
	tr.Start("1", t0.Add(5*time.Minute))
	assert.Equal(t, 1, tr.Len())

	start, ok := tr.End("1")
	assert.True(t, ok)
	assert.Equal(t, t0.Add(5*time.Minute), start)
}

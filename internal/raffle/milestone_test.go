package raffle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilestoneCrossings(t *testing.T) {
	set, err := NewMilestoneSet(5, 10, 15, 20, 25, 30)
	require.NoError(t, err)

	tests := []struct {
		name  string
		prev  int
		total int
		want  []int
	}{
		{name: "crosses several at once", prev: 0, total: 25, want: []int{5, 10, 15, 20, 25}},
		{name: "lands exactly on a milestone", prev: 9, total: 10, want: []int{10}},
		{name: "starting on a milestone does not repeat it", prev: 10, total: 14, want: nil},
		{name: "between milestones", prev: 11, total: 14, want: nil},
		{name: "past the last milestone", prev: 30, total: 80, want: nil},
		{name: "no change", prev: 7, total: 7, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, set.Crossings(tt.prev, tt.total))
		})
	}
}

func TestMilestoneCrossingsIgnoreInputOrder(t *testing.T) {
	a, err := NewMilestoneSet(30, 5, 25, 10, 20, 15)
	require.NoError(t, err)
	b, err := NewMilestoneSet(5, 10, 15, 20, 25, 30, 10)
	require.NoError(t, err)

	for range 3 {
		assert.Equal(t, []int{5, 10, 15, 20, 25}, a.Crossings(0, 25))
		assert.Equal(t, a.Crossings(0, 25), b.Crossings(0, 25))
	}
	assert.Equal(t, 6, b.Len())
}

func TestNewMilestoneSetRejectsNonPositive(t *testing.T) {
	_, err := NewMilestoneSet(5, 0)
	assert.ErrorIs(t, err, ErrInvalidMilestone)

	_, err = NewMilestoneSet(-1)
	assert.ErrorIs(t, err, ErrInvalidMilestone)
}

func TestMilestoneSetValuesIsCopy(t *testing.T) {
	set, err := NewMilestoneSet(10, 5)
	require.NoError(t, err)

	v := set.Values()
	v[0] = 99
	assert.Equal(t, []int{5, 10}, set.Values())
}

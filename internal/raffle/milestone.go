package raffle

import (
	"errors"
	"slices"
)

var ErrInvalidMilestone = errors.New("milestones must be positive")

// MilestoneSet is an immutable, sorted set of ticket checkpoints.
type MilestoneSet struct {
	values []int
}

// NewMilestoneSet copies, sorts and de-duplicates values.
func NewMilestoneSet(values ...int) (MilestoneSet, error) {
	sorted := slices.Clone(values)
	for _, v := range sorted {
		if v <= 0 {
			return MilestoneSet{}, ErrInvalidMilestone
		}
	}
	slices.Sort(sorted)
	return MilestoneSet{values: slices.Compact(sorted)}, nil
}

func (m MilestoneSet) Values() []int {
	return slices.Clone(m.values)
}

func (m MilestoneSet) Len() int {
	return len(m.values)
}

// Crossings returns, in ascending order, every milestone c with
// prev < c <= total. A single update can cross several milestones.
func (m MilestoneSet) Crossings(prev, total int) []int {
	if total <= prev {
		return nil
	}
	var crossed []int
	for _, v := range m.values {
		if v > prev && v <= total {
			crossed = append(crossed, v)
		}
	}
	return crossed
}

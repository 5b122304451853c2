package raffle

import (
	"cmp"
	"iter"
	"slices"
)

// Standing is one ranked leaderboard row. Rank starts at 1.
type Standing struct {
	Rank    int    `json:"rank"`
	User    UserID `json:"user_id"`
	Tickets int    `json:"tickets"`
}

// Snapshot ranks the ledger by tickets, highest first. Users with equal
// totals are ordered by ascending user ID, compared numerically for
// snowflakes, so the order is the same on every call. ok is false when
// nobody holds tickets.
func Snapshot(l *Ledger) ([]Standing, bool) {
	return rank(l.All())
}

func rank(entries iter.Seq2[UserID, int]) ([]Standing, bool) {
	var rows []Standing
	for u, n := range entries {
		if n <= 0 {
			continue
		}
		rows = append(rows, Standing{User: u, Tickets: n})
	}
	if len(rows) == 0 {
		return nil, false
	}

	slices.SortFunc(rows, func(a, b Standing) int {
		if c := cmp.Compare(b.Tickets, a.Tickets); c != 0 {
			return c
		}
		return compareUserIDs(a.User, b.User)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, true
}

// compareUserIDs orders decimal snowflakes numerically: a shorter ID is a
// smaller number.
func compareUserIDs(a, b UserID) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

package raffle

import (
	"math/rand/v2"
	"slices"
	"sort"
)

// Rand is the randomness source used for draws. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand draws from the runtime-seeded math/rand/v2 generator, so
// results differ between runs.
var DefaultRand Rand = globalRand{}

// Draw picks up to count distinct winners, each ticket being one equally
// likely entry. Picks that land on an already chosen user are discarded and
// retried. If fewer than count users hold tickets, all of them win. ok is
// false when no one holds a ticket.
func Draw(l *Ledger, count int, rng Rand) ([]UserID, bool) {
	if rng == nil {
		rng = DefaultRand
	}

	type entry struct {
		user UserID
		upto int // cumulative ticket count including this user
	}
	var users []UserID
	weights := make(map[UserID]int)
	for u, n := range l.All() {
		if n > 0 {
			users = append(users, u)
			weights[u] = n
		}
	}
	if len(users) == 0 {
		return nil, false
	}
	slices.SortFunc(users, compareUserIDs)

	pool := make([]entry, len(users))
	total := 0
	for i, u := range users {
		total += weights[u]
		pool[i] = entry{user: u, upto: total}
	}

	want := min(max(count, 1), len(users))
	winners := make([]UserID, 0, want)
	chosen := make(map[UserID]struct{}, want)
	for len(winners) < want {
		ticket := rng.IntN(total)
		idx := sort.Search(len(pool), func(i int) bool { return pool[i].upto > ticket })
		u := pool[idx].user
		if _, dup := chosen[u]; dup {
			continue
		}
		chosen[u] = struct{}{}
		winners = append(winners, u)
	}
	return winners, true
}

package raffle

import (
	"errors"
	"maps"
	"time"
)

// Notifier receives the events a presentation layer announces. Calls are
// made synchronously from the goroutine that caused the event, so
// implementations must not block.
type Notifier interface {
	MilestoneCrossed(user UserID, milestone int, total int)
	// LeaderboardReset reports the standings cleared by a reset. boundary is
	// the weekly instant it belongs to, or zero for an unscheduled reset.
	LeaderboardReset(boundary time.Time, final []Standing)
}

// Options configures an Engine.
type Options struct {
	Unit       time.Duration
	Milestones MilestoneSet
	Notifier   Notifier
	Rand       Rand
}

// Engine owns the session table and the ledger and ties them together.
type Engine struct {
	sessions   *Tracker
	ledger     *Ledger
	unit       time.Duration
	milestones MilestoneSet
	notifier   Notifier
	rng        Rand
}

// SessionResult reports what closing a voice session did.
type SessionResult struct {
	Start    time.Time
	Duration time.Duration
	Accrual  Accrual
	Accrued  bool
	Crossed  []int
}

var ErrInvalidUnit = errors.New("ticket unit must be positive")

func NewEngine(opts Options) (*Engine, error) {
	if opts.Unit <= 0 {
		return nil, ErrInvalidUnit
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Rand == nil {
		opts.Rand = DefaultRand
	}
	return &Engine{
		sessions:   NewTracker(),
		ledger:     NewLedger(),
		unit:       opts.Unit,
		milestones: opts.Milestones,
		notifier:   opts.Notifier,
		rng:        opts.Rand,
	}, nil
}

func (e *Engine) Unit() time.Duration      { return e.unit }
func (e *Engine) Milestones() MilestoneSet { return e.milestones }
func (e *Engine) InVoice(user UserID) bool { return e.sessions.Active(user) }
func (e *Engine) Balance(user UserID) int  { return e.ledger.Balance(user) }
func (e *Engine) Participants() int        { return e.ledger.Len() }
func (e *Engine) OpenSessions() int        { return e.sessions.Len() }

func (e *Engine) PresenceStart(user UserID, now time.Time) {
	e.sessions.Start(user, now)
}

// PresenceEnd closes the user's session and credits the tickets it earned.
// ok is false when there was no open session for the user. One
// MilestoneCrossed notification is sent per crossed milestone.
func (e *Engine) PresenceEnd(user UserID, now time.Time) (SessionResult, bool) {
	start, ok := e.sessions.End(user)
	if !ok {
		return SessionResult{}, false
	}
	res := SessionResult{Start: start, Duration: now.Sub(start)}
	res.Accrual, res.Accrued = e.ledger.Accrue(user, res.Duration, e.unit)
	if !res.Accrued {
		return res, true
	}

	res.Crossed = e.milestones.Crossings(res.Accrual.Previous, res.Accrual.Total)
	for _, m := range res.Crossed {
		e.notifier.MilestoneCrossed(user, m, res.Accrual.Total)
	}
	return res, true
}

func (e *Engine) Leaderboard() ([]Standing, bool) {
	return Snapshot(e.ledger)
}

func (e *Engine) DrawWinners(count int) ([]UserID, bool) {
	return Draw(e.ledger, count, e.rng)
}

// Reset clears every ticket total and reports the standings that were in
// place just before. Open voice sessions are kept, so time spent across the
// reset counts toward the new week.
func (e *Engine) Reset() {
	e.ResetAt(time.Time{})
}

// ResetAt is Reset on behalf of the weekly boundary at boundary.
func (e *Engine) ResetAt(boundary time.Time) {
	final, _ := rank(maps.All(e.ledger.Drain()))
	e.notifier.LeaderboardReset(boundary, final)
}

type nopNotifier struct{}

func (nopNotifier) MilestoneCrossed(UserID, int, int)      {}
func (nopNotifier) LeaderboardReset(time.Time, []Standing) {}

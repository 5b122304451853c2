package raffle

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// WeeklyInstant is a weekday and wall-clock minute in a fixed location.
type WeeklyInstant struct {
	Weekday  time.Weekday
	Hour     int
	Minute   int
	Location *time.Location
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

func (w WeeklyInstant) location() *time.Location {
	if w.Location == nil {
		return time.Local
	}
	return w.Location
}

// Previous returns the latest occurrence of w at or before now.
func (w WeeklyInstant) Previous(now time.Time) time.Time {
	now = now.In(w.location())
	back := (int(now.Weekday()) - int(w.Weekday) + 7) % 7
	t := time.Date(now.Year(), now.Month(), now.Day()-back, w.Hour, w.Minute, 0, 0, w.location())
	if t.After(now) {
		t = t.AddDate(0, 0, -7)
	}
	return t
}

// Next returns the earliest occurrence of w strictly after now.
func (w WeeklyInstant) Next(now time.Time) time.Time {
	return w.Previous(now).AddDate(0, 0, 7)
}

func (w WeeklyInstant) String() string {
	return fmt.Sprintf("%s %02d:%02d %s", w.Weekday, w.Hour, w.Minute, w.location())
}

// Resetter is what the scheduler clears. boundary is the weekly instant the
// reset belongs to.
type Resetter interface {
	ResetAt(boundary time.Time)
}

// Scheduler checks the clock periodically and resets its target once per
// weekly boundary. Repeated checks inside the same boundary window do not
// fire again.
type Scheduler struct {
	instant  WeeklyInstant
	target   Resetter
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	lastFired time.Time

	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
	ticker   *time.Ticker
}

func NewScheduler(instant WeeklyInstant, target Resetter, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		instant:  instant,
		target:   target,
		interval: interval,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// window is how long after a boundary a check may still fire for it.
func (s *Scheduler) window() time.Duration {
	return max(s.interval, time.Minute)
}

// Check resets the target if now falls inside a boundary window that has
// not fired yet, and reports whether it did.
func (s *Scheduler) Check(now time.Time) bool {
	boundary := s.instant.Previous(now)
	if now.Sub(boundary) >= s.window() {
		return false
	}

	s.mu.Lock()
	if !boundary.After(s.lastFired) {
		s.mu.Unlock()
		return false
	}
	s.lastFired = boundary
	s.mu.Unlock()

	logrus.WithField("boundary", boundary.Format(time.RFC3339)).Info("weekly leaderboard reset")
	s.target.ResetAt(boundary)
	return true
}

func (s *Scheduler) NextReset() time.Time {
	return s.instant.Next(s.now())
}

func (s *Scheduler) Start() {
	if s == nil {
		return
	}
	s.ticker = time.NewTicker(s.interval)
	s.done = make(chan struct{})
	logrus.Infof("reset scheduler started: every %s, next reset %s", s.instant, s.NextReset().Format(time.RFC1123))
	go s.loop()
}

// Stop ends the loop and waits for a reset in progress to finish.
func (s *Scheduler) Stop() {
	if s == nil {
		return
	}
	s.stopOnce.Do(func() {
		close(s.stopChan)
		if s.ticker != nil {
			s.ticker.Stop()
		}
	})
	if s.done != nil {
		<-s.done
	}
}

func (s *Scheduler) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.ticker.C:
			s.Check(s.now())
		case <-s.stopChan:
			return
		}
	}
}

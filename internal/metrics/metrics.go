// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rafflebot_tickets_awarded_total",
			Help: "Total raffle tickets credited for voice time",
		},
	)

	sessionsClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rafflebot_voice_sessions_closed_total",
			Help: "Voice sessions closed, by outcome",
		},
		[]string{"result"},
	)

	milestonesCrossed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rafflebot_milestones_crossed_total",
			Help: "Milestone crossings announced",
		},
		[]string{"milestone"},
	)

	draws = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rafflebot_draws_total",
			Help: "Raffle draws, by outcome",
		},
		[]string{"result"},
	)

	resets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rafflebot_leaderboard_resets_total",
			Help: "Weekly leaderboard resets",
		},
	)

	commandsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rafflebot_commands_total",
			Help: "Commands handled, by name and surface",
		},
		[]string{"command", "surface"},
	)

	participants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rafflebot_ledger_participants",
			Help: "Users currently holding tickets",
		},
	)
)

const (
	SessionAccrued   = "accrued"
	SessionBelowUnit = "below_unit"
	SessionUnmatched = "unmatched"

	DrawDrawn = "drawn"
	DrawEmpty = "empty"
)

func SessionClosed(result string, tickets int) {
	sessionsClosed.WithLabelValues(result).Inc()
	if tickets > 0 {
		ticketsAwarded.Add(float64(tickets))
	}
}

func MilestoneCrossed(milestone int) {
	milestonesCrossed.WithLabelValues(strconv.Itoa(milestone)).Inc()
}

func Draw(result string) {
	draws.WithLabelValues(result).Inc()
}

func Reset() {
	resets.Inc()
	participants.Set(0)
}

// Command counts a handled command. surface is "text" or "slash".
func Command(name, surface string) {
	commandsHandled.WithLabelValues(name, surface).Inc()
}

func SetParticipants(n int) {
	participants.Set(float64(n))
}

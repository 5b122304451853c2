package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSessionClosed(t *testing.T) {
	awarded := testutil.ToFloat64(ticketsAwarded)
	accrued := testutil.ToFloat64(sessionsClosed.WithLabelValues(SessionAccrued))
	below := testutil.ToFloat64(sessionsClosed.WithLabelValues(SessionBelowUnit))

	SessionClosed(SessionAccrued, 4)
	SessionClosed(SessionBelowUnit, 0)

	assert.Equal(t, awarded+4, testutil.ToFloat64(ticketsAwarded))
	assert.Equal(t, accrued+1, testutil.ToFloat64(sessionsClosed.WithLabelValues(SessionAccrued)))
	assert.Equal(t, below+1, testutil.ToFloat64(sessionsClosed.WithLabelValues(SessionBelowUnit)))
}

func TestResetClearsParticipants(t *testing.T) {
	before := testutil.ToFloat64(resets)

	SetParticipants(7)
	assert.Equal(t, 7.0, testutil.ToFloat64(participants))

	Reset()
	assert.Zero(t, testutil.ToFloat64(participants))
	assert.Equal(t, before+1, testutil.ToFloat64(resets))
}

func TestMilestoneAndCommandLabels(t *testing.T) {
	MilestoneCrossed(25)
	Command("draw", "slash")

	assert.GreaterOrEqual(t, testutil.ToFloat64(milestonesCrossed.WithLabelValues("25")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(commandsHandled.WithLabelValues("draw", "slash")), 1.0)
}

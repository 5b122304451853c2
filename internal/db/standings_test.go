package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/susu3304/rafflebot/internal/raffle"
)

var weekEnding = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewWithPool(mock), mock
}

func TestArchiveStandingsEmptyIsNoop(t *testing.T) {
	database, mock := newMockDB(t)

	require.NoError(t, database.ArchiveStandings(context.Background(), weekEnding, nil))
	require.NoError(t, (&DB{}).ArchiveStandings(context.Background(), weekEnding, []raffle.Standing{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveStandingsCommits(t *testing.T) {
	database, mock := newMockDB(t)
	standings := []raffle.Standing{
		{Rank: 1, User: "100", Tickets: 5},
		{Rank: 2, User: "30", Tickets: 3},
	}

	mock.ExpectBegin()
	for _, s := range standings {
		mock.ExpectExec("INSERT INTO weekly_standings").
			WithArgs(weekEnding, s.Rank, string(s.User), s.Tickets).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	require.NoError(t, database.ArchiveStandings(context.Background(), weekEnding, standings))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveStandingsRollsBackOnInsertError(t *testing.T) {
	database, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO weekly_standings").
		WithArgs(weekEnding, 1, "100", 5).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := database.ArchiveStandings(context.Background(), weekEnding, []raffle.Standing{
		{Rank: 1, User: "100", Tickets: 5},
		{Rank: 2, User: "30", Tickets: 3},
	})
	require.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLastStandingsNoArchive(t *testing.T) {
	database, mock := newMockDB(t)

	mock.ExpectQuery("SELECT week_ending FROM weekly_standings").
		WillReturnRows(pgxmock.NewRows([]string{"week_ending"}))

	_, err := database.LastStandings(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNoArchive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLastStandings(t *testing.T) {
	database, mock := newMockDB(t)

	mock.ExpectQuery("SELECT week_ending FROM weekly_standings").
		WillReturnRows(pgxmock.NewRows([]string{"week_ending"}).AddRow(weekEnding))
	mock.ExpectQuery("SELECT rank, user_id, tickets FROM weekly_standings").
		WithArgs(weekEnding, 2).
		WillReturnRows(pgxmock.NewRows([]string{"rank", "user_id", "tickets"}).
			AddRow(1, "100", 5).
			AddRow(2, "30", 3))

	week, err := database.LastStandings(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, week.WeekEnding.Equal(weekEnding))
	assert.Equal(t, []raffle.Standing{
		{Rank: 1, User: "100", Tickets: 5},
		{Rank: 2, User: "30", Tickets: 3},
	}, week.Standings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordDraw(t *testing.T) {
	database, mock := newMockDB(t)
	drawnAt := weekEnding.Add(-time.Hour)

	mock.ExpectQuery("INSERT INTO draws").
		WithArgs(drawnAt, 3, []string{"100", "30"}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "drawn_at", "requested", "winners"}).
			AddRow(int64(7), drawnAt, 3, []string{"100", "30"}))

	d, err := database.RecordDraw(context.Background(), drawnAt, 3, []raffle.UserID{"100", "30"})
	require.NoError(t, err)
	assert.Equal(t, &Draw{ID: 7, DrawnAt: drawnAt, Requested: 3, Winners: []string{"100", "30"}}, d)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentDraws(t *testing.T) {
	database, mock := newMockDB(t)

	mock.ExpectQuery("SELECT id, drawn_at, requested, winners FROM draws").
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"id", "drawn_at", "requested", "winners"}).
			AddRow(int64(2), weekEnding, 1, []string{"30"}).
			AddRow(int64(1), weekEnding.Add(-time.Hour), 2, []string{"100", "30"}))

	draws, err := database.RecentDraws(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, draws, 2)
	assert.Equal(t, int64(2), draws[0].ID)
	assert.Equal(t, []string{"100", "30"}, draws[1].Winners)
	assert.NoError(t, mock.ExpectationsWereMet())
}

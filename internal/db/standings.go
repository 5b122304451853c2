package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/susu3304/rafflebot/internal/raffle"
)

var ErrNoArchive = errors.New("no archived standings")

// ArchivedWeek is a leaderboard saved at a weekly reset.
type ArchivedWeek struct {
	WeekEnding time.Time         `json:"week_ending"`
	Standings  []raffle.Standing `json:"standings"`
}

type Draw struct {
	ID        int64     `json:"id"`
	DrawnAt   time.Time `json:"drawn_at"`
	Requested int       `json:"requested"`
	Winners   []string  `json:"winners"`
}

// ArchiveStandings stores the final standings of a week in one transaction.
// An empty leaderboard stores nothing.
func (db *DB) ArchiveStandings(ctx context.Context, weekEnding time.Time, standings []raffle.Standing) error {
	if len(standings) == 0 {
		return nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, s := range standings {
		_, err := tx.Exec(ctx,
			`INSERT INTO weekly_standings (week_ending, rank, user_id, tickets)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (week_ending, rank) DO UPDATE SET user_id = EXCLUDED.user_id, tickets = EXCLUDED.tickets`,
			weekEnding, s.Rank, string(s.User), s.Tickets,
		)
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to insert standings: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit standings: %w", err)
	}
	return nil
}

// LastStandings returns the most recently archived week, at most limit rows.
func (db *DB) LastStandings(ctx context.Context, limit int) (*ArchivedWeek, error) {
	var week ArchivedWeek
	err := db.pool.QueryRow(ctx,
		`SELECT week_ending FROM weekly_standings ORDER BY week_ending DESC LIMIT 1`,
	).Scan(&week.WeekEnding)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoArchive
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx,
		`SELECT rank, user_id, tickets FROM weekly_standings
		WHERE week_ending = $1 ORDER BY rank LIMIT $2`,
		week.WeekEnding, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s raffle.Standing
		var userID string
		if err := rows.Scan(&s.Rank, &userID, &s.Tickets); err != nil {
			return nil, err
		}
		s.User = raffle.UserID(userID)
		week.Standings = append(week.Standings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(week.Standings) == 0 {
		return nil, ErrNoArchive
	}

	return &week, nil
}

func (db *DB) RecordDraw(ctx context.Context, drawnAt time.Time, requested int, winners []raffle.UserID) (*Draw, error) {
	ids := make([]string, len(winners))
	for i, w := range winners {
		ids[i] = string(w)
	}

	var d Draw
	err := db.pool.QueryRow(ctx,
		`INSERT INTO draws (drawn_at, requested, winners)
		VALUES ($1, $2, $3)
		RETURNING id, drawn_at, requested, winners`,
		drawnAt, requested, ids,
	).Scan(&d.ID, &d.DrawnAt, &d.Requested, &d.Winners)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (db *DB) RecentDraws(ctx context.Context, limit int) ([]Draw, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, drawn_at, requested, winners FROM draws ORDER BY drawn_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var draws []Draw
	for rows.Next() {
		var d Draw
		if err := rows.Scan(&d.ID, &d.DrawnAt, &d.Requested, &d.Winners); err != nil {
			return nil, err
		}
		draws = append(draws, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return draws, nil
}

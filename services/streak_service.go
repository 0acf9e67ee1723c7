package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nutriTrackAPI/internal/streak"
)

type StreakService struct {
	db *pgxpool.Pool
}

func NewStreakService(db *pgxpool.Pool) *StreakService {
	return &StreakService{db: db}
}

// RecordLog counts a food log on logDate toward the user's streak and
// persists the result. Repeated logs on the same day leave the record
// untouched.
func (s *StreakService) RecordLog(ctx context.Context, userID uuid.UUID, logDate string) (*streak.Streak, error) {
	if _, err := time.Parse(streak.DateLayout, logDate); err != nil {
		return nil, fmt.Errorf("invalid log date %q: %w", logDate, err)
	}

	current, err := s.findStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := streak.Apply(current, userID, logDate, time.Now().UTC())
	if next == current {
		// Same-day repeat; nothing to persist.
		return current, nil
	}

	query := `
	INSERT INTO user_streaks (user_id, current_streak, longest_streak, last_log_date, total_days_logged, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id)
	DO UPDATE SET
		current_streak = $2,
		longest_streak = $3,
		last_log_date = $4,
		total_days_logged = $5,
		updated_at = $6
	`

	_, err = s.db.Exec(ctx, query,
		next.UserID, next.CurrentStreak, next.LongestStreak,
		next.LastLogDate, next.TotalDaysLogged, next.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert streak: %w", err)
	}

	return next, nil
}

// GetStreak returns the user's streak record, or a zero-value record if
// they have never logged.
func (s *StreakService) GetStreak(ctx context.Context, userID uuid.UUID) (*streak.Streak, error) {
	rec, err := s.findStreak(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return &streak.Streak{UserID: userID}, nil
	}
	return rec, nil
}

// findStreak returns nil (no error) when the user has no streak record.
func (s *StreakService) findStreak(ctx context.Context, userID uuid.UUID) (*streak.Streak, error) {
	query := `
	SELECT user_id, current_streak, longest_streak, last_log_date, total_days_logged, updated_at
	FROM user_streaks
	WHERE user_id = $1
	`

	rec := &streak.Streak{}
	var lastLogDate *time.Time
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&rec.UserID, &rec.CurrentStreak, &rec.LongestStreak,
		&lastLogDate, &rec.TotalDaysLogged, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}

	if lastLogDate != nil {
		rec.LastLogDate = lastLogDate.Format(streak.DateLayout)
	}

	return rec, nil
}

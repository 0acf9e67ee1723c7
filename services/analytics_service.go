package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"nutriTrackAPI/internal/analytics"
)

type AnalyticsService struct {
	db      *pgxpool.Pool
	streaks *StreakService
}

func NewAnalyticsService(db *pgxpool.Pool, streaks *StreakService) *AnalyticsService {
	return &AnalyticsService{db: db, streaks: streaks}
}

// Weekly buckets the user's food log into calendar weeks, most recent
// first. weeksBack defaults to 4 when non-positive.
func (s *AnalyticsService) Weekly(ctx context.Context, userID uuid.UUID, weeksBack int) ([]*analytics.WeeklyAnalytics, error) {
	if weeksBack <= 0 {
		weeksBack = 4
	}

	today := time.Now().UTC()

	entries, err := s.entriesSince(ctx, userID, analytics.WeeklyWindowStart(today, weeksBack))
	if err != nil {
		return nil, err
	}

	return analytics.WeeklyBuckets(entries, today, weeksBack), nil
}

// Monthly buckets the user's food log into calendar months, most recent
// first. monthsBack defaults to 6 when non-positive.
func (s *AnalyticsService) Monthly(ctx context.Context, userID uuid.UUID, monthsBack int) ([]*analytics.MonthlyAnalytics, error) {
	if monthsBack <= 0 {
		monthsBack = 6
	}

	today := time.Now().UTC()

	entries, err := s.entriesSince(ctx, userID, analytics.MonthlyWindowStart(today, monthsBack))
	if err != nil {
		return nil, err
	}

	return analytics.MonthlyBuckets(entries, today, monthsBack), nil
}

// Summary rolls up streaks, lifetime counts and month-to-date intake.
func (s *AnalyticsService) Summary(ctx context.Context, userID uuid.UUID) (*analytics.Summary, error) {
	rec, err := s.streaks.GetStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &analytics.Summary{
		CurrentStreak:   rec.CurrentStreak,
		LongestStreak:   rec.LongestStreak,
		TotalDaysLogged: rec.TotalDaysLogged,
	}

	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM food_entries WHERE user_id = $1`, userID,
	).Scan(&summary.TotalEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to count food entries: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_achievements WHERE user_id = $1`, userID,
	).Scan(&summary.TotalAchievements)
	if err != nil {
		return nil, fmt.Errorf("failed to count achievements: %w", err)
	}

	monthStart := analytics.MonthlyWindowStart(time.Now().UTC(), 1)

	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_calories), 0), COALESCE(SUM(total_protein), 0)
		FROM food_entries
		WHERE user_id = $1 AND date >= $2`,
		userID, monthStart,
	).Scan(&summary.ThisMonthEntries, &summary.ThisMonthCalories, &summary.ThisMonthProtein)
	if err != nil {
		return nil, fmt.Errorf("failed to sum month-to-date intake: %w", err)
	}

	summary.ThisMonthCalories = round1(summary.ThisMonthCalories)
	summary.ThisMonthProtein = round1(summary.ThisMonthProtein)

	return summary, nil
}

// entriesSince fetches entries on or after the given ISO date. The
// lower bound travels as a date string so the DATE column is never
// compared against a timestamp.
func (s *AnalyticsService) entriesSince(ctx context.Context, userID uuid.UUID, since string) ([]analytics.Entry, error) {
	query := `
	SELECT to_char(date, 'YYYY-MM-DD'), total_calories, total_protein
	FROM food_entries
	WHERE user_id = $1 AND date >= $2
	`

	rows, err := s.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries for analytics: %w", err)
	}
	defer rows.Close()

	var entries []analytics.Entry
	for rows.Next() {
		var e analytics.Entry
		if err := rows.Scan(&e.Date, &e.Calories, &e.Protein); err != nil {
			return nil, fmt.Errorf("failed to scan analytics entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analytics entries: %w", err)
	}

	return entries, nil
}

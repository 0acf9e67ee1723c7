package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"nutriTrackAPI/internal/food"
	"nutriTrackAPI/internal/nutrition"
	"nutriTrackAPI/internal/streak"
)

type FoodService struct {
	db           *pgxpool.Pool
	users        *UserService
	streaks      *StreakService
	achievements *AchievementService
}

func NewFoodService(db *pgxpool.Pool, users *UserService, streaks *StreakService, achievements *AchievementService) *FoodService {
	return &FoodService{
		db:           db,
		users:        users,
		streaks:      streaks,
		achievements: achievements,
	}
}

// LogEntry stores a food entry, counts the day toward the user's streak
// and reports any achievements the log unlocked. The date defaults to
// today (UTC) when the request omits it.
func (s *FoodService) LogEntry(ctx context.Context, userID uuid.UUID, req *food.LogEntryRequest) (*food.LogResult, error) {
	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format(streak.DateLayout)
	}
	if _, err := time.Parse(streak.DateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	entry := &food.Entry{
		ID:                 uuid.New(),
		UserID:             userID,
		FoodName:           req.FoodName,
		CaloriesPer100g:    req.CaloriesPer100g,
		ProteinPer100g:     req.ProteinPer100g,
		CarbsPer100g:       req.CarbsPer100g,
		FatPer100g:         req.FatPer100g,
		EstimatedPortionG:  req.EstimatedPortionG,
		TotalCalories:      req.TotalCalories,
		TotalProtein:       req.TotalProtein,
		ImageBase64:        req.ImageBase64,
		AnalysisConfidence: req.AnalysisConfidence,
		LoggedAt:           time.Now().UTC(),
		Date:               date,
	}

	query := `
	INSERT INTO food_entries (id, user_id, food_name, calories_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g, estimated_portion_g, total_calories, total_protein, image_base64, analysis_confidence, logged_at, date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := s.db.Exec(ctx, query,
		entry.ID, entry.UserID, entry.FoodName, entry.CaloriesPer100g, entry.ProteinPer100g,
		entry.CarbsPer100g, entry.FatPer100g, entry.EstimatedPortionG, entry.TotalCalories,
		entry.TotalProtein, entry.ImageBase64, entry.AnalysisConfidence, entry.LoggedAt, entry.Date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert food entry: %w", err)
	}

	if _, err := s.streaks.RecordLog(ctx, userID, date); err != nil {
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}

	newly, err := s.achievements.CheckAndUnlock(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check achievements: %w", err)
	}

	return &food.LogResult{Entry: *entry, NewlyUnlocked: newly}, nil
}

// ListEntries returns the user's food entries, newest first, optionally
// restricted to a single day. Capped at 100 rows.
func (s *FoodService) ListEntries(ctx context.Context, userID uuid.UUID, date string) ([]*food.Entry, error) {
	query := `
	SELECT id, user_id, food_name, calories_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g, estimated_portion_g, total_calories, total_protein, image_base64, analysis_confidence, logged_at, to_char(date, 'YYYY-MM-DD')
	FROM food_entries
	WHERE user_id = $1
	`
	args := []any{userID}

	if date != "" {
		if _, err := time.Parse(streak.DateLayout, date); err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", date, err)
		}
		query += ` AND date = $2`
		args = append(args, date)
	}

	query += ` ORDER BY logged_at DESC LIMIT 100`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch food entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*food.Entry, 0)
	for rows.Next() {
		e := &food.Entry{}
		err := rows.Scan(
			&e.ID, &e.UserID, &e.FoodName, &e.CaloriesPer100g, &e.ProteinPer100g,
			&e.CarbsPer100g, &e.FatPer100g, &e.EstimatedPortionG, &e.TotalCalories,
			&e.TotalProtein, &e.ImageBase64, &e.AnalysisConfidence, &e.LoggedAt, &e.Date,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating food entries: %w", err)
	}

	return entries, nil
}

// DailyStats sums one day's intake against the user's personal targets.
// Goals count as met at 90% of the target or better.
func (s *FoodService) DailyStats(ctx context.Context, userID uuid.UUID, date string) (*food.DailyStats, error) {
	if date == "" {
		date = time.Now().UTC().Format(streak.DateLayout)
	}
	if _, err := time.Parse(streak.DateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var calories, protein float64
	err = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_calories), 0), COALESCE(SUM(total_protein), 0)
		FROM food_entries
		WHERE user_id = $1 AND date = $2`, userID, date,
	).Scan(&calories, &protein)
	if err != nil {
		return nil, fmt.Errorf("failed to sum daily intake: %w", err)
	}

	recCalories := nutrition.DailyCalories(u)
	recProtein := nutrition.DailyProtein(u)

	return &food.DailyStats{
		Date:                date,
		TotalCalories:       round1(calories),
		TotalProtein:        round1(protein),
		RecommendedCalories: round1(recCalories),
		RecommendedProtein:  round1(recProtein),
		CalorieGoalMet:      calories >= recCalories*0.9,
		ProteinGoalMet:      protein >= recProtein*0.9,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

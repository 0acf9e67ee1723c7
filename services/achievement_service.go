package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nutriTrackAPI/internal/achievement"
	"nutriTrackAPI/internal/nutrition"
	"nutriTrackAPI/internal/streak"
	"nutriTrackAPI/internal/user"
)

type AchievementService struct {
	db *pgxpool.Pool
}

func NewAchievementService(db *pgxpool.Pool) *AchievementService {
	return &AchievementService{db: db}
}

// SeedCatalog inserts the fixed achievement catalog, keyed by name.
// Safe to run on every startup; existing rows are left alone.
func (s *AchievementService) SeedCatalog(ctx context.Context) error {
	query := `
	INSERT INTO achievements (id, name, description, badge_icon, category, requirement_type, requirement_value, points, rarity, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	ON CONFLICT (name) DO NOTHING
	`

	for _, a := range achievement.Catalog {
		_, err := s.db.Exec(ctx, query,
			uuid.New(), a.Name, a.Description, a.BadgeIcon, a.Category,
			a.RequirementType, a.RequirementValue, a.Points, a.Rarity,
		)
		if err != nil {
			return fmt.Errorf("failed to seed achievement %q: %w", a.Name, err)
		}
	}

	return nil
}

// CheckAndUnlock evaluates every not-yet-unlocked rule against the
// user's current stats and records the ones that are now satisfied.
// Returns only the achievements unlocked by this call; a repeat call
// with no new activity returns an empty list.
func (s *AchievementService) CheckAndUnlock(ctx context.Context, userID uuid.UUID) ([]*achievement.Achievement, error) {
	snapshot, err := s.streakSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		// No logs yet, no achievements possible.
		return []*achievement.Achievement{}, nil
	}

	unlocked, err := s.unlockedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	rules, err := s.listRules(ctx)
	if err != nil {
		return nil, err
	}

	progress := achievement.Progress{
		CurrentStreak:   snapshot.CurrentStreak,
		TotalDaysLogged: snapshot.TotalDaysLogged,
	}

	// The protein-day count scans the whole food history, so only
	// compute it when a protein rule is still locked.
	if achievement.NeedsProteinCount(rules, unlocked) {
		progress.ProteinDays, err = s.countProteinGoalDays(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal streak snapshot: %w", err)
	}

	newly := make([]*achievement.Achievement, 0)
	for _, rule := range achievement.Evaluate(rules, unlocked, progress) {
		insert := `
		INSERT INTO user_achievements (id, user_id, achievement_id, unlocked_at, progress_when_unlocked)
		VALUES ($1, $2, $3, NOW(), $4)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
		`

		tag, err := s.db.Exec(ctx, insert, uuid.New(), userID, rule.ID, snapshotJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to unlock achievement %q: %w", rule.Name, err)
		}
		if tag.RowsAffected() == 0 {
			// Lost a race with a concurrent unlock; not newly unlocked here.
			continue
		}

		newly = append(newly, rule)
	}

	return newly, nil
}

// ListWithStatus returns the whole catalog annotated with the user's
// unlock state, unlocked first.
func (s *AchievementService) ListWithStatus(ctx context.Context, userID uuid.UUID) ([]*achievement.AchievementWithStatus, error) {
	query := `
	SELECT
		a.id,
		a.name,
		a.description,
		a.badge_icon,
		a.category,
		a.requirement_type,
		a.requirement_value,
		a.points,
		a.rarity,
		a.created_at,
		CASE WHEN ua.id IS NOT NULL THEN true ELSE false END as unlocked,
		ua.unlocked_at
	FROM achievements a
	LEFT JOIN user_achievements ua ON a.id = ua.achievement_id AND ua.user_id = $1
	ORDER BY unlocked DESC, a.requirement_value ASC, a.name ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievements: %w", err)
	}
	defer rows.Close()

	achievements := make([]*achievement.AchievementWithStatus, 0)
	for rows.Next() {
		ach := &achievement.AchievementWithStatus{}
		err := rows.Scan(
			&ach.ID, &ach.Name, &ach.Description, &ach.BadgeIcon, &ach.Category,
			&ach.RequirementType, &ach.RequirementValue, &ach.Points, &ach.Rarity,
			&ach.CreatedAt, &ach.Unlocked, &ach.UnlockedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, ach)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievements: %w", err)
	}

	return achievements, nil
}

// ListUnlocked returns only the achievements the user has unlocked,
// oldest unlock first.
func (s *AchievementService) ListUnlocked(ctx context.Context, userID uuid.UUID) ([]*achievement.AchievementWithStatus, error) {
	query := `
	SELECT
		a.id,
		a.name,
		a.description,
		a.badge_icon,
		a.category,
		a.requirement_type,
		a.requirement_value,
		a.points,
		a.rarity,
		a.created_at,
		ua.unlocked_at
	FROM user_achievements ua
	JOIN achievements a ON a.id = ua.achievement_id
	WHERE ua.user_id = $1
	ORDER BY ua.unlocked_at ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unlocked achievements: %w", err)
	}
	defer rows.Close()

	achievements := make([]*achievement.AchievementWithStatus, 0)
	for rows.Next() {
		ach := &achievement.AchievementWithStatus{Unlocked: true}
		err := rows.Scan(
			&ach.ID, &ach.Name, &ach.Description, &ach.BadgeIcon, &ach.Category,
			&ach.RequirementType, &ach.RequirementValue, &ach.Points, &ach.Rarity,
			&ach.CreatedAt, &ach.UnlockedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, ach)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievements: %w", err)
	}

	return achievements, nil
}

// streakSnapshot returns nil when the user has never logged.
func (s *AchievementService) streakSnapshot(ctx context.Context, userID uuid.UUID) (*streak.Streak, error) {
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

func (s *AchievementService) unlockedIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	rows, err := s.db.Query(ctx, `SELECT achievement_id FROM user_achievements WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unlocked ids: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan unlocked id: %w", err)
		}
		unlocked[id] = struct{}{}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unlocked ids: %w", err)
	}

	return unlocked, nil
}

// listRules reads the catalog in a stable order so the newly-unlocked
// list is deterministic.
func (s *AchievementService) listRules(ctx context.Context) ([]*achievement.Achievement, error) {
	query := `
	SELECT id, name, description, badge_icon, category, requirement_type, requirement_value, points, rarity, created_at
	FROM achievements
	ORDER BY requirement_value ASC, name ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievement catalog: %w", err)
	}
	defer rows.Close()

	var rules []*achievement.Achievement
	for rows.Next() {
		a := &achievement.Achievement{}
		err := rows.Scan(
			&a.ID, &a.Name, &a.Description, &a.BadgeIcon, &a.Category,
			&a.RequirementType, &a.RequirementValue, &a.Points, &a.Rarity, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement rule: %w", err)
		}
		rules = append(rules, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievement rules: %w", err)
	}

	return rules, nil
}

// countProteinGoalDays counts distinct days whose summed protein reached
// at least 90% of the user's daily protein target.
func (s *AchievementService) countProteinGoalDays(ctx context.Context, userID uuid.UUID) (int, error) {
	u := &user.User{}
	err := s.db.QueryRow(ctx, `
		SELECT age, gender, height_cm, weight_kg, activity_level, goal
		FROM users
		WHERE id = $1`, userID,
	).Scan(&u.Age, &u.Gender, &u.HeightCm, &u.WeightKg, &u.ActivityLevel, &u.Goal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get user for protein goal: %w", err)
	}

	threshold := nutrition.DailyProtein(u) * 0.9

	query := `
	SELECT COUNT(*)
	FROM (
		SELECT date
		FROM food_entries
		WHERE user_id = $1
		GROUP BY date
		HAVING SUM(total_protein) >= $2
	) protein_days
	`

	var count int
	err = s.db.QueryRow(ctx, query, userID, threshold).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count protein goal days: %w", err)
	}

	return count, nil
}

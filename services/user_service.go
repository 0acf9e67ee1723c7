package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nutriTrackAPI/internal/nutrition"
	"nutriTrackAPI/internal/user"
)

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	query := `
	SELECT id, email, password_hash, name, age, gender, height_cm, weight_kg, activity_level, goal, goal_weight_kg, created_at, last_login
	FROM users
	WHERE id = $1
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Age, &u.Gender,
		&u.HeightCm, &u.WeightKg, &u.ActivityLevel, &u.Goal, &u.GoalWeightKg,
		&u.CreatedAt, &u.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error) {
	candidate := &user.User{
		Age:           req.Age,
		Gender:        req.Gender,
		HeightCm:      req.HeightCm,
		WeightKg:      req.WeightKg,
		ActivityLevel: req.ActivityLevel,
		Goal:          req.Goal,
	}
	if _, err := nutrition.CalculateTargets(candidate); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	query := `
	UPDATE users
	SET
		name = $2,
		age = $3,
		gender = $4,
		height_cm = $5,
		weight_kg = $6,
		activity_level = $7,
		goal = $8,
		goal_weight_kg = $9
	WHERE id = $1
	RETURNING id, email, password_hash, name, age, gender, height_cm, weight_kg, activity_level, goal, goal_weight_kg, created_at, last_login
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query,
		userID, req.Name, req.Age, req.Gender, req.HeightCm, req.WeightKg,
		req.ActivityLevel, req.Goal, req.GoalWeightKg,
	).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Age, &u.Gender,
		&u.HeightCm, &u.WeightKg, &u.ActivityLevel, &u.Goal, &u.GoalWeightKg,
		&u.CreatedAt, &u.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

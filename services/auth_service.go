package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"nutriTrackAPI/internal/nutrition"
	"nutriTrackAPI/internal/user"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrEmailTaken = errors.New("email already registered")

type AuthService struct {
	db        *pgxpool.Pool
	jwtSecret []byte
	jwtExpiry time.Duration
}

func NewAuthService(db *pgxpool.Pool, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: 7 * 24 * time.Hour,
	}
}

func (s *AuthService) Signup(ctx context.Context, req *user.SignupRequest) (*user.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	u := &user.User{
		ID:            uuid.New(),
		Email:         email,
		Name:          req.Name,
		Age:           req.Age,
		Gender:        req.Gender,
		HeightCm:      req.HeightCm,
		WeightKg:      req.WeightKg,
		ActivityLevel: req.ActivityLevel,
		Goal:          req.Goal,
		GoalWeightKg:  req.GoalWeightKg,
		CreatedAt:     time.Now().UTC(),
	}

	// Reject biometrics the target calculator cannot work with.
	if _, err := nutrition.CalculateTargets(u); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	query := `
	INSERT INTO users (id, email, password_hash, name, age, gender, height_cm, weight_kg, activity_level, goal, goal_weight_kg, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = s.db.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Age, u.Gender,
		u.HeightCm, u.WeightKg, u.ActivityLevel, u.Goal, u.GoalWeightKg, u.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.generateToken(u.ID)
	if err != nil {
		return nil, err
	}

	return &user.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        u,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest) (*user.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	query := `
	SELECT id, email, password_hash, name, age, gender, height_cm, weight_kg, activity_level, goal, goal_weight_kg, created_at, last_login
	FROM users
	WHERE email = $1
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Age, &u.Gender,
		&u.HeightCm, &u.WeightKg, &u.ActivityLevel, &u.Goal, &u.GoalWeightKg,
		&u.CreatedAt, &u.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, u.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	u.LastLogin = &now

	token, err := s.generateToken(u.ID)
	if err != nil {
		return nil, err
	}

	return &user.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        u,
	}, nil
}

func (s *AuthService) generateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(s.jwtExpiry).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

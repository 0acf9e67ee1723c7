package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	Name          string     `json:"name"`
	Age           int        `json:"age"`
	Gender        string     `json:"gender"`
	HeightCm      float64    `json:"height_cm"`
	WeightKg      float64    `json:"weight_kg"`
	ActivityLevel string     `json:"activity_level"`
	Goal          string     `json:"goal"`
	GoalWeightKg  *float64   `json:"goal_weight_kg,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}
